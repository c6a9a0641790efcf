package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gensql-labs/gensql/internal/config"
)

var (
	cfgFile string
	Version = "1.0.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════════╗",
		"║   ██████╗ ███████╗███╗   ██╗███████╗ ██████╗ ██╗      ║",
		"║  ██╔════╝ ██╔════╝████╗  ██║██╔════╝██╔═══██╗██║      ║",
		"║  ██║  ███╗█████╗  ██╔██╗ ██║███████╗██║   ██║██║      ║",
		"║  ██║   ██║██╔══╝  ██║╚██╗██║╚════██║██║▄▄ ██║██║      ║",
		"║  ╚██████╔╝███████╗██║ ╚████║███████║╚██████╔╝███████╗ ║",
		"║   ╚═════╝ ╚══════╝╚═╝  ╚═══╝╚══════╝ ╚══▀▀═╝ ╚══════╝ ║",
		"║                                                       ║",
		"║       ⚡ SQL Schema Conversion & Synthetic Data ⚡     ║",
		"╚══════════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                 ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "gensql",
	Short: "Convert SQL schemas between dialects and generate synthetic data",
	Long: `
GenSQL converts SQL schemas between dialects with Gemini and generates
realistic synthetic datasets from schemas or existing data files.

Features:
- Schema conversion between MySQL, PostgreSQL, SQLite, MS SQL Server, Oracle and MariaDB
- Schema improvement suggestions
- Synthetic data generation from CREATE TABLE definitions
- Dataset analysis and statistics-driven synthesis from CSV/Excel files
- CSV, Excel and ZIP export, plus direct database seeding`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("GenSQL CLI version %s\n", Version)
			os.Exit(0)
		}

		showBanner()
		fmt.Println()
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.ConfigFileName+")")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("gensql.config")
	}

	viper.AutomaticEnv()

	viper.ReadInConfig()
}
