package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gensql-labs/gensql/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new GenSQL project",
	Long:  `Create a gensql.config.json with defaults plus the schema and output directories.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitializeProject(); err != nil {
			return err
		}

		fmt.Println("✅ GenSQL project initialized")
		fmt.Println()
		fmt.Println("📝 Configuration file created:")
		fmt.Printf("   %s\n", config.ConfigFileName)
		fmt.Println()
		fmt.Println("📁 Directories created:")
		fmt.Println("   db/schema/")
		fmt.Println("   out/")
		fmt.Println()
		fmt.Println("🚀 Next steps:")
		fmt.Println("   export GEMINI_API_KEY=...           # Enable schema conversion")
		fmt.Println("   gensql convert schema.sql -t MySQL  # Convert a schema")
		fmt.Println("   gensql generate schema.sql          # Generate synthetic data")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
