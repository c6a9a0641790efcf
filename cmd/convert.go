package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gensql-labs/gensql/internal/config"
	"github.com/gensql-labs/gensql/internal/llm"
)

var (
	convertTarget  string
	convertModel   string
	convertOut     string
	convertSuggest bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [schema file]",
	Short: "Convert a schema to a target SQL dialect",
	Long: `Convert a schema file (or stdin when no file is given) into the target
SQL dialect using Gemini. The output starts with the dialect name on its
first line, ready for data generation.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		var input []byte
		if len(args) == 1 {
			input, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read schema file: %w", err)
			}
		} else {
			input, err = io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
		}
		if len(input) == 0 {
			return fmt.Errorf("no schema input provided")
		}

		apiKey, err := cfg.GetAPIKey()
		if err != nil {
			return err
		}

		service, err := llm.NewService(cmd.Context(), apiKey)
		if err != nil {
			return err
		}

		genCfg := cfg.GenerationConfig()
		if convertModel != "" {
			genCfg.Model = convertModel
		}

		color.Cyan("🔄 Converting schema to %s...", convertTarget)
		result, err := service.ConvertSchema(cmd.Context(), string(input), convertTarget, genCfg)
		if err != nil {
			return err
		}

		if result.Valid {
			color.Green("✅ %s", result.Message)
		} else {
			color.Yellow("⚠️  %s", result.Message)
		}
		if result.Suitable {
			color.Green("📊 Schema is suitable for data generation")
		} else {
			color.Yellow("📊 Schema is not suitable for data generation")
		}

		if convertOut != "" {
			if err := os.WriteFile(convertOut, []byte(result.Schema+"\n"), 0644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			color.Green("💾 Converted schema written to %s", convertOut)
		} else {
			fmt.Println()
			fmt.Println(result.Schema)
		}

		if convertSuggest {
			color.Cyan("\n💡 Improvement suggestions:")
			suggestions, err := service.Suggestions(cmd.Context(), result.Schema, genCfg)
			if err != nil {
				return err
			}
			fmt.Println(suggestions)
		}

		return nil
	},
}

func init() {
	convertCmd.Flags().StringVarP(&convertTarget, "target", "t", "PostgreSQL", "Target SQL dialect")
	convertCmd.Flags().StringVarP(&convertModel, "model", "m", "", "Gemini model to use")
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "Write converted schema to this file instead of stdout")
	convertCmd.Flags().BoolVar(&convertSuggest, "suggest", false, "Also print improvement suggestions")

	rootCmd.AddCommand(convertCmd)
}
