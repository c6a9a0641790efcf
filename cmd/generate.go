package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gensql-labs/gensql/internal/config"
	"github.com/gensql-labs/gensql/internal/datagen"
	"github.com/gensql-labs/gensql/internal/export"
	"github.com/gensql-labs/gensql/internal/schema"
)

var (
	generateRows   int
	generateSeed   int64
	generateOut    string
	generateFormat string
)

var generateCmd = &cobra.Command{
	Use:   "generate <schema file>",
	Short: "Generate synthetic data from a schema",
	Long: `Parse CREATE TABLE definitions from a schema file and write synthetic
datasets for every table. Output format is csv (one file per table), xlsx
(one workbook, one sheet per table) or zip (both).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read schema file: %w", err)
		}

		parsed, err := schema.Parse(string(content))
		if err != nil {
			return err
		}
		if len(parsed.Tables) == 0 {
			return fmt.Errorf("no tables found in %s", args[0])
		}

		rows := generateRows
		if rows <= 0 {
			rows = cfg.Generation.Rows
		}
		seed := generateSeed
		if !cmd.Flags().Changed("seed") {
			seed = cfg.Generation.Seed
		}
		outDir := generateOut
		if outDir == "" {
			outDir = cfg.OutputPath
		}
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		color.Cyan("🎲 Generating %d rows for %d tables (seed %d)...", rows, len(parsed.Tables), seed)
		datasets, err := datagen.New(seed).FromSchema(parsed, rows)
		if err != nil {
			return err
		}

		switch generateFormat {
		case "csv":
			for _, ds := range datasets {
				data, err := export.CSV(ds)
				if err != nil {
					return err
				}
				path := filepath.Join(outDir, fmt.Sprintf("synthetic_%s.csv", ds.Table))
				if err := os.WriteFile(path, data, 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				color.Green("  💾 %s (%d rows)", path, len(ds.Rows))
			}
		case "xlsx":
			data, err := export.Workbook(datasets)
			if err != nil {
				return err
			}
			path := filepath.Join(outDir, export.WorkbookName)
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			color.Green("  💾 %s (%d sheets)", path, len(datasets))
		case "zip":
			data, err := export.Zip(datasets)
			if err != nil {
				return err
			}
			path := filepath.Join(outDir, "synthetic_data_package.zip")
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			color.Green("  💾 %s", path)
		default:
			return fmt.Errorf("unknown format %q: use csv, xlsx or zip", generateFormat)
		}

		color.Green("✅ Data generation completed")
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVarP(&generateRows, "rows", "r", 0, "Rows per table (default from config)")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "RNG seed for reproducible output")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Output directory (default from config)")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "csv", "Output format: csv, xlsx or zip")

	rootCmd.AddCommand(generateCmd)
}
