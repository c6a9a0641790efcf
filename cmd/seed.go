package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gensql-labs/gensql/internal/config"
	"github.com/gensql-labs/gensql/internal/schema"
	"github.com/gensql-labs/gensql/internal/seeder"
)

var (
	seedRows      int
	seedSeed      int64
	seedTruncate  bool
	seedRelations bool
	seedBatch     int
)

var seedCmd = &cobra.Command{
	Use:   "seed [schema file]",
	Short: "Seed a live database with generated data",
	Long: `Generate synthetic rows for every table in the schema and insert them
into the configured database, in foreign key dependency order. Without a
schema file argument, all .sql files in the configured schema directory
are used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		var files []string
		if len(args) == 1 {
			files = args
		} else {
			files, err = cfg.GetSchemaFiles()
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no .sql files found in %s", cfg.SchemaDir)
			}
		}

		var combined string
		for _, file := range files {
			content, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			combined += string(content) + "\n"
		}

		parsed, err := schema.Parse(combined)
		if err != nil {
			return err
		}

		dbURL, err := cfg.GetDatabaseURL()
		if err != nil {
			return err
		}

		s, err := seeder.Open(cfg.Database.Provider, dbURL)
		if err != nil {
			return err
		}
		defer s.Close()

		rows := seedRows
		if rows <= 0 {
			rows = cfg.Generation.Rows
		}
		seed := seedSeed
		if !cmd.Flags().Changed("seed") {
			seed = cfg.Generation.Seed
		}

		return s.Seed(cmd.Context(), parsed, seeder.Options{
			Count:     rows,
			Seed:      seed,
			Truncate:  seedTruncate,
			Relations: seedRelations,
			Batch:     seedBatch,
		})
	},
}

func init() {
	seedCmd.Flags().IntVarP(&seedRows, "rows", "r", 0, "Rows per table (default from config)")
	seedCmd.Flags().Int64Var(&seedSeed, "seed", 0, "RNG seed for reproducible seeding")
	seedCmd.Flags().BoolVar(&seedTruncate, "truncate", false, "Clear tables before inserting")
	seedCmd.Flags().BoolVar(&seedRelations, "relations", true, "Point foreign keys at inserted parent rows")
	seedCmd.Flags().IntVar(&seedBatch, "batch", 100, "Rows per INSERT statement")

	rootCmd.AddCommand(seedCmd)
}
