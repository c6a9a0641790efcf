package seeder

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/fatih/color"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/gensql-labs/gensql/internal/datagen"
	"github.com/gensql-labs/gensql/internal/schema"
)

// validIdentifier guards table and column names before they reach SQL text.
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

const defaultBatchSize = 100

// Options controls a seeding run.
type Options struct {
	Count     int            // rows per table
	Seed      int64          // RNG seed, reproducible runs
	Truncate  bool           // clear tables before inserting
	Relations bool           // point FK columns at actually inserted parent rows
	Batch     int            // rows per INSERT statement
	Tables    map[string]int // per-table row count overrides
}

// Seeder inserts generated datasets into a live database.
type Seeder struct {
	db          *sql.DB
	provider    string
	qb          squirrel.StatementBuilderType
	insertedIDs map[string][]any
}

// Open connects to the database for the given provider. Supported providers
// are postgres/postgresql, mysql and sqlite/sqlite3.
func Open(provider, url string) (*Seeder, error) {
	var driver string
	switch provider {
	case "postgres", "postgresql":
		driver = "pgx"
	case "mysql":
		driver = "mysql"
	case "sqlite", "sqlite3":
		driver = "sqlite3"
	default:
		return nil, fmt.Errorf("unsupported database provider: %s", provider)
	}

	db, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Seeder{
		db:          db,
		provider:    provider,
		qb:          squirrel.StatementBuilder.PlaceholderFormat(placeholderFor(provider)),
		insertedIDs: make(map[string][]any),
	}, nil
}

// placeholderFor picks the bind-parameter style for a provider. Postgres
// wants $1-style placeholders, MySQL and SQLite take question marks.
func placeholderFor(provider string) squirrel.PlaceholderFormat {
	if provider == "postgres" || provider == "postgresql" {
		return squirrel.Dollar
	}
	return squirrel.Question
}

func (s *Seeder) Close() error {
	return s.db.Close()
}

// Seed generates rows for every table in the schema and inserts them in FK
// dependency order, inside a transaction.
func (s *Seeder) Seed(ctx context.Context, sch *schema.Schema, opts Options) error {
	if len(sch.Tables) == 0 {
		color.Yellow("⚠️  No tables found in schema")
		return nil
	}

	for i := range sch.Tables {
		t := &sch.Tables[i]
		if !isValidIdentifier(t.Name) {
			return fmt.Errorf("invalid table name: %s", t.Name)
		}
		for _, col := range t.Columns {
			if !isValidIdentifier(col.Name) {
				return fmt.Errorf("invalid column name in table %s: %s", t.Name, col.Name)
			}
		}
	}

	order, err := InsertionOrder(sch)
	if err != nil {
		return fmt.Errorf("failed to build insertion order: %w", err)
	}

	color.Cyan("🌱 Seeding %d tables", len(order))
	color.Cyan("📋 Insertion order: %s", strings.Join(order, ", "))

	if opts.Truncate {
		if err := s.truncate(ctx, order); err != nil {
			return fmt.Errorf("failed to truncate tables: %w", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	gen := datagen.New(opts.Seed)
	rng := rand.New(rand.NewSource(opts.Seed))

	for _, name := range order {
		table := sch.LookupTable(name)
		count := opts.Count
		if override, ok := opts.Tables[name]; ok {
			count = override
		}

		if err := s.seedTable(ctx, tx, gen, rng, table, count, opts); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to seed table %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	color.Green("✅ Database seeding completed successfully")
	return nil
}

func (s *Seeder) seedTable(ctx context.Context, tx *sql.Tx, gen *datagen.Generator, rng *rand.Rand, table *schema.Table, count int, opts Options) error {
	color.Cyan("  📝 Seeding %s (%d records)...", table.Name, count)

	ds, err := gen.Table(table, count)
	if err != nil {
		return err
	}

	// Auto-increment primary keys are left to the database.
	pkColumn := ""
	insertIdx := make([]int, 0, len(table.Columns))
	for i, col := range table.Columns {
		if col.PrimaryKey && col.AutoIncrement {
			pkColumn = col.Name
			continue
		}
		insertIdx = append(insertIdx, i)
	}

	// Point FK columns at rows that were actually inserted.
	if opts.Relations {
		for i, col := range table.Columns {
			if col.FKTable == "" || col.FKTable == table.Name {
				continue
			}
			parents := s.insertedIDs[col.FKTable]
			for _, row := range ds.Rows {
				if row[i] == nil {
					continue
				}
				if len(parents) > 0 {
					row[i] = parents[rng.Intn(len(parents))]
				} else if col.Nullable {
					row[i] = nil
				} else {
					return fmt.Errorf("no parent rows in %s for NOT NULL FK column %s", col.FKTable, col.Name)
				}
			}
		}
	}

	batchSize := opts.Batch
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	columns := make([]string, len(insertIdx))
	for j, i := range insertIdx {
		columns[j] = table.Columns[i].Name
	}

	var ids []any
	for start := 0; start < len(ds.Rows); start += batchSize {
		end := start + batchSize
		if end > len(ds.Rows) {
			end = len(ds.Rows)
		}

		batch := make([][]any, 0, end-start)
		for _, row := range ds.Rows[start:end] {
			values := make([]any, len(insertIdx))
			for j, i := range insertIdx {
				values[j] = row[i]
			}
			batch = append(batch, values)
		}

		batchIDs, err := s.insertBatch(ctx, tx, table.Name, columns, batch, pkColumn)
		if err != nil {
			return err
		}
		ids = append(ids, batchIDs...)
	}

	// Remember PK values so child tables can reference them.
	if pkColumn != "" {
		s.insertedIDs[table.Name] = append(s.insertedIDs[table.Name], ids...)
	} else if pk := explicitPrimaryKey(table); pk >= 0 {
		for _, row := range ds.Rows {
			s.insertedIDs[table.Name] = append(s.insertedIDs[table.Name], row[pk])
		}
	}

	color.Green("  ✅ %s seeded", table.Name)
	return nil
}

func (s *Seeder) insertBatch(ctx context.Context, tx *sql.Tx, table string, columns []string, rows [][]any, pkColumn string) ([]any, error) {
	builder := s.qb.Insert(table).Columns(columns...)
	for _, row := range rows {
		builder = builder.Values(row...)
	}

	if pkColumn != "" && (s.provider == "postgres" || s.provider == "postgresql") {
		query, args, err := builder.Suffix("RETURNING " + pkColumn).ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build insert: %w", err)
		}
		result, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		defer result.Close()

		var ids []any
		for result.Next() {
			var id any
			if err := result.Scan(&id); err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
		return ids, result.Err()
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert: %w", err)
	}
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	if pkColumn == "" {
		return nil, nil
	}

	// MySQL reports the first id of a multi-row insert, SQLite the last.
	last, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted id for %s: %w", table, err)
	}
	ids := make([]any, len(rows))
	if s.provider == "mysql" {
		for i := range ids {
			ids[i] = last + int64(i)
		}
	} else {
		for i := range ids {
			ids[i] = last - int64(len(rows)-1) + int64(i)
		}
	}
	return ids, nil
}

// truncate clears the tables in reverse dependency order so children go
// before their parents.
func (s *Seeder) truncate(ctx context.Context, order []string) error {
	for i := len(order) - 1; i >= 0; i-- {
		name := order[i]
		var stmt string
		switch s.provider {
		case "postgres", "postgresql":
			stmt = fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", name)
		default:
			stmt = fmt.Sprintf("DELETE FROM %s", name)
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", name, err)
		}
		color.Yellow("  🗑️  Cleared %s", name)
	}
	return nil
}

func explicitPrimaryKey(t *schema.Table) int {
	for i, col := range t.Columns {
		if col.PrimaryKey {
			return i
		}
	}
	return -1
}

func isValidIdentifier(name string) bool {
	return validIdentifier.MatchString(name)
}
