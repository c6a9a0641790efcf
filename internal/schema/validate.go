package schema

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationResult summarizes the basic checks run against a converted
// schema: the dialect line, parenthesis balance, and a tally of the SQL
// constructs the text contains.
type ValidationResult struct {
	Valid      bool
	Dialect    string
	Message    string
	Constructs map[string]int
}

// constructKeywords maps tally names to the keyword counted for each.
var constructKeywords = []struct {
	name    string
	keyword string
}{
	{"tables", "CREATE TABLE"},
	{"views", "CREATE VIEW"},
	{"functions", "CREATE FUNCTION"},
	{"procedures", "CREATE PROCEDURE"},
	{"triggers", "CREATE TRIGGER"},
	{"indexes", "CREATE INDEX"},
	{"databases", "CREATE DATABASE"},
	{"alter_statements", "ALTER "},
	{"insert_statements", "INSERT INTO"},
	{"update_statements", "UPDATE "},
	{"delete_statements", "DELETE FROM"},
	{"select_statements", "SELECT "},
}

// blockingConstructs make a schema unsuitable for table-driven data
// generation: anything beyond plain CREATE TABLE (and index/alter noise)
// means the parser's table model does not cover the input.
var blockingConstructs = []string{
	"views", "functions", "procedures", "triggers", "databases",
	"insert_statements", "update_statements", "delete_statements", "select_statements",
}

// Validate checks a schema whose first line names its dialect. It never
// parses fully; it runs the cheap structural checks the converter relies on
// before handing the schema to data generation.
func Validate(schemaWithDialect string) ValidationResult {
	counts := map[string]int{}
	lines := strings.Split(strings.TrimSpace(schemaWithDialect), "\n")

	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return ValidationResult{Message: "dialect not specified on the first line", Constructs: counts}
	}

	dialect := strings.TrimSpace(lines[0])
	body := strings.TrimSpace(strings.Join(lines[1:], "\n"))
	if body == "" {
		return ValidationResult{
			Dialect:    dialect,
			Message:    fmt.Sprintf("empty schema content (dialect: %s)", dialect),
			Constructs: counts,
		}
	}

	if onlyComments(body) {
		return ValidationResult{
			Valid:      true,
			Dialect:    dialect,
			Message:    fmt.Sprintf("schema (dialect: %s) contains only comments and is considered valid", dialect),
			Constructs: counts,
		}
	}

	if strings.Count(body, "(") != strings.Count(body, ")") {
		return ValidationResult{
			Dialect:    dialect,
			Message:    fmt.Sprintf("validation error (dialect: %s): mismatched parentheses", dialect),
			Constructs: counts,
		}
	}

	upper := strings.ToUpper(body)
	for _, c := range constructKeywords {
		if n := strings.Count(upper, c.keyword); n > 0 {
			counts[c.name] = n
		}
	}

	if len(counts) == 0 {
		return ValidationResult{
			Dialect:    dialect,
			Message:    fmt.Sprintf("validation error (dialect: %s): no SQL DDL/DML keywords detected", dialect),
			Constructs: counts,
		}
	}

	return ValidationResult{
		Valid:      true,
		Dialect:    dialect,
		Message:    fmt.Sprintf("schema (dialect: %s) passed basic validation checks. Detected: %s.", dialect, summarize(counts)),
		Constructs: counts,
	}
}

// SuitableForGeneration reports whether a validated schema can drive the
// data generator: it needs at least one table and nothing the table model
// cannot represent.
func SuitableForGeneration(counts map[string]int) bool {
	if counts["tables"] == 0 {
		return false
	}
	for _, name := range blockingConstructs {
		if counts[name] > 0 {
			return false
		}
	}
	return true
}

func onlyComments(body string) bool {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		return false
	}
	return true
}

func summarize(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%d %s", counts[name], strings.ReplaceAll(name, "_", " ")))
	}
	return strings.Join(parts, ", ")
}
