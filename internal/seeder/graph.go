package seeder

import (
	"fmt"

	"github.com/gensql-labs/gensql/internal/schema"
)

// InsertionOrder sorts tables so every foreign key target is seeded before
// the tables referencing it. Self-references are ignored; cycles across
// tables are an error.
func InsertionOrder(s *schema.Schema) ([]string, error) {
	deps := make(map[string][]string, len(s.Tables))
	for i := range s.Tables {
		t := &s.Tables[i]
		for _, col := range t.Columns {
			if col.FKTable == "" || col.FKTable == t.Name {
				continue
			}
			if s.LookupTable(col.FKTable) == nil {
				continue
			}
			deps[t.Name] = append(deps[t.Name], col.FKTable)
		}
	}

	visited := make(map[string]bool)
	inStack := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(name string) error {
		if inStack[name] {
			return fmt.Errorf("circular dependency detected involving table: %s", name)
		}
		if visited[name] {
			return nil
		}

		inStack[name] = true
		for _, dep := range deps[name] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		inStack[name] = false

		visited[name] = true
		order = append(order, name)
		return nil
	}

	for i := range s.Tables {
		if err := visit(s.Tables[i].Name); err != nil {
			return nil, err
		}
	}
	return order, nil
}
