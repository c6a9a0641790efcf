package schema

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	createTableRegex  = regexp.MustCompile(`(?is)CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?(?:[\x60"]?(\w+)[\x60"]?\.)?[\x60"]?(\w+)[\x60"]?\s*\(([\s\S]*?)\)\s*;`)
	lineCommentRegex  = regexp.MustCompile(`--[^\n]*`)
	hashCommentRegex  = regexp.MustCompile(`#[^\n]*`)
	blockCommentRegex = regexp.MustCompile(`(?s)/\*.*?\*/`)
	typeSizeRegex     = regexp.MustCompile(`^([A-Za-z ]+?)\s*(?:\(\s*(\d+)\s*(?:,\s*(\d+)\s*)?\))?$`)
	referencesRegex   = regexp.MustCompile(`(?i)REFERENCES\s+[\x60"]?(\w+)[\x60"]?\s*\(\s*[\x60"]?(\w+)[\x60"]?\s*\)`)
	foreignKeyRegex   = regexp.MustCompile(`(?i)FOREIGN\s+KEY\s*\(\s*[\x60"]?(\w+)[\x60"]?\s*\)\s*REFERENCES\s+[\x60"]?(\w+)[\x60"]?\s*\(\s*[\x60"]?(\w+)[\x60"]?\s*\)`)
	defaultRegex      = regexp.MustCompile(`(?i)\bDEFAULT\s+('[^']*'|\([^)]*\)|[^,\s]+)`)
	dialectMarkRegex  = regexp.MustCompile(`^[-/#*\s]+|[\s*/]+$`)
)

// tableConstraintPrefixes mark definitions inside a CREATE TABLE body that
// are not column definitions.
var tableConstraintPrefixes = []string{
	"PRIMARY KEY", "FOREIGN KEY", "UNIQUE", "CONSTRAINT", "CHECK", "INDEX", "KEY", "TABLESPACE",
}

// Parse extracts table definitions from SQL DDL text. The first line may name
// the dialect, plain or wrapped in comment markers ("MySQL", "-- PostgreSQL",
// "/* SQLite */"); when it does, the dialect is recorded and parsing starts
// on the next line.
func Parse(content string) (*Schema, error) {
	out := &Schema{}
	body := content

	if lines := strings.SplitN(content, "\n", 2); len(lines) > 0 {
		if dialect := DetectDialect(lines[0]); dialect != "" {
			out.Dialect = dialect
			if len(lines) == 2 {
				body = lines[1]
			} else {
				body = ""
			}
		}
	}

	body = stripComments(body)

	for _, match := range createTableRegex.FindAllStringSubmatch(body, -1) {
		qualifier, name, columnsBody := match[1], match[2], match[3]

		tableName := strings.ToLower(name)
		if qualifier != "" {
			tableName = strings.ToLower(qualifier) + "." + tableName
		}

		columns := parseColumns(columnsBody)
		if len(columns) == 0 {
			continue
		}

		out.Tables = append(out.Tables, Table{Name: tableName, Columns: columns})
	}

	return out, nil
}

// DetectDialect matches a single line against the known dialect names after
// stripping comment markers. Returns the dialect with its canonical casing,
// or "" when the line is not a dialect marker.
func DetectDialect(line string) string {
	cleaned := dialectMarkRegex.ReplaceAllString(strings.TrimSpace(line), "")
	for _, dialect := range KnownDialects {
		if strings.EqualFold(cleaned, dialect) {
			return dialect
		}
	}
	return ""
}

func stripComments(content string) string {
	content = blockCommentRegex.ReplaceAllString(content, "")
	content = lineCommentRegex.ReplaceAllString(content, "")
	content = hashCommentRegex.ReplaceAllString(content, "")
	return strings.TrimSpace(content)
}

func parseColumns(body string) []Column {
	type fkRef struct {
		column, table, refColumn string
	}

	var columns []Column
	var fks []fkRef

	for _, def := range splitDefinitions(body) {
		def = strings.TrimSpace(def)
		if def == "" {
			continue
		}

		if isTableConstraint(def) {
			if m := foreignKeyRegex.FindStringSubmatch(def); m != nil {
				fks = append(fks, fkRef{column: m[1], table: strings.ToLower(m[2]), refColumn: m[3]})
			}
			continue
		}

		// Definitions that do not look like a column are skipped rather
		// than failing the whole table.
		col, ok := parseColumnDefinition(def)
		if !ok {
			continue
		}
		columns = append(columns, col)
	}

	for _, fk := range fks {
		for i := range columns {
			if columns[i].Name == fk.column {
				columns[i].FKTable = fk.table
				columns[i].FKColumn = fk.refColumn
				break
			}
		}
	}

	return columns
}

// splitDefinitions splits the CREATE TABLE body on commas while respecting
// parentheses, so DECIMAL(10,2) stays in one piece.
func splitDefinitions(body string) []string {
	var result []string
	var current strings.Builder
	depth := 0

	for _, ch := range body {
		switch ch {
		case '(':
			depth++
			current.WriteRune(ch)
		case ')':
			depth--
			current.WriteRune(ch)
		case ',':
			if depth == 0 {
				result = append(result, current.String())
				current.Reset()
			} else {
				current.WriteRune(ch)
			}
		default:
			current.WriteRune(ch)
		}
	}

	if strings.TrimSpace(current.String()) != "" {
		result = append(result, current.String())
	}
	return result
}

func isTableConstraint(def string) bool {
	upper := strings.ToUpper(strings.TrimSpace(def))
	for _, prefix := range tableConstraintPrefixes {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return false
}

func parseColumnDefinition(def string) (Column, bool) {
	fields := strings.Fields(def)
	if len(fields) < 2 {
		return Column{}, false
	}

	col := Column{
		Name:     strings.Trim(fields[0], "`\"[]"),
		Nullable: true,
	}

	nameEnd := strings.Index(def, fields[0]) + len(fields[0])
	col.RawType = extractRawType(strings.TrimSpace(def[nameEnd:]))
	col.Kind, col.Length, col.Precision, col.Scale = normalizeType(col.RawType)

	upper := strings.ToUpper(def)
	if strings.Contains(upper, "NOT NULL") {
		col.Nullable = false
	}
	if strings.Contains(upper, "PRIMARY KEY") {
		col.PrimaryKey = true
		col.Nullable = false
	}
	if strings.Contains(upper, "UNIQUE") {
		col.Unique = true
	}
	if strings.Contains(upper, "AUTO_INCREMENT") || strings.Contains(upper, "AUTOINCREMENT") ||
		strings.Contains(upper, "IDENTITY") || strings.Contains(upper, "SERIAL") {
		col.AutoIncrement = true
		if strings.Contains(upper, "SERIAL") {
			col.PrimaryKey = true
			col.Nullable = false
		}
	}
	if m := defaultRegex.FindStringSubmatch(def); m != nil {
		col.Default = m[1]
	}
	if m := referencesRegex.FindStringSubmatch(def); m != nil {
		col.FKTable = strings.ToLower(m[1])
		col.FKColumn = m[2]
	}

	return col, true
}

// extractRawType takes everything up to the first space outside parentheses,
// keeping size arguments like VARCHAR(255) or DECIMAL(10, 2) attached.
// Multi-word types (DOUBLE PRECISION, TIMESTAMP WITH TIME ZONE) are handled
// up front.
func extractRawType(rest string) string {
	upper := strings.ToUpper(rest)
	for _, multi := range []string{
		"TIMESTAMP WITH TIME ZONE",
		"TIMESTAMP WITHOUT TIME ZONE",
		"DOUBLE PRECISION",
		"CHARACTER VARYING",
	} {
		if strings.HasPrefix(upper, multi) {
			tail := rest[len(multi):]
			if strings.HasPrefix(strings.TrimSpace(tail), "(") {
				if end := strings.Index(tail, ")"); end >= 0 {
					return rest[:len(multi)+end+1]
				}
			}
			return rest[:len(multi)]
		}
	}

	depth := 0
	for i, ch := range rest {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return rest[:i+1]
			}
		case ' ', '\t':
			if depth == 0 {
				return rest[:i]
			}
		}
	}
	return rest
}

// normalizeType maps a raw SQL type onto a canonical kind plus any size info.
func normalizeType(rawType string) (kind string, length, precision, scale int) {
	base := rawType
	if m := typeSizeRegex.FindStringSubmatch(strings.TrimSpace(rawType)); m != nil {
		base = strings.TrimSpace(m[1])
		if m[2] != "" && m[3] != "" {
			precision, _ = strconv.Atoi(m[2])
			scale, _ = strconv.Atoi(m[3])
		} else if m[2] != "" {
			length, _ = strconv.Atoi(m[2])
		}
	}

	lower := strings.ToLower(base)
	switch {
	case strings.Contains(lower, "int") || strings.Contains(lower, "serial"):
		kind = KindInteger
	case strings.Contains(lower, "char") || strings.Contains(lower, "text"):
		kind = KindString
	case strings.Contains(lower, "float") || strings.Contains(lower, "double") || strings.Contains(lower, "real"):
		kind = KindFloat
	case strings.Contains(lower, "decimal") || strings.Contains(lower, "numeric"):
		kind = KindFloat
	case strings.Contains(lower, "datetime") || strings.Contains(lower, "timestamp"):
		kind = KindDateTime
	case strings.HasPrefix(lower, "date"):
		kind = KindDate
	case strings.Contains(lower, "bool"):
		kind = KindBoolean
	default:
		kind = KindString
	}
	return kind, length, precision, scale
}
