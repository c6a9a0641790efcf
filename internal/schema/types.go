package schema

// Canonical column kinds that the data generator understands.
const (
	KindInteger  = "integer"
	KindFloat    = "float"
	KindString   = "string"
	KindDate     = "date"
	KindDateTime = "datetime"
	KindBoolean  = "boolean"
)

// KnownDialects lists the SQL dialects recognized on a schema's first line.
var KnownDialects = []string{"MySQL", "PostgreSQL", "SQLite", "MS SQL Server", "Oracle", "MariaDB"}

type Schema struct {
	Dialect string  `json:"dialect"`
	Tables  []Table `json:"tables"`
}

type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

type Column struct {
	Name          string `json:"name"`
	Kind          string `json:"kind"`
	RawType       string `json:"raw_type"`
	Length        int    `json:"length,omitempty"` // VARCHAR(n), 0 when unspecified
	Precision     int    `json:"precision,omitempty"` // DECIMAL(p,s)
	Scale         int    `json:"scale,omitempty"`
	Nullable      bool   `json:"nullable"`
	Unique        bool   `json:"unique,omitempty"`
	PrimaryKey    bool   `json:"primary_key,omitempty"`
	AutoIncrement bool   `json:"auto_increment,omitempty"`
	Default       string `json:"default,omitempty"`
	FKTable       string `json:"foreign_key_table,omitempty"`
	FKColumn      string `json:"foreign_key_column,omitempty"`
}

// GenParams carries the knobs the generator derives from a column definition.
type GenParams struct {
	MinInt        int64
	MaxInt        int64
	MinFloat      float64
	MaxFloat      float64
	Scale         int
	MinLength     int
	MaxLength     int
	StartDate     string
	EndDate       string
	TrueRatio     float64
	Nullable      bool
	Unique        bool
	AutoIncrement bool
}

// GenParams maps a parsed column onto generation parameters. Key columns get
// a wider integer range so unique sampling has room.
func (c Column) GenParams() GenParams {
	p := GenParams{
		StartDate: "2020-01-01",
		EndDate:   "2024-12-31",
		TrueRatio: 0.5,
		Nullable:  c.Nullable,
		Unique:    c.Unique || c.PrimaryKey,
	}

	switch c.Kind {
	case KindInteger:
		if c.AutoIncrement || c.PrimaryKey {
			p.MinInt, p.MaxInt = 1, 1000000
			p.AutoIncrement = c.AutoIncrement
		} else {
			p.MinInt, p.MaxInt = 1, 100000
		}
	case KindFloat:
		p.MinFloat, p.MaxFloat = 0.0, 10000.0
		p.Scale = 2
		if c.Precision > 0 {
			p.Scale = c.Scale
		}
	case KindString:
		p.MinLength = 1
		p.MaxLength = 255
		if c.Length > 0 {
			p.MaxLength = c.Length
		}
	}

	return p
}

// LookupTable finds a table by its parsed (lowercased) name.
func (s *Schema) LookupTable(name string) *Table {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i]
		}
	}
	return nil
}
