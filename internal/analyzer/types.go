package analyzer

import "time"

// Column type labels assigned during analysis.
const (
	TypeNumeric     = "numeric"
	TypeDatetime    = "datetime"
	TypeBoolean     = "boolean"
	TypeCategorical = "categorical"
	TypeEmpty       = "empty"
)

// Analysis describes one tabular dataset (a CSV file or one Excel sheet).
type Analysis struct {
	Rows       int                    `json:"rows"`
	Columns    int                    `json:"columns"`
	NoiseLevel float64                `json:"noise_level"`
	Order      []string               `json:"column_order"`
	ColumnInfo map[string]*ColumnInfo `json:"column_info"`
}

type ColumnInfo struct {
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	MissingCount   int     `json:"missing_count"`
	MissingPercent float64 `json:"missing_percent"`
	UniqueCount    int     `json:"unique_count"`
	UniquePercent  float64 `json:"unique_percent"`

	Numeric     *NumericStats     `json:"numeric,omitempty"`
	Datetime    *DatetimeStats    `json:"datetime,omitempty"`
	Boolean     *BooleanStats     `json:"boolean,omitempty"`
	Categorical *CategoricalStats `json:"categorical,omitempty"`
}

type NumericStats struct {
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	Std          float64 `json:"std"`
	Q25          float64 `json:"q25"`
	Q75          float64 `json:"q75"`
	IsInteger    bool    `json:"is_integer"`
	Skewness     float64 `json:"skewness"`
	Kurtosis     float64 `json:"kurtosis"`
	Distribution string  `json:"distribution"`
}

type DatetimeStats struct {
	Min            time.Time `json:"min"`
	Max            time.Time `json:"max"`
	RangeDays      int       `json:"range_days"`
	FormatExamples []string  `json:"format_examples"`
}

type BooleanStats struct {
	TrueCount  int     `json:"true_count"`
	FalseCount int     `json:"false_count"`
	TrueRatio  float64 `json:"true_ratio"`
}

type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type CategoricalStats struct {
	// TopValues holds up to the 50 most frequent values, most frequent
	// first, so downstream sampling is deterministic.
	TopValues       []ValueCount `json:"top_values"`
	MostCommon      string       `json:"most_common"`
	MostCommonCount int          `json:"most_common_count"`
	CategoryCount   int          `json:"category_count"`
	Examples        []string     `json:"examples"`
}
