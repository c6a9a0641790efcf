package llm

// ModelInfo describes a selectable Gemini model.
type ModelInfo struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	MaxTokens          int32   `json:"max_tokens"`
	DefaultTemperature float32 `json:"default_temperature"`
}

// DefaultModel is used when no model (or an unknown one) is requested.
const DefaultModel = "gemini-2.0-flash-001"

// Models lists the supported Gemini models in display order.
var Models = []ModelInfo{
	{
		ID:                 "gemini-2.0-flash-001",
		Name:               "Gemini 2.0 Flash",
		Description:        "Latest and fastest model, great for most tasks",
		MaxTokens:          8192,
		DefaultTemperature: 0.1,
	},
	{
		ID:                 "gemini-2.5-flash-preview-05-20",
		Name:               "Gemini 2.5 Flash Preview",
		Description:        "Preview version of the next generation model",
		MaxTokens:          8192,
		DefaultTemperature: 0.1,
	},
	{
		ID:                 "gemini-1.5-pro",
		Name:               "Gemini 1.5 Pro",
		Description:        "Most capable model, best for complex schema conversion",
		MaxTokens:          8192,
		DefaultTemperature: 0.1,
	},
	{
		ID:                 "gemini-1.5-flash",
		Name:               "Gemini 1.5 Flash",
		Description:        "Faster model, good for simple schema conversions",
		MaxTokens:          8192,
		DefaultTemperature: 0.1,
	},
}

// LookupModel returns the catalog entry for id, or the default model when id
// is unknown.
func LookupModel(id string) ModelInfo {
	for _, m := range Models {
		if m.ID == id {
			return m
		}
	}
	return LookupModel(DefaultModel)
}

// GenerationConfig holds the tunable generation parameters.
type GenerationConfig struct {
	Model           string  `json:"model"`
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int32   `json:"max_output_tokens"`
	TopP            float32 `json:"top_p"`
	TopK            float32 `json:"top_k"`
}

// DefaultGenerationConfig returns the standard conversion settings.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Model:           DefaultModel,
		Temperature:     0.1,
		MaxOutputTokens: 4096,
		TopP:            0.95,
		TopK:            40,
	}
}

// Validated clamps every parameter into its allowed range. Unknown models
// fall back to the default model.
func (c GenerationConfig) Validated() GenerationConfig {
	out := c

	known := false
	for _, m := range Models {
		if m.ID == out.Model {
			known = true
			break
		}
	}
	if !known {
		out.Model = DefaultModel
	}

	out.Temperature = clampFloat(out.Temperature, 0, 2)
	out.MaxOutputTokens = clampInt(out.MaxOutputTokens, 1, LookupModel(out.Model).MaxTokens)
	out.TopP = clampFloat(out.TopP, 0, 1)
	out.TopK = clampFloat(out.TopK, 1, 100)

	return out
}

func clampFloat(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
