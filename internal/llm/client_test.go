package llm

import (
	"context"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func TestCleanResponseStripsFences(t *testing.T) {
	raw := "```sql\nCREATE TABLE users (\n    id INT PRIMARY KEY\n);\n```"
	want := "CREATE TABLE users (\nid INT PRIMARY KEY\n);"
	if got := cleanResponse(raw); got != want {
		t.Errorf("cleanResponse = %q, want %q", got, want)
	}
}

func TestCleanResponseStrayBackticks(t *testing.T) {
	raw := "CREATE TABLE a (id INT);```\nextra"
	if got := cleanResponse(raw); strings.Contains(got, "```") {
		t.Errorf("backticks survived cleaning: %q", got)
	}
}

func TestCleanResponsePassthrough(t *testing.T) {
	raw := "CREATE TABLE a (id INT);"
	if got := cleanResponse(raw); got != raw {
		t.Errorf("cleanResponse = %q, want unchanged", got)
	}
}

func TestLookupModelFallback(t *testing.T) {
	if m := LookupModel("gemini-1.5-pro"); m.Name != "Gemini 1.5 Pro" {
		t.Errorf("lookup = %+v", m)
	}
	if m := LookupModel("no-such-model"); m.ID != DefaultModel {
		t.Errorf("unknown model resolved to %s, want %s", m.ID, DefaultModel)
	}
}

func TestValidatedClampsRanges(t *testing.T) {
	cfg := GenerationConfig{
		Model:           "no-such-model",
		Temperature:     5,
		MaxOutputTokens: 100000,
		TopP:            1.5,
		TopK:            500,
	}
	v := cfg.Validated()

	if v.Model != DefaultModel {
		t.Errorf("model = %s, want %s", v.Model, DefaultModel)
	}
	if v.Temperature != 2 {
		t.Errorf("temperature = %v, want 2", v.Temperature)
	}
	if v.MaxOutputTokens != 8192 {
		t.Errorf("max tokens = %d, want 8192", v.MaxOutputTokens)
	}
	if v.TopP != 1 {
		t.Errorf("topP = %v, want 1", v.TopP)
	}
	if v.TopK != 100 {
		t.Errorf("topK = %v, want 100", v.TopK)
	}

	low := GenerationConfig{Model: DefaultModel, Temperature: -1, MaxOutputTokens: -5, TopP: -0.5, TopK: 0}.Validated()
	if low.Temperature != 0 || low.MaxOutputTokens != 1 || low.TopP != 0 || low.TopK != 1 {
		t.Errorf("lower clamps wrong: %+v", low)
	}
}

func TestConversionPromptMentionsDialectAndInput(t *testing.T) {
	prompt := conversionPrompt("PostgreSQL", "CREATE TABLE t (id INT);")
	if !strings.Contains(prompt, "PostgreSQL SQL code") {
		t.Error("prompt missing target dialect")
	}
	if !strings.Contains(prompt, "CREATE TABLE t (id INT);") {
		t.Error("prompt missing input schema")
	}
}

func TestConvertSchemaValidatesResponse(t *testing.T) {
	s := &Service{}
	s.generate = func(ctx context.Context, model, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
		return "```sql\nCREATE TABLE users (\n    id INT PRIMARY KEY\n);\n```", nil
	}

	result, err := s.ConvertSchema(context.Background(), "users with an id", "PostgreSQL", DefaultGenerationConfig())
	if err != nil {
		t.Fatalf("ConvertSchema failed: %v", err)
	}

	if !strings.HasPrefix(result.Schema, "PostgreSQL\n") {
		t.Errorf("converted schema should start with the dialect line: %q", result.Schema)
	}
	if !result.Valid {
		t.Errorf("expected valid result, got message %q", result.Message)
	}
	if !result.Suitable {
		t.Error("a plain CREATE TABLE schema should be suitable for generation")
	}
	if result.Constructs["tables"] != 1 {
		t.Errorf("constructs = %v, want 1 table", result.Constructs)
	}
}

func TestConvertSchemaUnsuitableWithDML(t *testing.T) {
	s := &Service{}
	s.generate = func(ctx context.Context, model, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
		return "CREATE TABLE t (id INT);\nINSERT INTO t VALUES (1);", nil
	}

	result, err := s.ConvertSchema(context.Background(), "whatever", "MySQL", DefaultGenerationConfig())
	if err != nil {
		t.Fatalf("ConvertSchema failed: %v", err)
	}
	if result.Suitable {
		t.Error("schemas with INSERT statements are not suitable for generation")
	}
}

func TestSuggestionsUsesLowTemperature(t *testing.T) {
	var captured *genai.GenerateContentConfig
	s := &Service{}
	s.generate = func(ctx context.Context, model, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
		captured = cfg
		return "Add an index on users.email.", nil
	}

	out, err := s.Suggestions(context.Background(), "CREATE TABLE users (id INT);", DefaultGenerationConfig())
	if err != nil {
		t.Fatalf("Suggestions failed: %v", err)
	}
	if out == "" {
		t.Error("expected suggestion text")
	}
	if captured.MaxOutputTokens != 1000 {
		t.Errorf("max tokens = %d, want 1000", captured.MaxOutputTokens)
	}
	if captured.Temperature == nil || *captured.Temperature != 0.3 {
		t.Errorf("temperature = %v, want 0.3", captured.Temperature)
	}
}
