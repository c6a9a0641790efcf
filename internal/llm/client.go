package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"google.golang.org/genai"

	"github.com/gensql-labs/gensql/internal/schema"
)

var (
	leadingFenceRegex  = regexp.MustCompile(`(?i)^\s*` + "```" + `sql\s*\n?`)
	trailingFenceRegex = regexp.MustCompile(`\n?\s*` + "```" + `\s*$`)
)

// ConversionResult is the outcome of a schema conversion: the cleaned SQL
// with the target dialect as its first line, plus validation details.
type ConversionResult struct {
	Schema     string         `json:"schema"`
	Valid      bool           `json:"valid"`
	Message    string         `json:"message"`
	Suitable   bool           `json:"suitable_for_generation"`
	Constructs map[string]int `json:"constructs"`
}

// Service talks to the Gemini API for schema conversion and suggestions.
type Service struct {
	client   *genai.Client
	generate func(ctx context.Context, model, prompt string, cfg *genai.GenerateContentConfig) (string, error)
}

// NewService creates a Gemini-backed service. The API key is required.
func NewService(ctx context.Context, apiKey string) (*Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	s := &Service{client: client}
	s.generate = s.generateContent
	return s, nil
}

func (s *Service) generateContent(ctx context.Context, model, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	resp, err := s.client.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no response received from the model")
	}
	return text, nil
}

// TestConnection sends a tiny prompt and checks that the model answers.
func (s *Service) TestConnection(ctx context.Context, cfg GenerationConfig) error {
	v := cfg.Validated()
	_, err := s.generate(ctx, v.Model, connectionTestPrompt, &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.1),
		MaxOutputTokens: 50,
	})
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	return nil
}

// ConvertSchema converts input into the target dialect, cleans the response
// and validates the result. A validation failure is reported in the result
// rather than as an error so callers can still show the cleaned SQL.
func (s *Service) ConvertSchema(ctx context.Context, input, targetDialect string, cfg GenerationConfig) (*ConversionResult, error) {
	v := cfg.Validated()

	text, err := s.generate(ctx, v.Model, conversionPrompt(targetDialect, input), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(v.Temperature),
		MaxOutputTokens: v.MaxOutputTokens,
		TopP:            genai.Ptr(v.TopP),
		TopK:            genai.Ptr(v.TopK),
	})
	if err != nil {
		return nil, fmt.Errorf("schema conversion failed: %w", err)
	}

	withDialect := targetDialect + "\n" + cleanResponse(text)
	validation := schema.Validate(withDialect)

	return &ConversionResult{
		Schema:     withDialect,
		Valid:      validation.Valid,
		Message:    validation.Message,
		Suitable:   schema.SuitableForGeneration(validation.Constructs),
		Constructs: validation.Constructs,
	}, nil
}

// Suggestions asks the model for schema improvement ideas.
func (s *Service) Suggestions(ctx context.Context, schemaText string, cfg GenerationConfig) (string, error) {
	v := cfg.Validated()

	text, err := s.generate(ctx, v.Model, suggestionsPrompt(schemaText), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.3),
		MaxOutputTokens: 1000,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate suggestions: %w", err)
	}
	return text, nil
}

// cleanResponse strips markdown fences and trims every line.
func cleanResponse(text string) string {
	text = leadingFenceRegex.ReplaceAllString(text, "")
	text = trailingFenceRegex.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "```", "")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
