package server

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/gensql-labs/gensql/internal/analyzer"
	"github.com/gensql-labs/gensql/internal/datagen"
	"github.com/gensql-labs/gensql/internal/export"
	"github.com/gensql-labs/gensql/internal/llm"
	"github.com/gensql-labs/gensql/internal/schema"
)

const (
	// previewRows caps how many rows JSON responses carry per table.
	previewRows = 100
	// maxRows caps a single generation request.
	maxRows = 100000
)

type generateRequest struct {
	Schema string `json:"schema"`
	Rows   int    `json:"rows"`
	Seed   int64  `json:"seed"`
}

type downloadRequest struct {
	generateRequest
	Format string `json:"format"`
}

type convertRequest struct {
	Schema          string   `json:"schema"`
	TargetDialect   string   `json:"target_dialect"`
	Model           string   `json:"model"`
	Temperature     *float32 `json:"temperature"`
	MaxOutputTokens *int32   `json:"max_output_tokens"`
	TopP            *float32 `json:"top_p"`
	TopK            *float32 `json:"top_k"`
}

type schemaRequest struct {
	Schema string `json:"schema"`
}

// tablePreview is a dataset truncated for JSON transport.
type tablePreview struct {
	Table     string   `json:"table"`
	Columns   []string `json:"columns"`
	Rows      [][]any  `json:"rows"`
	TotalRows int      `json:"total_rows"`
}

func previewOf(ds *datagen.Dataset) tablePreview {
	rows := ds.Rows
	if len(rows) > previewRows {
		rows = rows[:previewRows]
	}
	return tablePreview{
		Table:     ds.Table,
		Columns:   ds.Columns,
		Rows:      rows,
		TotalRows: len(ds.Rows),
	}
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return JSON(c, fiber.Map{
		"status":         "ok",
		"llm_configured": s.llm != nil,
	})
}

func (s *Server) handleModels(c *fiber.Ctx) error {
	return JSON(c, fiber.Map{
		"models":  llm.Models,
		"default": llm.DefaultModel,
	})
}

func (s *Server) handleExamples(c *fiber.Ctx) error {
	return JSON(c, llm.ExampleSchemas)
}

func (s *Server) handleParseSchema(c *fiber.Ctx) error {
	var req schemaRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Schema == "" {
		return JSONError(c, fiber.StatusBadRequest, "schema is required")
	}

	parsed, err := schema.Parse(req.Schema)
	if err != nil {
		return JSONError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	return JSON(c, parsed)
}

func (s *Server) handleValidateSchema(c *fiber.Ctx) error {
	var req schemaRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Schema == "" {
		return JSONError(c, fiber.StatusBadRequest, "schema is required")
	}

	result := schema.Validate(req.Schema)
	return JSON(c, fiber.Map{
		"valid":                   result.Valid,
		"dialect":                 result.Dialect,
		"message":                 result.Message,
		"constructs":              result.Constructs,
		"suitable_for_generation": schema.SuitableForGeneration(result.Constructs),
	})
}

func (s *Server) handleConvert(c *fiber.Ctx) error {
	if s.llm == nil {
		return JSONError(c, fiber.StatusServiceUnavailable, "LLM service not configured: set "+s.cfg.LLM.APIKeyEnv)
	}

	var req convertRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Schema == "" {
		return JSONError(c, fiber.StatusBadRequest, "schema is required")
	}
	if req.TargetDialect == "" {
		return JSONError(c, fiber.StatusBadRequest, "target_dialect is required")
	}

	cfg := s.cfg.GenerationConfig()
	if req.Model != "" {
		cfg.Model = req.Model
	}
	if req.Temperature != nil {
		cfg.Temperature = *req.Temperature
	}
	if req.MaxOutputTokens != nil {
		cfg.MaxOutputTokens = *req.MaxOutputTokens
	}
	if req.TopP != nil {
		cfg.TopP = *req.TopP
	}
	if req.TopK != nil {
		cfg.TopK = *req.TopK
	}

	result, err := s.llm.ConvertSchema(c.Context(), req.Schema, req.TargetDialect, cfg)
	if err != nil {
		return JSONError(c, fiber.StatusBadGateway, err.Error())
	}
	return JSON(c, result)
}

func (s *Server) handleSuggestions(c *fiber.Ctx) error {
	if s.llm == nil {
		return JSONError(c, fiber.StatusServiceUnavailable, "LLM service not configured: set "+s.cfg.LLM.APIKeyEnv)
	}

	var req schemaRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Schema == "" {
		return JSONError(c, fiber.StatusBadRequest, "schema is required")
	}

	suggestions, err := s.llm.Suggestions(c.Context(), req.Schema, s.cfg.GenerationConfig())
	if err != nil {
		return JSONError(c, fiber.StatusBadGateway, err.Error())
	}
	return JSON(c, fiber.Map{"suggestions": suggestions})
}

func (s *Server) generateDatasets(req generateRequest) ([]*datagen.Dataset, int, error) {
	rows := req.Rows
	if rows <= 0 {
		rows = s.cfg.Generation.Rows
	}
	if rows > maxRows {
		return nil, fiber.StatusBadRequest, fmt.Errorf("rows must be at most %d", maxRows)
	}

	parsed, err := schema.Parse(req.Schema)
	if err != nil {
		return nil, fiber.StatusUnprocessableEntity, err
	}
	if len(parsed.Tables) == 0 {
		return nil, fiber.StatusUnprocessableEntity, fmt.Errorf("no tables found in schema")
	}

	seed := req.Seed
	if seed == 0 {
		seed = s.cfg.Generation.Seed
	}

	datasets, err := datagen.New(seed).FromSchema(parsed, rows)
	if err != nil {
		return nil, fiber.StatusInternalServerError, err
	}
	return datasets, 0, nil
}

func (s *Server) handleGenerate(c *fiber.Ctx) error {
	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Schema == "" {
		return JSONError(c, fiber.StatusBadRequest, "schema is required")
	}

	datasets, status, err := s.generateDatasets(req)
	if err != nil {
		return JSONError(c, status, err.Error())
	}

	previews := make([]tablePreview, len(datasets))
	for i, ds := range datasets {
		previews[i] = previewOf(ds)
	}
	return JSON(c, fiber.Map{"tables": previews})
}

func (s *Server) readUpload(c *fiber.Ctx) (string, []byte, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return "", nil, fmt.Errorf("file upload is required")
	}

	f, err := file.Open()
	if err != nil {
		return "", nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return file.Filename, data, nil
}

func noiseFromForm(c *fiber.Ctx) (float64, error) {
	v := c.FormValue("noise_level")
	if v == "" {
		return analyzer.DefaultNoiseLevel, nil
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil || parsed < 0 || parsed > 1 {
		return 0, fmt.Errorf("noise_level must be a number between 0 and 1")
	}
	return parsed, nil
}

func (s *Server) handleAnalyze(c *fiber.Ctx) error {
	filename, data, err := s.readUpload(c)
	if err != nil {
		return JSONError(c, fiber.StatusBadRequest, err.Error())
	}

	noise, err := noiseFromForm(c)
	if err != nil {
		return JSONError(c, fiber.StatusBadRequest, err.Error())
	}

	analyses, err := analyzer.AnalyzeFile(filename, data, noise)
	if err != nil {
		return JSONError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	summaries := make(map[string]string, len(analyses))
	for name, a := range analyses {
		summaries[name] = analyzer.Summary(a)
	}
	return JSON(c, fiber.Map{"analyses": analyses, "summaries": summaries})
}

func (s *Server) handleSynthesize(c *fiber.Ctx) error {
	filename, data, err := s.readUpload(c)
	if err != nil {
		return JSONError(c, fiber.StatusBadRequest, err.Error())
	}

	rows := s.cfg.Generation.Rows
	if v := c.FormValue("rows"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 || parsed > maxRows {
			return JSONError(c, fiber.StatusBadRequest, fmt.Sprintf("rows must be between 1 and %d", maxRows))
		}
		rows = parsed
	}
	seed := s.cfg.Generation.Seed
	if v := c.FormValue("seed"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return JSONError(c, fiber.StatusBadRequest, "seed must be an integer")
		}
		seed = parsed
	}

	noise, err := noiseFromForm(c)
	if err != nil {
		return JSONError(c, fiber.StatusBadRequest, err.Error())
	}

	analyses, err := analyzer.AnalyzeFile(filename, data, noise)
	if err != nil {
		return JSONError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	gen := datagen.New(seed)
	previews := make([]tablePreview, 0, len(analyses))
	for name, a := range analyses {
		ds, err := gen.FromAnalysis(name, a, rows)
		if err != nil {
			return JSONError(c, fiber.StatusInternalServerError, err.Error())
		}
		previews = append(previews, previewOf(ds))
	}
	return JSON(c, fiber.Map{"tables": previews})
}

func (s *Server) handleDownload(c *fiber.Ctx) error {
	var req downloadRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Schema == "" {
		return JSONError(c, fiber.StatusBadRequest, "schema is required")
	}
	if req.Format == "" {
		req.Format = "zip"
	}

	datasets, status, err := s.generateDatasets(req.generateRequest)
	if err != nil {
		return JSONError(c, status, err.Error())
	}

	var (
		payload     []byte
		contentType string
		filename    string
	)

	switch req.Format {
	case "zip":
		payload, err = export.Zip(datasets)
		contentType = "application/zip"
		filename = "synthetic_data_package.zip"
	case "xlsx":
		payload, err = export.Workbook(datasets)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = export.WorkbookName
	case "csv":
		if len(datasets) != 1 {
			return JSONError(c, fiber.StatusBadRequest, "csv format supports a single table; use zip for multi-table schemas")
		}
		payload, err = export.CSV(datasets[0])
		contentType = "text/csv"
		filename = fmt.Sprintf("synthetic_%s.csv", datasets[0].Table)
	default:
		return JSONError(c, fiber.StatusBadRequest, "format must be one of zip, csv, xlsx")
	}
	if err != nil {
		return JSONError(c, fiber.StatusInternalServerError, err.Error())
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(payload)
}
