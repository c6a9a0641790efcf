package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/gensql-labs/gensql/internal/llm"
)

const ConfigFileName = "gensql.config.json"

type Config struct {
	Version    string     `json:"version" mapstructure:"version"`
	SchemaDir  string     `json:"schema_dir" mapstructure:"schema_dir"`
	OutputPath string     `json:"output_path" mapstructure:"output_path"`
	LLM        LLM        `json:"llm" mapstructure:"llm"`
	Database   Database   `json:"database" mapstructure:"database"`
	Generation Generation `json:"generation" mapstructure:"generation"`
}

type LLM struct {
	Model           string  `json:"model" mapstructure:"model"`
	APIKeyEnv       string  `json:"api_key_env" mapstructure:"api_key_env"`
	Temperature     float32 `json:"temperature" mapstructure:"temperature"`
	MaxOutputTokens int32   `json:"max_output_tokens" mapstructure:"max_output_tokens"`
	TopP            float32 `json:"top_p" mapstructure:"top_p"`
	TopK            float32 `json:"top_k" mapstructure:"top_k"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

type Generation struct {
	Rows      int     `json:"rows" mapstructure:"rows"`
	Seed      int64   `json:"seed" mapstructure:"seed"`
	NullRate  float64 `json:"null_rate" mapstructure:"null_rate"`
	StartDate string  `json:"start_date" mapstructure:"start_date"`
	EndDate   string  `json:"end_date" mapstructure:"end_date"`
}

func DefaultConfig() *Config {
	return &Config{
		Version:    "1",
		SchemaDir:  "db/schema",
		OutputPath: "out",
		LLM: LLM{
			Model:           llm.DefaultModel,
			APIKeyEnv:       "GEMINI_API_KEY",
			Temperature:     0.1,
			MaxOutputTokens: 4096,
			TopP:            0.95,
			TopK:            40,
		},
		Database: Database{
			Provider: "postgresql",
			URLEnv:   "DATABASE_URL",
		},
		Generation: Generation{
			Rows:      100,
			Seed:      42,
			NullRate:  0.05,
			StartDate: "2020-01-01",
			EndDate:   "2024-12-31",
		},
	}
}

// Load unmarshals whatever viper has read and fills in defaults for any
// field the config file leaves out.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	defaults := DefaultConfig()
	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if cfg.SchemaDir == "" {
		cfg.SchemaDir = defaults.SchemaDir
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = defaults.OutputPath
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaults.LLM.Model
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = defaults.LLM.APIKeyEnv
	}
	if !viper.IsSet("llm.temperature") {
		cfg.LLM.Temperature = defaults.LLM.Temperature
	}
	if cfg.LLM.MaxOutputTokens == 0 {
		cfg.LLM.MaxOutputTokens = defaults.LLM.MaxOutputTokens
	}
	if !viper.IsSet("llm.top_p") {
		cfg.LLM.TopP = defaults.LLM.TopP
	}
	if cfg.LLM.TopK == 0 {
		cfg.LLM.TopK = defaults.LLM.TopK
	}
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = defaults.Database.Provider
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = defaults.Database.URLEnv
	}
	if cfg.Generation.Rows == 0 {
		cfg.Generation.Rows = defaults.Generation.Rows
	}
	if !viper.IsSet("generation.seed") {
		cfg.Generation.Seed = defaults.Generation.Seed
	}
	if !viper.IsSet("generation.null_rate") {
		cfg.Generation.NullRate = defaults.Generation.NullRate
	}
	if cfg.Generation.StartDate == "" {
		cfg.Generation.StartDate = defaults.Generation.StartDate
	}
	if cfg.Generation.EndDate == "" {
		cfg.Generation.EndDate = defaults.Generation.EndDate
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	supportedProviders := []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	if c.SchemaDir == "" {
		return fmt.Errorf("schema_dir cannot be empty")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output_path cannot be empty")
	}
	if c.Generation.Rows <= 0 {
		return fmt.Errorf("generation.rows must be positive, got %d", c.Generation.Rows)
	}
	if c.Generation.NullRate < 0 || c.Generation.NullRate > 1 {
		return fmt.Errorf("generation.null_rate must be between 0 and 1, got %v", c.Generation.NullRate)
	}

	return nil
}

// GetAPIKey reads the Gemini API key from the configured environment
// variable. The key is never stored in the config file.
func (c *Config) GetAPIKey() (string, error) {
	key := os.Getenv(c.LLM.APIKeyEnv)
	if key == "" {
		return "", fmt.Errorf("API key not found in environment variable %s", c.LLM.APIKeyEnv)
	}
	return key, nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

// GenerationConfig maps the LLM section onto model call parameters.
func (c *Config) GenerationConfig() llm.GenerationConfig {
	return llm.GenerationConfig{
		Model:           c.LLM.Model,
		Temperature:     c.LLM.Temperature,
		MaxOutputTokens: c.LLM.MaxOutputTokens,
		TopP:            c.LLM.TopP,
		TopK:            c.LLM.TopK,
	}
}

// GetSchemaFiles returns all .sql files in the schema directory, sorted by
// name.
func (c *Config) GetSchemaFiles() ([]string, error) {
	entries, err := os.ReadDir(c.SchemaDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema directory %s: %w", c.SchemaDir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, filepath.Join(c.SchemaDir, entry.Name()))
		}
	}
	return files, nil
}

func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.SchemaDir, c.OutputPath} {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// InitializeProject writes a fresh config file plus the schema and output
// directories. It refuses to overwrite an existing config.
func InitializeProject() error {
	if _, err := os.Stat(ConfigFileName); err == nil {
		return fmt.Errorf("%s already exists", ConfigFileName)
	}

	cfg := DefaultConfig()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(ConfigFileName, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ConfigFileName, err)
	}

	return cfg.EnsureDirectories()
}
