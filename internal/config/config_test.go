package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.SchemaDir != "db/schema" {
		t.Errorf("Expected schema_dir to be 'db/schema', got '%s'", config.SchemaDir)
	}

	if config.OutputPath != "out" {
		t.Errorf("Expected output_path to be 'out', got '%s'", config.OutputPath)
	}

	if config.LLM.Model != "gemini-2.0-flash-001" {
		t.Errorf("Expected model to be 'gemini-2.0-flash-001', got '%s'", config.LLM.Model)
	}

	if config.LLM.APIKeyEnv != "GEMINI_API_KEY" {
		t.Errorf("Expected api_key_env to be 'GEMINI_API_KEY', got '%s'", config.LLM.APIKeyEnv)
	}

	if config.Database.Provider != "postgresql" {
		t.Errorf("Expected database provider to be 'postgresql', got '%s'", config.Database.Provider)
	}

	if config.Database.URLEnv != "DATABASE_URL" {
		t.Errorf("Expected database url_env to be 'DATABASE_URL', got '%s'", config.Database.URLEnv)
	}

	if config.Generation.Rows != 100 {
		t.Errorf("Expected generation rows to be 100, got %d", config.Generation.Rows)
	}
}

func TestValidate(t *testing.T) {
	config := DefaultConfig()
	if err := config.Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}

	config.Database.Provider = "oracle"
	if err := config.Validate(); err == nil {
		t.Error("Expected error for unsupported provider")
	}

	config = DefaultConfig()
	config.Generation.Rows = 0
	if err := config.Validate(); err == nil {
		t.Error("Expected error for zero row count")
	}

	config = DefaultConfig()
	config.Generation.NullRate = 1.5
	if err := config.Validate(); err == nil {
		t.Error("Expected error for out-of-range null rate")
	}
}

func TestGetAPIKeyFromEnvironment(t *testing.T) {
	config := DefaultConfig()
	config.LLM.APIKeyEnv = "GENSQL_TEST_API_KEY"

	os.Unsetenv("GENSQL_TEST_API_KEY")
	if _, err := config.GetAPIKey(); err == nil {
		t.Error("Expected error when API key env is unset")
	}

	t.Setenv("GENSQL_TEST_API_KEY", "secret")
	key, err := config.GetAPIKey()
	if err != nil {
		t.Fatalf("GetAPIKey failed: %v", err)
	}
	if key != "secret" {
		t.Errorf("Expected 'secret', got '%s'", key)
	}
}

func TestGenerationConfigMapping(t *testing.T) {
	config := DefaultConfig()
	gen := config.GenerationConfig()

	if gen.Model != config.LLM.Model {
		t.Errorf("Expected model %s, got %s", config.LLM.Model, gen.Model)
	}
	if gen.MaxOutputTokens != 4096 {
		t.Errorf("Expected max tokens 4096, got %d", gen.MaxOutputTokens)
	}
}

func TestInitializeProject(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "gensql-test")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}
	defer os.Chdir(originalDir)

	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	if err := InitializeProject(); err != nil {
		t.Fatalf("Failed to initialize project: %v", err)
	}

	configPath := filepath.Join(tempDir, ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Errorf("Config file was not created at %s", configPath)
	}

	for _, dir := range []string{"db/schema", "out"} {
		if _, err := os.Stat(filepath.Join(tempDir, dir)); os.IsNotExist(err) {
			t.Errorf("Directory %s was not created", dir)
		}
	}

	if err := InitializeProject(); err == nil {
		t.Error("Expected second initialization to fail, but it succeeded")
	}
}

func TestGetSchemaFiles(t *testing.T) {
	tempDir := t.TempDir()

	config := DefaultConfig()
	config.SchemaDir = tempDir

	for _, name := range []string{"001_users.sql", "002_orders.sql", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(tempDir, name), []byte("-- test"), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	files, err := config.GetSchemaFiles()
	if err != nil {
		t.Fatalf("GetSchemaFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 .sql files, got %v", files)
	}
}
