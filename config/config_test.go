package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Lint.MaxMethodLength != 30 {
		t.Errorf("expected MaxMethodLength=30, got %d", cfg.Lint.MaxMethodLength)
	}
	if cfg.Lint.MaxLineLength != 120 {
		t.Errorf("expected MaxLineLength=120, got %d", cfg.Lint.MaxLineLength)
	}
	if len(cfg.Lint.Includes) != 1 || cfg.Lint.Includes[0] != "**/*.cs" {
		t.Errorf("expected includes [**/*.cs], got %v", cfg.Lint.Includes)
	}
	if !cfg.Cache.Enabled {
		t.Error("expected cache enabled by default")
	}
	if cfg.Output.Format != "text" {
		t.Errorf("expected Format=text, got %s", cfg.Output.Format)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "cslint.yaml")

	content := `
lint:
  max_method_length: 50
cache:
  enabled: false
output:
  format: json
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Lint.MaxMethodLength != 50 {
		t.Errorf("expected MaxMethodLength=50, got %d", cfg.Lint.MaxMethodLength)
	}
	if cfg.Lint.MaxLineLength != 120 {
		t.Errorf("expected MaxLineLength to keep its default, got %d", cfg.Lint.MaxLineLength)
	}
	if cfg.Cache.Enabled {
		t.Error("expected cache disabled")
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected Format=json, got %s", cfg.Output.Format)
	}
}

func TestLoad_InvalidFormat(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "cslint.yaml")
	if err := os.WriteFile(configPath, []byte("output:\n  format: xml\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("expected error for unknown output format")
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	if err := EnsureDir(tmpDir); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(tmpDir, ".cslint", "config.yaml")

	content := `
lint:
  max_line_length: 100
logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Lint.MaxLineLength != 100 {
		t.Errorf("expected MaxLineLength=100, got %d", cfg.Lint.MaxLineLength)
	}
	if !cfg.Verbose() {
		t.Error("expected debug logging to be verbose")
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "cslint.yaml")

	cfg := DefaultConfig()
	cfg.Lint.MaxMethodLength = 42
	cfg.Logging.Level = "quiet"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Lint.MaxMethodLength != 42 {
		t.Errorf("expected MaxMethodLength=42, got %d", loaded.Lint.MaxMethodLength)
	}
	if !loaded.Quiet() {
		t.Error("expected quiet logging")
	}
}

func TestScannerConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lint.MaxMethodLength = 0
	cfg.Lint.MaxLineLength = 80

	sc := cfg.ScannerConfig()
	if sc.MaxMethodLength != 30 {
		t.Errorf("expected fallback MaxMethodLength=30, got %d", sc.MaxMethodLength)
	}
	if sc.MaxLineLength != 80 {
		t.Errorf("expected MaxLineLength=80, got %d", sc.MaxLineLength)
	}
}

func TestCacheDBPath(t *testing.T) {
	path := CacheDBPath("/home/user/project")
	expected := filepath.Join("/home/user/project", ".cslint", "cache.db")
	if path != expected {
		t.Errorf("expected %s, got %s", expected, path)
	}
}
