package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Transmute.Output != filepath.Join("grimoire", "transmuted.json") {
		t.Errorf("Default output = %q", cfg.Transmute.Output)
	}
	if cfg.Transmute.WithOneliner {
		t.Error("Default with_oneliner = true, want false")
	}
	if cfg.Server.Listen != ":8080" {
		t.Errorf("Default listen = %q, want %q", cfg.Server.Listen, ":8080")
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("Default console log level = %q, want %q", cfg.Logging.ConsoleLogger.Level, "normal")
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
transmute:
  output: "out/result.json"
  with_oneliner: true
server:
  listen: "127.0.0.1:9090"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Transmute.Output != filepath.Join("out", "result.json") {
		t.Errorf("Output = %q, want %q", cfg.Transmute.Output, filepath.Join("out", "result.json"))
	}
	if !cfg.Transmute.WithOneliner {
		t.Error("WithOneliner = false, want true")
	}
	if cfg.Server.Listen != "127.0.0.1:9090" {
		t.Errorf("Listen = %q, want %q", cfg.Server.Listen, "127.0.0.1:9090")
	}
	// values absent from the file keep template defaults
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("Console log level = %q, want %q", cfg.Logging.ConsoleLogger.Level, "normal")
	}
}

func TestLoadConfiguration_UnknownField(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
transmogrify:
  output: "somewhere"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfiguration(configPath); err == nil {
		t.Error("LoadConfiguration() with unknown field expected to fail")
	}
}

func TestLoadConfiguration_BadVersion(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("version: 2\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfiguration(configPath); err == nil {
		t.Error("LoadConfiguration() with unsupported version expected to fail")
	}
}

func TestLoadConfiguration_MissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadConfiguration() with missing file expected to fail")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if !strings.Contains(string(data), "version: 1") {
		t.Error("Prepare() output missing version")
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	s := string(data)
	for _, want := range []string{"version: 1", "transmute:", "server:", "logging:"} {
		if !strings.Contains(s, want) {
			t.Errorf("Dump() output missing %q:\n%s", want, s)
		}
	}
}
