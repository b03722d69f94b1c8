package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
source:
  yaml_dir: "data/yaml"
  xml_dir: "data/xml"
  output_dir: "out"

lexicon:
  id: "oewn"
  version: "2024"

log:
  level: "debug"
  format: "json"

database:
  dsn: "postgres://u:p@localhost:5432/wordnet"
  max_conns: 8
  batch_size: 250

metrics:
  textfile_path: "/tmp/wnconvert.prom"
`

func TestLoad_ValidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Source
	if cfg.Source.YAMLDir != "data/yaml" {
		t.Errorf("source.yaml_dir = %q, want %q", cfg.Source.YAMLDir, "data/yaml")
	}
	if cfg.Source.Output() != "out" {
		t.Errorf("source output = %q, want %q", cfg.Source.Output(), "out")
	}
	if cfg.Source.From != FromYAML {
		t.Errorf("source.from = %q, want %q (default)", cfg.Source.From, FromYAML)
	}

	// Lexicon
	meta := cfg.Lexicon.Metadata()
	if meta.ID != "oewn" || meta.Version != "2024" {
		t.Errorf("lexicon = %+v", meta)
	}
	if meta.Label != "English WordNet" {
		t.Errorf("lexicon.label = %q, want default", meta.Label)
	}

	// Log
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}

	// Database
	if !cfg.Database.Enabled() {
		t.Error("database should be enabled")
	}
	if cfg.Database.MaxConns != 8 {
		t.Errorf("database.max_conns = %d, want 8", cfg.Database.MaxConns)
	}
	if cfg.Database.BatchSize != 250 {
		t.Errorf("database.batch_size = %d, want 250", cfg.Database.BatchSize)
	}
	if cfg.Database.MaxConnLifetime != time.Hour {
		t.Errorf("database.max_conn_lifetime = %v, want 1h", cfg.Database.MaxConnLifetime)
	}

	if cfg.Metrics.TextfilePath != "/tmp/wnconvert.prom" {
		t.Errorf("metrics.textfile_path = %q", cfg.Metrics.TextfilePath)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("WN_FROM", "xml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
	if cfg.Source.From != FromXML {
		t.Errorf("source.from = %q, want %q (ENV override)", cfg.Source.From, FromXML)
	}
}

func TestLoad_ENVOnlyDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Source.YAMLDir != "src/yaml" {
		t.Errorf("source.yaml_dir = %q, want src/yaml", cfg.Source.YAMLDir)
	}
	if cfg.Source.XMLDir != "src/xml" {
		t.Errorf("source.xml_dir = %q, want src/xml", cfg.Source.XMLDir)
	}
	if cfg.Source.Output() != "src/yaml" {
		t.Errorf("output defaults to yaml dir, got %q", cfg.Source.Output())
	}
	if cfg.Lexicon.ID != "ewn" {
		t.Errorf("lexicon.id = %q, want ewn", cfg.Lexicon.ID)
	}
	if cfg.Lexicon.Email != "english-wordnet@googlegroups.com" {
		t.Errorf("lexicon.email = %q", cfg.Lexicon.Email)
	}
	if cfg.Database.Enabled() {
		t.Error("database should be disabled without a DSN")
	}
}

func TestLoad_ConfigPathEnv(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Lexicon.ID != "oewn" {
		t.Errorf("lexicon.id = %q, want oewn", cfg.Lexicon.ID)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Source:  SourceConfig{YAMLDir: "src/yaml", XMLDir: "src/xml", From: "yaml"},
			Lexicon: LexiconConfig{ID: "ewn"},
			Log:     LogConfig{Level: "info", Format: "text"},
			Database: DatabaseConfig{
				MaxConns:  4,
				MinConns:  1,
				BatchSize: 100,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "from is case insensitive", mutate: func(c *Config) { c.Source.From = " XML " }},
		{name: "unknown source", mutate: func(c *Config) { c.Source.From = "json" }, wantErr: "from must be"},
		{name: "missing yaml dir", mutate: func(c *Config) { c.Source.YAMLDir = "" }, wantErr: "yaml_dir"},
		{name: "missing xml dir", mutate: func(c *Config) { c.Source.From = "xml"; c.Source.XMLDir = "" }, wantErr: "xml_dir"},
		{name: "empty lexicon id", mutate: func(c *Config) { c.Lexicon.ID = " " }, wantErr: "lexicon.id"},
		{name: "dash in lexicon id", mutate: func(c *Config) { c.Lexicon.ID = "e-wn" }, wantErr: "lexicon.id"},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log.format"},
		{name: "pool ignored without dsn", mutate: func(c *Config) { c.Database.MaxConns = 0 }},
		{
			name:    "zero max conns",
			mutate:  func(c *Config) { c.Database.DSN = "postgres://x"; c.Database.MaxConns = 0 },
			wantErr: "max_conns",
		},
		{
			name:    "min above max",
			mutate:  func(c *Config) { c.Database.DSN = "postgres://x"; c.Database.MinConns = 9 },
			wantErr: "min_conns",
		},
		{
			name:    "zero batch size",
			mutate:  func(c *Config) { c.Database.DSN = "postgres://x"; c.Database.BatchSize = 0 },
			wantErr: "batch_size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
