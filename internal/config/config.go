// Package config loads the converter configuration.
package config

import (
	"time"

	"github.com/heartmarshall/wordnet-yaml/internal/domain"
)

// Config is the root configuration of the converter.
type Config struct {
	Source   SourceConfig   `yaml:"source"`
	Lexicon  LexiconConfig  `yaml:"lexicon"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// SourceConfig locates the source trees.
type SourceConfig struct {
	YAMLDir string `yaml:"yaml_dir" env:"WN_YAML_DIR" env-default:"src/yaml"`
	XMLDir  string `yaml:"xml_dir"  env:"WN_XML_DIR"  env-default:"src/xml"`
	// OutputDir defaults to YAMLDir when empty.
	OutputDir string `yaml:"output_dir" env:"WN_OUTPUT_DIR"`
	// From is "yaml" (reconcile and rewrite) or "xml" (convert legacy files).
	From string `yaml:"from" env:"WN_FROM" env-default:"yaml"`
}

// Output returns the directory documents are written to.
func (s SourceConfig) Output() string {
	if s.OutputDir != "" {
		return s.OutputDir
	}
	return s.YAMLDir
}

// LexiconConfig holds the lexicon metadata.
type LexiconConfig struct {
	ID       string `yaml:"id"       env:"WN_LEXICON_ID"       env-default:"ewn"`
	Label    string `yaml:"label"    env:"WN_LEXICON_LABEL"    env-default:"English WordNet"`
	Language string `yaml:"language" env:"WN_LEXICON_LANGUAGE" env-default:"en"`
	Email    string `yaml:"email"    env:"WN_LEXICON_EMAIL"    env-default:"english-wordnet@googlegroups.com"`
	License  string `yaml:"license"  env:"WN_LEXICON_LICENSE"  env-default:"https://creativecommons.org/licenses/by/4.0"`
	Version  string `yaml:"version"  env:"WN_LEXICON_VERSION"  env-default:"2020"`
	URL      string `yaml:"url"      env:"WN_LEXICON_URL"      env-default:"https://github.com/globalwordnet/english-wordnet"`
}

// Metadata converts the section into lexicon metadata.
func (l LexiconConfig) Metadata() domain.Metadata {
	return domain.Metadata{
		ID:       l.ID,
		Label:    l.Label,
		Language: l.Language,
		Email:    l.Email,
		License:  l.License,
		Version:  l.Version,
		URL:      l.URL,
	}
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// DatabaseConfig holds the optional publish target. An empty DSN disables
// the publish phase.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"4"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	BatchSize       int           `yaml:"batch_size"         env:"DATABASE_BATCH_SIZE"         env-default:"1000"`
	Timeout         time.Duration `yaml:"timeout"            env:"DATABASE_TIMEOUT"            env-default:"10m"`
}

// Enabled reports whether a publish target is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.DSN != ""
}

// MetricsConfig controls the run metrics dump.
type MetricsConfig struct {
	// TextfilePath receives the metrics in Prometheus text format; empty
	// disables the dump.
	TextfilePath string `yaml:"textfile_path" env:"WN_METRICS_TEXTFILE"`
}
