package config

import (
	"fmt"
	"strings"
)

// Source formats accepted by SourceConfig.From.
const (
	FromYAML = "yaml"
	FromXML  = "xml"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Source.validate(); err != nil {
		return fmt.Errorf("source: %w", err)
	}

	if strings.TrimSpace(c.Lexicon.ID) == "" {
		return fmt.Errorf("lexicon.id must not be empty")
	}
	if strings.ContainsAny(c.Lexicon.ID, " -") {
		return fmt.Errorf("lexicon.id must not contain spaces or dashes (got %q)", c.Lexicon.ID)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if c.Database.Enabled() {
		if c.Database.MaxConns <= 0 {
			return fmt.Errorf("database.max_conns must be > 0 (got %d)", c.Database.MaxConns)
		}
		if c.Database.MinConns > c.Database.MaxConns {
			return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
		}
		if c.Database.BatchSize <= 0 {
			return fmt.Errorf("database.batch_size must be > 0 (got %d)", c.Database.BatchSize)
		}
	}

	return nil
}

func (s *SourceConfig) validate() error {
	s.From = strings.ToLower(strings.TrimSpace(s.From))
	switch s.From {
	case FromYAML:
		if s.YAMLDir == "" {
			return fmt.Errorf("yaml_dir must be set")
		}
	case FromXML:
		if s.XMLDir == "" {
			return fmt.Errorf("xml_dir must be set when converting from xml")
		}
		if s.Output() == "" {
			return fmt.Errorf("output_dir or yaml_dir must be set")
		}
	default:
		return fmt.Errorf("from must be %q or %q (got %q)", FromYAML, FromXML, s.From)
	}
	return nil
}
