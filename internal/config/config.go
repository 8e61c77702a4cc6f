// Package config loads wordfill settings from a YAML file, the environment
// and built-in defaults.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/wordfill/internal/llm"
)

// Ledger storage backends.
const (
	BackendText   = "text"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var backends = []string{BackendText, BackendSQLite, BackendMemory}

// Config is the root configuration.
type Config struct {
	// DataDir holds the word files, the database and the TUI log. Empty
	// means store.DefaultDataDir.
	DataDir string `yaml:"data_dir" env:"WORDFILL_DATA_DIR"`
	Backend string `yaml:"backend"  env:"WORDFILL_BACKEND" env-default:"text"`

	// SentencesPath points at an extra sentence bank merged into the
	// bundled one.
	SentencesPath string `yaml:"sentences" env:"WORDFILL_SENTENCES"`

	Log LogConfig  `yaml:"log"`
	LLM llm.Config `yaml:"llm"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"WORDFILL_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"WORDFILL_LOG_FORMAT" env-default:"text"`
}

// Validate checks enum fields and the LLM section.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if !slices.Contains(backends, c.Backend) {
		return fmt.Errorf("backend must be one of %s, got %q", strings.Join(backends, ", "), c.Backend)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}

	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	return nil
}
