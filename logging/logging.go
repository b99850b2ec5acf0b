package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

const prefix = "protodef"

// Config represents logger settings
type Config struct {
	Level     string `yaml:"level,omitempty"`
	Timestamp bool   `yaml:"timestamp,omitempty"`
}

// New creates a logger writing to w, empty level means info
func New(w io.Writer, cfg *Config) (*log.Logger, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	level := log.InfoLevel
	if name := strings.TrimSpace(cfg.Level); name != "" {
		parsed, err := log.ParseLevel(strings.ToLower(name))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportTimestamp: cfg.Timestamp,
	}), nil
}

// Discard returns a logger that drops everything
func Discard() *log.Logger {
	return log.New(io.Discard)
}
