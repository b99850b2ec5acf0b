package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/protodef/inspector"
	"github.com/viant/protodef/logging"
	"github.com/viant/protodef/merge"
	"gopkg.in/yaml.v3"
)

const defaultConcurrency = 4

type (
	// Config represents a regeneration run
	Config struct {
		Document    string         `yaml:"document"`
		Policy      Policy         `yaml:"policy"`
		Log         logging.Config `yaml:"log,omitempty"`
		Concurrency int            `yaml:"concurrency,omitempty"`
		Sources     []*Source      `yaml:"sources"`
	}

	// Policy holds the merge policies
	Policy struct {
		NullParams  merge.NullParams  `yaml:"nullParams"`
		StaleParams merge.StaleParams `yaml:"staleParams"`
	}

	// Source represents a vendor description feeding one protocol
	Source struct {
		Protocol string           `yaml:"protocol"`
		URL      string           `yaml:"url"`
		Format   inspector.Format `yaml:"format,omitempty"`
		Prefix   string           `yaml:"prefix,omitempty"`
	}

	overrides struct {
		LogLevel     string `env:"PROTODEF_LOG_LEVEL"`
		LogTimestamp string `env:"PROTODEF_LOG_TIMESTAMP"`
		NullParams   string `env:"PROTODEF_NULL_PARAMS"`
		StaleParams  string `env:"PROTODEF_STALE_PARAMS"`
	}
)

// Load reads a YAML configuration, relative URLs resolve against the configuration location
func Load(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", URL, err)
	}
	ret, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	ret.Resolve(parentURL(URL))
	return ret, nil
}

// Parse decodes YAML configuration
func Parse(data []byte) (*Config, error) {
	ret := &Config{}
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// Resolve rewrites relative document and source URLs against baseURL
func (c *Config) Resolve(baseURL string) {
	if baseURL == "" {
		return
	}
	c.Document = resolve(baseURL, c.Document)
	for _, item := range c.Sources {
		item.URL = resolve(baseURL, item.URL)
	}
}

// ApplyEnv overrides logging and policies from environment variables, nil environment means the process one
func (c *Config) ApplyEnv(environment map[string]string) error {
	raw := overrides{}
	if err := env.ParseWithOptions(&raw, env.Options{Environment: environment}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if raw.LogLevel != "" {
		c.Log.Level = raw.LogLevel
	}
	if raw.LogTimestamp != "" {
		timestamp, err := strconv.ParseBool(raw.LogTimestamp)
		if err != nil {
			return fmt.Errorf("parse env: PROTODEF_LOG_TIMESTAMP: %w", err)
		}
		c.Log.Timestamp = timestamp
	}
	if raw.NullParams != "" {
		if err := c.Policy.NullParams.UnmarshalText([]byte(raw.NullParams)); err != nil {
			return fmt.Errorf("parse env: PROTODEF_NULL_PARAMS: %w", err)
		}
	}
	if raw.StaleParams != "" {
		if err := c.Policy.StaleParams.UnmarshalText([]byte(raw.StaleParams)); err != nil {
			return fmt.Errorf("parse env: PROTODEF_STALE_PARAMS: %w", err)
		}
	}
	return nil
}

// Validate checks the configuration is runnable
func (c *Config) Validate() error {
	if c.Document == "" {
		return errors.New("document was empty")
	}
	if len(c.Sources) == 0 {
		return errors.New("sources were empty")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("invalid concurrency: %d", c.Concurrency)
	}
	for i, item := range c.Sources {
		if item == nil {
			return fmt.Errorf("sources[%d] was nil", i)
		}
		if item.Protocol == "" {
			return fmt.Errorf("sources[%d]: protocol was empty", i)
		}
		if item.URL == "" {
			return fmt.Errorf("sources[%d]: url was empty", i)
		}
		if _, err := inspector.ParseFormat(string(item.Format)); err != nil {
			return fmt.Errorf("sources[%d]: %w", i, err)
		}
	}
	return nil
}

// ConcurrencyLimit returns the number of descriptions inspected at once
func (c *Config) ConcurrencyLimit() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return defaultConcurrency
}

// MergeOptions returns merge engine options matching the configured policies
func (c *Config) MergeOptions() []merge.Option {
	return []merge.Option{
		merge.WithNullParams(c.Policy.NullParams),
		merge.WithStaleParams(c.Policy.StaleParams),
	}
}

// Protocols returns protocol ids in configuration order
func (c *Config) Protocols() []string {
	var ret []string
	seen := map[string]bool{}
	for _, item := range c.Sources {
		if seen[item.Protocol] {
			continue
		}
		seen[item.Protocol] = true
		ret = append(ret, item.Protocol)
	}
	return ret
}

// Encode renders configuration as YAML
func (c *Config) Encode() ([]byte, error) {
	return yaml.Marshal(c)
}

func parentURL(URL string) string {
	index := strings.LastIndex(URL, "/")
	if index == -1 {
		return ""
	}
	if index == 0 {
		return "/"
	}
	return URL[:index]
}

func resolve(baseURL, location string) string {
	if location == "" || strings.Contains(location, "://") || filepath.IsAbs(location) {
		return location
	}
	if !strings.Contains(baseURL, "://") {
		return filepath.Join(baseURL, location)
	}
	return url.Join(baseURL, location)
}
