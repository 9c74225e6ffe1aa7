// Package config loads the optional doccompile.yaml project configuration.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/doccompile/internal/foundation/errors"
)

const (
	// DefaultFileName is looked up in the project root when no file is given.
	DefaultFileName = "doccompile.yaml"

	// DefaultDictionary is the variable dictionary used when none is configured.
	DefaultDictionary = "vars.json"

	// DefaultTOCTitle heads generated tables of contents.
	DefaultTOCTitle = "Table of Contents"

	// DefaultDebounce is the quiet window of watch mode.
	DefaultDebounce = 300 * time.Millisecond
)

// Config is the project configuration.
type Config struct {
	// Dictionary is the variable dictionary path, relative to the project root.
	Dictionary string        `yaml:"dictionary"`
	FailFast   bool          `yaml:"fail_fast"`
	TOC        TOCConfig     `yaml:"toc"`
	Log        LogConfig     `yaml:"log"`
	Watch      WatchConfig   `yaml:"watch"`
	Metrics    MetricsConfig `yaml:"metrics"`

	dictionarySet bool
}

// TOCConfig configures the table of contents transform.
type TOCConfig struct {
	Title string `yaml:"title"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	Debounce string `yaml:"debounce"` // Go duration, e.g. "300ms"
}

// MetricsConfig configures the Prometheus endpoint served in watch mode.
type MetricsConfig struct {
	Listen string `yaml:"listen"` // host:port; empty disables the endpoint
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration at path. When explicit is false a missing file
// yields Default(); an explicitly requested file that does not exist is a
// config error. ${VAR} references are expanded before decoding.
func Load(path string, explicit bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return Default(), nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "configuration file not found").
				WithPath(path).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			WithPath(path).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryValidation, "invalid configuration").
			WithPath(path).
			Build()
	}
	return cfg, nil
}

// Parse decodes, defaults and validates YAML configuration content.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	cfg.dictionarySet = cfg.Dictionary != ""
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DictionaryPath returns the dictionary path resolved against root.
func (c *Config) DictionaryPath(root string) string {
	if filepath.IsAbs(c.Dictionary) {
		return c.Dictionary
	}
	return filepath.Join(root, filepath.FromSlash(c.Dictionary))
}

// DictionaryRequired reports whether the dictionary was configured explicitly,
// in which case a missing file is an error.
func (c *Config) DictionaryRequired() bool {
	return c.dictionarySet
}

// DebounceDuration returns the parsed watch debounce window.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return DefaultDebounce
	}
	return d
}

func applyDefaults(cfg *Config) {
	if cfg.Dictionary == "" {
		cfg.Dictionary = DefaultDictionary
	}
	if cfg.TOC.Title == "" {
		cfg.TOC.Title = DefaultTOCTitle
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = LogFormatText
	}
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = DefaultDebounce.String()
	}
}
