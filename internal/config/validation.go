package config

import (
	"fmt"
	"net"
	"strings"
	"time"
)

// validate normalizes enumerations in place and checks value ranges.
func validate(cfg *Config) error {
	level, err := logLevelNormalizer.NormalizeWithError(string(cfg.Log.Level))
	if err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if cfg.Log.Level != "" {
		cfg.Log.Level = level
	}

	format, err := logFormatNormalizer.NormalizeWithError(string(cfg.Log.Format))
	if err != nil {
		return fmt.Errorf("log.format: %w", err)
	}
	cfg.Log.Format = format

	d, err := time.ParseDuration(cfg.Watch.Debounce)
	if err != nil {
		return fmt.Errorf("watch.debounce: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("watch.debounce: must not be negative, got %s", d)
	}

	if strings.ContainsAny(cfg.TOC.Title, "\r\n") {
		return fmt.Errorf("toc.title: must be a single line")
	}

	if cfg.Metrics.Listen != "" {
		if _, _, err := net.SplitHostPort(cfg.Metrics.Listen); err != nil {
			return fmt.Errorf("metrics.listen: %w", err)
		}
	}
	return nil
}
