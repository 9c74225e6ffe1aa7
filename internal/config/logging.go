package config

import (
	"log/slog"

	"git.home.luguber.info/inful/doccompile/internal/foundation/normalization"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer(LogLevelInfo,
	LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError,
).Alias("warning", LogLevelWarn)

// NormalizeLogLevel maps raw onto a LogLevel, defaulting to info.
func NormalizeLogLevel(raw string) LogLevel {
	return logLevelNormalizer.Normalize(raw)
}

// SlogLevel converts the level for use with a slog handler.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer(LogFormatText, LogFormatJSON, LogFormatText)

// NormalizeLogFormat maps raw onto a LogFormat, defaulting to text.
func NormalizeLogFormat(raw string) LogFormat {
	return logFormatNormalizer.Normalize(raw)
}

// EnvLogLevel names the environment variable overriding the configured log level.
const EnvLogLevel = "DOCCOMPILE_LOG_LEVEL"

// ResolveLogLevel applies the level precedence: verbose flag, then the
// DOCCOMPILE_LOG_LEVEL environment variable, then the config file, then info.
func ResolveLogLevel(verbose bool, env string, cfg *Config) LogLevel {
	if verbose {
		return LogLevelDebug
	}
	if env != "" {
		return NormalizeLogLevel(env)
	}
	if cfg != nil && cfg.Log.Level != "" {
		return cfg.Log.Level
	}
	return LogLevelInfo
}
