package plugin

import (
	"io"
	"log/slog"
	"maps"
)

// CompileOptions carries the per-run settings every plugin receives.
// It is passed by value; WithValue returns a copy so plugins never observe
// each other's writes.
type CompileOptions struct {
	// TestMode selects the test source/output roots.
	TestMode bool

	// SourceRoot is the absolute source root of the active mode. Relative
	// references inside documents resolve against it.
	SourceRoot string

	// Logger receives plugin diagnostics. Nil discards them.
	Logger *slog.Logger

	data map[string]any
}

// NewCompileOptions creates options for a run rooted at sourceRoot.
func NewCompileOptions(testMode bool, sourceRoot string, logger *slog.Logger) CompileOptions {
	return CompileOptions{
		TestMode:   testMode,
		SourceRoot: sourceRoot,
		Logger:     logger,
	}
}

// WithValue returns a copy of the options with key set to value.
func (o CompileOptions) WithValue(key string, value any) CompileOptions {
	data := make(map[string]any, len(o.data)+1)
	maps.Copy(data, o.data)
	data[key] = value
	o.data = data
	return o
}

// Value returns the value stored under key, or nil.
func (o CompileOptions) Value(key string) any {
	return o.data[key]
}

// String returns the string stored under key.
// Returns empty string if the key doesn't exist or isn't a string.
func (o CompileOptions) String(key string) string {
	if s, ok := o.data[key].(string); ok {
		return s
	}
	return ""
}

// Bool returns the bool stored under key.
// Returns false if the key doesn't exist or isn't a bool.
func (o CompileOptions) Bool(key string) bool {
	if b, ok := o.data[key].(bool); ok {
		return b
	}
	return false
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Log returns the configured logger, or a logger that discards output.
func (o CompileOptions) Log() *slog.Logger {
	if o.Logger == nil {
		return discardLogger
	}
	return o.Logger
}
