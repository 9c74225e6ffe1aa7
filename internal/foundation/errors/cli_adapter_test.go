package errors

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: ExitOK},
		{name: "validation error", err: ValidationError("bad log format").Build(), expected: 2},
		{name: "config error", err: ConfigError("bad config").Build(), expected: 7},
		{name: "missing source root", err: NotFoundError("source root not found").Build(), expected: 7},
		{name: "filesystem error", err: FileSystemError("write failed").Build(), expected: 11},
		{name: "build error", err: BuildError("2 files failed").Build(), expected: 11},
		{name: "plugin error", err: PluginError("nil plugin").Build(), expected: 11},
		{name: "internal error", err: InternalError("boom").Build(), expected: 10},
		{name: "canceled run", err: NewError(CategoryRuntime, "compile canceled").Build(), expected: ExitRuntime},
		{name: "wrapped classified error", err: fmt.Errorf("compile: %w", BuildError("failed").Build()), expected: 11},
		{name: "unclassified error", err: fmt.Errorf("plain"), expected: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	tests := []struct {
		name     string
		verbose  bool
		err      error
		expected string
	}{
		{name: "nil", err: nil, expected: ""},
		{name: "config message only", err: ConfigError("dictionary file not found").Build(), expected: "dictionary file not found"},
		{name: "config with path", err: NotFoundError("source root not found").WithPath("/docs/src").Build(), expected: "source root not found: /docs/src"},
		{name: "build prefixed with category", err: BuildError("compile failed").Build(), expected: "build: compile failed"},
		{name: "verbose shows full error", verbose: true, err: BuildError("compile failed").Build(), expected: "[build:fatal] compile failed"},
		{name: "unclassified", err: fmt.Errorf("plain"), expected: "Error: plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := NewCLIErrorAdapter(tt.verbose, slog.Default())
			assert.Equal(t, tt.expected, adapter.FormatError(tt.err))
		})
	}
}

func TestCLIErrorAdapter_LogsContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	adapter := NewCLIErrorAdapter(false, logger)

	err := FileSystemError("write output failed").
		Fatal().
		WithPath("dist/a.md").
		WithCause(fmt.Errorf("disk full")).
		Build()

	assert.True(t, adapter.shouldLog(err))
	adapter.logError(err)

	out := buf.String()
	assert.Contains(t, out, "write output failed")
	assert.Contains(t, out, "category=filesystem")
	assert.Contains(t, out, "path=dist/a.md")
	assert.Contains(t, out, `cause="disk full"`)
}

func TestCLIErrorAdapter_Report(t *testing.T) {
	var out, logs bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil))).WithOutput(&out)

	assert.Equal(t, ExitOK, adapter.Report(nil))
	assert.Empty(t, out.String())

	code := adapter.Report(NotFoundError("source root not found").WithPath("/docs/src").Build())
	assert.Equal(t, ExitConfig, code)
	assert.Equal(t, "source root not found: /docs/src\n", out.String())
	assert.Contains(t, logs.String(), "category=not_found")
}
