package errors

import (
	"fmt"
	"maps"
)

// Context keys shared by the compile pipeline.
const (
	KeyPath   = "path"
	KeyRunID  = "run_id"
	KeyPlugin = "plugin"
	KeyStage  = "stage"
)

// ErrorBuilder assembles a ClassifiedError step by step.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts a builder for category with severity error.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{
		category: category,
		severity: SeverityError,
		message:  message,
		context:  make(ErrorContext),
	}}
}

// NewErrorf is NewError with a formatted message.
func NewErrorf(category ErrorCategory, format string, args ...any) *ErrorBuilder {
	return NewError(category, fmt.Sprintf(format, args...))
}

// WrapError starts a builder whose cause is err.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	return NewError(category, message).WithCause(err)
}

func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.err.severity = severity
	return b
}

func (b *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	b.err.cause = err
	return b
}

func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.context = b.err.context.Set(key, value)
	return b
}

// WithPath records the file or directory the error concerns.
func (b *ErrorBuilder) WithPath(path string) *ErrorBuilder {
	return b.WithContext(KeyPath, path)
}

// WithRunID ties the error to a compile run.
func (b *ErrorBuilder) WithRunID(id string) *ErrorBuilder {
	return b.WithContext(KeyRunID, id)
}

// WithPlugin names the plugin that produced the error.
func (b *ErrorBuilder) WithPlugin(name string) *ErrorBuilder {
	return b.WithContext(KeyPlugin, name)
}

// WithStage records the per-file stage (read, transform, write).
func (b *ErrorBuilder) WithStage(stage string) *ErrorBuilder {
	return b.WithContext(KeyStage, stage)
}

func (b *ErrorBuilder) Fatal() *ErrorBuilder   { return b.WithSeverity(SeverityFatal) }
func (b *ErrorBuilder) Warning() *ErrorBuilder { return b.WithSeverity(SeverityWarning) }

// Build returns the error. The builder can keep being used afterwards.
func (b *ErrorBuilder) Build() *ClassifiedError {
	out := b.err
	out.context = maps.Clone(b.err.context)
	return &out
}

// ConfigError reports a bad or missing configuration or dictionary.
func ConfigError(message string) *ErrorBuilder {
	return NewError(CategoryConfig, message).Fatal()
}

// ValidationError reports invalid input such as a malformed dictionary value.
func ValidationError(message string) *ErrorBuilder {
	return NewError(CategoryValidation, message).Fatal()
}

// NotFoundError reports a missing source root or referenced path.
func NotFoundError(message string) *ErrorBuilder {
	return NewError(CategoryNotFound, message).Fatal()
}

// FileSystemError reports a read, write or clean failure. Severity defaults to error.
func FileSystemError(message string) *ErrorBuilder {
	return NewError(CategoryFileSystem, message)
}

// BuildError reports a compile run that finished with failures.
func BuildError(message string) *ErrorBuilder {
	return NewError(CategoryBuild, message).Fatal()
}

// PluginError reports a broken plugin or chain.
func PluginError(message string) *ErrorBuilder {
	return NewError(CategoryPlugin, message).Fatal()
}

// InternalError reports a bug.
func InternalError(message string) *ErrorBuilder {
	return NewError(CategoryInternal, message).Fatal()
}
