package errors

import (
	"fmt"
	"strings"
)

// ClassifiedError carries a category, a severity and structured context
// alongside the usual message and cause.
type ClassifiedError struct {
	category ErrorCategory
	severity ErrorSeverity
	message  string
	cause    error
	context  ErrorContext
}

func (e *ClassifiedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s:%s] %s", e.category, e.severity, e.message)
	if e.cause != nil {
		fmt.Fprintf(&b, ": %v", e.cause)
	}
	return b.String()
}

func (e *ClassifiedError) Unwrap() error { return e.cause }

func (e *ClassifiedError) Category() ErrorCategory { return e.category }
func (e *ClassifiedError) Severity() ErrorSeverity { return e.severity }
func (e *ClassifiedError) Cause() error            { return e.cause }
func (e *ClassifiedError) Context() ErrorContext   { return e.context }

// Message returns the message without category, severity or cause.
func (e *ClassifiedError) Message() string { return e.message }

// Path returns the path recorded with WithPath, if any.
func (e *ClassifiedError) Path() string {
	p, _ := e.context.GetString(KeyPath)
	return p
}

// WithContext returns a copy with key set; e is left untouched.
func (e *ClassifiedError) WithContext(key string, value any) *ClassifiedError {
	cp := *e
	cp.context = e.context.Merge(ErrorContext{key: value})
	return &cp
}

// Is matches another ClassifiedError with the same category and message,
// so errors.Is works against a template built with the same constructor.
func (e *ClassifiedError) Is(target error) bool {
	other, ok := target.(*ClassifiedError)
	return ok && e.category == other.category && e.message == other.message
}

func (e *ClassifiedError) IsCategory(category ErrorCategory) bool {
	return e.category == category
}

// IsFatal reports whether the error ends the run.
func (e *ClassifiedError) IsFatal() bool {
	return e.severity == SeverityFatal
}
