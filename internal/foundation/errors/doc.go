// Package errors provides the classified error type used across doccompile.
//
// A ClassifiedError carries a category (config, validation, not_found, filesystem,
// build, plugin, internal), a severity and a small context map. Errors are created
// with the fluent builder:
//
//	err := errors.NewError(errors.CategoryFileSystem, "write output failed").
//		WithPath(dest).
//		WithCause(ioErr).
//		Build()
//
// The CLI adapter turns a classified error into a user-facing message and a process
// exit code.
package errors
