package compiler

import "errors"

var (
	// ErrFilesFailed is returned when at least one file could not be compiled.
	ErrFilesFailed = errors.New("one or more files failed to compile")

	// ErrUnsafeOutputRoot is returned when cleaning the output root would delete sources.
	ErrUnsafeOutputRoot = errors.New("output root contains the source root")

	// ErrCanceled is returned when the run's context is done before all files are processed.
	ErrCanceled = errors.New("compile canceled")
)
