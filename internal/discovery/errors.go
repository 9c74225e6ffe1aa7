package discovery

import "errors"

var (
	// ErrSourceRootNotFound indicates the root handed to ListFiles does not exist.
	ErrSourceRootNotFound = errors.New("source root not found")

	// ErrSourceRootNotDir indicates the root exists but is not a directory.
	ErrSourceRootNotDir = errors.New("source root is not a directory")

	// ErrWalkFailed indicates traversal of the source tree failed part way.
	ErrWalkFailed = errors.New("source directory walk failed")
)
