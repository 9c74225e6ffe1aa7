// Package discovery enumerates the source files of a compile run.
package discovery

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/doccompile/internal/logfields"
)

// ExcludeMarker excludes any file or directory whose name contains it.
const ExcludeMarker = ".skip"

// FileEntry is a discovered source file.
type FileEntry struct {
	Path         string // Absolute path to the file
	RelativePath string // Path relative to the source root, OS separators
}

// SlashPath returns the relative path with forward slashes; it is the entry's identity.
func (f FileEntry) SlashPath() string {
	return filepath.ToSlash(f.RelativePath)
}

// IsExcluded reports whether a single path segment carries the exclusion marker.
func IsExcluded(name string) bool {
	return strings.Contains(name, ExcludeMarker)
}

// ListFiles returns every eligible regular file below root, sorted by relative path.
//
// Entries whose name contains ".skip" are dropped, and excluded directories are not
// descended into. Symlinks to regular files are included; symlinked directories are
// not followed. A missing root yields ErrSourceRootNotFound.
func ListFiles(root string) ([]FileEntry, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWalkFailed, root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceRootNotFound, absRoot)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrWalkFailed, absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSourceRootNotDir, absRoot)
	}

	var files []FileEntry
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == absRoot {
			return nil
		}

		if IsExcluded(d.Name()) {
			slog.Debug("Excluded by name", logfields.Path(path))
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		if !isRegular(path, d) {
			return nil
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		files = append(files, FileEntry{Path: path, RelativePath: relPath})
		slog.Debug("Discovered file", logfields.RelPath(relPath))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWalkFailed, absRoot, err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].SlashPath() < files[j].SlashPath()
	})
	return files, nil
}

// isRegular reports whether the entry is a regular file, resolving symlinks.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	target, err := os.Stat(path)
	if err != nil {
		slog.Warn("Ignoring unresolvable symlink", logfields.Path(path), logfields.Error(err))
		return false
	}
	if target.IsDir() {
		slog.Debug("Not following symlinked directory", logfields.Path(path))
		return false
	}
	return target.Mode().IsRegular()
}
