package workspace

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"

	ferrors "git.home.luguber.info/inful/doccompile/internal/foundation/errors"
	"git.home.luguber.info/inful/doccompile/internal/logfields"
)

// Source records how a root was chosen.
type Source string

const (
	SourceFlag Source = "flag"
	SourceCwd  Source = "cwd"
	SourceGit  Source = "git"
)

// Root is a resolved project root.
type Root struct {
	Path   string
	Source Source
}

// markers identify a project root; any one suffices.
var markers = []string{
	"doccompile.yaml",
	"src",
	filepath.Join("test", "src"),
}

// Resolve picks the project root. explicit wins when non-empty and must be an
// existing directory; otherwise cwd and its git worktree are considered.
func Resolve(explicit, cwd string) (Root, error) {
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return Root{}, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid project root").
				WithPath(explicit).
				Build()
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			if err == nil {
				err = errors.New("not a directory")
			}
			return Root{}, ferrors.WrapError(err, ferrors.CategoryNotFound, "project root not found").
				WithPath(abs).
				Build()
		}
		return Root{Path: abs, Source: SourceFlag}, nil
	}

	abs, err := filepath.Abs(cwd)
	if err != nil {
		return Root{}, ferrors.WrapError(err, ferrors.CategoryInternal, "cannot resolve working directory").Build()
	}
	if isProject(abs) {
		return Root{Path: abs, Source: SourceCwd}, nil
	}

	if top, ok := GitRoot(abs); ok && isProject(top) {
		slog.Debug("Using enclosing git worktree as project root", logfields.Path(top))
		return Root{Path: top, Source: SourceGit}, nil
	}
	return Root{Path: abs, Source: SourceCwd}, nil
}

// GitRoot returns the top-level directory of the git worktree containing dir.
func GitRoot(dir string) (string, bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", false
	}
	return wt.Filesystem.Root(), true
}

func isProject(dir string) bool {
	for _, m := range markers {
		if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
			return true
		}
	}
	return false
}
