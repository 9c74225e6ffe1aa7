package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/doccompile/internal/foundation/errors"
	helpers "git.home.luguber.info/inful/doccompile/internal/testutil/testutils"
)

func realPath(t *testing.T, p string) string {
	t.Helper()
	r, err := filepath.EvalSymlinks(p)
	require.NoError(t, err)
	return r
}

func TestResolve_Explicit(t *testing.T) {
	dir := t.TempDir()

	root, err := Resolve(dir, "/somewhere/else")
	require.NoError(t, err)
	assert.Equal(t, SourceFlag, root.Source)
	assert.Equal(t, dir, root.Path)
}

func TestResolve_ExplicitMissing(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "nope"), "")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestResolve_ExplicitFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, err := Resolve(file, "")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestResolve_CwdIsProject(t *testing.T) {
	dir := t.TempDir()
	helpers.WriteTree(t, dir, map[string]string{"src/index.md": "x"})

	root, err := Resolve("", dir)
	require.NoError(t, err)
	assert.Equal(t, Root{Path: dir, Source: SourceCwd}, root)
}

func TestResolve_GitWorktree(t *testing.T) {
	repo := helpers.SetupTestGitRepo(t)
	helpers.CommitTree(t, repo, map[string]string{
		"doccompile.yaml":     "dictionary: vars.json\n",
		"tools/scripts/a.txt": "a",
	})

	root, err := Resolve("", filepath.Join(repo, "tools", "scripts"))
	require.NoError(t, err)
	assert.Equal(t, SourceGit, root.Source)
	assert.Equal(t, realPath(t, repo), realPath(t, root.Path))
}

func TestResolve_GitWorktreeWithoutProject(t *testing.T) {
	repo := helpers.SetupTestGitRepo(t)
	sub := filepath.Join(repo, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o750))

	root, err := Resolve("", sub)
	require.NoError(t, err)
	assert.Equal(t, Root{Path: sub, Source: SourceCwd}, root)
}

func TestGitRoot(t *testing.T) {
	_, ok := GitRoot(t.TempDir())
	assert.False(t, ok)

	repo := helpers.SetupTestGitRepo(t)
	top, ok := GitRoot(repo)
	require.True(t, ok)
	assert.Equal(t, realPath(t, repo), realPath(t, top))
}
