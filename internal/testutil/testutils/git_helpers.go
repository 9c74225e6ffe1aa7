package helpers

import (
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// SetupTestGitRepo initializes an empty repository in a temporary directory
// and returns its path.
func SetupTestGitRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatalf("init git repo: %v", err)
	}
	return dir
}

// CommitTree writes files into the repository at repo and commits them,
// giving documentation projects that look like real checkouts.
func CommitTree(t *testing.T, repo string, files map[string]string) {
	t.Helper()

	WriteTree(t, repo, files)

	r, err := git.PlainOpen(repo)
	if err != nil {
		t.Fatalf("open git repo: %v", err)
	}
	wt, err := r.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	for rel := range files {
		if _, err := wt.Add(rel); err != nil {
			t.Fatalf("git add %s: %v", rel, err)
		}
	}
	_, err = wt.Commit("seed docs", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("git commit: %v", err)
	}
}
