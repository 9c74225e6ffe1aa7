// Package workspace resolves the project root a compile run operates on.
//
// The root is taken from the explicit --root flag when given. Otherwise the
// working directory is used when it looks like a project; failing that, the
// enclosing git worktree is used when it does; the working directory is the
// final fallback.
package workspace
