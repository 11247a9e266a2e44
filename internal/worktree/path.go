// Package worktree holds the naming scheme and per-worktree scaffolding
// shared by all commands: where managed worktrees live on disk, how their
// branches and tmux sessions are named, and the local files seeded into a
// fresh worktree.
package worktree

import (
	"path/filepath"
	"strings"
)

// ManagedPrefix marks branches created and owned by this tool. Only
// branches carrying it are ever deleted during cleanup.
const ManagedPrefix = "claude-wt-"

// Base returns the container directory for a repo's managed worktrees,
// a sibling of the repo named "{repo}-worktrees". Keeping worktrees out
// of the repo itself avoids gitignore games and recursive scans.
func Base(repoRoot string) string {
	return filepath.Join(filepath.Dir(repoRoot), filepath.Base(repoRoot)+"-worktrees")
}

// BranchName returns the managed branch for a session suffix.
func BranchName(suffix string) string {
	return ManagedPrefix + sanitize(suffix)
}

// DirName returns the worktree directory name for a branch. The repo
// name is prefixed so branches from different repos never collide in a
// shared scan directory.
func DirName(repoName, branch string) string {
	return repoName + "-" + sanitize(branch)
}

// SessionName returns the tmux session name for a worktree path. The
// name is derived from the container and directory names alone, so
// every command computes the same session for the same worktree no
// matter how it found it.
func SessionName(wtPath string) string {
	repoName := strings.TrimSuffix(filepath.Base(filepath.Dir(wtPath)), "-worktrees")
	name := strings.TrimPrefix(filepath.Base(wtPath), repoName+"-")
	name = strings.TrimPrefix(name, ManagedPrefix)
	return repoName + "-" + name
}

// IsManaged reports whether a worktree belongs to this tool, by branch
// prefix or by its location inside a managed container directory.
func IsManaged(branch, path string) bool {
	return strings.HasPrefix(branch, ManagedPrefix) ||
		strings.Contains(path, "-worktrees/"+ManagedPrefix) ||
		strings.Contains(filepath.Base(path), "-"+ManagedPrefix)
}

// sanitize makes a ref or identifier safe for directory and session
// names. tmux rejects dots and colons in session names.
func sanitize(s string) string {
	replacer := strings.NewReplacer("/", "-", ":", "-", ".", "-")
	return replacer.Replace(s)
}
