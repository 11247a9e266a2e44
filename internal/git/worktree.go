package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WorktreeInfo is one record from git worktree list --porcelain.
type WorktreeInfo struct {
	Path       string
	Branch     string
	CommitHash string
}

// ParseWorktreeList parses git worktree list --porcelain output.
// Each record starts with a "worktree <path>" line, optionally followed by
// "HEAD <hash>" and "branch refs/heads/<name>" lines; a record ends where
// the next "worktree" line (or the output) ends.
func ParseWorktreeList(output []byte) []WorktreeInfo {
	var worktrees []WorktreeInfo
	var current WorktreeInfo

	for _, line := range strings.Split(string(output), "\n") {
		switch {
		case strings.HasPrefix(line, "worktree "):
			if current.Path != "" {
				worktrees = append(worktrees, current)
			}
			current = WorktreeInfo{Path: strings.TrimPrefix(line, "worktree ")}
		case strings.HasPrefix(line, "HEAD "):
			current.CommitHash = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch refs/heads/"):
			current.Branch = strings.TrimPrefix(line, "branch refs/heads/")
		case line == "detached":
			current.Branch = "(detached)"
		}
	}

	if current.Path != "" {
		worktrees = append(worktrees, current)
	}

	return worktrees
}

// ListWorktrees returns all worktrees of a repository.
func ListWorktrees(ctx context.Context, repoPath string) ([]WorktreeInfo, error) {
	output, err := outputGit(ctx, repoPath, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("failed to list worktrees: %v", err)
	}
	return ParseWorktreeList(output), nil
}

// BranchWorktree returns the worktree path where branch is checked out,
// or the empty string if it is not checked out anywhere.
func BranchWorktree(ctx context.Context, repoPath, branch string) (string, error) {
	worktrees, err := ListWorktrees(ctx, repoPath)
	if err != nil {
		return "", err
	}
	for _, wt := range worktrees {
		if wt.Branch == branch {
			return wt.Path, nil
		}
	}
	return "", nil
}

// AddWorktree creates a worktree at path checking out an existing branch.
// Repos using git-crypt get the filters disabled during creation, the key
// directory linked into the worktree's git dir, and a hard reset to
// decrypt the files.
func AddWorktree(ctx context.Context, repoPath, branch, path string) error {
	if usesGitCrypt(repoPath) {
		return addWorktreeGitCrypt(ctx, repoPath, branch, path)
	}
	return runGit(ctx, repoPath, "worktree", "add", "--quiet", path, branch)
}

func usesGitCrypt(repoPath string) bool {
	info, err := os.Stat(filepath.Join(repoPath, ".git", "git-crypt"))
	return err == nil && info.IsDir()
}

func addWorktreeGitCrypt(ctx context.Context, repoPath, branch, path string) error {
	err := runGit(ctx, repoPath,
		"-c", "filter.git-crypt.smudge=cat",
		"-c", "filter.git-crypt.clean=cat",
		"-c", "diff.git-crypt.textconv=cat",
		"worktree", "add", "--quiet", path, branch)
	if err != nil {
		return err
	}

	// Link the main repo's key directory so git-crypt works in the worktree
	mainKeys := filepath.Join(repoPath, ".git", "git-crypt")
	wtKeys := filepath.Join(repoPath, ".git", "worktrees", filepath.Base(path), "git-crypt")
	if _, err := os.Stat(wtKeys); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(wtKeys), 0755); err != nil {
			return err
		}
		if err := os.Symlink(mainKeys, wtKeys); err != nil {
			return err
		}
	}

	// Decrypt by re-checking out through the real filters
	return runGit(ctx, path, "reset", "--hard", "HEAD")
}

// RemoveWorktree force-removes a worktree.
func RemoveWorktree(ctx context.Context, repoPath, path string) error {
	return runGit(ctx, repoPath, "worktree", "remove", "--force", path)
}

// PruneWorktrees prunes stale worktree references.
func PruneWorktrees(ctx context.Context, repoPath string) error {
	return runGit(ctx, repoPath, "worktree", "prune")
}

// IsWorktree returns true if path is a linked git worktree (not a main
// repo). Worktrees have .git as a file pointing at the main repo, main
// repos have .git as a directory.
func IsWorktree(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	if err != nil {
		return false
	}
	return !info.IsDir()
}
