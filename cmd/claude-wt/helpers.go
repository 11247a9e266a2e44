package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/decoder/claude-wt/internal/git"
	"github.com/decoder/claude-wt/internal/log"
	"github.com/decoder/claude-wt/internal/repo"
	"github.com/decoder/claude-wt/internal/session"
	"github.com/decoder/claude-wt/internal/tmux"
	"github.com/decoder/claude-wt/internal/worktree"
)

// resolveRepoRoot resolves the repository the command operates on, using
// the explicit --repo flag, then the config file, then the enclosing git
// checkout.
func resolveRepoRoot(ctx context.Context, explicit string) (string, error) {
	return repo.Resolve(ctx, explicit, repo.Fields{
		RepoPath: cfg.RepoPath,
		Repo:     cfg.Repo,
	})
}

// materializeWorktree makes sure a worktree exists for the branch and
// seeds it: branch created from base when missing, context file written,
// local config copied, advisory hook installed. Idempotent, so rerunning
// a command lands in the same worktree.
func materializeWorktree(ctx context.Context, repoRoot, branch, base, issueID string) (string, error) {
	logger := log.FromContext(ctx)
	repoName := filepath.Base(repoRoot)

	if !git.BranchExists(ctx, repoRoot, branch) {
		if err := git.CreateBranch(ctx, repoRoot, branch, base); err != nil {
			return "", fmt.Errorf("create branch %s: %w", branch, err)
		}
		logger.Printf("Created branch %s\n", branch)
	}

	containerDir := worktree.Base(repoRoot)
	if err := os.MkdirAll(containerDir, 0755); err != nil {
		return "", fmt.Errorf("create worktree dir: %w", err)
	}

	wtPath := filepath.Join(containerDir, worktree.DirName(repoName, branch))
	if _, err := os.Stat(wtPath); os.IsNotExist(err) {
		if err := git.AddWorktree(ctx, repoRoot, branch, wtPath); err != nil {
			return "", fmt.Errorf("create worktree: %w", err)
		}
		logger.Printf("Created worktree %s\n", wtPath)
	}

	if err := worktree.WriteContext(wtPath, issueID, branch, repoRoot); err != nil {
		return "", err
	}
	if copied := worktree.CopyLocalConfig(repoRoot, wtPath); len(copied) > 0 {
		logger.Printf("Copied local config: %v\n", copied)
	}
	if err := worktree.InstallBranchHook(ctx, wtPath, branch); err != nil {
		logger.Printf("Warning: %v\n", err)
	}

	return wtPath, nil
}

// launchSession starts the agent for a worktree, in tmux when available.
// The session name always derives from the worktree path so switch and
// clean address the same session the creating command started.
func launchSession(ctx context.Context, repoRoot, wtPath, prompt string, resume bool) error {
	agent := session.Build(cfg.Agent, repoRoot, wtPath, prompt, resume)
	launcher := tmux.NewLauncher(tmux.NewClient())
	return launcher.Launch(ctx, worktree.SessionName(wtPath), agent)
}

// mainRepoForWorktree derives the main repo path for a scanned worktree
// descriptor, falling back to the container naming convention when git
// lookup fails.
func mainRepoForWorktree(ctx context.Context, wtPath string) string {
	if repoRoot, err := git.MainRepoPath(ctx, wtPath); err == nil {
		return repoRoot
	}
	container := filepath.Dir(wtPath)
	name := strings.TrimSuffix(filepath.Base(container), "-worktrees")
	return filepath.Join(filepath.Dir(container), name)
}
