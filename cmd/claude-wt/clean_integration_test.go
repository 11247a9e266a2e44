//go:build integration

package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decoder/claude-wt/internal/config"
	"github.com/decoder/claude-wt/internal/ui"
)

// TestClean_Named tests removing one session by name.
//
// Scenario: User runs `claude-wt clean fix-login`
// Expected: Worktree directory and branch are gone
func TestClean_Named(t *testing.T) {
	// Not parallel - swaps the global config

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	withConfig(t, config.Config{RepoPath: repoPath})

	ctx, out := testContext(t)
	cmd := newNewCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--name", "fix-login", "--print-path"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("new failed: %v", err)
	}
	wtPath := strings.TrimSpace(out.String())

	ctx, _ = testContext(t)
	cmd = newCleanCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"fix-login"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("clean command failed: %v", err)
	}

	if _, err := os.Stat(wtPath); !os.IsNotExist(err) {
		t.Errorf("worktree %s still exists", wtPath)
	}
	verifyBranchGone(t, repoPath, "claude-wt-fix-login")
}

// TestClean_All tests removing every managed session of a repo while
// leaving unmanaged worktrees alone.
func TestClean_All(t *testing.T) {
	// Not parallel - swaps the global config

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	withConfig(t, config.Config{RepoPath: repoPath})

	for _, name := range []string{"one", "two"} {
		ctx, _ := testContext(t)
		cmd := newNewCmd()
		cmd.SetContext(ctx)
		cmd.SetArgs([]string{"--name", name, "--print-path"})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("new %s failed: %v", name, err)
		}
	}

	// An unmanaged worktree must survive the sweep
	unmanagedPath := filepath.Join(tmpDir, "manual-wt")
	runGitCommand(t, repoPath, "git", "worktree", "add", "-b", "manual", unmanagedPath)

	ctx, out := testContext(t)
	cmd := newCleanCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--all"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("clean --all failed: %v", err)
	}

	if !strings.Contains(out.String(), "Removed 2 session(s), 0 failed") {
		t.Errorf("unexpected summary:\n%s", out.String())
	}
	verifyBranchGone(t, repoPath, "claude-wt-one")
	verifyBranchGone(t, repoPath, "claude-wt-two")

	if _, err := os.Stat(unmanagedPath); err != nil {
		t.Errorf("unmanaged worktree was removed: %v", err)
	}
	verifyBranchExists(t, repoPath, "manual")
}

// TestClean_NoSelectionLeavesStateAlone tests that the interactive
// removal path deletes nothing when the picker yields no selection.
func TestClean_NoSelectionLeavesStateAlone(t *testing.T) {
	// Not parallel - swaps the global config

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	withConfig(t, config.Config{RepoPath: repoPath})

	ctx, out := testContext(t)
	newCmd := newNewCmd()
	newCmd.SetContext(ctx)
	newCmd.SetArgs([]string{"--name", "keeper", "--print-path"})
	if err := newCmd.Execute(); err != nil {
		t.Fatalf("new failed: %v", err)
	}
	wtPath := strings.TrimSpace(out.String())

	ctx, _ = testContext(t)
	cmd := newCleanCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--scan-dir", tmpDir})

	err := cmd.Execute()
	if !errors.Is(err, ui.ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}

	if _, err := os.Stat(wtPath); err != nil {
		t.Errorf("worktree was removed: %v", err)
	}
	verifyBranchExists(t, repoPath, "claude-wt-keeper")
}

// TestClean_NameAndAllConflict tests the flag conflict error.
func TestClean_NameAndAllConflict(t *testing.T) {
	// Not parallel - swaps the global config

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	withConfig(t, config.Config{RepoPath: repoPath})

	ctx, _ := testContext(t)
	cmd := newCleanCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"foo", "--all"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for name + --all")
	}
}
