//go:build integration

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/decoder/claude-wt/internal/config"
	"github.com/decoder/claude-wt/internal/log"
	"github.com/decoder/claude-wt/internal/output"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// setupTestRepo creates a git repo with an initial commit in dir/name.
// Returns the absolute path to the created repo (with symlinks resolved).
func setupTestRepo(t *testing.T, dir, name string) string {
	t.Helper()

	dir = resolvePath(t, dir)

	repoPath := filepath.Join(dir, name)
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}

	cmds := [][]string{
		{"git", "init", "-b", "main"},
		{"git", "config", "user.email", "test@test.com"},
		{"git", "config", "user.name", "Test User"},
		{"git", "config", "commit.gpgsign", "false"},
	}
	for _, args := range cmds {
		runGitCommand(t, repoPath, args...)
	}

	readmePath := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readmePath, []byte("# "+name+"\n"), 0644); err != nil {
		t.Fatalf("failed to write README: %v", err)
	}

	runGitCommand(t, repoPath, "git", "add", "README.md")
	runGitCommand(t, repoPath, "git", "commit", "-m", "Initial commit")

	return repoPath
}

func runGitCommand(t *testing.T, dir string, args ...string) {
	t.Helper()

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to run %v: %v\n%s", args, err, out)
	}
}

// testContext builds a command context with a silent logger and a
// captured stdout printer. Returns the buffer primary output lands in.
func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(io.Discard, false, true))
	ctx = output.WithPrinter(ctx, &out)
	return ctx, &out
}

// withConfig swaps the global config for the test and restores it after.
// Not safe for parallel tests.
func withConfig(t *testing.T, c config.Config) {
	t.Helper()

	old := cfg
	cfg = &c
	t.Cleanup(func() { cfg = old })
}

// verifyWorktreeWorks checks that git status works in the worktree.
func verifyWorktreeWorks(t *testing.T, worktreePath string) {
	t.Helper()

	cmd := exec.Command("git", "status")
	cmd.Dir = worktreePath
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Errorf("worktree %s is broken: git status failed: %v\n%s", worktreePath, err, out)
	}
}

// verifyBranchExists verifies a branch exists in the repo.
func verifyBranchExists(t *testing.T, repoPath, branch string) {
	t.Helper()

	cmd := exec.Command("git", "rev-parse", "--verify", "refs/heads/"+branch)
	cmd.Dir = repoPath
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Errorf("branch %s does not exist: %v\n%s", branch, err, out)
	}
}

// verifyBranchGone verifies a branch does not exist in the repo.
func verifyBranchGone(t *testing.T, repoPath, branch string) {
	t.Helper()

	cmd := exec.Command("git", "rev-parse", "--verify", "refs/heads/"+branch)
	cmd.Dir = repoPath
	if err := cmd.Run(); err == nil {
		t.Errorf("branch %s still exists", branch)
	}
}
