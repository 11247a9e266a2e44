package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// resolveTempDir creates a temp directory and resolves macOS symlinks.
func resolveTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks for %s: %v", tmpDir, err)
	}
	return resolved
}

// configureTestRepo sets git user config and disables GPG signing.
func configureTestRepo(t *testing.T, repoPath string) {
	t.Helper()
	ctx := context.Background()
	for _, args := range [][]string{
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
		{"config", "commit.gpgsign", "false"},
	} {
		if err := runGit(ctx, repoPath, args...); err != nil {
			t.Fatalf("failed to run git %v: %v", args, err)
		}
	}
}

// setupTestRepo creates a git repo with main branch, initial commit, and git config.
// Returns the resolved repo path.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	tmpDir := resolveTempDir(t)
	repoPath := filepath.Join(tmpDir, "test-repo")

	ctx := context.Background()
	if err := runGit(ctx, "", "init", "-b", "main", repoPath); err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	configureTestRepo(t, repoPath)

	// Create initial commit
	readme := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readme, []byte("# test\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := runGit(ctx, repoPath, "add", "README.md"); err != nil {
		t.Fatalf("failed to add file: %v", err)
	}
	if err := runGit(ctx, repoPath, "commit", "-m", "Initial commit"); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}

	return repoPath
}

// setupTestRepoWithOrigin creates a repo with a bare origin remote.
// Returns (repoPath, originPath).
func setupTestRepoWithOrigin(t *testing.T) (string, string) {
	t.Helper()
	tmpDir := resolveTempDir(t)

	originPath := filepath.Join(tmpDir, "origin.git")
	repoPath := filepath.Join(tmpDir, "repo")

	ctx := context.Background()

	// Create bare origin (-b main ensures consistent default branch across git versions)
	if err := runGit(ctx, "", "init", "--bare", "-b", "main", originPath); err != nil {
		t.Fatalf("failed to init bare repo: %v", err)
	}

	// Clone from bare origin
	if err := runGit(ctx, "", "clone", originPath, repoPath); err != nil {
		t.Fatalf("failed to clone: %v", err)
	}

	configureTestRepo(t, repoPath)

	// Create initial commit and push
	readme := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readme, []byte("# test\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := runGit(ctx, repoPath, "add", "README.md"); err != nil {
		t.Fatalf("failed to add: %v", err)
	}
	if err := runGit(ctx, repoPath, "commit", "-m", "Initial commit"); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
	if err := runGit(ctx, repoPath, "push", "-u", "origin", "HEAD"); err != nil {
		t.Fatalf("failed to push: %v", err)
	}

	return repoPath, originPath
}

func TestShowTopLevel(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	ctx := context.Background()

	top, err := ShowTopLevel(ctx, repo)
	if err != nil {
		t.Fatalf("ShowTopLevel() error = %v", err)
	}
	if top != repo {
		t.Errorf("ShowTopLevel() = %q, want %q", top, repo)
	}

	// From a subdirectory the toplevel is still the repo root
	sub := filepath.Join(repo, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}
	top, err = ShowTopLevel(ctx, sub)
	if err != nil {
		t.Fatalf("ShowTopLevel() from subdir error = %v", err)
	}
	if top != repo {
		t.Errorf("ShowTopLevel() from subdir = %q, want %q", top, repo)
	}

	if _, err := ShowTopLevel(ctx, t.TempDir()); err == nil {
		t.Error("expected error for non-git directory")
	}
}

func TestMainRepoPath(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	ctx := context.Background()

	wtPath := filepath.Join(filepath.Dir(repo), "main-path-wt")
	if err := runGit(ctx, repo, "worktree", "add", "-b", "main-path-branch", wtPath); err != nil {
		t.Fatalf("failed to create worktree: %v", err)
	}

	mainPath, err := MainRepoPath(ctx, wtPath)
	if err != nil {
		t.Fatalf("MainRepoPath() from worktree error = %v", err)
	}
	if mainPath != repo {
		t.Errorf("MainRepoPath() = %q, want %q", mainPath, repo)
	}

	mainPath, err = MainRepoPath(ctx, repo)
	if err != nil {
		t.Fatalf("MainRepoPath() from main repo error = %v", err)
	}
	if mainPath != repo {
		t.Errorf("MainRepoPath() from main repo = %q, want %q", mainPath, repo)
	}

	if _, err := MainRepoPath(ctx, t.TempDir()); err == nil {
		t.Error("expected error for non-git directory")
	}
}

func TestCurrentBranch(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	ctx := context.Background()

	branch, err := CurrentBranch(ctx, repo)
	if err != nil {
		t.Fatalf("CurrentBranch() error = %v", err)
	}
	if branch != "main" {
		t.Errorf("CurrentBranch() = %q, want main", branch)
	}

	if err := runGit(ctx, repo, "checkout", "--detach"); err != nil {
		t.Fatalf("failed to detach: %v", err)
	}
	branch, err = CurrentBranch(ctx, repo)
	if err != nil {
		t.Fatalf("CurrentBranch() detached error = %v", err)
	}
	if branch != "(detached)" {
		t.Errorf("CurrentBranch() detached = %q, want (detached)", branch)
	}
}

func TestDefaultBranch(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	if got := DefaultBranch(context.Background(), repo); got != "main" {
		t.Errorf("DefaultBranch() = %q, want main", got)
	}

	// Fallback when no origin/HEAD is configured
	got := DefaultBranch(context.Background(), "/nonexistent/path")
	if got != "main" && got != "master" {
		t.Errorf("DefaultBranch() fallback = %q, want main or master", got)
	}
}

func TestBranchLifecycle(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	ctx := context.Background()

	if BranchExists(ctx, repo, "lifecycle") {
		t.Fatal("branch exists before creation")
	}

	if err := CreateBranch(ctx, repo, "lifecycle", "main"); err != nil {
		t.Fatalf("CreateBranch() error = %v", err)
	}
	if !BranchExists(ctx, repo, "lifecycle") {
		t.Error("branch missing after creation")
	}

	branches, err := LocalBranches(ctx, repo)
	if err != nil {
		t.Fatalf("LocalBranches() error = %v", err)
	}
	set := make(map[string]bool, len(branches))
	for _, b := range branches {
		set[b] = true
	}
	if !set["main"] || !set["lifecycle"] {
		t.Errorf("LocalBranches() = %v, want main and lifecycle", branches)
	}

	if err := DeleteBranch(ctx, repo, "lifecycle"); err != nil {
		t.Fatalf("DeleteBranch() error = %v", err)
	}
	if BranchExists(ctx, repo, "lifecycle") {
		t.Error("branch still exists after deletion")
	}
}

func TestSwitch(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	ctx := context.Background()

	if err := CreateBranch(ctx, repo, "other", ""); err != nil {
		t.Fatalf("CreateBranch() error = %v", err)
	}
	if err := Switch(ctx, repo, "other"); err != nil {
		t.Fatalf("Switch() error = %v", err)
	}
	branch, err := CurrentBranch(ctx, repo)
	if err != nil {
		t.Fatalf("CurrentBranch() error = %v", err)
	}
	if branch != "other" {
		t.Errorf("on branch %q after switch, want other", branch)
	}
}

func TestFetchAndTrackRemoteBranch(t *testing.T) {
	t.Parallel()

	repo, _ := setupTestRepoWithOrigin(t)
	ctx := context.Background()

	// Publish a branch on origin, then track it from a fresh local state.
	if err := runGit(ctx, repo, "checkout", "-b", "remote-only"); err != nil {
		t.Fatalf("failed to create branch: %v", err)
	}
	if err := runGit(ctx, repo, "push", "-u", "origin", "remote-only"); err != nil {
		t.Fatalf("failed to push: %v", err)
	}
	if err := runGit(ctx, repo, "checkout", "main"); err != nil {
		t.Fatalf("failed to checkout main: %v", err)
	}
	if err := runGit(ctx, repo, "branch", "-D", "remote-only"); err != nil {
		t.Fatalf("failed to delete local branch: %v", err)
	}

	if err := Fetch(ctx, repo, ""); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if err := TrackRemoteBranch(ctx, repo, "remote-only"); err != nil {
		t.Fatalf("TrackRemoteBranch() error = %v", err)
	}
	if !BranchExists(ctx, repo, "remote-only") {
		t.Error("tracked branch missing locally")
	}
}

func TestIsInsideRepo(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)

	if !IsInsideRepo(context.Background(), repo) {
		t.Error("IsInsideRepo(repo) = false, want true")
	}
	if IsInsideRepo(context.Background(), t.TempDir()) {
		t.Error("IsInsideRepo(plain dir) = true, want false")
	}
}
