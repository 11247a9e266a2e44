package worktree

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		repoRoot string
		want     string
	}{
		{"/home/u/proj", "/home/u/proj-worktrees"},
		{"/home/u/dev/my-repo", "/home/u/dev/my-repo-worktrees"},
		{"/srv/x", "/srv/x-worktrees"},
	}

	for _, tt := range tests {
		if got := Base(tt.repoRoot); got != tt.want {
			t.Errorf("Base(%q) = %q, want %q", tt.repoRoot, got, tt.want)
		}
	}
}

func TestBranchName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		suffix string
		want   string
	}{
		{"fix-login", "claude-wt-fix-login"},
		{"eng-123", "claude-wt-eng-123"},
		{"feat/nested", "claude-wt-feat-nested"},
	}

	for _, tt := range tests {
		if got := BranchName(tt.suffix); got != tt.want {
			t.Errorf("BranchName(%q) = %q, want %q", tt.suffix, got, tt.want)
		}
	}
}

func TestDirName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		repo   string
		branch string
		want   string
	}{
		{"proj", "claude-wt-eng-123", "proj-claude-wt-eng-123"},
		{"proj", "feat/nested", "proj-feat-nested"},
		{"api", "release/v1.2", "api-release-v1-2"},
	}

	for _, tt := range tests {
		if got := DirName(tt.repo, tt.branch); got != tt.want {
			t.Errorf("DirName(%q, %q) = %q, want %q", tt.repo, tt.branch, got, tt.want)
		}
	}
}

func TestSessionName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		wtPath string
		want   string
	}{
		{"managed session", "/x/proj-worktrees/proj-claude-wt-eng-123", "proj-eng-123"},
		{"issue worktree", "/x/proj-worktrees/proj-eng-123-20240101", "proj-eng-123-20240101"},
		{"pr worktree", "/x/proj-worktrees/pr-42-fix-auth", "proj-pr-42-fix-auth"},
		{"nested branch", "/x/api-worktrees/api-claude-wt-feat-nested", "api-feat-nested"},
	}

	for _, tt := range tests {
		if got := SessionName(tt.wtPath); got != tt.want {
			t.Errorf("%s: SessionName(%q) = %q, want %q", tt.name, tt.wtPath, got, tt.want)
		}
	}
}

// Creating, switching, and cleaning must all land on the same tmux
// session for one worktree, whichever naming route produced the path.
func TestSessionNameConsistentAcrossEntryPoints(t *testing.T) {
	t.Parallel()

	base := Base("/x/proj")
	viaDirName := filepath.Join(base, DirName("proj", "claude-wt-fix-login"))
	viaScan := "/x/proj-worktrees/proj-claude-wt-fix-login"

	if a, b := SessionName(viaDirName), SessionName(viaScan); a != b {
		t.Errorf("session names diverge: %q vs %q", a, b)
	}

	prDir := filepath.Join(base, "pr-42-fix-auth")
	if got := SessionName(prDir); got != "proj-pr-42-fix-auth" {
		t.Errorf("pr session = %q, want proj-pr-42-fix-auth", got)
	}
}

func TestIsManaged(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		branch string
		path   string
		want   bool
	}{
		{"managed branch", "claude-wt-eng-123", "/x/proj-worktrees/proj-claude-wt-eng-123", true},
		{"managed path only", "eng-123", "/x/proj-worktrees/claude-wt-eng-123", true},
		{"managed dir name", "pr-42", "/x/proj-worktrees/proj-claude-wt-pr-42", true},
		{"unmanaged branch", "main", "/x/proj", false},
		{"user worktree", "feature/x", "/x/other-dir/feature-x", false},
	}

	for _, tt := range tests {
		if got := IsManaged(tt.branch, tt.path); got != tt.want {
			t.Errorf("%s: IsManaged(%q, %q) = %v, want %v", tt.name, tt.branch, tt.path, got, tt.want)
		}
	}
}

func TestWriteContext(t *testing.T) {
	t.Parallel()

	wtPath := t.TempDir()
	if err := WriteContext(wtPath, "ENG-123", "claude-wt-eng-123", "/home/u/proj"); err != nil {
		t.Fatalf("WriteContext() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(wtPath, "CLAUDE.md"))
	if err != nil {
		t.Fatalf("read CLAUDE.md: %v", err)
	}
	content := string(data)

	for _, want := range []string{wtPath, "/home/u/proj", "ENG-123", "claude-wt-eng-123"} {
		if !strings.Contains(content, want) {
			t.Errorf("context file missing %q", want)
		}
	}
}

func TestCopyLocalConfig(t *testing.T) {
	t.Parallel()

	repoRoot := t.TempDir()
	wtPath := t.TempDir()

	if err := os.WriteFile(filepath.Join(repoRoot, ".envrc"), []byte("export FOO=1\n"), 0644); err != nil {
		t.Fatalf("write .envrc: %v", err)
	}
	claudeDir := filepath.Join(repoRoot, ".claude")
	if err := os.MkdirAll(filepath.Join(claudeDir, "commands"), 0755); err != nil {
		t.Fatalf("mkdir .claude: %v", err)
	}
	if err := os.WriteFile(filepath.Join(claudeDir, "commands", "review.md"), []byte("review\n"), 0644); err != nil {
		t.Fatalf("write command: %v", err)
	}
	// .mcp.json and CLAUDE.md deliberately absent

	copied := CopyLocalConfig(repoRoot, wtPath)

	set := make(map[string]bool, len(copied))
	for _, name := range copied {
		set[name] = true
	}
	if !set[".envrc"] || !set[".claude"] {
		t.Errorf("copied = %v, want .envrc and .claude", copied)
	}
	if set[".mcp.json"] || set["CLAUDE.md"] {
		t.Errorf("copied reports absent entries: %v", copied)
	}

	data, err := os.ReadFile(filepath.Join(wtPath, ".envrc"))
	if err != nil || string(data) != "export FOO=1\n" {
		t.Errorf(".envrc not copied correctly: %q, %v", data, err)
	}
	if _, err := os.Stat(filepath.Join(wtPath, ".claude", "commands", "review.md")); err != nil {
		t.Errorf("nested .claude file not copied: %v", err)
	}
}

func TestCopyLocalConfig_EmptyRepo(t *testing.T) {
	t.Parallel()

	if copied := CopyLocalConfig(t.TempDir(), t.TempDir()); copied != nil {
		t.Errorf("copied = %v, want nil", copied)
	}
}
