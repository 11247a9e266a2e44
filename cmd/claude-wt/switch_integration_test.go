//go:build integration

package main

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/decoder/claude-wt/internal/config"
	"github.com/decoder/claude-wt/internal/ui"
)

// TestSwitch_NoSelectionLeavesStateAlone tests the no-selection path.
//
// Scenario: The picker yields nothing (no terminal attached)
// Expected: switch fails with no selection and touches no git state
func TestSwitch_NoSelectionLeavesStateAlone(t *testing.T) {
	// Not parallel - swaps the global config

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	withConfig(t, config.Config{RepoPath: repoPath})

	ctx, out := testContext(t)
	newCmd := newNewCmd()
	newCmd.SetContext(ctx)
	newCmd.SetArgs([]string{"--name", "untouched", "--print-path"})
	if err := newCmd.Execute(); err != nil {
		t.Fatalf("new failed: %v", err)
	}
	wtPath := strings.TrimSpace(out.String())

	ctx, _ = testContext(t)
	cmd := newSwitchCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--scan-dir", tmpDir})

	err := cmd.Execute()
	if !errors.Is(err, ui.ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}

	if _, err := os.Stat(wtPath); err != nil {
		t.Errorf("worktree disappeared: %v", err)
	}
	verifyBranchExists(t, repoPath, "claude-wt-untouched")
}
