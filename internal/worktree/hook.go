package worktree

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/decoder/claude-wt/internal/cmd"
)

const branchHookTemplate = `#!/bin/sh
# Installed by claude-wt. Warns when this worktree leaves its session branch.
expected_branch=%q
current_branch=$(git branch --show-current 2>/dev/null)
if [ -n "$current_branch" ] && [ "$current_branch" != "$expected_branch" ]; then
    echo "warning: this worktree belongs to branch '$expected_branch' but is now on '$current_branch'" >&2
    echo "warning: claude-wt clean removes the worktree together with '$expected_branch'" >&2
fi
`

// InstallBranchHook writes an advisory post-checkout hook into the
// worktree's private git directory. The hook only warns; it never blocks
// a checkout.
func InstallBranchHook(ctx context.Context, wtPath, branch string) error {
	out, err := cmd.OutputContext(ctx, wtPath, "git", "rev-parse", "--git-dir")
	if err != nil {
		return fmt.Errorf("resolve worktree git dir: %w", err)
	}
	gitDir := strings.TrimSpace(string(out))
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(wtPath, gitDir)
	}

	hooksDir := filepath.Join(gitDir, "hooks")
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return fmt.Errorf("create hooks dir: %w", err)
	}

	hook := fmt.Sprintf(branchHookTemplate, branch)
	hookPath := filepath.Join(hooksDir, "post-checkout")
	if err := os.WriteFile(hookPath, []byte(hook), 0755); err != nil {
		return fmt.Errorf("write post-checkout hook: %w", err)
	}
	return nil
}
