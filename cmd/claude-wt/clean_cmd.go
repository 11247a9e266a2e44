package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/decoder/claude-wt/internal/git"
	"github.com/decoder/claude-wt/internal/log"
	"github.com/decoder/claude-wt/internal/output"
	"github.com/decoder/claude-wt/internal/tmux"
	"github.com/decoder/claude-wt/internal/ui"
	"github.com/decoder/claude-wt/internal/worktree"
)

func newCleanCmd() *cobra.Command {
	var (
		all     bool
		scanDir string
	)

	cmd := &cobra.Command{
		Use:     "clean [name]",
		Short:   "Remove worktree sessions",
		GroupID: GroupSession,
		Args:    cobra.MaximumNArgs(1),
		Long: `Remove a managed worktree and its session branch.

With a name, removes the claude-wt-<name> session of the current repo.
With --all, removes every managed session of the current repo. Without
either, an interactive picker selects the session to remove.

Removal is best-effort: with --all a failing worktree is reported and
cleanup continues with the rest.`,
		Example: `  claude-wt clean              # Pick a session to remove
  claude-wt clean fix-login    # Remove session claude-wt-fix-login
  claude-wt clean --all        # Remove all sessions of this repo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			if name != "" && all {
				return errors.New("cannot specify both a session name and --all")
			}

			if name == "" && !all {
				dir := scanDir
				if dir == "" {
					dir = cfg.ScanDir
				}
				return cleanPicked(ctx, dir)
			}

			repoRoot, err := resolveRepoRoot(ctx, "")
			if err != nil {
				return err
			}
			if all {
				return cleanAll(ctx, repoRoot)
			}
			return cleanNamed(ctx, repoRoot, name)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Remove all managed sessions of the current repo")
	cmd.Flags().StringVar(&scanDir, "scan-dir", "", "Directory to scan for worktree containers (default from config)")

	return cmd
}

// cleanPicked removes one session chosen interactively across all repos.
func cleanPicked(ctx context.Context, scanDir string) error {
	descriptors, err := git.ScanWorktrees(ctx, scanDir, worktree.ManagedPrefix)
	if err != nil {
		return err
	}
	if len(descriptors) == 0 {
		return errors.New("no worktree sessions found")
	}

	items := make([]ui.Item, len(descriptors))
	for i, d := range descriptors {
		items[i] = ui.Item{Label: d.Repo + "/" + d.Session, Description: d.Path}
	}

	idx, err := ui.NewSelector().Pick("Select worktree to delete:", items)
	if err != nil {
		return err
	}
	selected := descriptors[idx]

	repoRoot := mainRepoForWorktree(ctx, selected.Path)
	branch, err := git.CurrentBranch(ctx, selected.Path)
	if err != nil {
		branch = worktree.ManagedPrefix + selected.Session
	}
	return removeSession(ctx, repoRoot, selected.Path, branch)
}

// cleanNamed removes the named session of one repo. The worktree path
// comes from git itself, with the naming convention as fallback for
// worktrees git no longer knows about.
func cleanNamed(ctx context.Context, repoRoot, name string) error {
	branch := worktree.BranchName(name)

	wtPath, err := git.BranchWorktree(ctx, repoRoot, branch)
	if err != nil || wtPath == "" {
		repoName := filepath.Base(repoRoot)
		wtPath = filepath.Join(worktree.Base(repoRoot), worktree.DirName(repoName, branch))
	}
	return removeSession(ctx, repoRoot, wtPath, branch)
}

// cleanAll removes every managed session of one repo, reporting per-item
// outcomes.
func cleanAll(ctx context.Context, repoRoot string) error {
	logger := log.FromContext(ctx)
	out := output.FromContext(ctx)

	worktrees, err := git.ListWorktrees(ctx, repoRoot)
	if err != nil {
		return err
	}

	var managed []git.WorktreeInfo
	for _, wt := range worktrees {
		if worktree.IsManaged(wt.Branch, wt.Path) {
			managed = append(managed, wt)
		}
	}
	if len(managed) == 0 {
		logger.Println("No managed sessions found")
		return nil
	}

	if ui.Interactive() {
		res, err := ui.Confirm(fmt.Sprintf("Remove %d session(s) of this repo?", len(managed)))
		if err != nil {
			return err
		}
		if !res.Confirmed {
			logger.Println("Aborted")
			return nil
		}
	}

	outcomes := git.RemoveWorktrees(ctx, repoRoot, managed)
	for _, o := range outcomes {
		if o.Err != nil {
			out.Printf("failed  %s: %v\n", o.Path, o.Err)
			continue
		}
		out.Printf("removed %s\n", o.Path)
		if err := git.DeleteBranch(ctx, repoRoot, o.Branch); err != nil {
			logger.Printf("Warning: could not delete branch %s: %v\n", o.Branch, err)
		}
		killSession(ctx, o.Path)
	}

	out.Printf("Removed %d session(s), %d failed\n", git.Succeeded(outcomes), git.Failed(outcomes))
	if git.Failed(outcomes) > 0 {
		return fmt.Errorf("%d session(s) could not be removed", git.Failed(outcomes))
	}
	return nil
}

// removeSession removes one worktree and deletes its branch. A missing
// branch is only a warning, the worktree removal is what matters.
func removeSession(ctx context.Context, repoRoot, wtPath, branch string) error {
	logger := log.FromContext(ctx)

	if err := git.RemoveWorktree(ctx, repoRoot, wtPath); err != nil {
		return fmt.Errorf("remove worktree %s: %w", wtPath, err)
	}
	logger.Printf("Removed worktree: %s\n", wtPath)

	if err := git.DeleteBranch(ctx, repoRoot, branch); err != nil {
		logger.Printf("Warning: could not delete branch %s: %v\n", branch, err)
	} else {
		logger.Printf("Deleted branch: %s\n", branch)
	}

	killSession(ctx, wtPath)
	return nil
}

// killSession tears down the worktree's tmux session, if any. Failures
// don't matter, the worktree is already gone.
func killSession(ctx context.Context, wtPath string) {
	client := tmux.NewClient()
	if !client.Available() {
		return
	}
	name := worktree.SessionName(wtPath)
	if err := client.KillSession(ctx, name); err != nil {
		log.FromContext(ctx).Printf("Warning: could not kill tmux session %s: %v\n", name, err)
	}
}
