package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/decoder/claude-wt/internal/git"
	"github.com/decoder/claude-wt/internal/log"
	"github.com/decoder/claude-wt/internal/ui"
	"github.com/decoder/claude-wt/internal/worktree"
)

func newSwitchCmd() *cobra.Command {
	var (
		scanDir string
		resume  bool
	)

	cmd := &cobra.Command{
		Use:     "switch",
		Short:   "Switch to a worktree session",
		GroupID: GroupSession,
		Args:    cobra.NoArgs,
		Long: `Pick a managed worktree and switch to its tmux session. With
--continue the agent resumes its previous conversation.`,
		Example: `  claude-wt switch
  claude-wt switch --continue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)

			dir := scanDir
			if dir == "" {
				dir = cfg.ScanDir
			}

			descriptors, err := git.ScanWorktrees(ctx, dir, worktree.ManagedPrefix)
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

			idx, err := ui.NewSelector().Pick("Select worktree to switch to:", items)
			if err != nil {
				return err
			}
			selected := descriptors[idx]

			if _, err := os.Stat(selected.Path); err != nil {
				return fmt.Errorf("worktree does not exist: %s", selected.Path)
			}

			if resume {
				logger.Printf("Switching to session (resuming): %s\n", selected.Session)
			} else {
				logger.Printf("Switching to session: %s\n", selected.Session)
			}

			repoRoot := mainRepoForWorktree(ctx, selected.Path)
			return launchSession(ctx, repoRoot, selected.Path, "", resume)
		},
	}

	cmd.Flags().StringVar(&scanDir, "scan-dir", "", "Directory to scan for worktree containers (default from config)")
	cmd.Flags().BoolVarP(&resume, "continue", "c", false, "Resume the previous agent conversation")

	return cmd
}
