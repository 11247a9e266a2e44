package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/decoder/claude-wt/internal/git"
	"github.com/decoder/claude-wt/internal/output"
	"github.com/decoder/claude-wt/internal/worktree"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   "Show whether the current directory is a managed worktree",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			if !git.IsInsideRepo(ctx, cwd) {
				out.Println("Not inside a git repository")
				return nil
			}

			root, err := git.ShowTopLevel(ctx, cwd)
			if err != nil {
				return err
			}
			branch, err := git.CurrentBranch(ctx, root)
			if err != nil {
				return err
			}

			if !git.IsWorktree(root) {
				out.Printf("Main checkout %s on branch %s\n", root, branch)
				return nil
			}

			if !worktree.IsManaged(branch, root) {
				out.Printf("Worktree %s on branch %s (not managed by claude-wt)\n", root, branch)
				return nil
			}

			out.Printf("Managed worktree %s\n", root)
			out.Printf("Branch: %s\n", branch)
			if mainRepo, err := git.MainRepoPath(ctx, root); err == nil {
				out.Printf("Main repo: %s\n", mainRepo)
			}
			return nil
		},
	}
}
