package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decoder/claude-wt/internal/linear"
	"github.com/decoder/claude-wt/internal/ui"
)

func newIssuesCmd() *cobra.Command {
	var (
		repoPath  string
		printPath bool
		prompt    string
	)

	cmd := &cobra.Command{
		Use:     "issues",
		Short:   "Pick one of your assigned Linear issues and start a session",
		GroupID: GroupIssue,
		Args:    cobra.NoArgs,
		Long: `List your open assigned Linear issues and pick one to work on.

The selection continues into the same workflow as "claude-wt issue".
Requires linear.api_key and linear.user_id in the config file, or the
LINEAR_API_KEY and LINEAR_USER_ID environment variables.`,
		Example: `  claude-wt issues
  claude-wt issues --repo ~/dev/docs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := linear.NewClient(cfg.Linear.APIKey, cfg.Linear.UserID, nil)
			if err != nil {
				return err
			}
			issues, err := client.AssignedIssues(ctx)
			if err != nil {
				return fmt.Errorf("fetch assigned issues: %w", err)
			}
			if len(issues) == 0 {
				return fmt.Errorf("no open issues assigned to you")
			}

			items := make([]ui.Item, len(issues))
			for i, issue := range issues {
				items[i] = ui.Item{Label: issue.ID + ": " + issue.Title}
			}
			idx, err := ui.NewSelector().Pick("Assigned issues:", items)
			if err != nil {
				return err
			}

			return runIssue(ctx, issues[idx].ID, repoPath, prompt, printPath)
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", "", "Repository path (default: resolve from config or cwd)")
	cmd.Flags().BoolVar(&printPath, "print-path", false, "Print the worktree path and exit (for scripting)")
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Initial prompt for the agent")

	return cmd
}
