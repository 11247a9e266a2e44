package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/decoder/claude-wt/internal/git"
	"github.com/decoder/claude-wt/internal/log"
	"github.com/decoder/claude-wt/internal/output"
	"github.com/decoder/claude-wt/internal/ui"
	"github.com/decoder/claude-wt/internal/ui/styles"
	"github.com/decoder/claude-wt/internal/worktree"
)

func newListCmd() *cobra.Command {
	var (
		scanDir    string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List worktree sessions",
		Aliases: []string{"ls"},
		GroupID: GroupSession,
		Args:    cobra.NoArgs,
		Long: `List managed worktrees across all repositories found under the scan
directory. Each "*-worktrees" container is inspected for sessions.`,
		Example: `  claude-wt list
  claude-wt list --scan-dir ~/work
  claude-wt list --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			dir := scanDir
			if dir == "" {
				dir = cfg.ScanDir
			}

			descriptors, err := git.ScanWorktrees(ctx, dir, worktree.ManagedPrefix)
			if err != nil {
				return err
			}

			if jsonOutput {
				return out.JSON(descriptors)
			}

			if len(descriptors) == 0 {
				log.FromContext(ctx).Println("No worktree sessions found")
				return nil
			}

			rows := make([][]string, 0, len(descriptors))
			for _, d := range descriptors {
				status := styles.SuccessStyle.Render("OK")
				if _, err := os.Stat(d.Path); err != nil {
					status = styles.ErrorStyle.Render("MISSING")
				}
				rows = append(rows, []string{status, d.Repo, d.Session, d.Path})
			}

			out.Print(ui.RenderTable([]string{"STATUS", "REPO", "SESSION", "PATH"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&scanDir, "scan-dir", "", "Directory to scan for worktree containers (default from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
