package main

import (
	"github.com/spf13/cobra"

	"github.com/decoder/claude-wt/internal/identify"
)

func newWorkCmd() *cobra.Command {
	var (
		repoPath  string
		printPath bool
		prompt    string
	)

	cmd := &cobra.Command{
		Use:     "work IDENTIFIER [PROMPT]",
		Short:   "Start a session from any identifier",
		GroupID: GroupSession,
		Args:    cobra.RangeArgs(1, 2),
		Long: `Detect what the identifier refers to and route to the matching
workflow: Linear issue IDs (ENG-123) go to the issue workflow, PR
numbers and GitHub pull URLs to the review workflow, and anything else
becomes the session name for a fresh worktree.`,
		Example: `  claude-wt work ENG-123
  claude-wt work 142
  claude-wt work https://github.com/acme/api/pull/142
  claude-wt work refactor-auth "extract the token refresh logic"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]
			if len(args) == 2 {
				prompt = args[1]
			}

			switch identify.Detect(id) {
			case identify.KindLinear:
				return runIssue(ctx, id, repoPath, prompt, printPath)
			case identify.KindPR:
				return runPR(ctx, identify.ExtractPRNumber(id), repoPath, prompt, printPath)
			default:
				return runNew(ctx, newOptions{
					suffix:    id,
					repoPath:  repoPath,
					prompt:    prompt,
					printPath: printPath,
				})
			}
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", "", "Repository path (default: resolve from config or cwd)")
	cmd.Flags().BoolVar(&printPath, "print-path", false, "Print the worktree path and exit (for scripting)")
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Initial prompt for the agent")

	return cmd
}
