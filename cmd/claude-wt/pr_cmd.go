package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/decoder/claude-wt/internal/git"
	"github.com/decoder/claude-wt/internal/github"
	"github.com/decoder/claude-wt/internal/log"
	"github.com/decoder/claude-wt/internal/output"
	"github.com/decoder/claude-wt/internal/ui"
	"github.com/decoder/claude-wt/internal/worktree"
)

func newPrCmd() *cobra.Command {
	var (
		repoPath  string
		printPath bool
		query     string
	)

	cmd := &cobra.Command{
		Use:     "pr [NUMBER]",
		Short:   "Check out a pull request into a worktree for review",
		GroupID: GroupIssue,
		Args:    cobra.MaximumNArgs(1),
		Long: `Fetch a pull request's head branch into its own worktree and start a
review session. Without a number, open PRs are offered in a picker.

Requires the gh CLI to be installed and authenticated.`,
		Example: `  claude-wt pr 142
  claude-wt pr
  claude-wt pr 142 --query "focus on the migration files"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			number := ""
			if len(args) == 1 {
				number = args[0]
			}
			return runPR(cmd.Context(), number, repoPath, query, printPath)
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", "", "Repository path (default: resolve from config or cwd)")
	cmd.Flags().BoolVar(&printPath, "print-path", false, "Print the worktree path and exit (for scripting)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Extra instructions appended to the review prompt")

	return cmd
}

// runPR is the PR review workflow, also reached through work.
func runPR(ctx context.Context, number, repoPath, query string, printPath bool) error {
	logger := log.FromContext(ctx)
	out := output.FromContext(ctx)

	if err := github.CheckGH(); err != nil {
		return err
	}
	repoRoot, err := resolveRepoRoot(ctx, repoPath)
	if err != nil {
		return err
	}

	if number == "" {
		number, err = pickOpenPR(ctx, repoRoot)
		if err != nil {
			return err
		}
	}

	pr, err := github.View(ctx, repoRoot, number)
	if err != nil {
		return err
	}
	logger.Printf("PR #%d: %s (%s)\n", pr.Number, pr.Title, pr.HeadRefName)

	if err := git.FetchPRBranch(ctx, repoRoot, pr.HeadRefName, number); err != nil {
		return fmt.Errorf("fetch PR branch %s: %w", pr.HeadRefName, err)
	}

	wtPath, err := materializePRWorktree(ctx, repoRoot, pr)
	if err != nil {
		return err
	}

	if printPath {
		out.Path(wtPath)
		return nil
	}

	return launchSession(ctx, repoRoot, wtPath, reviewPrompt(pr, query), false)
}

// pickOpenPR lists open PRs and lets the user choose one.
func pickOpenPR(ctx context.Context, repoRoot string) (string, error) {
	prs, err := github.ListOpen(ctx, repoRoot)
	if err != nil {
		return "", err
	}
	if len(prs) == 0 {
		return "", fmt.Errorf("no open pull requests")
	}

	items := make([]ui.Item, len(prs))
	for i, pr := range prs {
		items[i] = ui.Item{
			Label:       fmt.Sprintf("#%d: %s", pr.Number, pr.Title),
			Description: "by " + pr.Author.Login,
		}
	}
	idx, err := ui.NewSelector().Pick("Open pull requests:", items)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(prs[idx].Number), nil
}

// materializePRWorktree creates the review worktree for a fetched PR
// branch. The directory name carries the PR number so review checkouts
// of the same branch number don't collide with issue worktrees.
func materializePRWorktree(ctx context.Context, repoRoot string, pr github.PR) (string, error) {
	logger := log.FromContext(ctx)

	containerDir := worktree.Base(repoRoot)
	if err := os.MkdirAll(containerDir, 0755); err != nil {
		return "", fmt.Errorf("create worktree dir: %w", err)
	}

	dirName := fmt.Sprintf("pr-%d-%s", pr.Number, strings.ReplaceAll(pr.HeadRefName, "/", "-"))
	wtPath := filepath.Join(containerDir, dirName)
	if _, err := os.Stat(wtPath); os.IsNotExist(err) {
		if err := git.AddWorktree(ctx, repoRoot, pr.HeadRefName, wtPath); err != nil {
			return "", fmt.Errorf("create worktree: %w", err)
		}
		logger.Printf("Created worktree %s\n", wtPath)
	}

	issueRef := github.LinearID(pr)
	if issueRef == "" {
		issueRef = fmt.Sprintf("PR #%d", pr.Number)
	}
	if err := worktree.WriteContext(wtPath, issueRef, pr.HeadRefName, repoRoot); err != nil {
		return "", err
	}
	worktree.CopyLocalConfig(repoRoot, wtPath)

	return wtPath, nil
}

// reviewPrompt builds the agent's starting prompt from the PR metadata.
func reviewPrompt(pr github.PR, query string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Review pull request #%d: %s\n\n", pr.Number, pr.Title)
	if pr.Body != "" {
		fmt.Fprintf(&b, "Description:\n%s\n\n", pr.Body)
	}
	b.WriteString("Look at the changes on this branch relative to the default branch and review them.")
	if query != "" {
		b.WriteString("\n\n" + query)
	}
	return b.String()
}
