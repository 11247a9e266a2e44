package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/decoder/claude-wt/internal/git"
	"github.com/decoder/claude-wt/internal/identify"
	"github.com/decoder/claude-wt/internal/log"
	"github.com/decoder/claude-wt/internal/output"
	"github.com/decoder/claude-wt/internal/ui"
	"github.com/decoder/claude-wt/internal/worktree"
)

func newIssueCmd() *cobra.Command {
	var (
		repoPath  string
		printPath bool
		prompt    string
	)

	cmd := &cobra.Command{
		Use:     "issue ISSUE-ID",
		Short:   "Create a worktree session for a Linear issue",
		GroupID: GroupIssue,
		Args:    cobra.ExactArgs(1),
		Long: `Create or reuse a worktree for a Linear issue and launch the agent.

Existing branches and worktrees for the issue are offered in a picker.
Creating a new branch starts it from the repo's default branch after
syncing it with origin. Without a terminal the command skips the picker
and creates a timestamp-suffixed branch.`,
		Example: `  claude-wt issue ENG-123
  claude-wt issue DOC-975 --repo ~/dev/docs
  claude-wt issue ENG-123 --print-path`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIssue(cmd.Context(), args[0], repoPath, prompt, printPath)
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", "", "Repository path (default: resolve from config or cwd)")
	cmd.Flags().BoolVar(&printPath, "print-path", false, "Print the worktree path and exit (for scripting)")
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Initial prompt for the agent")

	return cmd
}

// runIssue is the shared Linear issue workflow, also reached through
// work and issues.
func runIssue(ctx context.Context, issueID, repoPath, prompt string, printPath bool) error {
	logger := log.FromContext(ctx)
	out := output.FromContext(ctx)

	if !identify.IsLinearIssue(issueID) {
		return fmt.Errorf("%q is not a Linear issue identifier (expected e.g. ENG-123)", issueID)
	}

	repoRoot, err := resolveRepoRoot(ctx, repoPath)
	if err != nil {
		return err
	}
	repoName := filepath.Base(repoRoot)
	prefix := identify.NormalizeLinearID(issueID)

	branch, wtPath, err := pickIssueBranch(ctx, repoRoot, repoName, issueID, prefix)
	if err != nil {
		return err
	}

	if wtPath == "" {
		if git.BranchExists(ctx, repoRoot, branch) {
			wtPath, err = materializeWorktree(ctx, repoRoot, branch, "", issueID)
		} else {
			wtPath, err = createIssueWorktree(ctx, repoRoot, branch, issueID)
		}
		if err != nil {
			return err
		}
	} else {
		// Reused worktree still gets a fresh context file
		if err := worktree.WriteContext(wtPath, issueID, branch, repoRoot); err != nil {
			return err
		}
	}

	if printPath {
		out.Path(wtPath)
		return nil
	}
	logger.Printf("Worktree for %s: %s\n", issueID, wtPath)

	return launchSession(ctx, repoRoot, wtPath, prompt, false)
}

// pickIssueBranch decides which branch and worktree to use for an issue.
// Returns a non-empty wtPath only when an existing worktree was chosen.
func pickIssueBranch(ctx context.Context, repoRoot, repoName, issueID, prefix string) (branch, wtPath string, err error) {
	branches, err := issueBranches(ctx, repoRoot, prefix)
	if err != nil {
		return "", "", err
	}
	worktrees := issueWorktrees(repoRoot, repoName, prefix)

	// Nothing to offer, or no terminal: create a fresh branch
	if (len(branches) == 0 && len(worktrees) == 0) || !ui.Interactive() {
		return newIssueBranch(issueID, prefix)
	}

	const createNew = "Create new branch"
	var items []ui.Item
	for _, wt := range worktrees {
		items = append(items, ui.Item{Label: wt, Description: "worktree exists"})
	}
	for _, b := range branches {
		if !slices.Contains(worktrees, repoName+"-"+strings.ReplaceAll(b, "/", "-")) {
			items = append(items, ui.Item{Label: b, Description: "create worktree"})
		}
	}
	items = append(items, ui.Item{Label: createNew})

	idx, err := ui.NewSelector().Pick(fmt.Sprintf("Branches/worktrees for %s:", issueID), items)
	if err != nil {
		return "", "", err
	}
	selected := items[idx]

	switch selected.Description {
	case "worktree exists":
		wtPath = filepath.Join(worktree.Base(repoRoot), selected.Label)
		return worktreeBranch(ctx, wtPath, repoName, prefix), wtPath, nil
	case "create worktree":
		return selected.Label, "", nil
	default:
		return newIssueBranch(issueID, prefix)
	}
}

// worktreeBranch returns the branch checked out in a worktree. When git
// can't answer the directory naming is reversed instead, which loses
// characters the naming sanitized away (dots, colons).
func worktreeBranch(ctx context.Context, wtPath, repoName, prefix string) string {
	if branch, err := git.CurrentBranch(ctx, wtPath); err == nil {
		return branch
	}
	branch := strings.TrimPrefix(filepath.Base(wtPath), repoName+"-")
	return strings.Replace(branch, prefix+"-", prefix+"/", 1)
}

// newIssueBranch names a fresh issue branch, prompting for a suffix on a
// terminal and falling back to a timestamp.
func newIssueBranch(issueID, prefix string) (string, string, error) {
	if ui.Interactive() {
		res, err := ui.Text(fmt.Sprintf("Creating worktree for %s. Branch name suffix:", issueID), "short-description")
		if err != nil {
			return "", "", err
		}
		if res.Cancelled {
			return "", "", ui.ErrNoSelection
		}
		return prefix + "/" + strings.ReplaceAll(res.Value, " ", "-"), "", nil
	}
	return prefix + "/" + time.Now().Format("20060102-150405"), "", nil
}

// createIssueWorktree creates the branch from an up-to-date default
// branch, then materializes its worktree.
func createIssueWorktree(ctx context.Context, repoRoot, branch, issueID string) (string, error) {
	logger := log.FromContext(ctx)

	defaultBranch := git.DefaultBranch(ctx, repoRoot)
	if err := git.Fetch(ctx, repoRoot, ""); err != nil {
		logger.Printf("Warning: fetch failed: %v\n", err)
	} else {
		if err := git.Switch(ctx, repoRoot, defaultBranch); err == nil {
			if err := git.Pull(ctx, repoRoot); err != nil {
				logger.Printf("Warning: pull of %s failed: %v\n", defaultBranch, err)
			}
		}
	}

	return materializeWorktree(ctx, repoRoot, branch, defaultBranch, issueID)
}

// issueBranches lists local branches under the issue's prefix.
func issueBranches(ctx context.Context, repoRoot, prefix string) ([]string, error) {
	all, err := git.LocalBranches(ctx, repoRoot)
	if err != nil {
		return nil, err
	}
	var matched []string
	for _, b := range all {
		if strings.HasPrefix(b, prefix+"/") {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// issueWorktrees lists existing worktree directory names for the issue.
func issueWorktrees(repoRoot, repoName, prefix string) []string {
	entries, err := os.ReadDir(worktree.Base(repoRoot))
	if err != nil {
		return nil
	}
	var matched []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), repoName+"-"+prefix+"-") {
			matched = append(matched, entry.Name())
		}
	}
	return matched
}
