package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/decoder/claude-wt/internal/git"
	"github.com/decoder/claude-wt/internal/log"
	"github.com/decoder/claude-wt/internal/output"
	"github.com/decoder/claude-wt/internal/worktree"
)

func newNewCmd() *cobra.Command {
	var opts newOptions
	var promptFile string

	cmd := &cobra.Command{
		Use:     "new [prompt]",
		Short:   "Create a new worktree session",
		GroupID: GroupSession,
		Args:    cobra.MaximumNArgs(1),
		Long: `Create an isolated worktree in a sibling directory and launch the
agent in a tmux session.

The session branch is claude-wt-<name>, created from the current branch
unless --branch picks another source. Without --name the suffix is a
timestamp.`,
		Example: `  claude-wt new                          # Timestamp-named session from current branch
  claude-wt new "fix the login flow"     # With an initial prompt
  claude-wt new --name fix-login         # Named session
  claude-wt new --branch main --pull     # From up-to-date main
  claude-wt new --print-path             # Only print the worktree path`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if len(args) > 0 {
				opts.prompt = args[0]
			}
			if promptFile != "" {
				data, err := os.ReadFile(promptFile)
				if err != nil {
					return fmt.Errorf("read prompt file: %w", err)
				}
				opts.prompt = strings.TrimSpace(string(data))
				log.FromContext(ctx).Printf("Loaded prompt from %s\n", promptFile)
			}

			return runNew(ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.sourceBranch, "branch", "b", "", "Source branch to create the session from (default: current)")
	cmd.Flags().StringVarP(&opts.suffix, "name", "n", "", "Session name suffix (default: timestamp)")
	cmd.Flags().BoolVar(&opts.pull, "pull", false, "Fetch and fast-forward the source branch first")
	cmd.Flags().BoolVar(&opts.printPath, "print-path", false, "Print the worktree path and exit (for scripting)")
	cmd.Flags().StringVarP(&promptFile, "prompt-file", "f", "", "Read the initial prompt from a file")
	cmd.Flags().BoolVar(&opts.copyPath, "copy", false, "Copy the worktree path to the clipboard")

	return cmd
}

type newOptions struct {
	suffix       string // session name suffix; timestamp when empty
	sourceBranch string // branch to create from; current branch when empty
	repoPath     string
	prompt       string
	pull         bool
	printPath    bool
	copyPath     bool
}

// runNew creates a fresh claude-wt-<suffix> worktree session, also
// reached through work for custom identifiers.
func runNew(ctx context.Context, opts newOptions) error {
	logger := log.FromContext(ctx)
	out := output.FromContext(ctx)

	repoRoot, err := resolveRepoRoot(ctx, opts.repoPath)
	if err != nil {
		return err
	}

	sourceBranch := opts.sourceBranch
	if sourceBranch == "" {
		sourceBranch, err = git.CurrentBranch(ctx, repoRoot)
		if err != nil {
			return err
		}
	}
	// origin/foo style refs can't be switched to directly
	isRemoteRef := strings.Contains(sourceBranch, "/")

	if opts.pull {
		logger.Println("Fetching latest changes...")
		if err := git.Fetch(ctx, repoRoot, ""); err != nil {
			return err
		}
		if !isRemoteRef {
			if err := git.Switch(ctx, repoRoot, sourceBranch); err != nil {
				return err
			}
			if err := git.PullFastForward(ctx, repoRoot); err != nil {
				return err
			}
		}
		logger.Println("Synced with origin")
	}

	suffix := opts.suffix
	if suffix == "" {
		suffix = time.Now().Format("20060102-150405")
	}
	sessionBranch := worktree.BranchName(suffix)

	wtPath, err := materializeWorktree(ctx, repoRoot, sessionBranch, sourceBranch, sessionBranch)
	if err != nil {
		return err
	}

	if opts.printPath {
		out.Path(wtPath)
		return nil
	}
	if opts.copyPath {
		if err := clipboard.WriteAll(wtPath); err != nil {
			logger.Printf("Warning: could not copy path to clipboard: %v\n", err)
		} else {
			logger.Println("Worktree path copied to clipboard")
		}
	}

	logger.Printf("Source branch: %s\n", sourceBranch)
	logger.Println("Switch sessions with 'claude-wt switch', remove with 'claude-wt clean'")

	return launchSession(ctx, repoRoot, wtPath, opts.prompt, false)
}
