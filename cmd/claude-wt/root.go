package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/decoder/claude-wt/internal/config"
	"github.com/decoder/claude-wt/internal/git"
	"github.com/decoder/claude-wt/internal/log"
	"github.com/decoder/claude-wt/internal/output"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Shared state injected into commands
	cfg *config.Config
)

// Command group IDs for organizing help output
const (
	GroupSession = "session"
	GroupIssue   = "issue"
	GroupUtility = "utility"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "claude-wt",
	Short: "Isolated git worktrees for parallel agent sessions",
	Long: `claude-wt manages git worktrees for parallel AI-assisted coding sessions.

Each session gets an isolated worktree in a sibling directory and its own
tmux session running the coding agent, so work on multiple issues or PRs
never collides.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Flags are parsed by now, so the logger sees --verbose/--quiet
		logger := log.New(cmd.ErrOrStderr(), verbose, quiet)
		cmd.SetContext(log.WithLogger(cmd.Context(), logger))

		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}
		return git.CheckGit()
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg = &loadedCfg

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Printer on stdout for data. The logger is attached in
	// PersistentPreRunE, after flags are parsed.
	ctx = output.WithPrinter(ctx, os.Stdout)

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupSession, Title: "Session Commands:"},
		&cobra.Group{ID: GroupIssue, Title: "Issue & PR Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
	)

	// Session commands
	rootCmd.AddCommand(newNewCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newSwitchCmd())
	rootCmd.AddCommand(newCleanCmd())

	// Issue & PR commands
	rootCmd.AddCommand(newIssueCmd())
	rootCmd.AddCommand(newIssuesCmd())
	rootCmd.AddCommand(newPrCmd())
	rootCmd.AddCommand(newWorkCmd())

	// Utility commands
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newInitCmd())
}
