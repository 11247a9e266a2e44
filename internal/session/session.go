// Package session builds the agent command launched inside a worktree.
package session

import (
	"strings"

	"github.com/decoder/claude-wt/internal/config"
)

// Command describes one agent invocation.
type Command struct {
	Dir  string   // worktree the agent runs in
	Args []string // argv, Args[0] is the binary
}

// Build assembles the agent invocation for a worktree. repoRoot is passed
// via --add-dir so the agent can read the main checkout without editing
// it. Resume sessions get --continue and never an initial prompt.
func Build(agent config.AgentConfig, repoRoot, wtPath, prompt string, resume bool) Command {
	args := []string{agent.Command, "--dangerously-skip-permissions", "--add-dir", repoRoot}
	args = append(args, agent.Args...)

	if resume {
		args = append(args, "--continue")
	} else if prompt != "" {
		args = append(args, "--", prompt)
	}

	return Command{Dir: wtPath, Args: args}
}

// ShellLine renders the command for tmux send-keys. Each argument is
// single-quoted so prompts with spaces or shell metacharacters survive.
func (c Command) ShellLine() string {
	quoted := make([]string, len(c.Args))
	for i, arg := range c.Args {
		quoted[i] = shellQuote(arg)
	}
	return strings.Join(quoted, " ")
}

// shellQuote escapes a string for safe use in shell commands.
// It wraps the value in single quotes and escapes any embedded single quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}
