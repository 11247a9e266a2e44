package tmux

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/decoder/claude-wt/internal/log"
	"github.com/decoder/claude-wt/internal/session"
)

// Launcher starts agent sessions, in tmux when possible and directly in
// the current terminal otherwise.
type Launcher struct {
	client *Client
}

// NewLauncher returns a Launcher using the given tmux client.
func NewLauncher(client *Client) *Launcher {
	return &Launcher{client: client}
}

// Launch runs the agent command in the named tmux session, creating the
// session if needed and switching the attached client to it. Outside
// tmux, or when tmux is missing, the agent runs directly in the current
// terminal instead.
func (l *Launcher) Launch(ctx context.Context, name string, agent session.Command) error {
	logger := log.FromContext(ctx)

	if !InsideTmux() || !l.client.Available() {
		logger.Printf("not inside tmux, launching agent directly in %s\n", agent.Dir)
		return l.runDirect(ctx, agent)
	}

	exists, err := l.client.HasSession(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		if err := l.client.NewSession(ctx, name, agent.Dir); err != nil {
			return err
		}
		logger.Printf("created tmux session %s\n", name)
	}

	if err := l.client.SendLine(ctx, name, agent.ShellLine()); err != nil {
		return err
	}
	if err := l.client.SwitchClient(ctx, name); err != nil {
		return err
	}
	logger.Printf("switched to tmux session %s\n", name)
	return nil
}

// runDirect executes the agent in the foreground, wired to the caller's
// terminal.
func (l *Launcher) runDirect(ctx context.Context, agent session.Command) error {
	if _, err := exec.LookPath(agent.Args[0]); err != nil {
		return fmt.Errorf("agent %q not found in PATH", agent.Args[0])
	}

	c := exec.CommandContext(ctx, agent.Args[0], agent.Args[1:]...)
	c.Dir = agent.Dir
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("run agent: %w", err)
	}
	return nil
}
