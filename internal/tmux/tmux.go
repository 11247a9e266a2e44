// Package tmux manages the tmux sessions worktrees run in.
package tmux

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/decoder/claude-wt/internal/cmd"
)

// ErrTmuxNotFound is returned when the tmux binary is not installed.
var ErrTmuxNotFound = errors.New("tmux not found in PATH")

// workWindow is the window every session starts with. Commands are sent
// to it by name so later windows don't receive them.
const workWindow = "work"

// Client wraps tmux invocations. The binary path is overridable for
// tests.
type Client struct {
	tmuxPath string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTmuxPath sets a custom path to the tmux binary.
func WithTmuxPath(path string) ClientOption {
	return func(c *Client) {
		c.tmuxPath = path
	}
}

// NewClient returns a tmux client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{tmuxPath: "tmux"}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Available reports whether the tmux binary can be found.
func (c *Client) Available() bool {
	_, err := exec.LookPath(c.tmuxPath)
	return err == nil
}

// InsideTmux reports whether the current process runs inside a tmux
// session.
func InsideTmux() bool {
	return os.Getenv("TMUX") != ""
}

// HasSession checks whether a session exists. tmux exits 1 for a missing
// session, other failures are real errors. Runs outside the cmd helpers
// because the raw exit code matters here.
func (c *Client) HasSession(ctx context.Context, name string) (bool, error) {
	err := exec.CommandContext(ctx, c.tmuxPath, "has-session", "-t", name).Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return false, nil
		}
		return false, fmt.Errorf("check session %s: %w", name, err)
	}
	return true, nil
}

// NewSession creates a detached session rooted at dir with a single
// window named "work".
func (c *Client) NewSession(ctx context.Context, name, dir string) error {
	err := cmd.RunContext(ctx, "", c.tmuxPath,
		"new-session", "-d", "-s", name, "-c", dir, "-n", workWindow)
	if err != nil {
		return fmt.Errorf("create session %s: %w", name, err)
	}
	return nil
}

// SendLine types a shell line into the session's work window and presses
// Enter.
func (c *Client) SendLine(ctx context.Context, name, line string) error {
	target := name + ":" + workWindow
	if err := cmd.RunContext(ctx, "", c.tmuxPath, "send-keys", "-t", target, line, "Enter"); err != nil {
		return fmt.Errorf("send to session %s: %w", name, err)
	}
	return nil
}

// SwitchClient moves the attached tmux client to the session. Only valid
// inside tmux.
func (c *Client) SwitchClient(ctx context.Context, name string) error {
	if err := cmd.RunContext(ctx, "", c.tmuxPath, "switch-client", "-t", name); err != nil {
		return fmt.Errorf("switch to session %s: %w", name, err)
	}
	return nil
}

// KillSession terminates a session if it exists.
func (c *Client) KillSession(ctx context.Context, name string) error {
	exists, err := c.HasSession(ctx, name)
	if err != nil || !exists {
		return err
	}
	if err := cmd.RunContext(ctx, "", c.tmuxPath, "kill-session", "-t", name); err != nil {
		return fmt.Errorf("kill session %s: %w", name, err)
	}
	return nil
}
