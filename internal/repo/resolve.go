// Package repo resolves the repository root a command operates on.
//
// The precedence order is fixed and fails loudly instead of falling back
// silently:
//
//  1. explicit --repo-path flag
//  2. repo_path config field
//  3. repo short-name config field -> error (ambiguous across machines)
//  4. git rev-parse --show-toplevel of the working directory
//  5. error with remediation steps
package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/decoder/claude-wt/internal/git"
)

// Fields carries the optional config-sourced repository hints.
type Fields struct {
	RepoPath string // full path to the repository
	Repo     string // short name, deliberately unsupported
}

// gitToplevel asks git for the repository root of the current directory.
// Swapped out in tests.
var gitToplevel = func(ctx context.Context) (string, error) {
	return git.ShowTopLevel(ctx, "")
}

// Resolve picks the repository root with strict precedence.
// Explicit paths are returned in absolute form without an existence
// check; a bad path surfaces later when git commands run against it.
func Resolve(ctx context.Context, explicitPath string, fields Fields) (string, error) {
	if explicitPath != "" {
		return filepath.Abs(explicitPath)
	}

	if fields.RepoPath != "" {
		return filepath.Abs(fields.RepoPath)
	}

	if fields.Repo != "" {
		return "", fmt.Errorf(
			"cannot resolve short name %q: set repo_path with the full path instead (e.g. repo_path = \"/full/path/to/%s\")",
			fields.Repo, fields.Repo)
	}

	top, err := gitToplevel(ctx)
	if err != nil {
		return "", fmt.Errorf(
			"cannot determine repository path. You must either:\n"+
				"  1. run from within a git repository, or\n"+
				"  2. pass --repo-path, or\n"+
				"  3. set repo_path in the config file\n"+
				"error: %v", err)
	}
	return strings.TrimSpace(top), nil
}
