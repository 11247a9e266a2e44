// Package github wraps the gh CLI for pull request lookups. gh handles
// auth and host resolution, so no token plumbing is needed here.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/decoder/claude-wt/internal/cmd"
)

// ErrGHNotFound is returned when the gh binary is not installed.
var ErrGHNotFound = fmt.Errorf("gh not found in PATH: install the GitHub CLI from https://cli.github.com")

// Author is the PR author as reported by gh.
type Author struct {
	Login string `json:"login"`
}

// PR holds the pull request fields this tool consumes.
type PR struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	HeadRefName string `json:"headRefName"`
	Author      Author `json:"author"`
}

// CheckGH verifies the gh binary is available.
func CheckGH() error {
	if _, err := exec.LookPath("gh"); err != nil {
		return ErrGHNotFound
	}
	return nil
}

// View fetches one pull request by number.
func View(ctx context.Context, repoPath, number string) (PR, error) {
	out, err := cmd.OutputContext(ctx, repoPath, "gh", "pr", "view", number,
		"--json", "headRefName,title,number,body")
	if err != nil {
		return PR{}, fmt.Errorf("fetch PR %s: %w", number, err)
	}

	var pr PR
	if err := json.Unmarshal(out, &pr); err != nil {
		return PR{}, fmt.Errorf("parse PR %s: %w", number, err)
	}
	return pr, nil
}

// ListOpen fetches the repo's open pull requests.
func ListOpen(ctx context.Context, repoPath string) ([]PR, error) {
	out, err := cmd.OutputContext(ctx, repoPath, "gh", "pr", "list",
		"--json", "number,title,author,headRefName")
	if err != nil {
		return nil, fmt.Errorf("list open PRs: %w", err)
	}

	var prs []PR
	if err := json.Unmarshal(out, &prs); err != nil {
		return nil, fmt.Errorf("parse PR list: %w", err)
	}
	return prs, nil
}

var linearIDRe = regexp.MustCompile(`(?i)\b([A-Z]{2,4})-(\d+)\b`)

// LinearID extracts a Linear issue identifier from a PR's head branch or
// body, normalized to upper case. Branch names win over body mentions.
// Returns "" when neither carries one.
func LinearID(pr PR) string {
	for _, s := range []string{pr.HeadRefName, pr.Body} {
		if m := linearIDRe.FindStringSubmatch(s); m != nil {
			return strings.ToUpper(m[1]) + "-" + m[2]
		}
	}
	return ""
}
