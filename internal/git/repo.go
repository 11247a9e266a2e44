package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// ShowTopLevel returns the root of the repository containing dir
// (or the working directory when dir is empty).
func ShowTopLevel(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %v", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// MainRepoPath returns the main repository root for a worktree path.
// Uses --git-common-dir, which points at the main repo's .git directory
// from any linked worktree.
func MainRepoPath(ctx context.Context, worktreePath string) (string, error) {
	output, err := outputGit(ctx, worktreePath, "rev-parse", "--git-common-dir")
	if err != nil {
		return "", fmt.Errorf("failed to get main repo: %v", err)
	}
	gitDir := strings.TrimSpace(string(output))
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(worktreePath, gitDir)
	}
	return filepath.Dir(gitDir), nil
}

// CurrentBranch returns the current branch name.
// Returns "(detached)" for detached HEAD state.
func CurrentBranch(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to get branch: %v", err)
	}
	branch := strings.TrimSpace(string(output))
	if branch == "" {
		return "(detached)", nil
	}
	return branch, nil
}

// DefaultBranch returns the default branch name for the repo (e.g. "main").
func DefaultBranch(ctx context.Context, repoPath string) string {
	output, err := outputGit(ctx, repoPath, "symbolic-ref", "refs/remotes/origin/HEAD")
	if err == nil {
		ref := strings.TrimSpace(string(output))
		if parts := strings.Split(ref, "/"); len(parts) > 0 {
			return parts[len(parts)-1]
		}
	}

	if runGit(ctx, repoPath, "rev-parse", "--verify", "main") == nil {
		return "main"
	}
	if runGit(ctx, repoPath, "rev-parse", "--verify", "master") == nil {
		return "master"
	}
	return "main"
}

// BranchExists returns true if the local branch exists in the repo.
func BranchExists(ctx context.Context, repoPath, branch string) bool {
	return runGit(ctx, repoPath, "show-ref", "--verify", "--quiet", "refs/heads/"+branch) == nil
}

// CreateBranch creates a local branch starting at base.
// If base is empty the branch starts at HEAD.
func CreateBranch(ctx context.Context, repoPath, branch, base string) error {
	args := []string{"branch", branch}
	if base != "" {
		args = append(args, base)
	}
	return runGit(ctx, repoPath, args...)
}

// DeleteBranch force-deletes a local branch.
func DeleteBranch(ctx context.Context, repoPath, branch string) error {
	return runGit(ctx, repoPath, "branch", "-D", branch)
}

// LocalBranches returns all local branch names in the repo.
func LocalBranches(ctx context.Context, repoPath string) ([]string, error) {
	output, err := outputGit(ctx, repoPath, "branch", "--list", "--format", "%(refname:short)")
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %v", err)
	}

	var branches []string
	for _, line := range strings.Split(string(output), "\n") {
		if b := strings.TrimSpace(line); b != "" {
			branches = append(branches, b)
		}
	}
	return branches, nil
}

// Fetch fetches from origin. If ref is non-empty only that ref is fetched.
func Fetch(ctx context.Context, repoPath, ref string) error {
	args := []string{"fetch", "origin"}
	if ref != "" {
		args = append(args, ref)
	}
	return runGit(ctx, repoPath, args...)
}

// Switch checks out a branch in the repo.
func Switch(ctx context.Context, repoPath, branch string) error {
	return runGit(ctx, repoPath, "switch", "--quiet", branch)
}

// PullFastForward fast-forwards the current branch from its upstream.
func PullFastForward(ctx context.Context, dir string) error {
	return runGit(ctx, dir, "pull", "--ff-only", "--quiet")
}

// Pull pulls the current branch from its upstream.
func Pull(ctx context.Context, dir string) error {
	return runGit(ctx, dir, "pull", "--quiet")
}

// TrackRemoteBranch creates a local branch tracking origin/<branch>.
func TrackRemoteBranch(ctx context.Context, repoPath, branch string) error {
	return runGit(ctx, repoPath, "branch", "--track", branch, "origin/"+branch)
}

// FetchPRBranch makes the head branch of a pull request available locally.
// Same-repo PRs fetch the branch from origin and track it; fork PRs fall
// back to fetching refs/pull/<n>/head into a local branch of the same name.
func FetchPRBranch(ctx context.Context, repoPath, branch, prNumber string) error {
	if Fetch(ctx, repoPath, branch) == nil {
		if BranchExists(ctx, repoPath, branch) {
			return nil
		}
		return TrackRemoteBranch(ctx, repoPath, branch)
	}

	// Fork PR: branch does not exist in origin
	return runGit(ctx, repoPath, "fetch", "origin",
		fmt.Sprintf("pull/%s/head:%s", prNumber, branch))
}
