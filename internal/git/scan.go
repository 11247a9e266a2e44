package git

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Descriptor identifies one managed worktree found on disk.
// Recomputed on every invocation, never stored.
type Descriptor struct {
	Path    string `json:"path"`
	Repo    string `json:"repo"`
	Session string `json:"session"`
}

// ScanWorktrees walks scanDir for "*-worktrees" container directories and
// returns a descriptor for every git worktree inside them. The session
// name is the worktree's branch with branchPrefix stripped and slashes
// replaced by dashes. Directories that fail git inspection fall back to
// their directory name rather than being dropped.
//
// Containers are inspected in parallel; results are sorted by repo then
// session for stable output.
func ScanWorktrees(ctx context.Context, scanDir, branchPrefix string) ([]Descriptor, error) {
	entries, err := os.ReadDir(scanDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var containers []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasSuffix(entry.Name(), "-worktrees") {
			containers = append(containers, filepath.Join(scanDir, entry.Name()))
		}
	}
	if len(containers) == 0 {
		return nil, nil
	}

	// Per-container results stored by index for stable ordering
	results := make([][]Descriptor, len(containers))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8) // Bound concurrent git operations

	for i, container := range containers {
		g.Go(func() error {
			results[i] = scanContainer(ctx, container, branchPrefix)
			return nil // Failures degrade to fallback descriptors
		})
	}
	_ = g.Wait()

	var all []Descriptor
	for _, r := range results {
		all = append(all, r...)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Repo != all[j].Repo {
			return all[i].Repo < all[j].Repo
		}
		return all[i].Session < all[j].Session
	})

	return all, nil
}

func scanContainer(ctx context.Context, container, branchPrefix string) []Descriptor {
	entries, err := os.ReadDir(container)
	if err != nil {
		return nil
	}

	var descriptors []Descriptor
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(container, entry.Name())
		if !IsWorktree(path) {
			continue
		}
		descriptors = append(descriptors, describeWorktree(ctx, path, branchPrefix))
	}
	return descriptors
}

func describeWorktree(ctx context.Context, path, branchPrefix string) Descriptor {
	mainRepo, err := MainRepoPath(ctx, path)
	if err != nil {
		return Descriptor{Path: path, Repo: "unknown", Session: filepath.Base(path)}
	}

	branch, err := CurrentBranch(ctx, path)
	if err != nil {
		return Descriptor{Path: path, Repo: filepath.Base(mainRepo), Session: filepath.Base(path)}
	}

	session := strings.ReplaceAll(strings.TrimPrefix(branch, branchPrefix), "/", "-")

	return Descriptor{
		Path:    path,
		Repo:    filepath.Base(mainRepo),
		Session: session,
	}
}
