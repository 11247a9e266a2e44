package git

import "context"

// CleanOutcome records the result of removing one worktree during a bulk
// clean. Callers inspect the slice instead of scraping printed output.
type CleanOutcome struct {
	Path   string
	Branch string
	Err    error // nil on success
}

// Succeeded returns the number of successful outcomes.
func Succeeded(outcomes []CleanOutcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of failed outcomes.
func Failed(outcomes []CleanOutcome) int {
	return len(outcomes) - Succeeded(outcomes)
}

// RemoveWorktrees removes the given worktrees best-effort: a failure is
// recorded and removal continues with the remaining worktrees. After a
// failed removal the repo's worktree list is pruned so stale references
// don't block later attempts.
func RemoveWorktrees(ctx context.Context, repoPath string, worktrees []WorktreeInfo) []CleanOutcome {
	outcomes := make([]CleanOutcome, 0, len(worktrees))

	for _, wt := range worktrees {
		err := RemoveWorktree(ctx, repoPath, wt.Path)
		if err != nil {
			// Stale references shouldn't block the rest of the batch
			_ = PruneWorktrees(ctx, repoPath)
		}
		outcomes = append(outcomes, CleanOutcome{
			Path:   wt.Path,
			Branch: wt.Branch,
			Err:    err,
		})
	}

	return outcomes
}
