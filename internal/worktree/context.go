package worktree

import (
	"fmt"
	"os"
	"path/filepath"
)

// contextTemplate is written as CLAUDE.md into every new worktree so the
// agent knows it is in an isolated checkout, not the main repository.
const contextTemplate = `# Worktree Context

**CRITICAL: You are working in a Git worktree, NOT the main repository!**

## Location Information
- **Current Worktree Path**: ` + "`%[1]s`" + `
- **Main Repository**: ` + "`%[2]s`" + `
- **Issue**: %[3]s
- **Branch**: ` + "`%[4]s`" + `

## Important Notes
- This is an ISOLATED worktree for issue %[3]s
- All changes are on branch ` + "`%[4]s`" + `
- You are NOT in the main repository
- Run ALL commands from THIS worktree directory

## Common Commands
` + "```bash" + `
# Check your current location
pwd  # Should show: %[1]s

# Commit changes
git add .
git commit -m "your message"

# Push to remote
git push origin %[4]s

# See main repo (DO NOT edit there!)
ls %[2]s
` + "```" + `

## Remember
You are working in the worktree at:
%[1]s

This is completely separate from the main repo. All your work here is isolated to the %[4]s branch.
`

// WriteContext writes the worktree's CLAUDE.md context file. Overwrites
// any copy carried over from the main repo so the agent sees the
// worktree's own coordinates.
func WriteContext(wtPath, issueID, branch, repoRoot string) error {
	content := fmt.Sprintf(contextTemplate, wtPath, repoRoot, issueID, branch)
	if err := os.WriteFile(filepath.Join(wtPath, "CLAUDE.md"), []byte(content), 0644); err != nil {
		return fmt.Errorf("write worktree context: %w", err)
	}
	return nil
}
