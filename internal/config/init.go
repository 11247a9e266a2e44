package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfigFile = `# claude-wt configuration
#
# Directory scanned for "*-worktrees" containers by list and clean --all.
scan_dir = "~/dev"

# Default repository used when a command runs outside a git checkout.
# repo_path = "/home/you/dev/myrepo"
# repo = "myrepo"

[agent]
# Command launched inside new worktree sessions.
command = "claude"
# args = ["--model", "opus"]

[linear]
# Also read from LINEAR_API_KEY and LINEAR_USER_ID.
# api_key = "lin_api_..."
# user_id = "..."
`

// Init writes a commented default config file and returns its path.
// An existing file is left alone unless force is set.
func Init(force bool) (string, error) {
	path, err := configPath()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigFile), 0644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
