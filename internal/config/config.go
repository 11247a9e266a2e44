package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// AgentConfig holds the coding agent launch configuration
type AgentConfig struct {
	Command string   `toml:"command"` // binary to launch in new sessions
	Args    []string `toml:"args"`    // extra args appended to every launch
}

// LinearConfig holds Linear API credentials. Environment variables
// LINEAR_API_KEY and LINEAR_USER_ID override the file values.
type LinearConfig struct {
	APIKey string `toml:"api_key"`
	UserID string `toml:"user_id"`
}

// Config holds the claude-wt configuration
type Config struct {
	ScanDir  string       `toml:"scan_dir"`  // where worktree containers are scanned for
	RepoPath string       `toml:"repo_path"` // absolute path of the default repository
	Repo     string       `toml:"repo"`      // short repository name (requires repo_path)
	Agent    AgentConfig  `toml:"agent"`
	Linear   LinearConfig `toml:"linear"`
}

// DefaultAgentCommand is the agent binary launched in new sessions
const DefaultAgentCommand = "claude"

// Default returns the default configuration
func Default() Config {
	return Config{
		ScanDir: "~/dev",
		Agent: AgentConfig{
			Command: DefaultAgentCommand,
		},
	}
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	if len(path) >= 1 && path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "claude-wt", "config.toml"), nil
}

// Load reads config from ~/.config/claude-wt/config.toml
// Returns Default() if file doesn't exist (no error)
// Returns error only if file exists but is invalid
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Default(), nil
	}
	return loadFrom(path)
}

func loadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if cfg.ScanDir, err = expandPath(cfg.ScanDir); err != nil {
				return Default(), fmt.Errorf("expand scan_dir: %w", err)
			}
			return applyEnv(cfg), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidatePath(cfg.ScanDir, "scan_dir"); err != nil {
		return Default(), err
	}
	if err := ValidatePath(cfg.RepoPath, "repo_path"); err != nil {
		return Default(), err
	}

	// Expand ~ (shell doesn't expand in config files)
	if cfg.ScanDir != "" {
		expanded, err := expandPath(cfg.ScanDir)
		if err != nil {
			return Default(), fmt.Errorf("expand scan_dir: %w", err)
		}
		cfg.ScanDir = expanded
	}
	if cfg.RepoPath != "" {
		expanded, err := expandPath(cfg.RepoPath)
		if err != nil {
			return Default(), fmt.Errorf("expand repo_path: %w", err)
		}
		cfg.RepoPath = expanded
	}

	if cfg.Repo != "" && cfg.RepoPath == "" {
		return Default(), fmt.Errorf("config sets repo %q without repo_path: set repo_path to the repository's absolute path", cfg.Repo)
	}

	if cfg.ScanDir == "" {
		cfg.ScanDir = Default().ScanDir
	}
	if cfg.Agent.Command == "" {
		cfg.Agent.Command = DefaultAgentCommand
	}

	return applyEnv(cfg), nil
}

// applyEnv layers environment credentials over the file config
func applyEnv(cfg Config) Config {
	if v := os.Getenv("LINEAR_API_KEY"); v != "" {
		cfg.Linear.APIKey = v
	}
	if v := os.Getenv("LINEAR_USER_ID"); v != "" {
		cfg.Linear.UserID = v
	}
	return cfg
}
