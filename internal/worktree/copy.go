package worktree

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// localConfigEntries are gitignored files an agent session usually needs.
// CLAUDE.md is copied last and later overwritten by WriteContext when the
// worktree gets its own context file.
var localConfigEntries = []string{".envrc", ".mcp.json", ".claude", "CLAUDE.md"}

// CopyLocalConfig copies local-only config files from the main repo into
// a fresh worktree. Best effort: missing entries are skipped and a copy
// failure skips that entry rather than failing the worktree. Returns the
// names that were copied.
func CopyLocalConfig(repoRoot, wtPath string) []string {
	var copied []string
	for _, name := range localConfigEntries {
		src := filepath.Join(repoRoot, name)
		info, err := os.Lstat(src)
		if err != nil {
			continue
		}

		dst := filepath.Join(wtPath, name)
		if info.IsDir() {
			err = copyDir(src, dst)
		} else {
			err = copyFile(src, dst, info.Mode())
		}
		if err == nil {
			copied = append(copied, name)
		}
	}
	return copied
}

func copyFile(src, dst string, mode fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil // Skip symlinks and special files
		}
		return copyFile(path, target, info.Mode())
	})
}
