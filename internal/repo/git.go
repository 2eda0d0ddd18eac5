package repo

import (
	"fmt"
	"os/exec"
	"strings"
)

// Branch returns the current branch name, or empty outside git.
func Branch(repoPath string) string {
	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = repoPath
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// Commit stages the given paths (relative to the repo) and commits them.
func Commit(repoPath string, paths []string, message string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, paths...)
	if out, err := run(repoPath, args...); err != nil {
		return fmt.Errorf("git add: %v: %s", err, out)
	}
	if out, err := run(repoPath, "commit", "-m", message); err != nil {
		return fmt.Errorf("git commit: %v: %s", err, out)
	}
	return nil
}

// Push pushes the current branch to the named remote.
func Push(repoPath, remote string) error {
	if out, err := run(repoPath, "push", remote, "HEAD"); err != nil {
		return fmt.Errorf("git push: %v: %s", err, out)
	}
	return nil
}

func run(repoPath string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = repoPath
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}
