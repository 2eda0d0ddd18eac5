// Package repo discovers repositories under a root and the candidate CI
// files inside each one. Discovery is deliberately dumb: it feeds paths
// to the scanner and never inspects file content.
package repo

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/secpipe-tools/bdmigrate/internal/migrate"
)

// Repo is one repository working copy under the run root.
type Repo struct {
	Name      string
	Path      string
	Branch    string
	BuildType string
}

// Discover lists repositories under root. A root that is itself a git
// working copy is treated as a single repo; otherwise every immediate
// child directory counts as one.
func Discover(root string) ([]Repo, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if isRepoRoot(abs) {
		return []Repo{describe(abs)}, nil
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, err
	}
	repos := []Repo{}
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		repos = append(repos, describe(filepath.Join(abs, e.Name())))
	}
	if len(repos) == 0 {
		// No children look like repos; scan the root itself.
		repos = append(repos, describe(abs))
	}
	return repos, nil
}

// CIFiles returns candidate CI file paths inside repoPath, relative to
// it, matched by the configured doublestar globs. Backup artifacts are
// excluded; results are deduplicated and sorted.
func CIFiles(repoPath string, globs []string) ([]string, error) {
	fsys := os.DirFS(repoPath)
	seen := map[string]bool{}
	out := []string{}
	for _, pattern := range globs {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			// A malformed pattern skips that pattern, not the repo.
			continue
		}
		for _, m := range matches {
			if seen[m] || strings.HasSuffix(m, migrate.BackupSuffix) {
				continue
			}
			info, err := os.Stat(filepath.Join(repoPath, filepath.FromSlash(m)))
			if err != nil || info.IsDir() {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Backups lists backup artifacts inside repoPath, relative to it.
func Backups(repoPath string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(repoPath), "**/*"+migrate.BackupSuffix)
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

func describe(path string) Repo {
	return Repo{
		Name:      filepath.Base(path),
		Path:      path,
		Branch:    Branch(path),
		BuildType: BuildType(path),
	}
}

func isRepoRoot(path string) bool {
	if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
		return true
	}
	return false
}

// BuildType labels the repository's build system from marker files.
// Empty when nothing is recognized; the report column is optional.
func BuildType(repoPath string) string {
	markers := []struct {
		file  string
		label string
	}{
		{"pom.xml", "maven"},
		{"build.gradle", "gradle"},
		{"build.gradle.kts", "gradle"},
		{"package.json", "npm"},
		{"go.mod", "go"},
		{"requirements.txt", "python"},
		{"setup.py", "python"},
	}
	for _, m := range markers {
		if _, err := os.Stat(filepath.Join(repoPath, m.file)); err == nil {
			return m.label
		}
	}
	return ""
}
