package detect

import (
	"path/filepath"
	"strings"
)

// CI dialect labels derived from path shape alone.
const (
	DialectGitHubActions = "github_actions"
	DialectAzureDevOps   = "azure_devops"
	DialectJenkins       = "jenkins"
	DialectTravis        = "travis"
	DialectBamboo        = "bamboo"
	DialectUnknown       = "unknown"
)

// DialectForPath labels the CI dialect of a file from its path string.
// Pure function; never touches the filesystem.
func DialectForPath(path string) string {
	norm := filepath.ToSlash(path)
	base := strings.ToLower(filepath.Base(norm))
	lower := strings.ToLower(norm)

	switch {
	case strings.Contains(lower, ".github/workflows/"):
		return DialectGitHubActions
	case strings.HasPrefix(base, "azure-pipelines") && isYAML(base):
		return DialectAzureDevOps
	case strings.HasSuffix(base, ".azure-pipelines.yml") || strings.HasSuffix(base, ".azure-pipelines.yaml"):
		return DialectAzureDevOps
	case strings.HasPrefix(base, "jenkinsfile"):
		return DialectJenkins
	case base == ".travis.yml":
		return DialectTravis
	case strings.Contains(lower, "bamboo-specs/"):
		return DialectBamboo
	default:
		return DialectUnknown
	}
}

// Mutable reports whether the dialect is the one this tool rewrites.
func Mutable(dialect string) bool {
	return dialect == DialectAzureDevOps
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml")
}
