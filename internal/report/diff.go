package report

import (
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff renders a classic unified patch for a file's would-be
// transform, for dry-run output. Empty when the texts are identical.
func UnifiedDiff(name, before, after string) string {
	if before == after {
		return ""
	}
	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(before),
		B:        splitLinesKeepNL(after),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return ""
	}
	return s
}

// splitLinesKeepNL keeps the trailing newline on each element, which
// produces cleaner unified hunks.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.SplitAfter(s, "\n")
}
