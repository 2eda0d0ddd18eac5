// Package detect finds evidence of the legacy Synopsys/Polaris
// static-analysis integration in CI configuration files and classifies
// each file with a single verdict. Matching is line/regex based on
// purpose: CI files across dialects are treated as opaque text, never
// parsed as YAML or Groovy.
package detect

import "regexp"

// Pattern group identifiers, in precedence order.
const (
	GroupDirect            = "direct"
	GroupTemplateReference = "template_reference"
	GroupSharedLibrary     = "shared_library"
	GroupContainer         = "container"
	GroupKeyword           = "keyword"
)

// PatternGroup is a named set of expressions with a precedence rank.
// Lower rank is checked first; within the classifier the first satisfied
// rule wins.
type PatternGroup struct {
	ID       string
	Rank     int
	Patterns []*regexp.Regexp
}

// Catalog is the fixed evidence catalog. Order follows Rank.
var Catalog = []PatternGroup{
	{
		ID:   GroupDirect,
		Rank: 0,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bSynopsysSecurityScan@`),
			regexp.MustCompile(`(?i)\bSynopsysDetectTask@`),
			regexp.MustCompile(`(?i)\bsynopsys-sig/detect-action\b`),
			regexp.MustCompile(`(?i)\bsynopsys-sig/synopsys-action\b`),
			regexp.MustCompile(`(?i)\bdetect\.(sh|jar|ps1)\b`),
			regexp.MustCompile(`(?i)\bsynopsys\s+detect\b`),
			regexp.MustCompile(`(?i)\bpolaris\s+(analyze|capture|install)\b`),
			regexp.MustCompile(`(?i)\b(synopsysDetect|polarisScan|coverityScan)\s*\(`),
		},
	},
	{
		ID:   GroupTemplateReference,
		Rank: 1,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)^\s*-?\s*template\s*:\s*\S`),
			regexp.MustCompile(`(?im)^\s*extends\s*:`),
			regexp.MustCompile(`(?im)^\s*uses\s*:\s*\S+/\.github/workflows/\S+\.ya?ml@`),
			regexp.MustCompile(`(?im)^\s*uses\s*:\s*\./\.github/workflows/\S+\.ya?ml`),
		},
	},
	{
		ID:   GroupSharedLibrary,
		Rank: 2,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)@Library\s*\(`),
			regexp.MustCompile(`(?im)^\s*library\s+['"]`),
			regexp.MustCompile(`(?i)\blibrary\s+identifier\s*:`),
		},
	},
	{
		ID:   GroupContainer,
		Rank: 3,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bdocker\s+run\b`),
			regexp.MustCompile(`(?im)^\s*container\s*:`),
			regexp.MustCompile(`(?im)^\s*image\s*:\s*\S`),
		},
	},
	{
		ID:   GroupKeyword,
		Rank: 4,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bpolaris\b`),
			regexp.MustCompile(`(?i)\bsynopsys\b`),
			regexp.MustCompile(`(?i)\bcoverity\b`),
			regexp.MustCompile(`(?i)\bblack[\s_-]?duck\b`),
			// Credential/URL key and variable forms hide the bare word
			// behind a following word character.
			regexp.MustCompile(`(?i)\bpolaris_?(server_?url|access_?token)\b`),
		},
	},
}

// invocation style labels for direct verdicts.
const (
	StyleADOTask       = "ado_task"
	StyleGitHubAction  = "github_action"
	StyleCLI           = "cli"
	StyleSharedLibrary = "shared_library"
	StyleUnknown       = "unknown"
)

// stylePattern pairs a style label with its identifying expression.
// Checked in order; the first match names the invocation style.
type stylePattern struct {
	Style   string
	Pattern *regexp.Regexp
}

var stylePatterns = []stylePattern{
	{StyleADOTask, regexp.MustCompile(`(?i)\b(SynopsysSecurityScan|SynopsysDetectTask)@`)},
	{StyleGitHubAction, regexp.MustCompile(`(?i)\bsynopsys-sig/(detect-action|synopsys-action)\b`)},
	{StyleCLI, regexp.MustCompile(`(?i)(\bdetect\.(sh|jar|ps1)\b|\bsynopsys\s+detect\b|\bpolaris\s+(analyze|capture|install)\b)`)},
	{StyleSharedLibrary, regexp.MustCompile(`(?i)\b(synopsysDetect|polarisScan|coverityScan)\s*\(`)},
}
