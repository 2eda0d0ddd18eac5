// Package transform rewrites Azure DevOps pipeline text from the legacy
// Synopsys/Polaris integration to the Black Duck successor. Rules are
// pure text->text functions applied in a fixed sequence; order is part
// of the contract because cosmetic rules depend on the key rewrites
// having already run.
package transform

import "regexp"

// Rule is one ordered rewrite: a structural pattern (line-start key or
// quoted literal anchors, never free-text search) and its replacement
// template. A rule that matches nothing is a no-op.
type Rule struct {
	Name     string
	Pattern  *regexp.Regexp
	Template string
	// Repeat re-applies the rule until a fixpoint, for patterns that can
	// only consume one occurrence per line per pass.
	Repeat bool
}

// Apply runs the rule once (or to fixpoint when Repeat is set).
func (r Rule) Apply(text string) string {
	out := r.Pattern.ReplaceAllString(text, r.Template)
	if !r.Repeat {
		return out
	}
	for out != text {
		text = out
		out = r.Pattern.ReplaceAllString(text, r.Template)
	}
	return out
}

// Sequence is the fixed rule order: task rename, scan-type literal,
// credential/URL keys, then cosmetic label rewrites.
var Sequence = []Rule{
	{
		Name:     "task_rename",
		Pattern:  regexp.MustCompile(`(?mi)^(\s*-?\s*task\s*:\s*)SynopsysSecurityScan(@[\w.]+)`),
		Template: `${1}BlackDuckSecurityScan${2}`,
	},
	{
		Name:     "scan_type",
		Pattern:  regexp.MustCompile(`(?mi)^([ \t]*scanType\s*:\s*)(['"]?)polaris(['"]?)([ \t]*)$`),
		Template: `${1}${2}blackduck${3}${4}`,
	},
	{
		Name:     "server_url_key",
		Pattern:  regexp.MustCompile(`(?mi)^(\s*)polarisServerUrl\s*:.*$`),
		Template: `${1}blackduckUrl: $$(BLACKDUCK_URL)`,
	},
	{
		Name:     "access_token_key",
		Pattern:  regexp.MustCompile(`(?mi)^(\s*)polarisAccessToken\s*:.*$`),
		Template: `${1}blackduckApiToken: $$(BLACKDUCK_API_TOKEN)`,
	},
	{
		Name:     "label_vendor_product",
		Pattern:  regexp.MustCompile(`(?mi)^(\s*(?:displayName|description)\s*:.*)\bSynopsys Polaris\b(.*)$`),
		Template: `${1}Black Duck${2}`,
		Repeat:   true,
	},
	{
		Name:     "label_product",
		Pattern:  regexp.MustCompile(`(?mi)^(\s*(?:displayName|description)\s*:.*)\bPolaris\b(.*)$`),
		Template: `${1}Black Duck${2}`,
		Repeat:   true,
	},
	{
		Name:     "label_vendor",
		Pattern:  regexp.MustCompile(`(?mi)^(\s*(?:displayName|description)\s*:.*)\bSynopsys\b(.*)$`),
		Template: `${1}Black Duck${2}`,
		Repeat:   true,
	},
}

// Apply folds the full rule sequence over the text. Deterministic and
// idempotent; returns the input unchanged when nothing matches. Never
// fails: pipeline files are opaque text here, not parsed documents.
func Apply(text string) string {
	for _, rule := range Sequence {
		text = rule.Apply(text)
	}
	return text
}

// Changed reports whether Apply would alter the text.
func Changed(text string) bool {
	return Apply(text) != text
}
