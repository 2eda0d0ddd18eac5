package detect

// FoundType is the top-level classification of a file.
const (
	FoundNone     = "none"
	FoundIndirect = "indirect"
	FoundDirect   = "direct"
)

// Confidence levels attached to a verdict.
const (
	ConfidenceNone   = "none"
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// Approach labels for indirect verdicts.
const (
	ApproachTemplate      = "template_or_reusable_workflow"
	ApproachSharedLibrary = "shared_library"
	ApproachContainer     = "container_based"
	ApproachKeywordOnly   = "keyword_only"
)

// Verdict is the classification outcome for one file. Immutable once
// produced; exactly one per file per run.
type Verdict struct {
	FoundType       string `json:"foundType"`
	Confidence      string `json:"confidence"`
	Approach        string `json:"approach,omitempty"`
	InvocationStyle string `json:"invocationStyle,omitempty"`
}

// Found reports whether any evidence was classified.
func (v Verdict) Found() bool {
	return v.FoundType != FoundNone
}

// Classify derives the verdict from scanned evidence. The rule order is
// a correctness contract: the first satisfied rule wins and later rules
// are not evaluated. Direct evidence dominates everything else; indirect
// rules require keyword co-occurrence except shared-library references,
// whose call syntax is specific enough on its own.
func Classify(set EvidenceSet, text string) Verdict {
	switch {
	case set.Matched(GroupDirect):
		return Verdict{
			FoundType:       FoundDirect,
			Confidence:      ConfidenceHigh,
			InvocationStyle: invocationStyle(text),
		}
	case set.Matched(GroupTemplateReference) && set.Matched(GroupKeyword):
		return Verdict{
			FoundType:  FoundIndirect,
			Confidence: ConfidenceMedium,
			Approach:   ApproachTemplate,
		}
	case set.Matched(GroupSharedLibrary):
		return Verdict{
			FoundType:  FoundIndirect,
			Confidence: ConfidenceMedium,
			Approach:   ApproachSharedLibrary,
		}
	case set.Matched(GroupContainer) && set.Matched(GroupKeyword):
		return Verdict{
			FoundType:  FoundIndirect,
			Confidence: ConfidenceMedium,
			Approach:   ApproachContainer,
		}
	case set.Matched(GroupKeyword):
		return Verdict{
			FoundType:  FoundIndirect,
			Confidence: ConfidenceLow,
			Approach:   ApproachKeywordOnly,
		}
	default:
		return Verdict{FoundType: FoundNone, Confidence: ConfidenceNone}
	}
}

// invocationStyle runs the ordered style sub-check for direct verdicts.
func invocationStyle(text string) string {
	for _, sp := range stylePatterns {
		if sp.Pattern.MatchString(text) {
			return sp.Style
		}
	}
	return StyleUnknown
}
