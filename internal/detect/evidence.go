package detect

import (
	"os"
	"sort"
	"strings"
)

// SampleLine is one captured evidence line.
type SampleLine struct {
	Number int
	Text   string
}

// GroupEvidence records whether one pattern group matched a file and
// which lines triggered it, capped at the scanner's sample bound.
type GroupEvidence struct {
	Matched bool
	Samples []SampleLine
}

// EvidenceSet maps pattern group IDs to their evidence for one file.
type EvidenceSet map[string]GroupEvidence

// Matched reports whether the named group matched.
func (e EvidenceSet) Matched(group string) bool {
	return e[group].Matched
}

// Scanner tests file text against the catalog. MaxSamples bounds the
// captured lines per group; zero or negative means the default of 8.
type Scanner struct {
	MaxSamples int
}

func (s Scanner) cap() int {
	if s.MaxSamples > 0 {
		return s.MaxSamples
	}
	return 8
}

// Scan reports, for every catalog group, whether any of its expressions
// match anywhere in text, and collects sample lines in file order up to
// the cap. Pure function of the text.
func (s Scanner) Scan(text string) EvidenceSet {
	set := EvidenceSet{}
	lines := strings.Split(text, "\n")
	for _, group := range Catalog {
		ev := GroupEvidence{}
		for _, re := range group.Patterns {
			if re.MatchString(text) {
				ev.Matched = true
				break
			}
		}
		if ev.Matched {
			ev.Samples = s.sampleLines(lines, group)
		}
		set[group.ID] = ev
	}
	return set
}

// ScanFile reads and scans one file. An unreadable file yields an empty
// evidence set: a single bad file must never abort a multi-repo run.
func (s Scanner) ScanFile(path string) EvidenceSet {
	data, err := os.ReadFile(path)
	if err != nil {
		return EvidenceSet{}
	}
	return s.Scan(string(data))
}

func (s Scanner) sampleLines(lines []string, group PatternGroup) []SampleLine {
	samples := []SampleLine{}
	for i, line := range lines {
		if len(samples) >= s.cap() {
			break
		}
		for _, re := range group.Patterns {
			if re.MatchString(line) {
				samples = append(samples, SampleLine{Number: i + 1, Text: strings.TrimSpace(line)})
				break
			}
		}
	}
	return samples
}

// SampleText flattens captured evidence across matched groups into one
// bounded, file-ordered string for report rows.
func SampleText(set EvidenceSet, max int) string {
	if max <= 0 {
		max = 8
	}
	seen := map[int]bool{}
	all := []SampleLine{}
	for _, group := range Catalog {
		for _, sample := range set[group.ID].Samples {
			if seen[sample.Number] {
				continue
			}
			seen[sample.Number] = true
			all = append(all, sample)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Number < all[j].Number })
	if len(all) > max {
		all = all[:max]
	}
	parts := make([]string, 0, len(all))
	for _, s := range all {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, " | ")
}
