package guardrails

import (
	"sort"

	"github.com/wandernest/concierge/model"
)

// Detector scans a text and returns findings in left-to-right order of
// match position. Detectors are pure and stateless; Scan never mutates
// its input and returns an empty slice for empty input.
type Detector interface {
	Name() string
	Scan(text string) []model.Finding
}

// sortFindings orders findings by start offset, then by kind for stable
// ordering of overlapping matches
func sortFindings(findings []model.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Start != findings[j].Start {
			return findings[i].Start < findings[j].Start
		}
		return findings[i].Kind < findings[j].Kind
	})
}
