package guardrails

import (
	"regexp"

	"github.com/wandernest/concierge/model"
)

const injectionDetectorName = "injection"

// defaultInjectionPatterns are the recognized instruction-override phrasings.
// All patterns are matched case-insensitively.
var defaultInjectionPatterns = []string{
	`ignore (?:all )?previous instructions`,
	`reveal (?:your )?system (?:prompt|configuration)`,
	`bypass safety`,
	`override guidelines`,
	`you are now (?:in )?developer mode`,
	`delete all data`,
	`jailbreak mode`,
	`act as an? unrestricted (?:ai|assistant|persona)`,
}

// InjectionDetector recognizes a fixed set of prompt-injection phrasings
type InjectionDetector struct {
	patterns []*regexp.Regexp
}

// NewInjectionDetector creates an injection detector. When patterns is nil
// the default phrasing set is used.
func NewInjectionDetector(patterns []string) *InjectionDetector {
	if patterns == nil {
		patterns = defaultInjectionPatterns
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+p))
	}

	return &InjectionDetector{patterns: compiled}
}

// Name returns the detector name
func (d *InjectionDetector) Name() string {
	return injectionDetectorName
}

// Scan reports one finding per distinct phrase match
func (d *InjectionDetector) Scan(text string) []model.Finding {
	findings := []model.Finding{}
	if text == "" {
		return findings
	}

	for _, pattern := range d.patterns {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			findings = append(findings, model.Finding{
				Kind:     model.FindingInjection,
				Start:    loc[0],
				End:      loc[1],
				Text:     text[loc[0]:loc[1]],
				Detector: injectionDetectorName,
			})
		}
	}

	sortFindings(findings)
	return findings
}
