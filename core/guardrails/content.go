package guardrails

import (
	"regexp"
	"strings"

	"github.com/wandernest/concierge/model"
)

const contentDetectorName = "content_safety"

// Severity of an unsafe-content category
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// defaultUnsafeKeywords is the block-list grouped by category
var defaultUnsafeKeywords = map[model.FindingKind][]string{
	model.FindingViolence: {
		"kill", "attack", "murder", "assault", "shoot", "stab", "bomb", "terrorist", "weapon", "gun",
	},
	model.FindingHateSpeech: {
		"racist", "sexist", "nazi", "supremacist", "slur", "bigot", "discriminate", "hatred",
	},
	model.FindingProfanity: {
		"fuck", "shit", "bitch", "damn", "ass", "bastard", "crap", "hell",
	},
	model.FindingPersonalAttack: {
		"stupid", "idiot", "moron", "dumb", "loser", "pathetic", "worthless", "useless",
	},
	model.FindingTravelRedFlag: {
		"fraud", "fake booking", "scam", "steal", "smuggle", "illegal", "counterfeit",
		"forged", "fake passport", "fake visa", "bypass security", "avoid customs",
	},
}

// ContentSafetyDetector matches a configured block-list of unsafe keywords
// and phrases grouped by category. Matching is case-insensitive on word
// boundaries so embedded substrings like "class" do not trip the list.
type ContentSafetyDetector struct {
	categories []model.FindingKind
	patterns   map[model.FindingKind]*regexp.Regexp
}

// NewContentSafetyDetector creates a content-safety detector. When keywords
// is nil the default block-list is used.
func NewContentSafetyDetector(keywords map[model.FindingKind][]string) *ContentSafetyDetector {
	if keywords == nil {
		keywords = defaultUnsafeKeywords
	}

	// Fixed category order for deterministic scan results
	categories := []model.FindingKind{
		model.FindingViolence,
		model.FindingHateSpeech,
		model.FindingProfanity,
		model.FindingPersonalAttack,
		model.FindingTravelRedFlag,
	}

	patterns := make(map[model.FindingKind]*regexp.Regexp, len(keywords))
	for category, words := range keywords {
		if len(words) == 0 {
			continue
		}
		escaped := make([]string, 0, len(words))
		for _, w := range words {
			escaped = append(escaped, regexp.QuoteMeta(w))
		}
		patterns[category] = regexp.MustCompile(`(?i)\b(?:` + strings.Join(escaped, "|") + `)\b`)
	}

	return &ContentSafetyDetector{categories: categories, patterns: patterns}
}

// Name returns the detector name
func (d *ContentSafetyDetector) Name() string {
	return contentDetectorName
}

// Scan reports one finding per block-list match, with the category as kind
func (d *ContentSafetyDetector) Scan(text string) []model.Finding {
	findings := []model.Finding{}
	if text == "" {
		return findings
	}

	for _, category := range d.categories {
		pattern, ok := d.patterns[category]
		if !ok {
			continue
		}
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			findings = append(findings, model.Finding{
				Kind:     category,
				Start:    loc[0],
				End:      loc[1],
				Text:     text[loc[0]:loc[1]],
				Detector: contentDetectorName,
			})
		}
	}

	sortFindings(findings)
	return findings
}

// SeverityFor maps an unsafe-content category to its severity
func SeverityFor(kind model.FindingKind) Severity {
	switch kind {
	case model.FindingViolence, model.FindingHateSpeech, model.FindingTravelRedFlag:
		return SeverityHigh
	case model.FindingProfanity:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// SafetyScore rates a text between 0 and 1, starting at 1.0 and losing
// 0.2 per finding
func (d *ContentSafetyDetector) SafetyScore(text string) float64 {
	findings := d.Scan(text)
	score := 1.0 - 0.2*float64(len(findings))
	if score < 0 {
		return 0
	}
	return score
}
