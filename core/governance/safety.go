package governance

import (
	"fmt"

	"github.com/wandernest/concierge/core/guardrails"
	"github.com/wandernest/concierge/model"
)

// SafetyValidator applies the injection and unsafe-content detectors.
// Any finding blocks: injected instructions and unsafe requests are not
// salvageable by redaction, so there is no redact outcome here.
type SafetyValidator struct {
	detectors []guardrails.Detector
}

// NewSafetyValidator creates a safety validator. Nil pattern or keyword
// arguments fall back to the detector defaults.
func NewSafetyValidator(injectionPatterns []string, unsafeKeywords map[model.FindingKind][]string) *SafetyValidator {
	return &SafetyValidator{
		detectors: []guardrails.Detector{
			guardrails.NewInjectionDetector(injectionPatterns),
			guardrails.NewContentSafetyDetector(unsafeKeywords),
		},
	}
}

// Validate runs all detectors in order and blocks on the first detector
// that reports findings, naming the first-detected finding's kind.
func (v *SafetyValidator) Validate(text string) *model.GateDecision {
	allFindings := []model.Finding{}
	for _, detector := range v.detectors {
		findings := detector.Scan(text)
		allFindings = append(allFindings, findings...)
	}

	if len(allFindings) > 0 {
		return &model.GateDecision{
			Outcome:  model.OutcomeBlock,
			Findings: allFindings,
			Reason:   fmt.Sprintf("unsafe content: %s", allFindings[0].Kind),
		}
	}

	return &model.GateDecision{
		Outcome:  model.OutcomePass,
		Findings: allFindings,
		Reason:   "no safety violations",
	}
}
