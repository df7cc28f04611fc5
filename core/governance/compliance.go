package governance

import (
	"fmt"

	"github.com/wandernest/concierge/core/guardrails"
	"github.com/wandernest/concierge/model"
)

// ComplianceMode controls how the compliance checker treats PII findings
type ComplianceMode int

const (
	// CheckOnly blocks on any PII finding. Used on the output side, where a
	// redacted answer could still be misleading or incomplete.
	CheckOnly ComplianceMode = iota
	// CheckAndRedact replaces PII spans with tagged placeholders and lets
	// the redacted text continue downstream.
	CheckAndRedact
)

// ComplianceChecker applies the PII detector and decides pass, redact or block
type ComplianceChecker struct {
	detector *guardrails.PIIDetector
}

// NewComplianceChecker creates a compliance checker with the default PII detector
func NewComplianceChecker() *ComplianceChecker {
	return &ComplianceChecker{detector: guardrails.NewPIIDetector()}
}

// Check scans text for PII and returns a decision. The caller (the gate)
// fills in query identifier and stage and handles audit logging.
func (c *ComplianceChecker) Check(text string, mode ComplianceMode) *model.GateDecision {
	findings := c.detector.Scan(text)

	if len(findings) == 0 {
		return &model.GateDecision{
			Outcome:  model.OutcomePass,
			Findings: findings,
			Reason:   "no PII detected",
		}
	}

	if mode == CheckAndRedact {
		return &model.GateDecision{
			Outcome:      model.OutcomeRedact,
			Findings:     findings,
			RedactedText: c.detector.Redact(text),
			Reason:       fmt.Sprintf("%d PII span(s) redacted", len(findings)),
		}
	}

	return &model.GateDecision{
		Outcome:  model.OutcomeBlock,
		Findings: findings,
		Reason:   fmt.Sprintf("PII detected: %s", findings[0].Kind),
	}
}
