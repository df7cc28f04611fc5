package guardrails

import (
	"regexp"

	"github.com/wandernest/concierge/model"
)

const piiDetectorName = "pii"

// piiPattern pairs an identifier class with its compiled pattern.
// The slice order is the redaction order (model.PIIKinds).
type piiPattern struct {
	kind    model.FindingKind
	pattern *regexp.Regexp
}

// PIIDetector recognizes pattern-matchable personal identifiers:
// email addresses, phone numbers, SSN-like numbers, payment-card numbers
// and passport numbers. Overlapping matches of different kinds are all
// reported; a span is never reported twice for the same kind.
type PIIDetector struct {
	patterns []piiPattern
}

// NewPIIDetector creates a PII detector with the default identifier patterns
func NewPIIDetector() *PIIDetector {
	return &PIIDetector{
		patterns: []piiPattern{
			{model.FindingEmail, regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)},
			{model.FindingCreditCard, regexp.MustCompile(`\b(?:\d{4}[\s-]?){3}\d{4}\b`)},
			{model.FindingPassport, regexp.MustCompile(`\b[A-Z]{1,2}\d{6,9}\b`)},
			{model.FindingSSN, regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
			{model.FindingPhone, regexp.MustCompile(`\b(?:\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}\b`)},
		},
	}
}

// Name returns the detector name
func (d *PIIDetector) Name() string {
	return piiDetectorName
}

// Scan reports every identifier match in left-to-right order
func (d *PIIDetector) Scan(text string) []model.Finding {
	findings := []model.Finding{}
	if text == "" {
		return findings
	}

	for _, p := range d.patterns {
		for _, loc := range p.pattern.FindAllStringIndex(text, -1) {
			findings = append(findings, model.Finding{
				Kind:     p.kind,
				Start:    loc[0],
				End:      loc[1],
				Text:     text[loc[0]:loc[1]],
				Detector: piiDetectorName,
			})
		}
	}

	sortFindings(findings)
	return findings
}

// Redact replaces every identifier match with a placeholder tagged with its
// kind, e.g. [EMAIL_REDACTED]. Kinds are applied in model.PIIKinds order so
// a more specific pattern is never partially consumed by a broader one.
// Redacting already-redacted text is a no-op.
func (d *PIIDetector) Redact(text string) string {
	redacted := text
	for _, p := range d.patterns {
		redacted = p.pattern.ReplaceAllString(redacted, placeholderFor(p.kind))
	}
	return redacted
}

func placeholderFor(kind model.FindingKind) string {
	switch kind {
	case model.FindingEmail:
		return "[EMAIL_REDACTED]"
	case model.FindingPhone:
		return "[PHONE_REDACTED]"
	case model.FindingSSN:
		return "[SSN_REDACTED]"
	case model.FindingCreditCard:
		return "[CREDIT_CARD_REDACTED]"
	case model.FindingPassport:
		return "[PASSPORT_REDACTED]"
	default:
		return "[PII_REDACTED]"
	}
}
