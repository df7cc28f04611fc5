package model

// FindingKind identifies the class of a detected pattern
type FindingKind string

// PII identifier classes
const (
	FindingEmail      FindingKind = "email"
	FindingPhone      FindingKind = "phone"
	FindingSSN        FindingKind = "ssn"
	FindingCreditCard FindingKind = "credit_card"
	FindingPassport   FindingKind = "passport"
)

// Injection and unsafe-content classes
const (
	FindingInjection      FindingKind = "injection"
	FindingViolence       FindingKind = "violence"
	FindingHateSpeech     FindingKind = "hate_speech"
	FindingProfanity      FindingKind = "profanity"
	FindingPersonalAttack FindingKind = "personal_attack"
	FindingTravelRedFlag  FindingKind = "travel_violation"
)

// PIIKinds lists the identifier classes in the order redaction is applied.
// More specific patterns first so a card number is never partially consumed
// by the phone pattern's placeholder.
var PIIKinds = []FindingKind{
	FindingEmail,
	FindingCreditCard,
	FindingPassport,
	FindingSSN,
	FindingPhone,
}

// Finding is one detected pattern instance. Produced by a detector and
// never mutated afterwards.
type Finding struct {
	Kind     FindingKind `json:"kind"`
	Start    int         `json:"start"`
	End      int         `json:"end"`
	Text     string      `json:"text,omitempty"`
	Detector string      `json:"detector"`
}

// IsPII reports whether the finding's kind is a PII identifier class.
// PII findings are logged with offsets only, never with the matched text.
func (f Finding) IsPII() bool {
	for _, kind := range PIIKinds {
		if f.Kind == kind {
			return true
		}
	}
	return false
}
