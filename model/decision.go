package model

import (
	"time"

	"github.com/google/uuid"
)

// GateStage identifies which side of the pipeline a gate check ran on
type GateStage string

const (
	StagePre  GateStage = "PRE"
	StagePost GateStage = "POST"
)

// GateOutcome is the result of a gate check
type GateOutcome string

const (
	OutcomePass   GateOutcome = "PASS"
	OutcomeRedact GateOutcome = "REDACT"
	OutcomeBlock  GateOutcome = "BLOCK"
)

// GateDecision records the result of one gate invocation. One decision is
// appended to the audit log per invocation, including on PASS. Immutable
// once created.
type GateDecision struct {
	QueryID      uuid.UUID   `json:"query_id"`
	Stage        GateStage   `json:"stage"`
	Outcome      GateOutcome `json:"outcome"`
	Findings     []Finding   `json:"findings"`
	RedactedText string      `json:"redacted_text,omitempty"`
	Reason       string      `json:"reason"`
	Timestamp    time.Time   `json:"timestamp"`
}

// Blocked reports whether the decision blocks the pipeline
func (d *GateDecision) Blocked() bool {
	return d.Outcome == OutcomeBlock
}
