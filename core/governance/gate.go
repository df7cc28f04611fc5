package governance

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/wandernest/concierge/core/audit"
	"github.com/wandernest/concierge/model"
)

// Gate orchestrates the compliance checker and safety validator for both
// the incoming query and the generated answer. Every invocation appends
// exactly one decision to the audit log, including on PASS.
type Gate struct {
	compliance *ComplianceChecker
	safety     *SafetyValidator
	audit      *audit.Log
	log        *slog.Logger
}

// NewGate creates a governance gate. Detector overrides come from the
// configuration; the audit log is an injected collaborator, never a global.
func NewGate(config model.Config, auditLog *audit.Log, logger *slog.Logger) *Gate {
	return &Gate{
		compliance: NewComplianceChecker(),
		safety:     NewSafetyValidator(config.InjectionPatterns, config.UnsafeKeywords),
		audit:      auditLog,
		log:        logger,
	}
}

// PreCheck validates the incoming query text. The safety validator runs
// first (fail fast, higher-precision block reason); only when it passes is
// the compliance checker run in redacting mode. Downstream stages must use
// the decision's RedactedText when the outcome is REDACT.
func (g *Gate) PreCheck(queryID uuid.UUID, text string) *model.GateDecision {
	decision := g.safety.Validate(text)
	if !decision.Blocked() {
		decision = g.compliance.Check(text, CheckAndRedact)
	}

	return g.record(queryID, model.StagePre, decision)
}

// PostCheck validates the generated answer. The compliance checker runs in
// check-only mode (answers containing PII are blocked outright), then the
// safety validator.
func (g *Gate) PostCheck(queryID uuid.UUID, text string) *model.GateDecision {
	decision := g.compliance.Check(text, CheckOnly)
	if !decision.Blocked() {
		decision = g.safety.Validate(text)
	}

	return g.record(queryID, model.StagePost, decision)
}

func (g *Gate) record(queryID uuid.UUID, stage model.GateStage, decision *model.GateDecision) *model.GateDecision {
	decision.QueryID = queryID
	decision.Stage = stage
	decision.Timestamp = time.Now()

	g.audit.Append(*decision)

	if decision.Blocked() {
		g.log.Warn("Gate blocked",
			slog.String("query_id", queryID.String()),
			slog.String("stage", string(stage)),
			slog.String("reason", decision.Reason),
		)
	} else {
		g.log.Debug("Gate passed",
			slog.String("query_id", queryID.String()),
			slog.String("stage", string(stage)),
			slog.String("outcome", string(decision.Outcome)),
		)
	}

	return decision
}
