// Package query drives one question through the governed answer lifecycle.
package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/wandernest/concierge/core/audit"
	"github.com/wandernest/concierge/model"
)

// State identifies one step of a query's lifecycle.
type State string

const (
	StateReceived  State = "RECEIVED"
	StatePreGated  State = "PRE_GATED"
	StateRetrieved State = "RETRIEVED"
	StateGenerated State = "GENERATED"
	StatePostGated State = "POST_GATED"
	StateDone      State = "DONE"
	StateBlocked   State = "BLOCKED"
)

// Fixed caller-facing messages. The raw generated answer never replaces
// these once a stage has rejected the query.
const (
	SecurityRejectionMessage = "Query blocked by security checks."
	SafetyRejectionMessage   = "I generated a response but it didn't pass safety checks. Please rephrase your question."
	DegradedMessage          = "The travel assistant is temporarily unavailable. Please try again in a few moments."
)

var (
	// ErrUpstreamTimeout marks an external call that exceeded its deadline
	// even after a retry.
	ErrUpstreamTimeout = errors.New("upstream timeout")
	// ErrUpstreamError marks a malformed or failed external response.
	ErrUpstreamError = errors.New("upstream error")
	// ErrDetectorDefect marks a detector panic. Fatal to the query only.
	ErrDetectorDefect = errors.New("detector defect")
)

// Gatekeeper validates text on both sides of the pipeline. Implemented by
// governance.Gate.
type Gatekeeper interface {
	PreCheck(queryID uuid.UUID, text string) *model.GateDecision
	PostCheck(queryID uuid.UUID, text string) *model.GateDecision
}

// Retriever fetches scored evidence for a query text.
type Retriever interface {
	Retrieve(ctx context.Context, text string, hint model.Category) ([]*model.RetrievalResult, error)
}

// Answerer produces an answer from a query and its evidence.
type Answerer interface {
	Generate(ctx context.Context, query string, evidence []*model.RetrievalResult) (string, error)
}

// CategorizeFunc maps a query text to a category hint for retrieval boosting.
type CategorizeFunc func(text string) model.Category

// Pipeline runs each query through gate, retrieval, generation and the
// closing gate as an explicit state machine. Each query is handled by a
// single task; the pipeline itself holds no per-query state and is safe
// for concurrent use.
type Pipeline struct {
	gate       Gatekeeper
	retriever  Retriever
	answerer   Answerer
	categorize CategorizeFunc
	metrics    *audit.Metrics
	log        *slog.Logger
}

func NewPipeline(gate Gatekeeper, retriever Retriever, answerer Answerer, categorize CategorizeFunc, metrics *audit.Metrics, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		gate:       gate,
		retriever:  retriever,
		answerer:   answerer,
		categorize: categorize,
		metrics:    metrics,
		log:        logger,
	}
}

// run carries one query through the machine.
type run struct {
	query    *model.Query
	state    State
	text     string
	hint     model.Category
	evidence []*model.RetrievalResult
	answer   string
	response *model.Response
}

// Ask processes one query end to end and always returns a response. Gate
// blocks and upstream failures surface as typed responses, never as errors;
// the error return is reserved for a cancelled context.
func (p *Pipeline) Ask(ctx context.Context, query *model.Query) (*model.Response, error) {
	start := time.Now()
	p.metrics.RecordRequest()
	defer func() {
		p.metrics.ObserveLatency(time.Since(start))
	}()

	r := &run{query: query, state: StateReceived, text: query.Text}
	p.log.Info("query received", slog.String("query_id", query.ID.String()))

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch r.state {
		case StateReceived:
			p.preGate(r)
		case StatePreGated:
			p.retrieve(ctx, r)
		case StateRetrieved:
			p.generate(ctx, r)
		case StateGenerated:
			p.postGate(r)
		case StatePostGated:
			r.state = StateDone
		case StateDone, StateBlocked:
			if r.response.Blocked {
				p.metrics.RecordBlock()
			}
			if r.response.Degraded {
				p.metrics.RecordDegraded()
			}
			p.log.Info("query finished",
				slog.String("query_id", query.ID.String()),
				slog.String("state", string(r.state)),
				slog.Bool("blocked", r.response.Blocked),
				slog.Bool("degraded", r.response.Degraded),
			)
			return r.response, nil
		default:
			return nil, fmt.Errorf("unknown pipeline state %q", r.state)
		}
	}
}

// preGate runs the opening gate. A detector panic degrades the query
// instead of taking the process down.
func (p *Pipeline) preGate(r *run) {
	decision, err := p.checkSafely(func() *model.GateDecision {
		return p.gate.PreCheck(r.query.ID, r.text)
	})
	if err != nil {
		p.degrade(r, err)
		return
	}

	if decision.Blocked() {
		r.state = StateBlocked
		r.response = &model.Response{
			Answer:      SecurityRejectionMessage,
			PreDecision: decision,
			Blocked:     true,
		}
		return
	}

	if decision.Outcome == model.OutcomeRedact {
		r.text = decision.RedactedText
	}
	r.hint = p.categorize(r.text)
	r.state = StatePreGated
	r.response = &model.Response{PreDecision: decision}
}

// retrieve queries the vector index. Errors degrade the response, they
// never block it.
func (p *Pipeline) retrieve(ctx context.Context, r *run) {
	evidence, err := p.retriever.Retrieve(ctx, r.text, r.hint)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			p.degrade(r, fmt.Errorf("%w: vector index: %v", ErrUpstreamTimeout, err))
		} else {
			p.degrade(r, fmt.Errorf("%w: vector index: %v", ErrUpstreamError, err))
		}
		return
	}

	r.evidence = evidence
	r.state = StateRetrieved
}

func (p *Pipeline) generate(ctx context.Context, r *run) {
	answer, err := p.answerer.Generate(ctx, r.text, r.evidence)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			p.degrade(r, fmt.Errorf("%w: generation: %v", ErrUpstreamTimeout, err))
		} else {
			p.degrade(r, fmt.Errorf("%w: generation: %v", ErrUpstreamError, err))
		}
		return
	}

	r.answer = answer
	r.state = StateGenerated
}

func (p *Pipeline) postGate(r *run) {
	decision, err := p.checkSafely(func() *model.GateDecision {
		return p.gate.PostCheck(r.query.ID, r.answer)
	})
	if err != nil {
		p.degrade(r, err)
		return
	}

	r.response.PostDecision = decision
	if decision.Blocked() {
		r.state = StateBlocked
		r.response.Answer = SafetyRejectionMessage
		r.response.Blocked = true
		return
	}

	r.state = StatePostGated
	r.response.Answer = r.answer
	r.response.Evidence = r.evidence
}

// checkSafely recovers a panicking detector into ErrDetectorDefect so one
// malformed input cannot stop the process from serving other queries.
func (p *Pipeline) checkSafely(check func() *model.GateDecision) (decision *model.GateDecision, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrDetectorDefect, rec)
		}
	}()
	return check(), nil
}

// degrade terminates the query with the fixed degraded message. The cause
// is logged in full, never surfaced to the caller.
func (p *Pipeline) degrade(r *run, cause error) {
	p.log.Error("query degraded",
		slog.String("query_id", r.query.ID.String()),
		slog.String("state", string(r.state)),
		slog.String("cause", cause.Error()),
	)

	r.state = StateDone
	response := r.response
	if response == nil {
		response = &model.Response{}
	}
	response.Answer = DegradedMessage
	response.Degraded = true
	response.Evidence = nil
	r.response = response
}
