package audit

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/wandernest/concierge/model"
)

const sinkBufferSize = 64

// Sink receives audit entries for external export. Delivery is
// fire-and-forget: a slow or unavailable sink never blocks the pipeline.
type Sink interface {
	Append(decision model.GateDecision)
}

// Log is the append-only audit log shared by all in-flight queries.
// Decisions are keyed by query identifier. PII findings are stored with
// kind and offsets only; the matched text is stripped on append so the
// audit trail cannot become a second leak surface.
type Log struct {
	mu      sync.RWMutex
	entries map[uuid.UUID][]model.GateDecision

	sinkCh chan model.GateDecision
	done   chan struct{}
	once   sync.Once

	log *slog.Logger
}

// NewLog creates an audit log. Registered sinks are fed from a buffered
// channel by a single background goroutine; entries are dropped when the
// buffer is full.
func NewLog(logger *slog.Logger, sinks ...Sink) *Log {
	l := &Log{
		entries: make(map[uuid.UUID][]model.GateDecision),
		sinkCh:  make(chan model.GateDecision, sinkBufferSize),
		done:    make(chan struct{}),
		log:     logger,
	}

	go func() {
		for {
			select {
			case <-l.done:
				return
			case decision := <-l.sinkCh:
				for _, sink := range sinks {
					sink.Append(decision)
				}
			}
		}
	}()

	return l
}

// Append stores one gate decision under its query identifier and fans it
// out to the sinks without blocking.
func (l *Log) Append(decision model.GateDecision) {
	sanitized := sanitize(decision)

	l.mu.Lock()
	l.entries[decision.QueryID] = append(l.entries[decision.QueryID], sanitized)
	l.mu.Unlock()

	select {
	case l.sinkCh <- sanitized:
	default:
		l.log.Warn("Audit sink buffer full, dropping entry", slog.String("query_id", decision.QueryID.String()))
	}
}

// Decisions returns the decisions recorded for one query in append order
func (l *Log) Decisions(queryID uuid.UUID) []model.GateDecision {
	l.mu.RLock()
	defer l.mu.RUnlock()

	decisions := make([]model.GateDecision, len(l.entries[queryID]))
	copy(decisions, l.entries[queryID])
	return decisions
}

// Len returns the total number of recorded decisions
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := 0
	for _, decisions := range l.entries {
		total += len(decisions)
	}
	return total
}

// Close stops the sink fan-out goroutine
func (l *Log) Close() {
	l.once.Do(func() {
		close(l.done)
	})
}

// sanitize strips matched text and redacted copies from the stored record.
// Kinds and offsets remain, which is enough for the audit trail.
func sanitize(decision model.GateDecision) model.GateDecision {
	stored := decision
	stored.RedactedText = ""
	stored.Findings = make([]model.Finding, len(decision.Findings))
	for i, f := range decision.Findings {
		stored.Findings[i] = f
		if f.IsPII() {
			stored.Findings[i].Text = ""
		}
	}
	return stored
}
