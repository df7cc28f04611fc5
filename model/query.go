package model

import (
	"time"

	"github.com/google/uuid"
)

// Query is one incoming user question. Immutable once created.
type Query struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewQuery creates a query with a generated identifier
func NewQuery(text string) *Query {
	return &Query{
		ID:        uuid.New(),
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// Response is the terminal artifact of one query's lifecycle
type Response struct {
	Answer       string             `json:"answer"`
	Evidence     []*RetrievalResult `json:"evidence,omitempty"`
	PreDecision  *GateDecision      `json:"pre_decision,omitempty"`
	PostDecision *GateDecision      `json:"post_decision,omitempty"`
	Blocked      bool               `json:"blocked"`
	Degraded     bool               `json:"degraded,omitempty"`
}
