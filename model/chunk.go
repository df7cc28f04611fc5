package model

import (
	"time"

	"github.com/google/uuid"
)

// Chunk is a contiguous slice of a source document's text, the unit of
// retrieval. Offset is the start of the slice within the source document,
// so Offset+len(Content) is always within the document's bounds.
type Chunk struct {
	ID          int       `json:"id"`
	RID         uuid.UUID `json:"rid"`
	DocumentID  int64     `json:"document_id"`
	DocumentRID uuid.UUID `json:"document_rid"`
	SourceID    string    `json:"source_id"`
	Category    Category  `json:"category"`
	Content     string    `json:"content"`
	Offset      int       `json:"offset"`
	ChunkIndex  *int      `json:"chunk_index,omitempty"`
	Embedding   []float32 `json:"embedding,omitempty"`
	Metadata    Metadata  `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	// Results
	Similarity *float64 `json:"similarity,omitempty"`
}
