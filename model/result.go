package model

// RetrievalResult is one ranked chunk returned by retrieval
type RetrievalResult struct {
	Chunk           *Chunk   `json:"chunk"`
	Score           float64  `json:"score"`            // Final score after category boost
	SimilarityScore float64  `json:"similarity_score"` // Cosine similarity score
	Category        Category `json:"category"`
	Boosted         bool     `json:"boosted,omitempty"`
}
