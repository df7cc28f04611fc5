package model

import "time"

// Config holds all tunable parameters of the query pipeline. It is passed
// by value into each component at construction and never read from ambient
// state at call time.
type Config struct {
	// Retrieval parameters
	TopK                int     `json:"top_k"`
	SimilarityThreshold float64 `json:"similarity_threshold,omitempty"`
	CategoryBoost       float64 `json:"category_boost"`

	// Ingestion parameters
	ChunkSize    int `json:"chunk_size"`
	ChunkOverlap int `json:"chunk_overlap"`

	// External call timeouts
	RetrievalTimeout  time.Duration `json:"retrieval_timeout"`
	GenerationTimeout time.Duration `json:"generation_timeout"`

	// Detector configuration
	InjectionPatterns []string                 `json:"injection_patterns,omitempty"`
	UnsafeKeywords    map[FindingKind][]string `json:"unsafe_keywords,omitempty"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{
		TopK:                5,
		SimilarityThreshold: 0.0,
		CategoryBoost:       0.15,
		ChunkSize:           1000,
		ChunkOverlap:        200,
		RetrievalTimeout:    10 * time.Second,
		GenerationTimeout:   30 * time.Second,
	}
}
