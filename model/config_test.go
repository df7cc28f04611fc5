package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	t.Run("Returns correct default values", func(t *testing.T) {
		config := DefaultConfig()

		assert.Equal(t, 5, config.TopK, "Default TopK should be 5")
		assert.Equal(t, 0.0, config.SimilarityThreshold, "Default SimilarityThreshold should be 0.0")
		assert.Equal(t, 0.15, config.CategoryBoost, "Default CategoryBoost should be 0.15")
		assert.Equal(t, 1000, config.ChunkSize, "Default ChunkSize should be 1000")
		assert.Equal(t, 200, config.ChunkOverlap, "Default ChunkOverlap should be 200")
		assert.Equal(t, 10*time.Second, config.RetrievalTimeout, "Default RetrievalTimeout should be 10s")
		assert.Equal(t, 30*time.Second, config.GenerationTimeout, "Default GenerationTimeout should be 30s")
		assert.Nil(t, config.InjectionPatterns, "Default InjectionPatterns should be nil (detector defaults)")
		assert.Nil(t, config.UnsafeKeywords, "Default UnsafeKeywords should be nil (detector defaults)")
	})

	t.Run("Overlap is smaller than chunk size", func(t *testing.T) {
		config := DefaultConfig()

		assert.Less(t, config.ChunkOverlap, config.ChunkSize, "Overlap must be smaller than chunk size")
	})

	t.Run("Can be modified after creation", func(t *testing.T) {
		config := DefaultConfig()

		config.TopK = 10
		config.CategoryBoost = 0.3
		config.GenerationTimeout = time.Minute

		assert.Equal(t, 10, config.TopK)
		assert.Equal(t, 0.3, config.CategoryBoost)
		assert.Equal(t, time.Minute, config.GenerationTimeout)
	})
}
