package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wandernest/concierge/model"
)

func stubEmbedder(dim int) EmbedFunc {
	return func(text string) ([]float32, error) {
		embedding := make([]float32, dim)
		for i := range embedding {
			embedding[i] = float32(len(text)%7) * 0.1
		}
		return embedding, nil
	}
}

func TestPipelineProcess(t *testing.T) {
	t.Run("Produces chunks with source, category and embeddings", func(t *testing.T) {
		p := NewPipeline(OverlapChunker(20, 5), stubEmbedder(8))

		chunks, err := p.Process("Baggage allowance is 23kg for international flights.", "baggage-policy.pdf", model.CategoryBookingPolicies)

		require.NoError(t, err)
		require.NotEmpty(t, chunks)
		for _, chunk := range chunks {
			assert.Equal(t, "baggage-policy.pdf", chunk.SourceID)
			assert.Equal(t, model.CategoryBookingPolicies, chunk.Category)
			assert.Len(t, chunk.Embedding, 8)
			require.NotNil(t, chunk.ChunkIndex)
		}
	})

	t.Run("Chunk offsets respect document bounds", func(t *testing.T) {
		p := NewPipeline(OverlapChunker(15, 3), stubEmbedder(4))
		text := "A long enough policy text to produce several chunks."

		chunks, err := p.Process(text, "doc.txt", model.CategoryGeneral)

		require.NoError(t, err)
		for _, chunk := range chunks {
			assert.LessOrEqual(t, chunk.Offset+len(chunk.Content), len(text))
		}
	})

	t.Run("Nil embedder leaves embeddings empty", func(t *testing.T) {
		p := NewPipeline(OverlapChunker(100, 0), nil)

		chunks, err := p.Process("Short text.", "doc.txt", model.CategoryGeneral)

		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Nil(t, chunks[0].Embedding)
	})

	t.Run("Chunker error is propagated", func(t *testing.T) {
		p := NewPipeline(OverlapChunker(0, 0), stubEmbedder(4))

		_, err := p.Process("text", "doc.txt", model.CategoryGeneral)

		assert.Error(t, err)
	})

	t.Run("Embedder error is propagated", func(t *testing.T) {
		failing := func(text string) ([]float32, error) {
			return nil, fmt.Errorf("embedding backend down")
		}
		p := NewPipeline(OverlapChunker(100, 0), failing)

		_, err := p.Process("Short text.", "doc.txt", model.CategoryGeneral)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "embedding backend down")
	})

	t.Run("Empty text yields no chunks", func(t *testing.T) {
		p := NewPipeline(DefaultChunker(), stubEmbedder(4))

		chunks, err := p.Process("", "doc.txt", model.CategoryGeneral)

		require.NoError(t, err)
		assert.Len(t, chunks, 0)
	})
}
