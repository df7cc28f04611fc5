package pipeline

import (
	"github.com/wandernest/concierge/model"
)

// ChunkFunc splits text into contiguous slices with their offsets
type ChunkFunc func(text string) ([]Slice, error)

// EmbedFunc generates an embedding for a text
type EmbedFunc func(text string) ([]float32, error)

// Slice is one chunk of text before it becomes an indexed model.Chunk
type Slice struct {
	Content string
	Offset  int
	Index   int
}

// Pipeline combines chunking and embedding for document ingestion
type Pipeline struct {
	Chunker  ChunkFunc
	Embedder EmbedFunc
}

// NewPipeline creates a new ingestion pipeline
func NewPipeline(chunker ChunkFunc, embedder EmbedFunc) *Pipeline {
	return &Pipeline{
		Chunker:  chunker,
		Embedder: embedder,
	}
}

// Process chunks and embeds a document's text. Every produced chunk carries
// the source identifier and the category assigned at ingestion time.
func (p *Pipeline) Process(text string, sourceID string, category model.Category) ([]*model.Chunk, error) {
	slices, err := p.Chunker(text)
	if err != nil {
		return nil, err
	}

	chunks := make([]*model.Chunk, 0, len(slices))
	for _, slice := range slices {
		chunk := &model.Chunk{
			SourceID: sourceID,
			Category: category,
			Content:  slice.Content,
			Offset:   slice.Offset,
			Metadata: model.Metadata{},
		}
		index := slice.Index
		chunk.ChunkIndex = &index

		if p.Embedder != nil {
			embedding, err := p.Embedder(slice.Content)
			if err != nil {
				return nil, err
			}
			chunk.Embedding = embedding
		}

		chunks = append(chunks, chunk)
	}

	return chunks, nil
}
