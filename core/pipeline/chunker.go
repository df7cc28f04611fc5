package pipeline

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// OverlapChunker creates a chunker that splits text into fixed-size slices
// where consecutive slices share the configured overlap. Offsets are byte
// positions into the source text, so offset plus content length is always
// within the source's bounds. Boundaries never split a multi-byte rune, so
// every slice is valid UTF-8 when the source is.
func OverlapChunker(chunkSize int, overlap int) ChunkFunc {
	return func(text string) ([]Slice, error) {
		if chunkSize <= 0 {
			return nil, fmt.Errorf("chunk size must be positive")
		}
		if overlap < 0 || overlap >= chunkSize {
			return nil, fmt.Errorf("overlap must be in [0, chunk size)")
		}

		if strings.TrimSpace(text) == "" {
			return []Slice{}, nil
		}

		var slices []Slice

		index := 0
		start := 0
		for start < len(text) {
			end := start + chunkSize
			if end >= len(text) {
				end = len(text)
			} else {
				for end > start && !utf8.RuneStart(text[end]) {
					end--
				}
			}

			slices = append(slices, Slice{
				Content: text[start:end],
				Offset:  start,
				Index:   index,
			})
			index++

			if end == len(text) {
				break
			}

			next := end - overlap
			if next <= start {
				next = start + 1
			}
			for next < len(text) && !utf8.RuneStart(text[next]) {
				next++
			}
			start = next
		}

		return slices, nil
	}
}

// ParagraphChunker creates a chunker that splits text on blank lines.
// Useful for policy documents where paragraphs are self-contained rules.
func ParagraphChunker() ChunkFunc {
	return func(text string) ([]Slice, error) {
		paragraphs := strings.Split(text, "\n\n")

		var slices []Slice
		pos := 0
		index := 0

		for _, para := range paragraphs {
			trimmed := strings.TrimSpace(para)
			if trimmed != "" {
				offset := pos + strings.Index(para, trimmed)
				slices = append(slices, Slice{
					Content: trimmed,
					Offset:  offset,
					Index:   index,
				})
				index++
			}
			pos += len(para) + len("\n\n")
		}

		return slices, nil
	}
}

// DefaultChunker returns the overlap chunker with the ingestion defaults
// (1000 byte chunks, 200 byte overlap)
func DefaultChunker() ChunkFunc {
	return OverlapChunker(1000, 200)
}

// cosineSimilarity calculates the cosine similarity between two embedding vectors
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float32
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}
