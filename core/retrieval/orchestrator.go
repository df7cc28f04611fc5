package retrieval

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/cenkalti/backoff/v4"
	"github.com/wandernest/concierge/helper"
	"github.com/wandernest/concierge/model"
)

// candidateMultiplier controls how many candidates are requested from the
// index relative to top-k, leaving headroom for category boosting to
// reorder results before truncation.
const candidateMultiplier = 3

// Index is the narrow interface to the external vector index. Embedding of
// the query text happens behind this interface. Implementations must honor
// context cancellation and deadlines.
type Index interface {
	Query(ctx context.Context, text string, limit int) ([]*model.Chunk, error)
}

// Orchestrator issues retrieval requests against the index, applies an
// optional category boost and returns a ranked, bounded evidence set.
type Orchestrator struct {
	index  Index
	config model.Config
	log    *slog.Logger
}

// NewOrchestrator creates a retrieval orchestrator
func NewOrchestrator(index Index, config model.Config, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		index:  index,
		config: config,
		log:    logger,
	}
}

// Retrieve returns the top-k evidence for the query text, ordered by
// descending final score with a stable tie-break by ascending chunk id.
// A category hint up-weights matching chunks but never excludes others,
// so a mis-categorized but relevant chunk stays retrievable. Zero
// candidates from the index yield an empty evidence set, not an error.
// A deadline hit on the index call is retried once with backoff.
func (o *Orchestrator) Retrieve(ctx context.Context, text string, hint model.Category) ([]*model.RetrievalResult, error) {
	limit := o.config.TopK * candidateMultiplier

	var chunks []*model.Chunk
	operation := func() error {
		queryCtx, cancel := context.WithTimeout(ctx, o.config.RetrievalTimeout)
		defer cancel()

		var err error
		chunks, err = o.index.Query(queryCtx, text, limit)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 1), ctx))
	if err != nil {
		return nil, helper.NewError("vector index query", err)
	}

	results := make([]*model.RetrievalResult, 0, len(chunks))
	for _, chunk := range chunks {
		similarity := 0.0
		if chunk.Similarity != nil {
			similarity = *chunk.Similarity
		}
		if similarity < o.config.SimilarityThreshold {
			continue
		}

		result := &model.RetrievalResult{
			Chunk:           chunk,
			Score:           similarity,
			SimilarityScore: similarity,
			Category:        chunk.Category,
		}
		if hint != "" && hint != model.CategoryGeneral && hint.Valid() && chunk.Category == hint {
			result.Score += o.config.CategoryBoost
			result.Boosted = true
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Chunk.ID < results[j].Chunk.ID
	})

	if len(results) > o.config.TopK {
		results = results[:o.config.TopK]
	}

	o.log.Debug("Retrieved evidence",
		slog.Int("candidates", len(chunks)),
		slog.Int("results", len(results)),
		slog.String("category_hint", string(hint)),
	)

	return results, nil
}
