package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/wandernest/concierge/helper"
	"github.com/wandernest/concierge/model"
	loadSql "github.com/wandernest/concierge/sql"
)

// ChunksDBHandlerFunctions defines the interface for Chunks database operations.
type ChunksDBHandlerFunctions interface {
	InsertChunk(chunk *model.Chunk) error
	UpdateChunkEmbedding(chunk *model.Chunk) error
	DeleteChunk(id int) error
	DeleteChunksByDocument(documentRID uuid.UUID) error
	SelectChunk(id int) (*model.Chunk, error)
	SelectChunksByDocument(documentRID uuid.UUID) ([]*model.Chunk, error)
	SelectChunksByCategory(category model.Category, limit int) ([]*model.Chunk, error)
	SelectChunksBySimilarity(ctx context.Context, embedding []float32, limit int, threshold float64, category model.Category) ([]*model.Chunk, error)
}

// ChunksDBHandler handles chunk-related database operations
type ChunksDBHandler struct {
	db *helper.Database
}

// NewChunksDBHandler creates a new chunks database handler.
// It initializes the database connection and loads chunk-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewChunksDBHandler(db *helper.Database, embeddingDim int, force bool) (*ChunksDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	chunksDbHandler := &ChunksDBHandler{
		db: db,
	}

	err := loadSql.LoadChunksSql(chunksDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load chunks sql", err)
	}

	err = chunksDbHandler.CreateTable(embeddingDim)
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized ChunksDBHandler")

	return chunksDbHandler, nil
}

// CreateTable creates the 'chunks' table in the database.
// If the table already exists, it does not create it again.
// It also creates all necessary extensions, indexes, and triggers.
func (h *ChunksDBHandler) CreateTable(embeddingDim int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Use the SQL init() function to create all tables, triggers, and indexes
	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_chunks($1);`, embeddingDim)
	if err != nil {
		log.Panicf("error initializing chunks table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table chunks")

	return nil
}

// scanChunk reads one chunk row in the column order shared by all chunk
// returning SQL functions.
func scanChunk(row interface{ Scan(...any) error }, chunk *model.Chunk) error {
	return row.Scan(
		&chunk.ID,
		&chunk.RID,
		&chunk.DocumentID,
		&chunk.DocumentRID,
		&chunk.SourceID,
		&chunk.Category,
		&chunk.Content,
		&chunk.Offset,
		&chunk.ChunkIndex,
		pq.Array(&chunk.Embedding),
		&chunk.Metadata,
		&chunk.CreatedAt,
	)
}

// InsertChunk inserts a new chunk
func (h *ChunksDBHandler) InsertChunk(chunk *model.Chunk) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_chunk($1, $2, $3, $4, $5, $6, $7, $8)`,
		chunk.DocumentID,
		chunk.SourceID,
		chunk.Category,
		chunk.Content,
		chunk.Offset,
		chunk.ChunkIndex,
		pq.Array(chunk.Embedding),
		chunk.Metadata,
	)

	err := scanChunk(row, chunk)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// UpdateChunkEmbedding replaces the embedding of a chunk
func (h *ChunksDBHandler) UpdateChunkEmbedding(chunk *model.Chunk) error {
	embeddingVector := pgvector.NewVector(chunk.Embedding)
	row := h.db.Instance.QueryRow(
		`SELECT * FROM update_chunk_embedding($1, $2)`,
		chunk.ID,
		embeddingVector,
	)

	err := scanChunk(row, chunk)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// DeleteChunk deletes a chunk by ID
func (h *ChunksDBHandler) DeleteChunk(id int) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_chunk($1)`,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

// DeleteChunksByDocument deletes all chunks belonging to a document
func (h *ChunksDBHandler) DeleteChunksByDocument(documentRID uuid.UUID) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_chunks_by_document($1)`,
		documentRID,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

// SelectChunk retrieves a chunk by ID
func (h *ChunksDBHandler) SelectChunk(id int) (*model.Chunk, error) {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_chunk($1)`,
		id,
	)

	chunk := &model.Chunk{}
	err := scanChunk(row, chunk)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return chunk, nil
}

// SelectChunksByDocument retrieves all chunks for a document in chunk order
func (h *ChunksDBHandler) SelectChunksByDocument(documentRID uuid.UUID) ([]*model.Chunk, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_chunks_by_document($1)`,
		documentRID,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var chunks []*model.Chunk
	for rows.Next() {
		chunk := &model.Chunk{}
		err := scanChunk(rows, chunk)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		chunks = append(chunks, chunk)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return chunks, nil
}

// SelectChunksByCategory retrieves chunks carrying the given category label
func (h *ChunksDBHandler) SelectChunksByCategory(category model.Category, limit int) ([]*model.Chunk, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_chunks_by_category($1, $2)`,
		category,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var chunks []*model.Chunk
	for rows.Next() {
		chunk := &model.Chunk{}
		err := scanChunk(rows, chunk)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		chunks = append(chunks, chunk)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return chunks, nil
}

// SelectChunksBySimilarity performs cosine similarity search.
// An empty category searches across all categories. Ties on similarity
// resolve by ascending chunk id, keeping the ordering deterministic.
func (h *ChunksDBHandler) SelectChunksBySimilarity(ctx context.Context, embedding []float32, limit int, threshold float64, category model.Category) ([]*model.Chunk, error) {
	embeddingVector := pgvector.NewVector(embedding)

	rows, err := h.db.Instance.QueryContext(
		ctx,
		`SELECT * FROM select_chunks_by_similarity($1, $2, $3, $4)`,
		embeddingVector,
		limit,
		threshold,
		category,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var results []*model.Chunk
	for rows.Next() {
		chunk := &model.Chunk{}
		err := rows.Scan(
			&chunk.ID,
			&chunk.RID,
			&chunk.DocumentID,
			&chunk.DocumentRID,
			&chunk.SourceID,
			&chunk.Category,
			&chunk.Content,
			&chunk.Offset,
			&chunk.ChunkIndex,
			pq.Array(&chunk.Embedding),
			&chunk.Metadata,
			&chunk.CreatedAt,
			&chunk.Similarity,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		results = append(results, chunk)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return results, nil
}
