package concierge

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wandernest/concierge/core/audit"
	"github.com/wandernest/concierge/core/generation"
	"github.com/wandernest/concierge/core/governance"
	"github.com/wandernest/concierge/core/pipeline"
	"github.com/wandernest/concierge/core/query"
	"github.com/wandernest/concierge/core/retrieval"
	"github.com/wandernest/concierge/database"
	"github.com/wandernest/concierge/helper"
	"github.com/wandernest/concierge/model"
	loadSql "github.com/wandernest/concierge/sql"
)

// Concierge wires the governed question answering stack: document ingestion,
// the governance gate, vector retrieval and answer generation.
type Concierge struct {
	DB        *helper.Database
	Chunks    *database.ChunksDBHandler
	Documents *database.DocumentsDBHandler
	Pipeline  *pipeline.Pipeline // Optional chunking pipeline
	Gate      *governance.Gate
	Audit     *audit.Log
	Metrics   *audit.Metrics
	// Internals
	config       model.Config
	completer    generation.CompleteFunc
	orchestrator *retrieval.Orchestrator
	queries      *query.Pipeline
	log          *slog.Logger
}

// NewConcierge creates a Concierge with all handlers initialized.
// The chunking pipeline and the generation completer are set separately,
// ingestion needs the first and Ask needs both.
func NewConcierge(dbConfig *helper.DatabaseConfiguration, config model.Config, embeddingDim int) (*Concierge, error) {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	// Initialize database
	db := helper.NewDatabase("concierge", dbConfig, logger)
	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("initialize database extensions", err)
	}

	// Create handlers in the correct order (documents first, then chunks)
	// force=false to not reload if functions already exist
	documents, err := database.NewDocumentsDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create documents handler", err)
	}

	chunks, err := database.NewChunksDBHandler(db, embeddingDim, false)
	if err != nil {
		return nil, helper.NewError("create chunks handler", err)
	}

	auditLog := audit.NewLog(logger)
	metrics := audit.NewMetrics()
	gate := governance.NewGate(config, auditLog, logger)

	c := &Concierge{
		DB:        db,
		Chunks:    chunks,
		Documents: documents,
		Gate:      gate,
		Audit:     auditLog,
		Metrics:   metrics,
		config:    config,
		log:       logger,
	}

	c.orchestrator = retrieval.NewOrchestrator(&vectorIndex{concierge: c}, config, logger)

	generator := generation.NewGenerator(c.complete, config.GenerationTimeout, logger)
	c.queries = query.NewPipeline(gate, c.orchestrator, generator, pipeline.CategorizeQuery, metrics, logger)

	return c, nil
}

// Close shuts down the audit fan-out and the database connection
func (c *Concierge) Close() error {
	if c.Audit != nil {
		c.Audit.Close()
	}
	if c.DB != nil && c.DB.Instance != nil {
		return c.DB.Instance.Close()
	}
	return nil
}

// SetPipeline sets the chunking pipeline for document processing and query embedding
func (c *Concierge) SetPipeline(pipeline *pipeline.Pipeline) {
	c.Pipeline = pipeline
}

// UseDefaultPipeline sets up the default chunking and embedding pipeline.
// This uses the overlap chunker with 1000 character chunks and 200 character
// overlap, and DefaultEmbedder with the all-MiniLM-L6-v2 model (384 dimensions).
func (c *Concierge) UseDefaultPipeline() error {
	chunker := pipeline.DefaultChunker()
	embedder, err := pipeline.DefaultEmbedder()
	if err != nil {
		return helper.NewError("create default embedder", err)
	}

	c.Pipeline = pipeline.NewPipeline(chunker, embedder)
	return nil
}

// SetCompleter sets the generation backend used to answer queries
func (c *Concierge) SetCompleter(completer generation.CompleteFunc) {
	c.completer = completer
}

// UseDefaultCompleter sets up the OpenAI-backed completer from the environment
func (c *Concierge) UseDefaultCompleter() error {
	completer, err := generation.DefaultCompleter()
	if err != nil {
		return helper.NewError("create default completer", err)
	}

	c.completer = completer
	return nil
}

// complete dispatches to the configured completer. Ask validates the
// completer is set before any query reaches this point.
func (c *Concierge) complete(ctx context.Context, prompt string) (string, error) {
	if c.completer == nil {
		return "", helper.NewError("completion", fmt.Errorf("completer not set, use SetCompleter() first"))
	}
	return c.completer(ctx, prompt)
}

// IngestDocument categorizes, chunks, embeds and persists a document:
// 1. Derives the category label from the document source filename
// 2. Inserts the document metadata (without content)
// 3. Processes the content into embedded chunks using the pipeline
// 4. Inserts all chunks carrying the document's category label
// The document's Content field is used for processing but not stored in the
// database. Returns the number of chunks inserted and any error encountered.
func (c *Concierge) IngestDocument(doc *model.Document) (int, error) {
	if c.Pipeline == nil {
		return 0, helper.NewError("ingest document", fmt.Errorf("pipeline not set, use SetPipeline() first"))
	}

	if doc.Content == "" {
		return 0, helper.NewError("ingest document", fmt.Errorf("document content is empty"))
	}

	sourceID := filepath.Base(doc.Source)
	if doc.Category == "" {
		doc.Category = pipeline.Categorize(sourceID)
	}

	// Store content temporarily and clear it before DB insert
	content := doc.Content
	doc.Content = ""

	// Insert document metadata
	if err := c.Documents.InsertDocument(doc); err != nil {
		return 0, helper.NewError("insert document", err)
	}

	c.log.Info("Inserted document",
		slog.String("document_id", doc.RID.String()),
		slog.String("title", doc.Title),
		slog.String("category", string(doc.Category)),
	)

	// Process content into embedded chunks
	chunks, err := c.Pipeline.Process(content, sourceID, doc.Category)
	if err != nil {
		return 0, helper.NewError("process chunks", err)
	}

	c.log.Info("Processed document into chunks", slog.Int("num_chunks", len(chunks)), slog.String("document_id", doc.RID.String()))

	// Insert all chunks
	for i, chunk := range chunks {
		chunk.DocumentID = doc.ID
		if err := c.Chunks.InsertChunk(chunk); err != nil {
			return i, helper.NewError(fmt.Sprintf("insert chunk %d", i), err)
		}
	}

	return len(chunks), nil
}

// IngestFile reads a file from disk and ingests it as a document
func (c *Concierge) IngestFile(filePath string, metadata model.Metadata) (*model.Document, int, error) {
	doc, err := model.NewDocumentFromFile(filePath, metadata)
	if err != nil {
		return nil, 0, helper.NewError("read document file", err)
	}

	inserted, err := c.IngestDocument(doc)
	if err != nil {
		return doc, inserted, err
	}

	return doc, inserted, nil
}

// Ask runs one question through the full governed pipeline: pre-gate,
// retrieval with category boosting, generation and post-gate. Gate blocks
// and upstream failures come back as typed responses, not errors.
func (c *Concierge) Ask(ctx context.Context, text string) (*model.Response, error) {
	if c.Pipeline == nil || c.Pipeline.Embedder == nil {
		return nil, helper.NewError("ask", fmt.Errorf("pipeline with embedder not set, use SetPipeline() first"))
	}
	if c.completer == nil {
		return nil, helper.NewError("ask", fmt.Errorf("completer not set, use SetCompleter() first"))
	}

	return c.queries.Ask(ctx, model.NewQuery(text))
}

// Retrieve performs governed retrieval only: the query text is embedded and
// matched against the vector index with category boosting, without calling
// the generation backend. The text is NOT gate-checked, callers wanting the
// full treatment use Ask.
func (c *Concierge) Retrieve(ctx context.Context, text string, hint model.Category) ([]*model.RetrievalResult, error) {
	if c.Pipeline == nil || c.Pipeline.Embedder == nil {
		return nil, helper.NewError("retrieve", fmt.Errorf("pipeline with embedder not set, use SetPipeline() first"))
	}

	return c.orchestrator.Retrieve(ctx, text, hint)
}

// ChangeIndexType changes the vector index type between HNSW and IVFFlat
func (c *Concierge) ChangeIndexType(ctx context.Context, indexType string, params map[string]interface{}) error {
	return c.Chunks.ChangeIndexType(ctx, indexType, params)
}

// vectorIndex adapts the chunks handler and the embedding pipeline to the
// retrieval.Index interface. The configured retrieval timeout bounds each
// index query.
type vectorIndex struct {
	concierge *Concierge
}

func (i *vectorIndex) Query(ctx context.Context, text string, limit int) ([]*model.Chunk, error) {
	c := i.concierge

	embedding, err := c.Pipeline.Embedder(text)
	if err != nil {
		return nil, helper.NewError("generate embedding", err)
	}

	queryCtx, cancel := context.WithTimeout(ctx, c.config.RetrievalTimeout)
	defer cancel()

	return c.Chunks.SelectChunksBySimilarity(queryCtx, embedding, limit, 0, "")
}
