package docindex

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SHoar/Wedding-AI/internal/metrics"
	"github.com/SHoar/Wedding-AI/internal/rag/embedding"
	"github.com/SHoar/Wedding-AI/internal/rag/ingest"
	"github.com/SHoar/Wedding-AI/internal/rag/vectorDB"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
)

const contextHeader = "Relevant documentation:\n\n"
const chunkSeparator = "\n---\n\n"

type Options struct {
	Collection   vectorDB.Collection
	Embedder     embedding.Embedder
	DocsDir      string
	ExtraFormats bool
	TopK         int
}

// Index is the documentation collection plus the embedder used to fill and search it.
// It is populated at most once per process unless Rebuild is called.
type Index struct {
	collection   vectorDB.Collection
	embedder     embedding.Embedder
	docsDir      string
	extraFormats bool
	topK         int

	mu     sync.Mutex
	ready  atomic.Bool
	logger *logger_i.Logger
}

func New(opts Options) *Index {
	return &Index{
		collection:   opts.Collection,
		embedder:     opts.Embedder,
		docsDir:      opts.DocsDir,
		extraFormats: opts.ExtraFormats,
		topK:         opts.TopK,
		logger:       logger_i.NewLogger("Document Index"),
	}
}

// Ready reports whether a build has completed.
func (ix *Index) Ready() bool {
	return ix != nil && ix.ready.Load()
}

// Build fills an empty collection from the docs directory. A collection that already holds chunks is left as is.
// On failure the index stays not ready and the next call tries again.
func (ix *Index) Build(ctx context.Context) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.buildLocked(ctx)
}

func (ix *Index) buildLocked(ctx context.Context) error {
	if ix.ready.Load() {
		return nil
	}
	log := ix.logger.WithTrace(ctx)
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("index_build", time.Since(start)) }()

	count, err := ix.collection.Count(ctx)
	if err != nil {
		log.Warn("Could not count collection, treating as empty", "error", err)
		count = 0
	}
	if count > 0 {
		log.Info("Collection already populated", "chunks", count)
		metrics.SetIndexChunks(count)
		metrics.CountIndexBuild("reused")
		ix.ready.Store(true)
		return nil
	}

	chunks, err := ingest.LoadDocuments(ix.docsDir, ix.extraFormats)
	if err != nil {
		metrics.CountIndexBuild("failed")
		return fmt.Errorf("load documents: %w", err)
	}
	if len(chunks) == 0 {
		log.Warn("No documentation found, index is empty", "dir", ix.docsDir)
		metrics.SetIndexChunks(0)
		metrics.CountIndexBuild("empty")
		ix.ready.Store(true)
		return nil
	}

	if err := ingest.BatchIngest(ctx, chunks, ix.collection, ix.embedder); err != nil {
		metrics.CountIndexBuild("failed")
		// a partly written collection would be reused as complete on the next attempt
		if rerr := ix.collection.Reset(context.WithoutCancel(ctx)); rerr != nil {
			log.Error("Could not clear collection after failed build", "error", rerr)
		}
		return fmt.Errorf("index documents: %w", err)
	}

	log.Info("Documentation indexed", "chunks", len(chunks))
	metrics.SetIndexChunks(len(chunks))
	metrics.CountIndexBuild("built")
	ix.ready.Store(true)
	return nil
}

// Rebuild drops the collection and indexes the docs directory again.
func (ix *Index) Rebuild(ctx context.Context) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if err := ix.collection.Reset(ctx); err != nil {
		return fmt.Errorf("reset collection: %w", err)
	}
	ix.ready.Store(false)
	return ix.buildLocked(ctx)
}

// Retrieve returns the text of the k chunks closest to question, or the configured default when k <= 0.
// Every failure degrades to no results.
func (ix *Index) Retrieve(ctx context.Context, question string, k int) []string {
	question = strings.TrimSpace(question)
	if ix == nil || question == "" {
		return []string{}
	}
	log := ix.logger.WithTrace(ctx)

	if !ix.ready.Load() {
		// the build is shared by every waiting request, so one caller going away must not abort it
		if err := ix.Build(context.WithoutCancel(ctx)); err != nil {
			log.Error("Index build failed, answering without documentation", "error", err)
			return []string{}
		}
	}
	if k <= 0 {
		k = ix.topK
	}

	vector, err := ix.embedder.GetEmbedding(ctx, question)
	if err != nil {
		log.Error("Query embedding failed, answering without documentation", "error", err)
		return []string{}
	}
	chunks, err := ix.collection.Query(ctx, vector, k)
	if err != nil {
		log.Error("Similarity search failed, answering without documentation", "error", err)
		return []string{}
	}

	texts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		texts = append(texts, c.Text)
	}
	log.Debug("Retrieved documentation", "chunks", len(texts))
	return texts
}

// RetrievedContext is Retrieve rendered as a prompt block.
func (ix *Index) RetrievedContext(ctx context.Context, question string, k int) string {
	return FormatContext(ix.Retrieve(ctx, question, k))
}

// FormatContext renders chunks under a fixed header; no chunks render as "".
func FormatContext(chunks []string) string {
	if len(chunks) == 0 {
		return ""
	}
	return contextHeader + strings.Join(chunks, chunkSeparator)
}

func (ix *Index) Close() error {
	if ix == nil || ix.collection == nil {
		return nil
	}
	return ix.collection.Close()
}
