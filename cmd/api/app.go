package main

import (
	"context"
	"fmt"

	"github.com/SHoar/Wedding-AI/internal/cache"
	"github.com/SHoar/Wedding-AI/internal/config"
	"github.com/SHoar/Wedding-AI/internal/customHttpClient"
	"github.com/SHoar/Wedding-AI/internal/rag"
	"github.com/SHoar/Wedding-AI/internal/rag/answer"
	"github.com/SHoar/Wedding-AI/internal/rag/docindex"
	"github.com/SHoar/Wedding-AI/internal/rag/embedding"
	"github.com/SHoar/Wedding-AI/internal/rag/embedding/googleEmbedding"
	"github.com/SHoar/Wedding-AI/internal/rag/embedding/openaiEmbedding"
	"github.com/SHoar/Wedding-AI/internal/rag/llm"
	"github.com/SHoar/Wedding-AI/internal/rag/llm/gemini"
	"github.com/SHoar/Wedding-AI/internal/rag/llm/openaiLLM"
	"github.com/SHoar/Wedding-AI/internal/rag/summarize"
	"github.com/SHoar/Wedding-AI/internal/rag/vectorDB"
	"github.com/SHoar/Wedding-AI/internal/rag/vectorDB/qdrantDB"
	"github.com/SHoar/Wedding-AI/internal/rag/vectorDB/sqliteDB"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
)

// app holds everything built from Settings that outlives a single request.
type app struct {
	settings          config.Settings
	index             *docindex.Index
	service           rag.Service
	missingCredential string
	closers           []func() error
}

// newApp wires providers, the vector store, the index and the cache.
// A missing API key is not fatal: the service answers every question with 503 instead.
func newApp(ctx context.Context, s config.Settings) (*app, error) {
	logger := logger_i.NewLogger("main")
	a := &app{settings: s}

	if s.APIKey() == "" {
		a.missingCredential = s.MissingCredentialMessage()
		logger.Warn("No API key configured, questions will be rejected", "provider", s.Provider)
	}

	var provider llm.Provider
	var embedder embedding.Embedder
	if a.missingCredential == "" {
		var err error
		provider, embedder, err = newProviders(ctx, s)
		if err != nil {
			return nil, err
		}
	}

	if embedder != nil {
		collection, err := openCollection(s)
		if err != nil {
			return nil, err
		}
		a.index = docindex.New(docindex.Options{
			Collection:   collection,
			Embedder:     embedder,
			DocsDir:      s.DocsDir,
			ExtraFormats: s.DocsExtraFormats,
			TopK:         s.RagTopK,
		})
		a.closers = append(a.closers, a.index.Close)
	}

	responseCache, closeCache := cache.FromSettings(ctx, s)
	a.closers = append(a.closers, closeCache)

	deps := rag.Deps{
		Cache:             responseCache,
		TopK:              s.RagTopK,
		MissingCredential: a.missingCredential,
	}
	if provider != nil {
		deps.Summarizer = summarize.New(provider)
		deps.Generator = answer.New(provider)
	}
	if a.index != nil {
		deps.Retriever = a.index
	}
	a.service = rag.NewService(deps)

	logger.Info("Services ready", "provider", s.Provider, "model", s.Model(),
		"vectorStore", vectorStoreName(s), "cacheBackend", s.CacheBackend, "cacheTTL", s.CacheTTL())
	return a, nil
}

func newProviders(ctx context.Context, s config.Settings) (llm.Provider, embedding.Embedder, error) {
	httpClient := customHttpClient.NewClient(s.AITimeout())

	switch s.Provider {
	case config.ProviderGemini:
		provider, err := gemini.NewGeminiClient(ctx, s.APIKey(), s.Model(), s.AITimeout(), httpClient)
		if err != nil {
			return nil, nil, fmt.Errorf("gemini client: %w", err)
		}
		embedder, err := googleEmbedding.NewGoogleEmbeddingClient(ctx, s.EmbeddingModel(), s.APIKey(), httpClient)
		if err != nil {
			return nil, nil, fmt.Errorf("gemini embedding client: %w", err)
		}
		return provider, embedder, nil
	default:
		provider := openaiLLM.NewClient(openaiLLM.Options{
			APIKey:     s.APIKey(),
			Model:      s.Model(),
			HTTPClient: httpClient,
		})
		embedder := openaiEmbedding.NewOpenAIEmbeddingClient(openaiEmbedding.Options{
			APIKey:     s.APIKey(),
			Model:      s.EmbeddingModel(),
			HTTPClient: httpClient,
		})
		return provider, embedder, nil
	}
}

func openCollection(s config.Settings) (vectorDB.Collection, error) {
	if s.QdrantHost != "" {
		collection, err := qdrantDB.NewQdrantCollection(s.QdrantHost, s.QdrantPort, config.CollectionName)
		if err != nil {
			return nil, fmt.Errorf("qdrant: %w", err)
		}
		return collection, nil
	}
	collection, err := sqliteDB.Open(s.IndexPersistDir, config.CollectionName)
	if err != nil {
		return nil, fmt.Errorf("sqlite index: %w", err)
	}
	return collection, nil
}

func vectorStoreName(s config.Settings) string {
	if s.QdrantHost != "" {
		return "qdrant"
	}
	return "sqlite"
}

func (a *app) Close() {
	logger := logger_i.NewLogger("main")
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn("Close failed", "error", err)
		}
	}
	a.closers = nil
}
