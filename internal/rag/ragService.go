package rag

import (
	"context"
	"strings"
	"time"

	"github.com/SHoar/Wedding-AI/internal/cache"
	"github.com/SHoar/Wedding-AI/internal/domain/commonModels"
	"github.com/SHoar/Wedding-AI/internal/domain/planning"
	"github.com/SHoar/Wedding-AI/internal/rag/formatter"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
	"golang.org/x/sync/errgroup"
)

// DocsOnlySummary stands in for the planning summary when answering from documentation alone.
const DocsOnlySummary = "No live wedding data provided; answer from documentation only."

const (
	endpointAsk  = "ask"
	endpointDocs = "ask_docs"
)

// Service answers questions. Handlers and the MCP server only see this.
type Service interface {
	Ask(ctx context.Context, input AskInput) (commonModels.Answer, error)
	AskDocs(ctx context.Context, question string) (commonModels.Answer, error)
}

type AskInput struct {
	Question string
	Snapshot planning.Snapshot
}

type Summarizer interface {
	Summarize(ctx context.Context, contextMarkdown string) (string, error)
}

// Retriever never fails; an unavailable index yields "".
type Retriever interface {
	RetrievedContext(ctx context.Context, question string, k int) string
}

type Generator interface {
	Generate(ctx context.Context, question, contextSummary, retrievedContext string) (string, error)
	Model() string
}

type Deps struct {
	Summarizer Summarizer
	Retriever  Retriever
	Generator  Generator
	// Cache is optional; nil disables caching.
	Cache cache.ResponseCache
	TopK  int
	// MissingCredential, when set, turns every request into a ConfigurationError with this message.
	MissingCredential string
}

type service struct {
	summarizer        Summarizer
	retriever         Retriever
	generator         Generator
	cache             cache.ResponseCache
	topK              int
	missingCredential string
	logger            *logger_i.Logger
}

func NewService(deps Deps) Service {
	return &service{
		summarizer:        deps.Summarizer,
		retriever:         deps.Retriever,
		generator:         deps.Generator,
		cache:             deps.Cache,
		topK:              deps.TopK,
		missingCredential: deps.MissingCredential,
		logger:            logger_i.NewLogger("RAG Service"),
	}
}

func (s *service) Ask(ctx context.Context, input AskInput) (result commonModels.Answer, err error) {
	start := time.Now()
	log := s.logger.WithTrace(ctx)
	status := statusOK
	defer func() { captureRequest(endpointAsk, &status, err, start) }()

	question, err := s.precheck(input.Question)
	if err != nil {
		return result, err
	}

	contextMarkdown := formatter.BuildContextMarkdown(input.Snapshot)
	key := cache.AskKey(question, contextMarkdown)
	if cached, found := s.executeCacheCheckStep(ctx, log, key); found {
		status = statusCached
		return cached, nil
	}

	// a plain Group: a failed summary must not cancel retrieval, which may be building the index
	var summary, retrieved string
	var g errgroup.Group
	g.Go(func() error {
		var serr error
		summary, serr = s.executeSummarizeStep(ctx, log, contextMarkdown)
		return serr
	})
	g.Go(func() error {
		// retrieval uses the question as sent, not the trimmed copy
		retrieved = s.executeRetrieveStep(ctx, log, input.Question)
		return nil
	})
	if err = g.Wait(); err != nil {
		log.Error("Summarization failed", "error", err)
		return result, upstreamFailure(err)
	}

	answer, err := s.executeGenerateStep(ctx, log, question, summary, retrieved)
	if err != nil {
		return result, err
	}

	result = commonModels.Answer{
		Answer:         answer,
		Model:          s.generator.Model(),
		ContextSummary: optional(summary),
	}
	s.executeCacheSaveStep(ctx, key, result)
	return result, nil
}

func (s *service) AskDocs(ctx context.Context, rawQuestion string) (result commonModels.Answer, err error) {
	start := time.Now()
	log := s.logger.WithTrace(ctx)
	status := statusOK
	defer func() { captureRequest(endpointDocs, &status, err, start) }()

	question, err := s.precheck(rawQuestion)
	if err != nil {
		return result, err
	}

	key := cache.DocsKey(question)
	if cached, found := s.executeCacheCheckStep(ctx, log, key); found {
		status = statusCached
		return cached, nil
	}

	retrieved := s.executeRetrieveStep(ctx, log, question)
	answer, err := s.executeGenerateStep(ctx, log, question, DocsOnlySummary, retrieved)
	if err != nil {
		return result, err
	}

	summary := DocsOnlySummary
	result = commonModels.Answer{
		Answer:         answer,
		Model:          s.generator.Model(),
		ContextSummary: &summary,
	}
	s.executeCacheSaveStep(ctx, key, result)
	return result, nil
}

// precheck runs the credential check before looking at the question, so an unconfigured service answers 503 to everything.
func (s *service) precheck(question string) (string, error) {
	if s.missingCredential != "" {
		return "", &ConfigurationError{Message: s.missingCredential}
	}
	trimmed := strings.TrimSpace(question)
	if trimmed == "" {
		return "", errBlankQuestion
	}
	return trimmed, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
