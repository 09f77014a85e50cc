package rag

import (
	"context"
	"errors"
	"time"

	"github.com/SHoar/Wedding-AI/internal/domain/commonModels"
	"github.com/SHoar/Wedding-AI/internal/metrics"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
)

const (
	statusOK     = "ok"
	statusCached = "cached"
)

func captureRequest(endpoint string, status *string, err error, start time.Time) {
	label := *status
	if err != nil {
		label = errorLabel(err)
	}
	metrics.CaptureRequestMetrics(endpoint, label, time.Since(start))
}

func errorLabel(err error) string {
	var validation *ValidationError
	var configuration *ConfigurationError
	switch {
	case errors.As(err, &validation):
		return "invalid"
	case errors.As(err, &configuration):
		return "unconfigured"
	default:
		return "upstream_error"
	}
}

func (s *service) executeCacheCheckStep(ctx context.Context, log *logger_i.Logger, key string) (commonModels.Answer, bool) {
	if s.cache == nil {
		return commonModels.Answer{}, false
	}
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("cache_lookup", time.Since(start)) }()

	answer, found := s.cache.Get(ctx, key)
	log.Debug("Cache lookup", "hit", found)
	return answer, found
}

func (s *service) executeCacheSaveStep(ctx context.Context, key string, answer commonModels.Answer) {
	if s.cache == nil {
		return
	}
	s.cache.Set(ctx, key, answer)
}

func (s *service) executeSummarizeStep(ctx context.Context, log *logger_i.Logger, contextMarkdown string) (string, error) {
	log.Debug("Summarizing planning context", "chars", len(contextMarkdown))
	return s.summarizer.Summarize(ctx, contextMarkdown)
}

func (s *service) executeRetrieveStep(ctx context.Context, log *logger_i.Logger, question string) string {
	if s.retriever == nil {
		return ""
	}
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("retrieval", time.Since(start)) }()

	retrieved := s.retriever.RetrievedContext(ctx, question, s.topK)
	log.Debug("Retrieval finished", "with_docs", retrieved != "")
	return retrieved
}

func (s *service) executeGenerateStep(ctx context.Context, log *logger_i.Logger, question, summary, retrieved string) (string, error) {
	answer, err := s.generator.Generate(ctx, question, summary, retrieved)
	if err != nil {
		log.Error("Answer generation failed", "error", err)
		return "", upstreamFailure(err)
	}
	if answer == "" {
		log.Warn("Model returned an empty answer")
		return "", errEmptyAnswer
	}
	return answer, nil
}
