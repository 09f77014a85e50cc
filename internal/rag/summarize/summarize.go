package summarize

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SHoar/Wedding-AI/internal/config"
	"github.com/SHoar/Wedding-AI/internal/metrics"
	"github.com/SHoar/Wedding-AI/internal/rag/llm"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
)

const systemPrompt = "You summarize wedding planning context for downstream Q&A. Keep facts, remove fluff."
const userTemplate = "Summarize the context below in bullet points grouped by schedule, guests, and tasks.\n\n%s"

type Summarizer struct {
	provider llm.Provider
	logger   *logger_i.Logger
}

func New(provider llm.Provider) *Summarizer {
	return &Summarizer{
		provider: provider,
		logger:   logger_i.NewLogger("Summarizer"),
	}
}

// Summarize condenses the planning markdown into bullet points. The model runs at temperature zero.
func (s *Summarizer) Summarize(ctx context.Context, contextMarkdown string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_summarize", time.Since(start)) }()

	temperature := config.ModelTemperature
	content, err := s.provider.Complete(ctx, llm.Request{
		System:      systemPrompt,
		User:        fmt.Sprintf(userTemplate, contextMarkdown),
		Temperature: &temperature,
	})
	if err != nil {
		// returned as is; the message reaches clients in the 502 detail
		s.logger.WithTrace(ctx).Warn("Summarization call failed", "error", err)
		return "", err
	}

	summary := strings.TrimSpace(content.Normalize())
	s.logger.WithTrace(ctx).Debug("Context summarized", "chars", len(summary))
	return summary, nil
}
