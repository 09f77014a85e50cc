package answer

import (
	"context"
	"strings"
	"time"

	"github.com/SHoar/Wedding-AI/internal/metrics"
	"github.com/SHoar/Wedding-AI/internal/rag/llm"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
)

const systemPrompt = `You are an operations copilot for a wedding coordination dashboard.
Use the provided planning context to answer clearly and concretely.

Rules:
- If data is missing, say so explicitly.
- Prefer concise, practical answers.
- For schedule questions, mention exact times if provided.
- For guest or task summaries, provide actionable next steps.`

type Generator struct {
	provider llm.Provider
	logger   *logger_i.Logger
}

func New(provider llm.Provider) *Generator {
	return &Generator{
		provider: provider,
		logger:   logger_i.NewLogger("Answer Generator"),
	}
}

func (g *Generator) Model() string {
	return g.provider.Model()
}

// BuildPrompt lays out the question, the summary and, when present, the retrieved documentation.
func BuildPrompt(question, contextSummary, retrievedContext string) string {
	prompt := "Question:\n" + strings.TrimSpace(question) + "\n\nContext summary:\n" + contextSummary
	if retrievedContext != "" {
		prompt += "\n\n" + retrievedContext
	}
	return prompt
}

// Generate returns the trimmed answer. An empty string is a valid result and is left for the caller to reject.
func (g *Generator) Generate(ctx context.Context, question, contextSummary, retrievedContext string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	content, err := g.provider.Complete(ctx, llm.Request{
		System: systemPrompt,
		User:   BuildPrompt(question, contextSummary, retrievedContext),
	})
	if err != nil {
		g.logger.WithTrace(ctx).Warn("Answer generation call failed", "error", err)
		return "", err
	}

	answer := strings.TrimSpace(content.Normalize())
	g.logger.WithTrace(ctx).Debug("Answer generated", "chars", len(answer), "with_docs", retrievedContext != "")
	return answer, nil
}
