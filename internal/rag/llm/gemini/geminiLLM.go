package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SHoar/Wedding-AI/internal/rag/llm"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
	logger    *logger_i.Logger
}

func NewGeminiClient(ctx context.Context, apikey string, modelName string, timeout time.Duration, httpClient *http.Client) (llm.Provider, error) {
	logger := logger_i.NewLogger("llm_gemini")

	cfg := &genai.ClientConfig{
		APIKey:     apikey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if timeout > 0 {
		cfg.HTTPOptions.Timeout = genai.Ptr(timeout)
	}
	c, err := genai.NewClient(ctx, cfg)
	if err != nil {
		logger.Error("Error creating Gemini client", "error", err)
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	logger.Info("Gemini client created", "model", modelName)
	return &llmClient{client: c, modelName: modelName, logger: logger}, nil
}

func (c *llmClient) Model() string {
	return c.modelName
}

func (c *llmClient) Complete(ctx context.Context, req llm.Request) (llm.Content, error) {
	log := c.logger.WithTrace(ctx)

	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		},
	}
	if req.Temperature != nil {
		contentConfig.Temperature = genai.Ptr(*req.Temperature)
	}

	result, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(req.User), contentConfig)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			log.Error("Gemini generation rejected", "code", apiErr.Code, "status", apiErr.Status)
			return llm.Absent(), fmt.Errorf("gemini returned status %d: %s", apiErr.Code, apiErr.Message)
		}
		log.Error("Gemini generation failed", "error", err)
		return llm.Absent(), err
	}
	return toContent(result), nil
}

// toContent maps the first candidate to parts. Thoughts are dropped; non-text payloads become raw parts.
func toContent(result *genai.GenerateContentResponse) llm.Content {
	if result == nil || len(result.Candidates) == 0 {
		return llm.Absent()
	}
	candidate := result.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return llm.Absent()
	}

	parts := make([]llm.Part, 0, len(candidate.Content.Parts))
	for _, p := range candidate.Content.Parts {
		switch {
		case p == nil || p.Thought:
			continue
		case p.Text != "":
			parts = append(parts, llm.TextPart(p.Text))
		case p.FunctionCall != nil:
			parts = append(parts, llm.RawPart(fmt.Sprintf("%s(%v)", p.FunctionCall.Name, p.FunctionCall.Args)))
		case p.ExecutableCode != nil:
			parts = append(parts, llm.RawPart(p.ExecutableCode.Code))
		case p.CodeExecutionResult != nil:
			parts = append(parts, llm.RawPart(p.CodeExecutionResult.Output))
		}
	}
	return llm.Parts(parts...)
}
