package openaiLLM

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SHoar/Wedding-AI/internal/config"
	"github.com/SHoar/Wedding-AI/internal/rag/llm"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type llmClient struct {
	client    openai.Client
	modelName string
	logger    *logger_i.Logger
}

// Options configures the chat client. BaseURL is only set in tests and for compatible gateways.
type Options struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(opts Options) llm.Provider {
	requestOptions := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(config.LLMMaxRetries),
	}
	if opts.HTTPClient != nil {
		requestOptions = append(requestOptions, option.WithHTTPClient(opts.HTTPClient))
	}
	if opts.BaseURL != "" {
		requestOptions = append(requestOptions, option.WithBaseURL(opts.BaseURL))
	}

	logger := logger_i.NewLogger("llm_openai")
	logger.Info("OpenAI chat client created", "model", opts.Model)
	return &llmClient{
		client:    openai.NewClient(requestOptions...),
		modelName: opts.Model,
		logger:    logger,
	}
}

func (c *llmClient) Model() string {
	return c.modelName
}

func (c *llmClient) Complete(ctx context.Context, req llm.Request) (llm.Content, error) {
	log := c.logger.WithTrace(ctx)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(float64(*req.Temperature))
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			log.Error("OpenAI chat completion rejected", "status", apiErr.StatusCode, "error", err)
			msg := apiErr.Message
			if msg == "" {
				msg = http.StatusText(apiErr.StatusCode)
			}
			return llm.Absent(), fmt.Errorf("openai returned status %d: %s", apiErr.StatusCode, msg)
		}
		log.Error("OpenAI chat completion failed", "error", err)
		return llm.Absent(), err
	}

	if completion == nil || len(completion.Choices) == 0 {
		log.Warn("OpenAI returned no choices")
		return llm.Absent(), nil
	}
	content := completion.Choices[0].Message.Content
	if content == "" {
		return llm.Absent(), nil
	}
	return llm.Text(content), nil
}
