package googleEmbedding

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SHoar/Wedding-AI/pkg/logger_i"
	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func getContent(chunks []string) []*genai.Content {
	contentsToSend := make([]*genai.Content, 0, len(chunks))

	for _, chunk := range chunks {
		contentsToSend = append(contentsToSend, &genai.Content{
			Parts: []*genai.Part{{Text: chunk}},
		})
	}
	return contentsToSend
}

// doRetry reports whether err is a rate limit, either as a REST 429 or a gRPC ResourceExhausted.
func doRetry(err error, log *logger_i.Logger) bool {
	if err == nil {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		log.Warn("Rate limit hit", "error", err)
		return true
	}
	if s, ok := status.FromError(err); ok && s.Code() == codes.ResourceExhausted {
		log.Warn("Rate limit hit", "error", err)
		return true
	}
	return false
}

func collectVectors(res *genai.EmbedContentResponse, want int) ([][]float32, error) {
	if res == nil {
		return nil, errors.New("google returned an empty embedding response")
	}
	if len(res.Embeddings) != want {
		return nil, fmt.Errorf("google returned %d embeddings for %d inputs", len(res.Embeddings), want)
	}
	results := make([][]float32, 0, want)
	for i, r := range res.Embeddings {
		if r == nil || len(r.Values) == 0 {
			return nil, fmt.Errorf("embedding %d is empty", i)
		}
		results = append(results, r.Values)
	}
	return results, nil
}
