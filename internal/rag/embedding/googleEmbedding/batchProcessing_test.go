package googleEmbedding

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SHoar/Wedding-AI/pkg/logger_i"
	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestDoRetry(t *testing.T) {
	log := logger_i.NewLogger("test")
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"rest 429", genai.APIError{Code: 429, Message: "slow down"}, true},
		{"wrapped 429", fmt.Errorf("call: %w", genai.APIError{Code: 429}), true},
		{"rest 500", genai.APIError{Code: 500}, false},
		{"grpc exhausted", status.Error(codes.ResourceExhausted, "quota"), true},
		{"grpc unavailable", status.Error(codes.Unavailable, "down"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := doRetry(tt.err, log); got != tt.want {
				t.Errorf("doRetry() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCollectVectors(t *testing.T) {
	ok := &genai.EmbedContentResponse{Embeddings: []*genai.ContentEmbedding{
		{Values: []float32{1, 0}},
		{Values: []float32{0, 1}},
	}}
	vectors, err := collectVectors(ok, 2)
	if err != nil || len(vectors) != 2 || vectors[1][1] != 1 {
		t.Fatalf("unexpected result %v, %v", vectors, err)
	}

	if _, err := collectVectors(ok, 3); err == nil {
		t.Error("expected count mismatch error")
	}
	if _, err := collectVectors(nil, 1); err == nil {
		t.Error("expected error for nil response")
	}
	holey := &genai.EmbedContentResponse{Embeddings: []*genai.ContentEmbedding{nil}}
	if _, err := collectVectors(holey, 1); err == nil {
		t.Error("expected error for empty embedding")
	}
}

func TestGetContent(t *testing.T) {
	contents := getContent([]string{"a", "b"})
	if len(contents) != 2 || contents[1].Parts[0].Text != "b" {
		t.Errorf("unexpected contents %+v", contents)
	}
}
