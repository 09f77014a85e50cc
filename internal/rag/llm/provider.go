package llm

import "context"

// Request is a single system + user exchange sent to a chat model.
type Request struct {
	System      string
	User        string
	Temperature *float32
}

type Provider interface {
	Complete(ctx context.Context, req Request) (Content, error)
	Model() string
}
