package rag

import "fmt"

// ValidationError is a request the caller must fix. Served as 422.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConfigurationError means the service cannot call the model until it is reconfigured. Served as 503.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// UpstreamError wraps a failed or empty model call. Served as 502 with Message as the detail.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string { return e.Message }

func (e *UpstreamError) Unwrap() error { return e.Err }

func upstreamFailure(err error) *UpstreamError {
	return &UpstreamError{Message: fmt.Sprintf("AI request failed: %v", err), Err: err}
}

var errEmptyAnswer = &UpstreamError{Message: "AI returned an empty answer."}

var errBlankQuestion = &ValidationError{Message: "Question cannot be blank."}
