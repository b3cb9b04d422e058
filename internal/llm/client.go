package llm

import (
	"context"
	"fmt"
)

// Client is the boundary abstraction over the language-model inference
// server: one prompt in, one completion out.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// UnavailableError indicates the inference server could not be reached:
// transport failure, connection refused, or the per-call timeout elapsed.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("model unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// ModelError indicates the inference server was reachable but returned a
// non-success response or an empty completion.
type ModelError struct {
	StatusCode int
	Message    string
}

func (e *ModelError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("model error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
	}
	return fmt.Sprintf("model error: %s", truncate(e.Message, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
