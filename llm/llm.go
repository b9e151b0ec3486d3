package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissingAPIKey is a configuration error. Clients return it before doing
// any network I/O.
var ErrMissingAPIKey = errors.New("model provider api key is not configured")

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CompletionRequest struct {
	Model    string
	Messages []Message
	// JSONResponse asks the provider to return a single JSON object.
	JSONResponse bool
	Temperature  *float64
}

// UpstreamError is a non-200 answer from the provider.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("model provider returned %d: %s", e.StatusCode, e.Body)
}

type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Streamer delivers content deltas on the first channel. Both channels are
// closed when the stream ends; at most one error is sent.
type Streamer interface {
	Stream(ctx context.Context, req CompletionRequest) (<-chan string, <-chan error)
}

type Provider interface {
	Completer
	Streamer
	Name() string
}

func Float(f float64) *float64 { return &f }
