package llm

import (
	"context"
	"errors"
)

// Client abstracts chat-completion providers used by the AI capabilities.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Request is a single system + user exchange.
type Request struct {
	System string
	User   string
	// JSON asks the provider for a JSON object response where supported.
	JSON        bool
	Temperature *float32
	MaxTokens   int
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is used when no provider is configured.
type PlaceholderClient struct{}

// Complete returns ErrNotImplemented.
func (PlaceholderClient) Complete(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	return "", ErrNotImplemented
}
