package llm

import (
	"context"
	"encoding/json"
)

// Backend is a text-generation service that produces one reply per request.
type Backend interface {
	// String returns the name of the backend and its model.
	String() string

	// Complete sends the request and returns the raw reply text.
	// Implementations should constrain the reply to req.Schema where the
	// service supports it. Errors are categorized with the failure package.
	Complete(ctx context.Context, req Request) (string, error)
}

// Request is a single generation request.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	// Model overrides the backend's default model when not empty.
	Model string
	// SchemaName and Schema describe the JSON shape the reply must follow.
	SchemaName string
	Schema     json.RawMessage
}
