package provider

import (
	"context"

	"github.com/zbiljic/coverletter/pkg/llm"
)

const (
	groqBaseURL = "https://api.groq.com/openai/v1/chat/completions"
	groqModel   = "meta-llama/llama-4-scout-17b-16e-instruct"
)

// Compile-time proof of interface implementation.
var _ llm.Backend = (*GroqProvider)(nil)

type GroqProvider struct {
	options Options
}

func NewGroqProvider(opts ...Options) (llm.Backend, error) {
	o, err := resolveOptions(Groq, opts, groqBaseURL, groqModel)
	if err != nil {
		return nil, err
	}

	return &GroqProvider{
		options: o,
	}, nil
}

func (g *GroqProvider) String() string {
	return describe("Groq", g.options)
}

func (g *GroqProvider) Complete(ctx context.Context, req llm.Request) (string, error) {
	return compatEndpoint{
		name:    "Groq",
		options: g.options,
	}.complete(ctx, req)
}
