package provider

import (
	"context"
	"os"

	"github.com/zbiljic/coverletter/pkg/llm"
)

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1/chat/completions"
	openRouterModel   = "openai/gpt-4o-mini"
)

// Compile-time proof of interface implementation.
var _ llm.Backend = (*OpenRouterProvider)(nil)

type OpenRouterProvider struct {
	options Options
}

func NewOpenRouterProvider(opts ...Options) (llm.Backend, error) {
	o, err := resolveOptions(OpenRouter, opts, openRouterBaseURL, openRouterModel)
	if err != nil {
		return nil, err
	}

	return &OpenRouterProvider{
		options: o,
	}, nil
}

func (p *OpenRouterProvider) String() string {
	return describe("OpenRouter", p.options)
}

func (p *OpenRouterProvider) Complete(ctx context.Context, req llm.Request) (string, error) {
	// OpenRouter API requires 'HTTP-Referer' and 'X-Title' headers.
	httpReferer := os.Getenv("OPENROUTER_HTTP_REFERER")
	if httpReferer == "" {
		httpReferer = "https://github.com/zbiljic/coverletter"
	}
	xTitle := os.Getenv("OPENROUTER_X_TITLE")
	if xTitle == "" {
		xTitle = "coverletter"
	}

	return compatEndpoint{
		name:    "OpenRouter",
		options: p.options,
		headers: map[string][]string{
			"HTTP-Referer": {httpReferer},
			"X-Title":      {xTitle},
		},
	}.complete(ctx, req)
}
