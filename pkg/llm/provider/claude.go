package provider

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/zbiljic/coverletter/pkg/failure"
	"github.com/zbiljic/coverletter/pkg/llm"
)

const (
	claudeBaseURL = "https://api.anthropic.com/"
	claudeModel   = string(anthropic.ModelClaude3_5HaikuLatest)
)

// Compile-time proof of interface implementation.
var _ llm.Backend = (*ClaudeProvider)(nil)

type ClaudeProvider struct {
	options Options
	client  *anthropic.Client
}

func NewClaudeProvider(opts ...Options) (llm.Backend, error) {
	o, err := resolveOptions(Claude, opts, claudeBaseURL, claudeModel)
	if err != nil {
		return nil, err
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(o.ApiKey),
		option.WithBaseURL(o.BaseURL),
	}
	if o.MaxRetries != nil {
		clientOpts = append(clientOpts, option.WithMaxRetries(*o.MaxRetries))
	}
	if o.HTTPClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(o.HTTPClient))
	}

	client := anthropic.NewClient(clientOpts...)

	return &ClaudeProvider{
		options: o,
		client:  &client,
	}, nil
}

func (c *ClaudeProvider) String() string {
	return describe("Claude", c.options)
}

// Complete has no native schema constraint, so the schema is spelled out in
// the system prompt.
func (c *ClaudeProvider) Complete(ctx context.Context, req llm.Request) (string, error) {
	system := req.SystemPrompt
	if len(req.Schema) > 0 {
		system += "\n\nThe JSON object must validate against this JSON Schema:\n" + string(req.Schema)
	}

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(modelFor(req, c.options)),
		System:      []anthropic.TextBlockParam{{Text: system}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserPrompt))},
		MaxTokens:   int64(c.options.MaxTokens),
		Temperature: anthropic.Float(*c.options.Temperature),
	})
	if err != nil {
		return "", classifyClaudeError(err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if textBlock, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(textBlock.Text)
		}
	}

	if text.Len() == 0 {
		return "", failure.MalformedResponsef(nil, "Claude returned no text content")
	}

	return text.String(), nil
}

func classifyClaudeError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return failure.Authenticationf(err, "Anthropic rejected the API key")
		}
	}
	return failure.Transportf(err, "request to Claude failed")
}
