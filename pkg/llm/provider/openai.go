package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/zbiljic/coverletter/pkg/failure"
	"github.com/zbiljic/coverletter/pkg/llm"
)

const (
	openaiBaseURL = "https://api.openai.com/v1/"
	// structured outputs with a strict schema need gpt-4o or newer
	openaiModel = oai.ChatModelGPT4oMini
)

// Compile-time proof of interface implementation.
var _ llm.Backend = (*OpenAIProvider)(nil)

type OpenAIProvider struct {
	options Options
	client  *oai.Client
}

func NewOpenAIProvider(opts ...Options) (llm.Backend, error) {
	o, err := resolveOptions(OpenAI, opts, openaiBaseURL, string(openaiModel))
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

	client := oai.NewClient(clientOpts...)

	return &OpenAIProvider{
		options: o,
		client:  &client,
	}, nil
}

func (p *OpenAIProvider) String() string {
	return describe("OpenAI", p.options)
}

func (p *OpenAIProvider) Complete(ctx context.Context, req llm.Request) (string, error) {
	params := oai.ChatCompletionNewParams{
		Model: oai.ChatModel(modelFor(req, p.options)),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.SystemMessage(req.SystemPrompt),
			oai.UserMessage(req.UserPrompt),
		},
		Temperature:         oai.Float(*p.options.Temperature),
		MaxCompletionTokens: oai.Int(int64(p.options.MaxTokens)),
		N:                   oai.Int(1),
	}

	if len(req.Schema) > 0 {
		var schema map[string]any
		if err := json.Unmarshal(req.Schema, &schema); err != nil {
			return "", failure.Configurationf(err, "invalid reply schema")
		}

		params.ResponseFormat = oai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &oai.ResponseFormatJSONSchemaParam{
				JSONSchema: oai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   req.SchemaName,
					Schema: schema,
					Strict: oai.Bool(true),
				},
			},
		}
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", failure.MalformedResponsef(nil, "no completion choice available from OpenAI")
	}

	message := resp.Choices[0].Message
	if message.Refusal != "" {
		return "", failure.MalformedResponsef(nil, "OpenAI refused the request: %s", message.Refusal)
	}

	return message.Content, nil
}

func classifyOpenAIError(err error) error {
	var apiErr *oai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return failure.Authenticationf(err, "OpenAI rejected the API key")
		}
	}
	return failure.Transportf(err, "request to OpenAI failed")
}
