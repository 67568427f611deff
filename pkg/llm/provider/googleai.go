package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/zbiljic/coverletter/pkg/failure"
	"github.com/zbiljic/coverletter/pkg/llm"
)

const (
	googleAIModel = "gemini-2.5-flash"
)

// Compile-time proof of interface implementation.
var _ llm.Backend = (*GoogleAIProvider)(nil)

// GoogleAIProvider is the provider implementation for Google AI Studio using genai library.
type GoogleAIProvider struct {
	options Options
	client  *genai.Client
}

// NewGoogleAIProvider creates a new GoogleAI provider instance.
func NewGoogleAIProvider(opts ...Options) (llm.Backend, error) {
	o, err := resolveOptions(GoogleAI, opts, "", googleAIModel)
	if err != nil {
		return nil, err
	}

	cfg := &genai.ClientConfig{
		APIKey:     o.ApiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: o.HTTPClient,
	}
	if o.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: o.BaseURL}
	}

	client, err := genai.NewClient(context.Background(), cfg)
	if err != nil {
		return nil, failure.Configurationf(err, "failed to create Google AI client")
	}

	return &GoogleAIProvider{
		options: o,
		client:  client,
	}, nil
}

func (p *GoogleAIProvider) String() string {
	return describe("GoogleAI", p.options)
}

// Complete sends a prompt to the Google AI API and returns the generated text.
func (p *GoogleAIProvider) Complete(ctx context.Context, req llm.Request) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: req.SystemPrompt},
			},
		},
		Temperature:      genai.Ptr(float32(*p.options.Temperature)),
		MaxOutputTokens:  int32(p.options.MaxTokens),
		CandidateCount:   1,
		ResponseMIMEType: "application/json",
	}

	if len(req.Schema) > 0 {
		schema, err := toGenAISchema(req.Schema)
		if err != nil {
			return "", failure.Configurationf(err, "invalid reply schema")
		}
		config.ResponseSchema = schema
	}

	resp, err := p.client.Models.GenerateContent(ctx, modelFor(req, p.options), genai.Text(req.UserPrompt), config)
	if err != nil {
		return "", classifyGoogleAIError(err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
			return "", failure.MalformedResponsef(nil, "prompt blocked due to: %s", resp.PromptFeedback.BlockReason)
		}
		return "", failure.MalformedResponsef(nil, "GoogleAI returned no candidates")
	}

	cand := resp.Candidates[0]
	var text strings.Builder
	if cand.Content != nil {
		for _, part := range cand.Content.Parts {
			text.WriteString(part.Text)
		}
	}

	if text.Len() == 0 {
		if cand.FinishReason != genai.FinishReasonUnspecified {
			return "", failure.MalformedResponsef(nil, "GoogleAI returned no text content; finish reason: %s", cand.FinishReason)
		}
		return "", failure.MalformedResponsef(nil, "GoogleAI returned no text content")
	}

	return text.String(), nil
}

func classifyGoogleAIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return failure.Authenticationf(err, "Google AI rejected the API key")
		}
	}
	return failure.Transportf(err, "request to GoogleAI failed")
}

// jsonSchema is the subset of JSON Schema the reply schema uses.
type jsonSchema struct {
	Type        string                `json:"type"`
	Description string                `json:"description"`
	Properties  map[string]jsonSchema `json:"properties"`
	Required    []string              `json:"required"`
	Items       *jsonSchema           `json:"items"`
}

var genAITypes = map[string]genai.Type{
	"object":  genai.TypeObject,
	"string":  genai.TypeString,
	"array":   genai.TypeArray,
	"integer": genai.TypeInteger,
	"number":  genai.TypeNumber,
	"boolean": genai.TypeBoolean,
}

func toGenAISchema(raw json.RawMessage) (*genai.Schema, error) {
	var s jsonSchema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return s.toGenAI()
}

func (s jsonSchema) toGenAI() (*genai.Schema, error) {
	t, ok := genAITypes[s.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported schema type %q", s.Type)
	}

	out := &genai.Schema{
		Type:        t,
		Description: s.Description,
		Required:    s.Required,
	}

	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			converted, err := prop.toGenAI()
			if err != nil {
				return nil, fmt.Errorf("property %s: %w", name, err)
			}
			out.Properties[name] = converted
		}
		// keep the declared order stable for the model
		out.PropertyOrdering = append([]string(nil), s.Required...)
	}

	if s.Items != nil {
		items, err := s.Items.toGenAI()
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		out.Items = items
	}

	return out, nil
}
