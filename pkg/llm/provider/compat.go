package provider

import (
	"context"
	"fmt"
	"maps"
	"math"
	"net/http"

	"github.com/carlmjohnson/requests"
	"github.com/sashabaranov/go-openai"

	"github.com/zbiljic/coverletter/pkg/failure"
	"github.com/zbiljic/coverletter/pkg/llm"
)

// compatEndpoint is a chat completions endpoint speaking the OpenAI wire
// format.
type compatEndpoint struct {
	name    string
	options Options
	headers map[string][]string
	// jsonObjectOnly is set for services that accept json_object but not
	// json_schema response formats.
	jsonObjectOnly bool
}

func (e compatEndpoint) payload(req llm.Request) openai.ChatCompletionRequest {
	payload := openai.ChatCompletionRequest{
		Model: modelFor(req, e.options),
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: req.SystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.UserPrompt,
			},
		},
		Temperature: compatTemperature(*e.options.Temperature),
		TopP:        1,
		MaxTokens:   e.options.MaxTokens,
		Stream:      false,
		N:           1,
	}

	switch {
	case e.jsonObjectOnly:
		payload.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	case len(req.Schema) > 0:
		payload.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.SchemaName,
				Schema: req.Schema,
				Strict: true,
			},
		}
	}

	return payload
}

func (e compatEndpoint) complete(ctx context.Context, req llm.Request) (string, error) {
	var (
		respContent openai.ChatCompletionResponse
		respError   openai.ErrorResponse
	)

	headers := map[string][]string{
		"Authorization": {fmt.Sprintf("Bearer %s", e.options.ApiKey)},
		"Content-Type":  {"application/json"},
	}
	maps.Copy(headers, e.headers)

	rb := requests.
		URL(e.options.BaseURL).
		Post().
		Headers(headers).
		BodyJSON(e.payload(req)).
		ToJSON(&respContent).
		ErrorJSON(&respError)
	if e.options.HTTPClient != nil {
		rb = rb.Client(e.options.HTTPClient)
	}

	if err := rb.Fetch(ctx); err != nil {
		return "", classifyRequestsError(e.name, err, respError)
	}

	if len(respContent.Choices) == 0 {
		return "", failure.MalformedResponsef(nil, "no completion choice available from %s", e.name)
	}

	message := respContent.Choices[0].Message
	if message.Refusal != "" {
		return "", failure.MalformedResponsef(nil, "%s refused the request: %s", e.name, message.Refusal)
	}

	return message.Content, nil
}

func classifyRequestsError(name string, err error, respError openai.ErrorResponse) error {
	detail := ""
	if respError.Error != nil && respError.Error.Message != "" {
		detail = ": " + respError.Error.Message
	}

	if requests.HasStatusErr(err, http.StatusUnauthorized, http.StatusForbidden) {
		return failure.Authenticationf(err, "%s rejected the API key%s", name, detail)
	}

	return failure.Transportf(err, "request to %s failed%s", name, detail)
}

// compatTemperature keeps an explicit 0 in the request. go-openai omits a
// zero temperature, and the API then applies its own default.
func compatTemperature(t float64) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(t)
}
