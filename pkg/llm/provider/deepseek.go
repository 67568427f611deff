package provider

import (
	"context"

	"github.com/zbiljic/coverletter/pkg/llm"
)

const (
	deepseekBaseURL = "https://api.deepseek.com/v1/chat/completions"
	deepseekModel   = "deepseek-chat"
)

// Compile-time proof of interface implementation.
var _ llm.Backend = (*DeepSeekProvider)(nil)

type DeepSeekProvider struct {
	options Options
}

func NewDeepSeekProvider(opts ...Options) (llm.Backend, error) {
	o, err := resolveOptions(DeepSeek, opts, deepseekBaseURL, deepseekModel)
	if err != nil {
		return nil, err
	}

	return &DeepSeekProvider{
		options: o,
	}, nil
}

func (d *DeepSeekProvider) String() string {
	return describe("DeepSeek", d.options)
}

// Complete asks for a JSON object; DeepSeek does not accept json_schema
// response formats, so the shape comes from the prompt and is checked by the
// caller.
func (d *DeepSeekProvider) Complete(ctx context.Context, req llm.Request) (string, error) {
	return compatEndpoint{
		name:           "DeepSeek",
		options:        d.options,
		jsonObjectOnly: true,
	}.complete(ctx, req)
}
