// Package provider implements llm.Backend for the supported generation
// services.
package provider

import (
	"fmt"
	"net/http"
	"os"

	"github.com/samber/lo"

	"github.com/zbiljic/coverletter/pkg/failure"
	"github.com/zbiljic/coverletter/pkg/llm"
)

// Kind identifies a generation service.
type Kind string

const (
	OpenAI     Kind = "openai"
	OpenRouter Kind = "openrouter"
	Groq       Kind = "groq"
	DeepSeek   Kind = "deepseek"
	Claude     Kind = "claude"
	GoogleAI   Kind = "googleai"
)

// Kinds lists every supported provider in preference order.
var Kinds = []Kind{OpenAI, OpenRouter, Groq, DeepSeek, Claude, GoogleAI}

var apiKeyEnv = map[Kind]string{
	OpenAI:     "OPENAI_API_KEY",
	OpenRouter: "OPENROUTER_API_KEY",
	Groq:       "GROQ_API_KEY",
	DeepSeek:   "DEEPSEEK_API_KEY",
	Claude:     "ANTHROPIC_API_KEY",
	GoogleAI:   "GEMINI_API_KEY",
}

const (
	defaultMaxTokens   = 1024
	defaultTemperature = 0.7
)

// Options configures a provider. Zero values fall back to the provider's
// defaults.
type Options struct {
	ApiKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	// Temperature nil means the default. A pointer to 0 is sent as 0.
	Temperature *float64
	// MaxRetries overrides the SDK retry count for providers built on an SDK
	// that retries on its own. nil keeps the SDK default.
	MaxRetries *int
	HTTPClient *http.Client
}

// APIKeyEnv returns the environment variable holding the API key for kind.
func APIKeyEnv(kind Kind) string {
	return apiKeyEnv[kind]
}

// New creates the backend for kind. A missing API key is reported as an
// authentication error before any request is made.
func New(kind Kind, opts Options) (llm.Backend, error) {
	switch kind {
	case OpenAI:
		return NewOpenAIProvider(opts)
	case OpenRouter:
		return NewOpenRouterProvider(opts)
	case Groq:
		return NewGroqProvider(opts)
	case DeepSeek:
		return NewDeepSeekProvider(opts)
	case Claude:
		return NewClaudeProvider(opts)
	case GoogleAI:
		return NewGoogleAIProvider(opts)
	default:
		return nil, failure.Configurationf(nil, "unknown provider %q", kind)
	}
}

// resolveOptions applies the environment API key and the given defaults.
func resolveOptions(kind Kind, opts []Options, baseURL, model string) (Options, error) {
	o := Options{}

	if len(opts) > 0 {
		o = opts[0]
	}

	if o.ApiKey == "" {
		o.ApiKey = os.Getenv(apiKeyEnv[kind])
	}
	if o.BaseURL == "" {
		o.BaseURL = baseURL
	}
	if o.Model == "" {
		o.Model = model
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = defaultMaxTokens
	}
	if o.Temperature == nil {
		o.Temperature = lo.ToPtr(defaultTemperature)
	}

	if o.ApiKey == "" {
		return o, failure.Authenticationf(nil, "%s API key is not set (export %s or add it to the config file)", kind, apiKeyEnv[kind])
	}

	return o, nil
}

func modelFor(req llm.Request, o Options) string {
	if req.Model != "" {
		return req.Model
	}
	return o.Model
}

func describe(name string, o Options) string {
	return fmt.Sprintf("%s (%s)", name, o.Model)
}
