package cmd

import (
	"github.com/thediveo/enumflag/v2"

	"github.com/zbiljic/coverletter/pkg/llm/provider"
)

// ProviderType represents the supported LLM providers.
type ProviderType enumflag.Flag

const (
	// OpenAIProvider represents the OpenAI provider.
	OpenAIProvider ProviderType = iota
	// OpenRouterProvider represents the OpenRouter provider.
	OpenRouterProvider
	// GroqProvider represents the Groq provider.
	GroqProvider
	// DeepSeekProvider represents the DeepSeek provider.
	DeepSeekProvider
	// ClaudeProvider represents the Claude provider.
	ClaudeProvider
	// GoogleAIProvider represents the GoogleAI provider.
	GoogleAIProvider
)

// ProviderIds maps ProviderType to their string representations.
var ProviderIds = map[ProviderType][]string{
	OpenAIProvider:     {string(provider.OpenAI)},
	OpenRouterProvider: {string(provider.OpenRouter)},
	GroqProvider:       {string(provider.Groq)},
	DeepSeekProvider:   {string(provider.DeepSeek)},
	ClaudeProvider:     {string(provider.Claude), "anthropic"},
	GoogleAIProvider:   {string(provider.GoogleAI), "gemini"},
}

// Kind returns the provider kind selected by the flag value.
func (p ProviderType) Kind() provider.Kind {
	return provider.Kind(ProviderIds[p][0])
}
