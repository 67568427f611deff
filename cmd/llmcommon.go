package cmd

import (
	"github.com/zbiljic/coverletter/internal/config"
	"github.com/zbiljic/coverletter/pkg/llm"
	"github.com/zbiljic/coverletter/pkg/llm/provider"
)

// initializeLLMProvider creates the backend selected by the flags, falling
// back to the configured provider. The configured model only applies to the
// configured provider.
func initializeLLMProvider(cfg *config.Config, cmdChanged bool, providerType ProviderType, model string) (llm.Backend, error) {
	kind := provider.Kind(cfg.Provider)
	if cmdChanged {
		kind = providerType.Kind()
	}

	opts := cfg.ProviderOptions(kind)
	switch {
	case model != "":
		opts.Model = model
	case string(kind) == cfg.Provider:
		opts.Model = cfg.Model
	}

	return provider.New(kind, opts)
}
