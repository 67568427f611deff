package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/thediveo/enumflag/v2"

	"github.com/zbiljic/coverletter/pkg/llm/provider"
)

// addCommonLLMFlags adds the common LLM provider and model flags to a command
func addCommonLLMFlags(cmd *cobra.Command, providerType *ProviderType, model *string) {
	names := lo.Map(provider.Kinds, func(k provider.Kind, _ int) string { return string(k) })
	cmd.Flags().VarP(enumflag.New(providerType, "provider", ProviderIds, enumflag.EnumCaseInsensitive), "provider", "p", fmt.Sprintf("LLM provider to use (%s)", strings.Join(names, ", ")))
	cmd.Flags().StringVarP(model, "model", "m", "", "Specific model to use for the selected provider")
}

// addGlobalFlags adds the flags shared by every command
func addGlobalFlags(cmd *cobra.Command, opts *globalOptions) {
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "Configuration file to use instead of the search paths")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "Additional environment file to load API keys from")
	cmd.PersistentFlags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Only log warnings and errors")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log debug details")
	cmd.MarkFlagsMutuallyExclusive("quiet", "verbose")
}
