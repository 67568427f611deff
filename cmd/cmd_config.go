package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/orochaa/go-clack/prompts"
	"github.com/orochaa/go-clack/third_party/picocolors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/zbiljic/coverletter/internal/config"
	"github.com/zbiljic/coverletter/pkg/failure"
	"github.com/zbiljic/coverletter/pkg/llm/provider"
	"github.com/zbiljic/coverletter/pkg/promptsx"
	"github.com/zbiljic/coverletter/pkg/termio"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration file interactively",
	Args:  cobra.NoArgs,
	RunE:  runConfigInitE,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file in use",
	Args:  cobra.NoArgs,
	RunE:  runConfigPathE,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigPathE(cmd *cobra.Command, args []string) error {
	path, ok := config.GetPath(globalFlags.ConfigFile)
	if !ok {
		path = config.GetDefaultPath()
		fmt.Fprintf(cmd.ErrOrStderr(), "No configuration file found, defaults are used. It would be created at:\n") //nolint:errcheck
	}

	fmt.Fprintln(cmd.OutOrStdout(), path) //nolint:errcheck
	return nil
}

// configSetupCommandClackIntro sets up clack intro and injects into command context
func configSetupCommandClackIntro(cmd *cobra.Command) {
	prompts.Intro(picocolors.BgCyan(picocolors.Black(fmt.Sprintf(" %s ", AppName))))
	// in order to show custom error
	injectIntoCommandContextWithKey(cmd, ctxKeyClackPromptStarted{}, true)
}

func notBlank(what string) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("please enter %s", what)
		}
		return nil
	}
}

func runConfigInitE(cmd *cobra.Command, args []string) error {
	if !termio.IsInteractive(os.Stdin) {
		return failure.Configurationf(nil, "config init needs an interactive terminal")
	}

	path, exists := config.GetPath(globalFlags.ConfigFile)
	if !exists {
		path = config.GetDefaultPath()
	}

	cfg, err := config.Load(globalFlags.ConfigFile)
	if err != nil {
		return err
	}

	configSetupCommandClackIntro(cmd)

	if _, statErr := os.Stat(path); statErr == nil {
		overwrite, err := prompts.Confirm(prompts.ConfirmParams{
			Message: fmt.Sprintf("Update existing configuration %s?", picocolors.Cyan(path)),
		})
		if err != nil {
			return err
		}
		if !overwrite {
			prompts.Outro("Configuration left unchanged")
			return nil
		}
	}

	providerName, err := prompts.Select(prompts.SelectParams[string]{
		Message:      "Which provider should write your letters?",
		InitialValue: cfg.Provider,
		Options: lo.Map(provider.Kinds, func(k provider.Kind, _ int) *prompts.SelectOption[string] {
			return &prompts.SelectOption[string]{Label: string(k), Value: string(k)}
		}),
	})
	if err != nil {
		return err
	}
	if providerName != cfg.Provider {
		cfg.Model = ""
	}
	cfg.Provider = providerName

	cfg.Model, err = prompts.Text(prompts.TextParams{
		Message:      "Model",
		Placeholder:  "<provider default>",
		InitialValue: cfg.Model,
	})
	if err != nil {
		return err
	}

	cfg.TemplatesDir, err = prompts.Text(prompts.TextParams{
		Message:      "Templates directory",
		InitialValue: cfg.TemplatesDir,
		Validate:     notBlank("a directory"),
	})
	if err != nil {
		return err
	}

	cfg.OutputDir, err = prompts.Text(prompts.TextParams{
		Message:      "Output directory",
		InitialValue: cfg.OutputDir,
		Validate:     notBlank("a directory"),
	})
	if err != nil {
		return err
	}

	if err := config.Save(cfg, path); err != nil {
		prompts.Error("Failed to save configuration")
		return err
	}

	promptsx.PathList("Configuration written:", []string{path})

	if env := provider.APIKeyEnv(provider.Kind(cfg.Provider)); os.Getenv(env) == "" && cfg.ProviderOptions(provider.Kind(cfg.Provider)).ApiKey == "" {
		promptsx.Note(fmt.Sprintf("Export %s or add it to %s before generating a letter.", env, dotEnvFile))
	}

	prompts.Outro(fmt.Sprintf("%s Run `%s templates init` next", picocolors.Green("✔"), AppName))

	return nil
}

