package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zbiljic/coverletter/internal/config"
	"github.com/zbiljic/coverletter/pkg/failure"
)

type (
	ctxKeyClackPromptStarted struct{}
)

// globalOptions are the persistent flags of the root command.
type globalOptions struct {
	ConfigFile string
	EnvFile    string
	Quiet      bool
	Verbose    bool
}

var globalFlags globalOptions

const (
	envTemplatesDir = "COVERLETTER_TEMPLATES_DIR"
	envOutputDir    = "COVERLETTER_OUTPUT_DIR"
	dotEnvFile      = ".env"
)

func injectIntoCommandContextWithKey[K, V comparable](cmd *cobra.Command, key K, value V) {
	ctx := cmd.Context()
	ctx = context.WithValue(ctx, key, value)
	cmd.SetContext(ctx)
}

// newLogger returns a text logger writing to w at the level selected by the
// global flags.
func newLogger(w io.Writer, opts globalOptions) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case opts.Quiet:
		level = slog.LevelWarn
	case opts.Verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadDotEnv loads path into the environment. A missing file is not an
// error and variables already set are kept.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// loadEnvironment loads the working directory .env file and then the
// explicit or configured env file.
func loadEnvironment(cfg *config.Config, explicit string) error {
	files := []string{dotEnvFile}
	switch {
	case explicit != "":
		files = append(files, explicit)
	case cfg.EnvFile != "":
		files = append(files, config.ExpandPath(cfg.EnvFile))
	}

	for _, f := range files {
		if err := loadDotEnv(f); err != nil {
			return failure.Configurationf(err, "failed to load environment file %s", f)
		}
	}
	return nil
}

// resolveDir picks a directory by precedence: flag, environment variable,
// configuration file.
func resolveDir(flagValue, envKey, configured string) string {
	if flagValue != "" {
		return config.ExpandPath(flagValue)
	}
	if v := os.Getenv(envKey); v != "" {
		return config.ExpandPath(v)
	}
	return config.ExpandPath(configured)
}
