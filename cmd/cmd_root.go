package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/orochaa/go-clack/prompts"
	"github.com/spf13/cobra"

	"github.com/zbiljic/coverletter/internal/buildinfo"
	"github.com/zbiljic/coverletter/internal/config"
	"github.com/zbiljic/coverletter/pkg/artifact"
	"github.com/zbiljic/coverletter/pkg/failure"
	"github.com/zbiljic/coverletter/pkg/llm"
	"github.com/zbiljic/coverletter/pkg/pipeline"
	"github.com/zbiljic/coverletter/pkg/profile"
	"github.com/zbiljic/coverletter/pkg/termio"
)

// AppName - the name of the application.
const AppName = "coverletter"

var rootCmd = &cobra.Command{
	Use:   AppName + " [job-description]",
	Short: "Generate a tailored cover letter using AI",
	Long: `Generates a cover letter from your candidate summary, a sample letter and a
job description. The letter is written to <output-dir>/<name>.txt and
<output-dir>/<name>.pdf and printed to standard output.

The job description may be literal text, the path of a .txt/.md file, or "-"
to read it from standard input.`,
	Version: buildinfo.Info().String(),
	Args: cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt)
		cmd.SetContext(ctx)
	},
	RunE:          runRootE,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var rootFlags = rootOptions{
	Provider: OpenAIProvider,
}

type rootOptions struct {
	JobDescription string
	Provider       ProviderType
	Model          string
	TextOut        string
	PDFOut         string
	OutputDir      string
	TemplatesDir   string
	SkipPDF        bool
}

func rootAddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&rootFlags.JobDescription, "job-description", "j", "", `Job description text, path to a .txt/.md file, or "-" for stdin`)
	addCommonLLMFlags(cmd, &rootFlags.Provider, &rootFlags.Model)
	cmd.Flags().StringVar(&rootFlags.TextOut, "text-out", "", "Path of the text file (default <output-dir>/<name>.txt)")
	cmd.Flags().StringVar(&rootFlags.PDFOut, "pdf-out", "", "Path of the PDF file (default <output-dir>/<name>.pdf)")
	cmd.Flags().StringVarP(&rootFlags.OutputDir, "output-dir", "o", "", "Directory the letter files are written to")
	cmd.Flags().StringVarP(&rootFlags.TemplatesDir, "templates-dir", "t", "", "Directory holding summary.txt, sample_letter.txt and prompt.txt")
	cmd.Flags().BoolVar(&rootFlags.SkipPDF, "skip-pdf", false, "Do not render the PDF")
	addGlobalFlags(cmd, &globalFlags)
}

func init() {
	rootAddFlags(rootCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called my main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cmd, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	if strings.Contains(err.Error(), "arg(s)") || strings.Contains(err.Error(), "usage") {
		cmd.Usage() //nolint:errcheck
	}

	if ctx := cmd.Context(); ctx != nil {
		if val, ok := ctx.Value(ctxKeyClackPromptStarted{}).(bool); ok && val && prompts.IsCancel(err) {
			prompts.ExitOnError(err)
		}
	}

	printError(os.Stderr, isColorStderr, err)
	os.Exit(failure.ExitCode(err))
}

// rootJobDescription picks the job description from the flag or the single
// positional argument. Without either, piped stdin is used.
func rootJobDescription(flagValue string, args []string, stdinInteractive bool) (string, error) {
	switch {
	case flagValue != "" && len(args) > 0:
		return "", failure.Configurationf(nil, "job description given both as --job-description and as an argument")
	case flagValue != "":
		return flagValue, nil
	case len(args) > 0:
		return args[0], nil
	case !stdinInteractive:
		return profile.StdinArg, nil
	default:
		return "", failure.Configurationf(nil, "job description is required (pass it with --job-description, as an argument, or on stdin)")
	}
}

// rootOutputOptions merges the output flags with the configuration.
func rootOutputOptions(cfg *config.Config, opts rootOptions) artifact.Options {
	return artifact.Options{
		Dir:      resolveDir(opts.OutputDir, envOutputDir, cfg.OutputDir),
		TextPath: config.ExpandPath(opts.TextOut),
		PDFPath:  config.ExpandPath(opts.PDFOut),
		SkipPDF:  opts.SkipPDF,
		Style:    cfg.Style(),
	}
}

// rootPipelineInput collects the per-run input for the pipeline.
func rootPipelineInput(cfg *config.Config, jobDescription string, opts rootOptions) pipeline.Input {
	return pipeline.Input{
		JobDescription: jobDescription,
		Model:          opts.Model,
		Output:         rootOutputOptions(cfg, opts),
	}
}

func runRootE(cmd *cobra.Command, args []string) error {
	jobDescription, err := rootJobDescription(rootFlags.JobDescription, args, termio.IsInteractive(os.Stdin))
	if err != nil {
		return err
	}

	cfg, err := config.Load(globalFlags.ConfigFile)
	if err != nil {
		return err
	}

	if err := loadEnvironment(cfg, globalFlags.EnvFile); err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), globalFlags)
	if path, ok := config.GetPath(globalFlags.ConfigFile); ok {
		logger.Debug("Configuration loaded", "path", path)
	}

	backend, err := initializeLLMProvider(cfg, cmd.Flags().Changed("provider"), rootFlags.Provider, rootFlags.Model)
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{
		TemplatesDir: resolveDir(rootFlags.TemplatesDir, envTemplatesDir, cfg.TemplatesDir),
		Generator:    llm.NewClient(backend, logger),
		Writer:       artifact.NewWriter(cmd.OutOrStdout(), logger),
		Stdin:        cmd.InOrStdin(),
		Logger:       logger,
	}

	_, err = p.Run(cmd.Context(), rootPipelineInput(cfg, jobDescription, rootFlags))
	return err
}
