// Package pipeline runs one cover letter generation from the job
// description to the written artifacts.
package pipeline

import (
	"context"
	"io"
	"log/slog"

	"github.com/zbiljic/coverletter/pkg/artifact"
	"github.com/zbiljic/coverletter/pkg/llm"
	"github.com/zbiljic/coverletter/pkg/profile"
)

// Generator produces a validated result from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt, model string) (llm.Result, error)
}

// Writer persists a result.
type Writer interface {
	Write(result llm.Result, opts artifact.Options) (artifact.Artifacts, error)
}

// Pipeline wires the loader, prompt builder, generator and writer.
type Pipeline struct {
	TemplatesDir string
	Generator    Generator
	Writer       Writer
	// Stdin is read when the job description is "-".
	Stdin  io.Reader
	Logger *slog.Logger
}

// Input is the per-run part of the configuration.
type Input struct {
	JobDescription string
	Model          string
	Output         artifact.Options
}

// Run executes the steps in order and stops at the first error. Nothing is
// written unless generation succeeded.
func (p *Pipeline) Run(ctx context.Context, in Input) (artifact.Artifacts, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	jobDescription, err := profile.ResolveJobDescription(in.JobDescription, p.Stdin)
	if err != nil {
		return artifact.Artifacts{}, err
	}
	logger.Debug("Job description resolved", "bytes", len(jobDescription))

	templates, err := profile.Load(p.TemplatesDir)
	if err != nil {
		return artifact.Artifacts{}, err
	}
	logger.Debug("Templates loaded", "dir", p.TemplatesDir)

	prompt, err := llm.BuildPrompt(templates, jobDescription)
	if err != nil {
		return artifact.Artifacts{}, err
	}

	result, err := p.Generator.Generate(ctx, prompt, in.Model)
	if err != nil {
		return artifact.Artifacts{}, err
	}

	out, err := p.Writer.Write(result, in.Output)
	if err != nil {
		return out, err
	}

	logger.Info("Cover letter ready", "text", out.TextPath, "pdf", out.PDFPath)
	return out, nil
}
