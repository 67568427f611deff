package llm

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"text/template"

	"github.com/duke-git/lancet/v2/strutil"

	"github.com/zbiljic/coverletter/pkg/failure"
	"github.com/zbiljic/coverletter/pkg/profile"
)

//go:embed templates/*.tmpl templates/*.md
var promptTemplatesFS embed.FS

type Templates struct {
	stringTemplates map[string]string             // String templates (from .md files)
	goTemplates     map[string]*template.Template // Go templates (from .tmpl files)
}

func loadTemplates() (*Templates, error) {
	templates := &Templates{
		stringTemplates: make(map[string]string),
		goTemplates:     make(map[string]*template.Template),
	}

	entries, err := promptTemplatesFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("failed to read templates directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		filename := entry.Name()
		ext := path.Ext(filename)
		name := strings.TrimSuffix(filename, ext)

		content, err := fs.ReadFile(promptTemplatesFS, path.Join("templates", filename))
		if err != nil {
			return nil, fmt.Errorf("failed to load template %s: %w", filename, err)
		}

		switch ext {
		case ".md":
			templates.stringTemplates[name] = string(content)
		case ".tmpl":
			tmpl, err := template.New(name).Option("missingkey=error").Parse(string(content))
			if err != nil {
				return nil, fmt.Errorf("failed to parse template %s: %w", filename, err)
			}
			templates.goTemplates[name] = tmpl
		}
	}

	return templates, nil
}

// BuildPrompt merges the instruction template, candidate summary, sample
// letter and job description, in that order, into one user prompt.
func BuildPrompt(t profile.Templates, jobDescription string) (string, error) {
	fragments := []struct {
		name  string
		value string
	}{
		{name: "prompt template", value: t.Prompt},
		{name: "candidate summary", value: t.Summary},
		{name: "sample letter", value: t.SampleLetter},
		{name: "job description", value: jobDescription},
	}
	for _, f := range fragments {
		if strutil.IsBlank(f.value) {
			return "", failure.Configurationf(nil, "%s is empty", f.name)
		}
	}

	tmpl, err := loadTemplates()
	if err != nil {
		return "", fmt.Errorf("failed to load templates: %w", err)
	}

	userPromptTmpl, ok := tmpl.goTemplates["user_prompt"]
	if !ok {
		return "", fmt.Errorf("user_prompt template not found")
	}

	var buf bytes.Buffer
	err = userPromptTmpl.Execute(&buf, map[string]any{
		"Instructions":   t.Prompt,
		"Summary":        t.Summary,
		"SampleLetter":   t.SampleLetter,
		"JobDescription": jobDescription,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute user prompt template: %w", err)
	}

	buf.WriteString("\n")
	buf.WriteString(tmpl.stringTemplates["output_format"])

	return buf.String(), nil
}

// Client turns a prompt into a validated Result using a Backend.
type Client struct {
	backend Backend
	logger  *slog.Logger
}

// NewClient returns a Client for backend. A nil logger discards output.
func NewClient(backend Backend, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		backend: backend,
		logger:  logger,
	}
}

// Generate sends prompt to the backend once and validates the structured
// reply. It never returns a partial result.
func (c *Client) Generate(ctx context.Context, prompt, model string) (Result, error) {
	c.logger.Info("Generating cover letter", "backend", c.backend.String())
	c.logger.Debug("Prompt built", "bytes", len(prompt))

	raw, err := c.backend.Complete(ctx, Request{
		SystemPrompt: SystemPrompt,
		UserPrompt:   prompt,
		Model:        model,
		SchemaName:   ResultSchemaName,
		Schema:       ResultSchema(),
	})
	if err != nil {
		return Result{}, err
	}
	c.logger.Debug("Response received", "bytes", len(raw))

	result, err := ParseResult(raw)
	if err != nil {
		return Result{}, err
	}

	c.logger.Info("Cover letter generated", "filename", result.Filename)
	return result, nil
}
