package config

import (
	"github.com/zbiljic/coverletter/pkg/artifact"
	"github.com/zbiljic/coverletter/pkg/llm/provider"
)

const configVersionV1 = "1"

type configV1 struct {
	Version      string                      `json:"version" validate:"required,eq=1"` // required by vconfig-go
	Provider     string                      `json:"provider" validate:"required,provider"`
	Model        string                      `json:"model,omitempty"` // provider default when empty
	TemplatesDir string                      `json:"templates_dir" validate:"required"`
	OutputDir    string                      `json:"output_dir" validate:"required"`
	EnvFile      string                      `json:"env_file,omitempty"`
	Providers    map[string]providerConfigV1 `json:"providers,omitempty" validate:"dive,keys,provider,endkeys"`
	PDF          pdfConfigV1                 `json:"pdf"`
}

// providerConfigV1 holds per-provider overrides
type providerConfigV1 struct {
	APIKey    string `json:"api_key,omitempty"`
	BaseURL   string `json:"base_url,omitempty" validate:"omitempty,url"`
	MaxTokens int    `json:"max_tokens,omitempty" validate:"gte=0"`
	// Temperature is a pointer so that an explicit 0 differs from unset.
	Temperature *float64 `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
	// MaxRetries applies to the SDK backends (openai, claude).
	MaxRetries *int `json:"max_retries,omitempty" validate:"omitempty,gte=0"`
}

// pdfConfigV1 is the PDF page layout, in points
type pdfConfigV1 struct {
	FontFamily string  `json:"font_family" validate:"required,pdffont"`
	FontSize   float64 `json:"font_size" validate:"gt=0"`
	LineHeight float64 `json:"line_height" validate:"gt=0"`
	Margin     float64 `json:"margin" validate:"gt=0"`
}

const (
	defaultTemplatesDir = "~/.config/coverletter/templates"
	defaultOutputDir    = "~/Documents/Cover letters"
)

// newConfigV1 creates a new v1 configuration
func newConfigV1() *configV1 {
	style := artifact.DefaultStyle()
	return &configV1{
		Version:      configVersionV1,
		Provider:     string(provider.OpenAI),
		TemplatesDir: defaultTemplatesDir,
		OutputDir:    defaultOutputDir,
		PDF: pdfConfigV1{
			FontFamily: style.FontFamily,
			FontSize:   style.FontSize,
			LineHeight: style.LineHeight,
			Margin:     style.Margin,
		},
	}
}

// applyDefaults fills the fields a hand-written file may leave out.
func (c *configV1) applyDefaults() {
	d := newConfigV1()
	if c.Provider == "" {
		c.Provider = d.Provider
	}
	if c.TemplatesDir == "" {
		c.TemplatesDir = d.TemplatesDir
	}
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
	if c.PDF == (pdfConfigV1{}) {
		c.PDF = d.PDF
	}
}
