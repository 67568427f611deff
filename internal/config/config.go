package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/zbiljic/coverletter/pkg/artifact"
	"github.com/zbiljic/coverletter/pkg/failure"
	"github.com/zbiljic/coverletter/pkg/llm/provider"
)

// Config represents the current version of configuration
type Config = configV1

// Type aliases for external packages
type (
	ProviderConfig = providerConfigV1
	PDFConfig      = pdfConfigV1
)

// NewDefault creates a new configuration
func NewDefault() *Config {
	return newConfigV1()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	lo.Must0(v.RegisterValidation("provider", func(fl validator.FieldLevel) bool {
		return lo.Contains(provider.Kinds, provider.Kind(fl.Field().String()))
	}))
	lo.Must0(v.RegisterValidation("pdffont", func(fl validator.FieldLevel) bool {
		return artifact.IsCoreFont(fl.Field().String())
	}))
	return v
}

// Validate validates the configuration
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return failure.Configurationf(err, "invalid configuration")
	}

	problems := lo.Map(verrs, func(fe validator.FieldError, _ int) string {
		return describeFieldError(fe)
	})
	return failure.Configurationf(nil, "invalid configuration: %s", strings.Join(problems, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "configV1.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "provider":
		return fmt.Sprintf("%s: unknown provider %q (expected one of %s)", field, fe.Value(), strings.Join(providerNames(), ", "))
	case "pdffont":
		return fmt.Sprintf("%s: unknown font %q (expected one of %s)", field, fe.Value(), strings.Join(artifact.CoreFonts, ", "))
	case "gt", "gte", "lte":
		return fmt.Sprintf("%s must be %s %s", field, comparisonWords[fe.Tag()], fe.Param())
	default:
		return fmt.Sprintf("%s failed the %q check", field, fe.Tag())
	}
}

var comparisonWords = map[string]string{
	"gt":  "greater than",
	"gte": "at least",
	"lte": "at most",
}

func providerNames() []string {
	return lo.Map(provider.Kinds, func(k provider.Kind, _ int) string { return string(k) })
}

// ProviderOptions returns the backend options configured for kind. Missing
// entries yield zero options, which the provider fills with its defaults.
func (c *Config) ProviderOptions(kind provider.Kind) provider.Options {
	p := c.Providers[string(kind)]
	return provider.Options{
		ApiKey:      p.APIKey,
		BaseURL:     p.BaseURL,
		MaxTokens:   p.MaxTokens,
		Temperature: p.Temperature,
		MaxRetries:  p.MaxRetries,
	}
}

// Style returns the PDF layout.
func (c *Config) Style() artifact.Style {
	return artifact.Style{
		FontFamily: c.PDF.FontFamily,
		FontSize:   c.PDF.FontSize,
		LineHeight: c.PDF.LineHeight,
		Margin:     c.PDF.Margin,
	}
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) string {
	if path == "~" {
		return lo.Must(os.UserHomeDir())
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(lo.Must(os.UserHomeDir()), rest)
	}
	return path
}
