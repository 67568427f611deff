package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zbiljic/coverletter/pkg/artifact"
	"github.com/zbiljic/coverletter/pkg/failure"
	"github.com/zbiljic/coverletter/pkg/llm/provider"
)

// isolate points HOME and the working directory at empty temp dirs.
func isolate(t *testing.T) (home, cwd string) {
	t.Helper()

	home = t.TempDir()
	cwd = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(cwd)

	ResetCache()
	t.Cleanup(ResetCache)

	return home, cwd
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewDefault(t *testing.T) {
	c := NewDefault()

	require.NoError(t, c.Validate())
	assert.Equal(t, configVersionV1, c.Version)
	assert.Equal(t, string(provider.OpenAI), c.Provider)
	assert.Equal(t, artifact.DefaultStyle(), c.Style())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Provider = "phind" },
			wantErr: `provider: unknown provider "phind"`,
		},
		{
			name:    "missing templates dir",
			mutate:  func(c *Config) { c.TemplatesDir = "" },
			wantErr: "templates_dir is required",
		},
		{
			name:    "zero font size",
			mutate:  func(c *Config) { c.PDF.FontSize = 0 },
			wantErr: "pdf.font_size must be greater than 0",
		},
		{
			name:    "negative margin",
			mutate:  func(c *Config) { c.PDF.Margin = -1 },
			wantErr: "pdf.margin must be greater than 0",
		},
		{
			name: "unknown provider section",
			mutate: func(c *Config) {
				c.Providers = map[string]ProviderConfig{"phind": {APIKey: "k"}}
			},
			wantErr: "unknown provider",
		},
		{
			name: "temperature out of range",
			mutate: func(c *Config) {
				c.Providers = map[string]ProviderConfig{"groq": {Temperature: lo.ToPtr(3.0)}}
			},
			wantErr: "temperature must be at most 2",
		},
		{
			name: "zero temperature",
			mutate: func(c *Config) {
				c.Providers = map[string]ProviderConfig{"groq": {Temperature: lo.ToPtr(0.0)}}
			},
		},
		{
			name: "negative max retries",
			mutate: func(c *Config) {
				c.Providers = map[string]ProviderConfig{"openai": {MaxRetries: lo.ToPtr(-1)}}
			},
			wantErr: "max_retries must be at least 0",
		},
		{
			name:    "unknown font",
			mutate:  func(c *Config) { c.PDF.FontFamily = "Garamond" },
			wantErr: `pdf.font_family: unknown font "Garamond"`,
		},
		{
			name:   "lowercase core font",
			mutate: func(c *Config) { c.PDF.FontFamily = "helvetica" },
		},
		{
			name: "invalid base url",
			mutate: func(c *Config) {
				c.Providers = map[string]ProviderConfig{"openai": {BaseURL: "not a url"}}
			},
			wantErr: "base_url",
		},
		{
			name: "valid provider section",
			mutate: func(c *Config) {
				c.Providers = map[string]ProviderConfig{
					"claude": {APIKey: "k", MaxTokens: 2048, Temperature: lo.ToPtr(0.2), MaxRetries: lo.ToPtr(0)},
					"openai": {BaseURL: "https://proxy.example.com/v1/"},
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewDefault()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, failure.Is(err, failure.Configuration))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMigrateV0(t *testing.T) {
	c := migrateV0(&configV0{
		Version:   configVersionV0,
		Model:     "gpt-4-turbo",
		InputDir:  "/srv/letters/input",
		OutputDir: "/srv/letters/output",
	})

	require.NoError(t, c.Validate())
	assert.Equal(t, configVersionV1, c.Version)
	assert.Equal(t, string(provider.OpenAI), c.Provider)
	assert.Equal(t, "gpt-4-turbo", c.Model)
	assert.Equal(t, "/srv/letters/input", c.TemplatesDir)
	assert.Equal(t, "/srv/letters/output", c.OutputDir)
	assert.Equal(t, NewDefault().PDF, c.PDF)
}

func TestMigrateV0_EmptyKeepsDefaults(t *testing.T) {
	c := migrateV0(&configV0{Version: configVersionV0})

	assert.Equal(t, defaultTemplatesDir, c.TemplatesDir)
	assert.Equal(t, defaultOutputDir, c.OutputDir)
	assert.Empty(t, c.Model)
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, NewDefault(), c)
}

func TestLoad_V0File(t *testing.T) {
	_, cwd := isolate(t)
	path := filepath.Join(cwd, "legacy.json")
	writeFile(t, path, `{"version": "0", "model": "gpt-4-turbo", "input_dir": "/in", "output_dir": "/out"}`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, configVersionV1, c.Version)
	assert.Equal(t, "gpt-4-turbo", c.Model)
	assert.Equal(t, "/in", c.TemplatesDir)
	assert.Equal(t, "/out", c.OutputDir)
}

func TestLoad_V1FileFillsDefaults(t *testing.T) {
	_, cwd := isolate(t)
	path := filepath.Join(cwd, "coverletter.json")
	writeFile(t, path, `{"version": "1", "provider": "groq", "providers": {"groq": {"max_tokens": 2048}}}`)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "groq", c.Provider)
	assert.Equal(t, defaultTemplatesDir, c.TemplatesDir)
	assert.Equal(t, NewDefault().PDF, c.PDF)
	assert.Equal(t, 2048, c.ProviderOptions(provider.Groq).MaxTokens)
	assert.Equal(t, provider.Options{}, c.ProviderOptions(provider.Claude))
}

func TestLoad_ProviderTuning(t *testing.T) {
	_, cwd := isolate(t)
	path := filepath.Join(cwd, "coverletter.json")
	writeFile(t, path, `{"version": "1", "providers": {"openai": {"temperature": 0, "max_retries": 5}}}`)

	c, err := Load("")
	require.NoError(t, err)

	opts := c.ProviderOptions(provider.OpenAI)
	require.NotNil(t, opts.Temperature)
	assert.Zero(t, *opts.Temperature)
	require.NotNil(t, opts.MaxRetries)
	assert.Equal(t, 5, *opts.MaxRetries)

	assert.Nil(t, c.ProviderOptions(provider.Groq).Temperature)
}

func TestLoad_Errors(t *testing.T) {
	_, cwd := isolate(t)

	unknown := filepath.Join(cwd, "future.json")
	writeFile(t, unknown, `{"version": "7"}`)

	invalid := filepath.Join(cwd, "invalid.json")
	writeFile(t, invalid, `{"version": "1", "provider": "phind"}`)

	tests := []struct {
		name string
		path string
	}{
		{name: "missing explicit file", path: filepath.Join(cwd, "missing.json")},
		{name: "unknown version", path: unknown},
		{name: "invalid content", path: invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetCache()

			c, err := Load(tt.path)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.True(t, failure.Is(err, failure.Configuration), "got %v", err)
		})
	}
}

func TestSave(t *testing.T) {
	home, _ := isolate(t)

	c := NewDefault()
	c.Provider = string(provider.Claude)
	c.Model = "claude-3-5-sonnet-latest"

	path := GetDefaultPath()
	require.Equal(t, filepath.Join(home, ".config", "coverletter", "coverletter.json"), path)
	require.NoError(t, Save(c, path))
	assert.FileExists(t, path)

	found, ok := GetPath("")
	require.True(t, ok)
	assert.Equal(t, path, found)

	loaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, c.Provider, loaded.Provider)
	assert.Equal(t, c.Model, loaded.Model)
}

func TestSave_Invalid(t *testing.T) {
	isolate(t)

	require.Error(t, Save(nil, "x.json"))

	c := NewDefault()
	c.Provider = "phind"
	err := Save(c, filepath.Join(t.TempDir(), "c.json"))
	require.Error(t, err)
	assert.True(t, failure.Is(err, failure.Configuration))
}

func TestGetSearchPaths(t *testing.T) {
	home, cwd := isolate(t)

	cwd, err := filepath.EvalSymlinks(cwd)
	require.NoError(t, err)
	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(wd, ".coverletter.json"),
		filepath.Join(wd, "coverletter.json"),
		filepath.Join(home, ".config", "coverletter", "coverletter.json"),
		filepath.Join(home, ".coverletter.json"),
	}, GetSearchPaths())

	_, ok := GetPath("")
	assert.False(t, ok)

	writeFile(t, filepath.Join(home, ".coverletter.json"), `{"version": "1"}`)
	writeFile(t, filepath.Join(cwd, ".coverletter.json"), `{"version": "1"}`)

	found, ok := GetPath("")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(wd, ".coverletter.json"), found)
}

func TestExpandPath(t *testing.T) {
	home, _ := isolate(t)

	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "Documents", "Cover letters"), ExpandPath(defaultOutputDir))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
	assert.Equal(t, "~user/x", ExpandPath("~user/x"))
}
