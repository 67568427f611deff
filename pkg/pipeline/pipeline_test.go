package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zbiljic/coverletter/pkg/artifact"
	"github.com/zbiljic/coverletter/pkg/failure"
	"github.com/zbiljic/coverletter/pkg/llm"
	"github.com/zbiljic/coverletter/pkg/llm/provider"
	"github.com/zbiljic/coverletter/pkg/profile"
)

type stubBackend struct {
	reply   string
	prompts []string
	models  []string
}

func (s *stubBackend) String() string { return "Stub (test)" }

func (s *stubBackend) Complete(_ context.Context, req llm.Request) (string, error) {
	s.prompts = append(s.prompts, req.UserPrompt)
	s.models = append(s.models, req.Model)
	return s.reply, nil
}

func writeTemplates(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		profile.SummaryFile:      "Experienced engineer.",
		profile.SampleLetterFile: "Dear Hiring Manager, ...",
		profile.PromptFile:       "Write a cover letter.",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

type fixture struct {
	pipeline *Pipeline
	backend  *stubBackend
	stdout   *bytes.Buffer
	outDir   string
}

func newFixture(t *testing.T, reply string) fixture {
	t.Helper()

	backend := &stubBackend{reply: reply}
	stdout := &bytes.Buffer{}

	return fixture{
		pipeline: &Pipeline{
			TemplatesDir: writeTemplates(t),
			Generator:    llm.NewClient(backend, nil),
			Writer:       artifact.NewWriter(stdout, nil),
		},
		backend: backend,
		stdout:  stdout,
		outDir:  filepath.Join(t.TempDir(), "out"),
	}
}

func TestRun_Acme(t *testing.T) {
	f := newFixture(t, `{"filename": "Acme_Backend_Engineer", "letter": "Dear Acme team, ..."}`)

	out, err := f.pipeline.Run(context.Background(), Input{
		JobDescription: "Backend role at Acme",
		Output:         artifact.Options{Dir: f.outDir, CreatedAt: time.Unix(0, 0).UTC()},
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(f.outDir, "Acme_Backend_Engineer.txt"), out.TextPath)
	assert.Equal(t, filepath.Join(f.outDir, "Acme_Backend_Engineer.pdf"), out.PDFPath)

	text, err := os.ReadFile(out.TextPath)
	require.NoError(t, err)
	assert.Equal(t, "Dear Acme team, ...", string(text))

	info, err := os.Stat(out.PDFPath)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	assert.Equal(t, "Dear Acme team, ...\n", f.stdout.String())

	require.Len(t, f.backend.prompts, 1)
	prompt := f.backend.prompts[0]
	order := []string{"Write a cover letter.", "Experienced engineer.", "Dear Hiring Manager, ...", "Backend role at Acme"}
	last := -1
	for _, fragment := range order {
		idx := strings.Index(prompt, fragment)
		require.Greater(t, idx, last, "fragment %q out of order", fragment)
		last = idx
	}
}

func TestRun_ModelOverride(t *testing.T) {
	f := newFixture(t, `{"filename": "Acme", "letter": "Dear Acme team, ..."}`)

	_, err := f.pipeline.Run(context.Background(), Input{
		JobDescription: "Backend role at Acme",
		Model:          "gpt-4.1",
		Output:         artifact.Options{Dir: f.outDir, SkipPDF: true},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-4.1"}, f.backend.models)
}

func TestRun_UnknownFontWritesNothing(t *testing.T) {
	f := newFixture(t, `{"filename": "Acme", "letter": "Dear Acme team, ..."}`)

	_, err := f.pipeline.Run(context.Background(), Input{
		JobDescription: "Backend role at Acme",
		Output:         artifact.Options{Dir: f.outDir, Style: artifact.Style{FontFamily: "Garamond"}},
	})
	require.Error(t, err)
	assert.Equal(t, 2, failure.ExitCode(err))
	assert.NoFileExists(t, filepath.Join(f.outDir, "Acme.pdf"))
	assert.NoFileExists(t, filepath.Join(f.outDir, "Acme.txt"))
}

func TestRun_NonASCIIFilename(t *testing.T) {
	f := newFixture(t, `{"filename": "Søren Ünïcode", "letter": "..."}`)

	out, err := f.pipeline.Run(context.Background(), Input{
		JobDescription: "Backend role at Acme",
		Output:         artifact.Options{Dir: f.outDir},
	})
	require.Error(t, err)
	assert.True(t, failure.Is(err, failure.MalformedResponse), "got %v", err)
	assert.Equal(t, artifact.Artifacts{}, out)

	assert.NoDirExists(t, f.outDir)
	assert.Empty(t, f.stdout.String())
}

func TestRun_JobDescriptionFromStdin(t *testing.T) {
	f := newFixture(t, `{"filename": "Globex_SRE", "letter": "Dear Globex, ..."}`)
	f.pipeline.Stdin = strings.NewReader("  SRE role at Globex\n")

	out, err := f.pipeline.Run(context.Background(), Input{
		JobDescription: profile.StdinArg,
		Output:         artifact.Options{Dir: f.outDir, SkipPDF: true},
	})
	require.NoError(t, err)

	assert.Empty(t, out.PDFPath)
	require.Len(t, f.backend.prompts, 1)
	assert.Contains(t, f.backend.prompts[0], "SRE role at Globex")
}

func TestRun_ConfigurationErrorsSkipBackend(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Pipeline)
		job    string
	}{
		{
			name: "empty job description",
			job:  "   ",
		},
		{
			name:   "missing templates directory",
			mutate: func(p *Pipeline) { p.TemplatesDir = filepath.Join(p.TemplatesDir, "missing") },
			job:    "Backend role at Acme",
		},
		{
			name: "blank summary",
			mutate: func(p *Pipeline) {
				require.NoError(t, os.WriteFile(filepath.Join(p.TemplatesDir, profile.SummaryFile), []byte("\n\t"), 0o644))
			},
			job: "Backend role at Acme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, `{"filename": "Acme", "letter": "x"}`)
			if tt.mutate != nil {
				tt.mutate(f.pipeline)
			}

			_, err := f.pipeline.Run(context.Background(), Input{
				JobDescription: tt.job,
				Output:         artifact.Options{Dir: f.outDir},
			})
			require.Error(t, err)
			assert.True(t, failure.Is(err, failure.Configuration), "got %v", err)
			assert.Empty(t, f.backend.prompts)
			assert.NoDirExists(t, f.outDir)
		})
	}
}

func TestRun_WithHTTPBackend(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{
					"index": 0,
					"message": map[string]any{
						"role":    "assistant",
						"content": "```json\n{\"filename\": \"Initech Platform Engineer.pdf\", \"letter\": \"Dear Initech, ...\"}\n```",
					},
				},
			},
		})
	}))
	t.Cleanup(srv.Close)

	backend, err := provider.New(provider.Groq, provider.Options{ApiKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	outDir := t.TempDir()
	var stdout bytes.Buffer
	p := &Pipeline{
		TemplatesDir: writeTemplates(t),
		Generator:    llm.NewClient(backend, nil),
		Writer:       artifact.NewWriter(&stdout, nil),
	}

	out, err := p.Run(context.Background(), Input{
		JobDescription: "Platform role at Initech",
		Output:         artifact.Options{Dir: outDir, SkipPDF: true},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, hits)
	assert.Equal(t, filepath.Join(outDir, "Initech_Platform_Engineer.txt"), out.TextPath)
	assert.Equal(t, "Dear Initech, ...\n", stdout.String())
}

func TestRun_MissingCredentialSendsNothing(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	t.Cleanup(srv.Close)

	t.Setenv(provider.APIKeyEnv(provider.OpenAI), "")

	_, err := provider.New(provider.OpenAI, provider.Options{BaseURL: srv.URL})
	require.Error(t, err)
	assert.True(t, failure.Is(err, failure.Authentication))
	assert.Zero(t, hits)
}
