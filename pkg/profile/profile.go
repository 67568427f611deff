// Package profile loads the static candidate profile and prompt skeleton
// from the templates directory.
package profile

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/duke-git/lancet/v2/fileutil"
	"github.com/duke-git/lancet/v2/strutil"

	"github.com/zbiljic/coverletter/pkg/failure"
)

// Template file names inside the templates directory.
const (
	SummaryFile      = "summary.txt"
	SampleLetterFile = "sample_letter.txt"
	PromptFile       = "prompt.txt"
)

//go:embed defaults/*.txt
var defaultsFS embed.FS

// Templates holds the three fragments every letter is built from.
type Templates struct {
	Summary      string
	SampleLetter string
	Prompt       string
}

// Load reads all template fragments from dir. A missing directory, a
// missing file or a blank file is a configuration error.
func Load(dir string) (Templates, error) {
	if strutil.IsBlank(dir) {
		return Templates{}, failure.Configurationf(nil, "templates directory is not set")
	}
	if !fileutil.IsDir(dir) {
		return Templates{}, failure.Configurationf(nil, "templates directory %s does not exist (run `coverletter templates init`)", dir)
	}

	var t Templates
	fragments := []struct {
		name string
		dst  *string
	}{
		{name: SummaryFile, dst: &t.Summary},
		{name: SampleLetterFile, dst: &t.SampleLetter},
		{name: PromptFile, dst: &t.Prompt},
	}

	for _, f := range fragments {
		content, err := readFragment(filepath.Join(dir, f.name))
		if err != nil {
			return Templates{}, err
		}
		*f.dst = content
	}

	return t, nil
}

func readFragment(filename string) (string, error) {
	if !fileutil.IsExist(filename) {
		return "", failure.Configurationf(nil, "template %s is missing", filename)
	}

	content, err := fileutil.ReadFileToString(filename)
	if err != nil {
		return "", failure.Configurationf(err, "failed to read template %s", filename)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return "", failure.Configurationf(nil, "template %s is empty", filename)
	}

	return content, nil
}

// WriteDefaults writes the starter templates into dir and returns the paths
// written. Existing files are left untouched unless force is set.
func WriteDefaults(dir string, force bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, failure.FileSystemf(err, "failed to create directory %s", dir)
	}

	entries, err := defaultsFS.ReadDir("defaults")
	if err != nil {
		return nil, err
	}

	var written []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		target := filepath.Join(dir, entry.Name())
		if !force && fileutil.IsExist(target) {
			continue
		}

		content, err := fs.ReadFile(defaultsFS, path.Join("defaults", entry.Name()))
		if err != nil {
			return nil, err
		}

		if err := os.WriteFile(target, content, 0o644); err != nil {
			return nil, failure.FileSystemf(err, "failed to write %s", target)
		}
		written = append(written, target)
	}

	return written, nil
}
