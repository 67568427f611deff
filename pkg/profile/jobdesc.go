package profile

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/duke-git/lancet/v2/slice"

	"github.com/zbiljic/coverletter/pkg/failure"
)

// StdinArg makes ResolveJobDescription read the description from stdin.
const StdinArg = "-"

var textExtensions = []string{".txt", ".text", ".md"}

// ResolveJobDescription turns the job description argument into text.
// If value names an existing text file its contents are used, otherwise
// value is the description itself.
func ResolveJobDescription(value string, stdin io.Reader) (string, error) {
	var description string

	switch {
	case value == StdinArg:
		if stdin == nil {
			return "", failure.Configurationf(nil, "job description: stdin is not available")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", failure.Configurationf(err, "failed to read job description from stdin")
		}
		description = string(data)
	case isTextFile(value):
		data, err := os.ReadFile(value)
		if err != nil {
			return "", failure.Configurationf(err, "failed to read job description file %s", value)
		}
		description = string(data)
	default:
		description = value
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return "", failure.Configurationf(nil, "job description is empty")
	}

	return description, nil
}

// isTextFile reports whether value is the path of an existing regular file
// with a text extension.
func isTextFile(value string) bool {
	ext := strings.ToLower(filepath.Ext(value))
	if !slice.Contain(textExtensions, ext) {
		return false
	}

	info, err := os.Stat(value)
	return err == nil && info.Mode().IsRegular()
}
