package llm

import (
	"regexp"
	"strings"

	lancetvalidator "github.com/duke-git/lancet/v2/validator"
	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"

	"github.com/zbiljic/coverletter/pkg/failure"
)

// Result is a validated structured reply.
type Result struct {
	// Filename is the output base name: ASCII, no separators, no extension.
	Filename string
	// Letter is the letter text.
	Letter string
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	filenameChars = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// the backend is told not to add these, but some still do
	strippedExtensions = []string{".pdf", ".txt"}
)

// ParseResult validates a raw backend reply and extracts the Result.
// Any deviation from the reply schema or the filename rules is a
// malformed-response error.
func ParseResult(raw string) (Result, error) {
	cleaned := CleanJSONBlock(raw)
	if cleaned == "" {
		return Result{}, failure.MalformedResponsef(nil, "backend returned an empty reply")
	}

	if !gjson.Valid(cleaned) {
		return Result{}, failure.MalformedResponsef(nil, "backend reply is not valid JSON")
	}

	if err := validateSchema(cleaned); err != nil {
		return Result{}, err
	}

	filename, err := NormalizeFilename(gjson.Get(cleaned, "filename").String())
	if err != nil {
		return Result{}, err
	}

	letter := strings.TrimSpace(gjson.Get(cleaned, "letter").String())
	if letter == "" {
		return Result{}, failure.MalformedResponsef(nil, "reply is missing the letter text")
	}

	return Result{
		Filename: filename,
		Letter:   letter,
	}, nil
}

func validateSchema(document string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(resultSchemaJSON),
		gojsonschema.NewStringLoader(document),
	)
	if err != nil {
		return failure.MalformedResponsef(err, "failed to validate reply")
	}

	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		problems = append(problems, field+": "+desc.Description())
	}

	return failure.MalformedResponsef(nil, "reply does not match schema: %s", strings.Join(problems, "; "))
}

// NormalizeFilename applies the filename rules to a name proposed by the
// backend. Whitespace is replaced with underscores and a trailing .pdf or
// .txt is dropped. Anything else that breaks the rules is rejected.
func NormalizeFilename(name string) (string, error) {
	name = strings.TrimSpace(name)
	for _, ext := range strippedExtensions {
		if strings.HasSuffix(strings.ToLower(name), ext) {
			name = strings.TrimSpace(name[:len(name)-len(ext)])
		}
	}

	if name == "" {
		return "", failure.MalformedResponsef(nil, "reply filename is empty")
	}
	if strings.ContainsAny(name, `/\`) {
		return "", failure.MalformedResponsef(nil, "reply filename %q must not contain path separators", name)
	}

	name = whitespaceRun.ReplaceAllString(name, "_")

	if !lancetvalidator.IsASCII(name) {
		return "", failure.MalformedResponsef(nil, "reply filename %q must use ASCII characters only", name)
	}
	if !filenameChars.MatchString(name) {
		return "", failure.MalformedResponsef(nil, "reply filename %q must contain only letters, digits, underscores and hyphens", name)
	}

	return name, nil
}
