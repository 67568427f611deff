package llm

import (
	_ "embed"
)

const (
	// ResultSchemaName names the reply schema in structured-output requests.
	ResultSchemaName = "cover_letter"

	SystemPrompt = `You are a cover letter writer.
You write in the candidate's voice, using only the facts you are given.
You always answer with a single JSON object that has exactly two string keys:
"filename" and "letter". You never add commentary or code fences.`
)

//go:embed templates/result_schema.json
var resultSchemaJSON []byte

// ResultSchema returns the JSON Schema every reply must satisfy.
func ResultSchema() []byte {
	return append([]byte(nil), resultSchemaJSON...)
}
