package llm

import "strings"

// CleanJSONBlock removes a markdown code fence around a JSON reply.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	// first line is the fence, possibly with a language tag
	lines = lines[1:]
	if n := len(lines); n > 0 && strings.HasPrefix(strings.TrimSpace(lines[n-1]), "```") {
		lines = lines[:n-1]
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
