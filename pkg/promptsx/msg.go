// Package promptsx adds message helpers on top of go-clack prompts.
package promptsx

import (
	"strings"

	"github.com/orochaa/go-clack/prompts"
	"github.com/orochaa/go-clack/prompts/symbols"
	"github.com/orochaa/go-clack/third_party/picocolors"
)

// Note displays a formatted note box.
func Note(msg string) {
	prompts.Note(msg, prompts.NoteOptions{})
}

// PathList displays a title followed by one indented path per line, with a
// blue info symbol and a closing bar.
func PathList(title string, paths []string) {
	lines := make([]string, 0, len(paths)+1)
	lines = append(lines, title)
	for _, p := range paths {
		lines = append(lines, "  "+picocolors.Cyan(p))
	}

	prompts.Message(strings.Join(lines, "\n"), prompts.MessageOptions{
		FirstLine: prompts.MessageLineOptions{
			Start: picocolors.Blue(symbols.INFO),
		},
		NewLine: prompts.MessageLineOptions{
			Start: picocolors.Gray(symbols.BAR),
		},
		LastLine: prompts.MessageLineOptions{
			Start: picocolors.Gray(symbols.BAR),
		},
	})
}
