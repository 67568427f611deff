// Package termio answers terminal questions for the command line front-end.
package termio

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// IsColorTerminal reports whether f is a terminal that accepts ANSI colors.
func IsColorTerminal(f *os.File) bool {
	if f == nil || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsInteractive reports whether f is connected to a terminal a user types
// into. Pipes and regular files are not.
func IsInteractive(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
