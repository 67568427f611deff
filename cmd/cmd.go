package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/orochaa/go-clack/third_party/picocolors"

	"github.com/zbiljic/coverletter/pkg/failure"
	"github.com/zbiljic/coverletter/pkg/termio"
)

// isColorStderr defines if error output is going into a terminal that
// accepts colors.
var isColorStderr = termio.IsColorTerminal(os.Stderr)

// printError writes the single line reported for a fatal error.
func printError(w io.Writer, colored bool, err error) {
	line := failure.Line(err)
	if colored {
		line = picocolors.Red(line)
	}
	fmt.Fprintln(w, line) //nolint:errcheck
}
