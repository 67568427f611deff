// Package artifact persists a generated letter as a text file and a PDF
// and echoes it to standard output.
package artifact

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/duke-git/lancet/v2/fileutil"

	"github.com/zbiljic/coverletter/pkg/failure"
	"github.com/zbiljic/coverletter/pkg/llm"
)

const (
	TextExt = ".txt"
	PDFExt  = ".pdf"
)

// Options controls where the artifacts go. Empty paths are derived from Dir
// and the result filename.
type Options struct {
	Dir      string
	TextPath string
	PDFPath  string
	SkipPDF  bool
	// CreatedAt is stamped into the PDF metadata. The zero value means now.
	CreatedAt time.Time
	Style     Style
}

// Artifacts lists the files written by a run. PDFPath is empty when the PDF
// was skipped.
type Artifacts struct {
	TextPath string
	PDFPath  string
}

// Writer writes artifacts and prints the letter to Stdout.
type Writer struct {
	stdout io.Writer
	logger *slog.Logger
}

// NewWriter returns a Writer printing to stdout. A nil logger discards
// output.
func NewWriter(stdout io.Writer, logger *slog.Logger) *Writer {
	if stdout == nil {
		stdout = io.Discard
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Writer{
		stdout: stdout,
		logger: logger,
	}
}

// Write stores result.Letter verbatim in the text file, prints it, and
// renders the PDF unless opts.SkipPDF is set. Files are overwritten.
func (w *Writer) Write(result llm.Result, opts Options) (Artifacts, error) {
	var out Artifacts

	if !opts.SkipPDF {
		if err := opts.Style.Check(); err != nil {
			return out, err
		}
	}

	textPath, err := resolvePath(opts.TextPath, opts.Dir, result.Filename, TextExt)
	if err != nil {
		return out, err
	}

	if err := writeText(textPath, result.Letter); err != nil {
		return out, err
	}
	out.TextPath = textPath
	w.logger.Info("Text file written", "path", textPath)

	if _, err := fmt.Fprintln(w.stdout, result.Letter); err != nil {
		return out, failure.FileSystemf(err, "failed to print letter")
	}

	if opts.SkipPDF {
		w.logger.Debug("PDF skipped")
		return out, nil
	}

	pdfPath, err := resolvePath(opts.PDFPath, opts.Dir, result.Filename, PDFExt)
	if err != nil {
		return out, err
	}

	createdAt := opts.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	if err := writePDF(pdfPath, result.Letter, opts.Style, createdAt); err != nil {
		return out, err
	}
	out.PDFPath = pdfPath
	w.logger.Info("PDF written", "path", pdfPath)

	return out, nil
}

func resolvePath(explicit, dir, filename, ext string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if filename == "" {
		return "", failure.MalformedResponsef(nil, "result has no filename")
	}
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, filename+ext), nil
}

func ensureParent(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return failure.FileSystemf(err, "failed to create directory %s", dir)
	}
	return nil
}

func writeText(path, letter string) error {
	if err := ensureParent(path); err != nil {
		return err
	}
	if err := fileutil.WriteStringToFile(path, letter, false); err != nil {
		return failure.FileSystemf(err, "failed to write %s", path)
	}
	return nil
}

func writePDF(path, letter string, style Style, createdAt time.Time) error {
	var buf bytes.Buffer
	if err := RenderPDF(&buf, letter, style, createdAt); err != nil {
		if failure.KindOf(err) != failure.Unknown {
			return err
		}
		return failure.FileSystemf(err, "failed to render %s", path)
	}

	if err := ensureParent(path); err != nil {
		return err
	}
	if err := fileutil.WriteBytesToFile(path, buf.Bytes()); err != nil {
		return failure.FileSystemf(err, "failed to write %s", path)
	}

	return nil
}
