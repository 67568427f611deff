package artifact

import (
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/samber/lo"

	"github.com/zbiljic/coverletter/pkg/failure"
)

// CoreFonts are the font families fpdf can use without a font file.
var CoreFonts = []string{"Courier", "Helvetica", "Arial", "Times", "Symbol", "ZapfDingbats"}

// IsCoreFont reports whether name is one of CoreFonts, ignoring case.
func IsCoreFont(name string) bool {
	return lo.ContainsBy(CoreFonts, func(f string) bool { return strings.EqualFold(f, name) })
}

// Style is the page layout of the rendered letter. Sizes are in points.
type Style struct {
	FontFamily string
	FontSize   float64
	LineHeight float64
	Margin     float64
}

// DefaultStyle is a conventional single-column US Letter layout.
func DefaultStyle() Style {
	return Style{
		FontFamily: "Times",
		FontSize:   12,
		LineHeight: 14,
		Margin:     72,
	}
}

func (s Style) withDefaults() Style {
	d := DefaultStyle()
	if s.FontFamily == "" {
		s.FontFamily = d.FontFamily
	}
	if s.FontSize <= 0 {
		s.FontSize = d.FontSize
	}
	if s.LineHeight <= 0 {
		s.LineHeight = d.LineHeight
	}
	if s.Margin <= 0 {
		s.Margin = d.Margin
	}
	return s
}

// Check reports an unusable style as a configuration error.
func (s Style) Check() error {
	s = s.withDefaults()
	if !IsCoreFont(s.FontFamily) {
		return failure.Configurationf(nil, "unknown PDF font %q (expected one of %s)", s.FontFamily, strings.Join(CoreFonts, ", "))
	}
	return nil
}

var paragraphBreak = regexp.MustCompile(`\n[ \t]*\n+`)

// Paragraphs splits a letter on blank lines. Line breaks inside a paragraph
// are kept.
func Paragraphs(letter string) []string {
	letter = strings.ReplaceAll(letter, "\r\n", "\n")

	var out []string
	for _, p := range paragraphBreak.Split(letter, -1) {
		p = strings.Trim(p, "\n")
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// RenderPDF lays the letter out as wrapped paragraphs and writes the
// document to w. The same input and createdAt always give the same bytes.
func RenderPDF(w io.Writer, letter string, style Style, createdAt time.Time) error {
	if err := style.Check(); err != nil {
		return err
	}
	style = style.withDefaults()

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(createdAt)
	pdf.SetModificationDate(createdAt)
	pdf.SetMargins(style.Margin, style.Margin, style.Margin)
	pdf.SetAutoPageBreak(true, style.Margin)
	pdf.AddPage()
	pdf.SetFont(style.FontFamily, "", style.FontSize)

	// core fonts use cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, p := range Paragraphs(letter) {
		if i > 0 {
			pdf.Ln(style.LineHeight)
		}
		pdf.MultiCell(0, style.LineHeight, tr(p), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return err
	}

	return pdf.Output(w)
}
