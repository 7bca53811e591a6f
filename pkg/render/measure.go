package render

import (
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/invoice-generator/pkg/layout"
)

// Measurer wraps text using the metrics of the core PDF fonts, so the layout
// sees the same widths the emitter draws with.
type Measurer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// NewMeasurer returns a layout.Measurer backed by gofpdf.
func NewMeasurer() *Measurer {
	pdf := gofpdf.New("P", "mm", "A4", "")
	return &Measurer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (m *Measurer) width(s string) float64 {
	return m.pdf.GetStringWidth(m.tr(s))
}

// SplitText breaks text into lines no wider than width. Explicit newlines
// are kept; a single word wider than width is broken between runes.
func (m *Measurer) SplitText(text string, width float64, font layout.Font) []string {
	m.pdf.SetFont(font.Family, font.Style, font.Size)
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		cur := ""
		for _, word := range strings.Fields(para) {
			candidate := word
			if cur != "" {
				candidate = cur + " " + word
			}
			if m.width(candidate) <= width {
				cur = candidate
				continue
			}
			if cur != "" {
				lines = append(lines, cur)
			}
			cur = ""
			for m.width(word) > width {
				head, tail := m.cut(word, width)
				lines = append(lines, head)
				word = tail
			}
			cur = word
		}
		if cur != "" {
			lines = append(lines, cur)
		}
	}
	return lines
}

// cut returns the longest prefix of word that fits width, at least one rune.
func (m *Measurer) cut(word string, width float64) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && m.width(string(runes[:n+1])) <= width {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}
