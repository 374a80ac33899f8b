package extraction

import (
	"bytes"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/normalize"
	"github.com/ledongthuc/pdf"
)

// LayoutParams tunes how glyph runs are reassembled into lines and words.
type LayoutParams struct {
	// CharMargin is the gap, in multiples of the font size, beyond which two runs on the
	// same row are treated as separate text boxes and split onto separate lines.
	CharMargin float64
	// WordMargin is the gap, in multiples of the font size, beyond which a space is inserted.
	WordMargin float64
	// DetectVertical merges consecutive single-character rows sharing an X position into one line.
	DetectVertical bool
}

// DefaultLayoutParams returns the layout tuning used for resumes.
func DefaultLayoutParams() LayoutParams {
	return LayoutParams{
		CharMargin:     1.0,
		WordMargin:     0.1,
		DetectVertical: true,
	}
}

// boxGapFactor scales CharMargin into a horizontal gap threshold.
const boxGapFactor = 2.0

// PDF extracts text from a PDF document with DefaultLayoutParams and cleans it.
func PDF(data []byte) (string, error) {
	return PDFWithParams(data, DefaultLayoutParams())
}

// PDFWithParams extracts text from a PDF document using the given layout tuning.
func PDFWithParams(data []byte, params LayoutParams) (text string, err error) {
	// The pdf package panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Format: FormatPDF, Message: "malformed document", Cause: panicError(r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: FormatPDF, Message: "failed to read pdf", Cause: err}
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pages = append(pages, pageText(page, params))
	}

	cleaned := normalize.Clean(strings.Join(pages, "\n"))
	if cleaned == "" {
		return "", emptyTextError(FormatPDF)
	}
	return cleaned, nil
}

func pageText(page pdf.Page, params LayoutParams) string {
	content := page.Content()
	if len(content.Text) == 0 {
		plain, _ := page.GetPlainText(nil)
		return plain
	}

	glyphs := make([]glyph, 0, len(content.Text))
	for _, t := range content.Text {
		// TJ arrays end with a synthetic newline glyph; rows come from positions instead.
		if t.S == "\n" {
			continue
		}
		glyphs = append(glyphs, glyph{X: t.X, Y: t.Y, W: t.W, FontSize: t.FontSize, S: t.S})
	}
	return layoutRows(splitRows(glyphs), params)
}

// glyph is a positioned run of text on a page.
type glyph struct {
	X        float64
	Y        float64
	W        float64
	FontSize float64
	S        string
}

// rowTolerance is the baseline drift, in multiples of the font size, still treated as one row.
const rowTolerance = 0.3

// splitRows groups glyphs into rows in content-stream order. A row ends when the baseline
// moves or when the pen jumps back to the left, as it does after Td, TD, T* and Tm line moves.
func splitRows(glyphs []glyph) [][]glyph {
	var rows [][]glyph
	var row []glyph
	for i, g := range glyphs {
		if i > 0 {
			prev := glyphs[i-1]
			size := math.Max(math.Max(g.FontSize, prev.FontSize), 1)
			if math.Abs(g.Y-prev.Y) > rowTolerance*size || g.X < prev.X+prev.W-size {
				rows = append(rows, row)
				row = nil
			}
		}
		row = append(row, g)
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

// layoutRows rebuilds text lines from rows of positioned glyphs in reading order.
func layoutRows(rows [][]glyph, params LayoutParams) string {
	var lines []string
	var vertical strings.Builder
	verticalX := math.NaN()

	flushVertical := func() {
		if vertical.Len() > 0 {
			lines = append(lines, vertical.String())
			vertical.Reset()
		}
		verticalX = math.NaN()
	}

	for _, row := range rows {
		if len(row) == 0 {
			continue
		}

		if params.DetectVertical && len(row) == 1 && utf8.RuneCountInString(strings.TrimSpace(row[0].S)) == 1 {
			if !math.IsNaN(verticalX) && math.Abs(row[0].X-verticalX) > 0.5 {
				flushVertical()
			}
			vertical.WriteString(row[0].S)
			verticalX = row[0].X
			continue
		}
		flushVertical()

		lines = append(lines, layoutRow(row, params)...)
	}
	flushVertical()

	return strings.Join(lines, "\n")
}

// layoutRow turns one row into one or more lines, inserting spaces between words.
// Glyphs keep their emission order.
func layoutRow(row []glyph, params LayoutParams) []string {
	var lines []string
	var sb strings.Builder
	for i, g := range row {
		if i > 0 {
			prev := row[i-1]
			size := math.Max(g.FontSize, 1)
			gap := g.X - (prev.X + prev.W)
			switch {
			case gap > params.CharMargin*size*boxGapFactor:
				lines = append(lines, sb.String())
				sb.Reset()
			case gap > params.WordMargin*size && !endsWithSpace(sb.String()) && !strings.HasPrefix(g.S, " "):
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(g.S)
	}
	lines = append(lines, sb.String())
	return lines
}

func endsWithSpace(s string) bool {
	return strings.HasSuffix(s, " ")
}
