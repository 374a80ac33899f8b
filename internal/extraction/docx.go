package extraction

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	reXMLTags  = regexp.MustCompile(`<[^>]+>`)
	reBreakTag = regexp.MustCompile(`<w:br[^>]*/>`)
	reTabTag   = regexp.MustCompile(`<w:tab[^>]*/>`)
	// Tracked deletions and field instructions carry text that is not shown on the page.
	reHiddenRuns = []*regexp.Regexp{
		regexp.MustCompile(`(?s)<w:delText\b[^>]*?(?:/>|>.*?</w:delText>)`),
		regexp.MustCompile(`(?s)<w:instrText\b[^>]*?(?:/>|>.*?</w:instrText>)`),
	}
)

// DOCX extracts paragraph text from a Word document, one paragraph per line.
func DOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: FormatDOCX, Message: "failed to parse docx", Cause: err}
	}
	defer doc.Close()

	text := strings.Join(paragraphs(doc.Editable().GetContent()), "\n")
	if strings.TrimSpace(text) == "" {
		return "", emptyTextError(FormatDOCX)
	}
	return text, nil
}

// paragraphs converts WordprocessingML body XML into paragraph strings.
func paragraphs(xml string) []string {
	for _, re := range reHiddenRuns {
		xml = re.ReplaceAllString(xml, "")
	}
	xml = reTabTag.ReplaceAllString(xml, "\t")
	xml = reBreakTag.ReplaceAllString(xml, " ")
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = reXMLTags.ReplaceAllString(xml, "")
	xml = html.UnescapeString(xml)

	raw := strings.Split(strings.TrimRight(xml, "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		out = append(out, strings.TrimRight(p, " \t"))
	}
	// Leading body markup leaves nothing before the first paragraph.
	for len(out) > 0 && strings.TrimSpace(out[0]) == "" {
		out = out[1:]
	}
	return out
}
