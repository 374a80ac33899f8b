// Package extraction converts uploaded resume documents (PDF, DOCX) into plain text.
package extraction

import (
	"path/filepath"
	"strings"
)

// Supported document formats.
const (
	FormatPDF  = "PDF"
	FormatDOCX = "DOCX"
)

// IsSupported reports whether filename has an extension this package can extract.
func IsSupported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx":
		return true
	default:
		return false
	}
}

// FromFile extracts text from data, dispatching on the extension of filename.
func FromFile(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF(data)
	case ".docx":
		return DOCX(data)
	default:
		return "", &UnsupportedFormatError{Filename: filename}
	}
}

func emptyTextError(format string) error {
	return &ExtractionError{Format: format, Message: "Extracted text is empty"}
}
