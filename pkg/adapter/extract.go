package adapter

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/t-okano/brieflet/pkg/model"
)

// Extractor is the document-to-text collaborator. The pipeline never
// inspects byte-level format internals: an extractor either yields plain
// text or a typed parse failure carrying the format tag.
type Extractor interface {
	Extract(data []byte, format string) (string, error)
}

// DetectFormat maps a filename to a format tag by extension
func DetectFormat(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return "txt"
	}
	return ext
}

// TextExtractor handles plain-text formats. Binary document formats
// (pdf, docx, pptx) belong to an external extractor and are reported as
// parse failures here.
type TextExtractor struct{}

func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

func (e *TextExtractor) Extract(data []byte, format string) (string, error) {
	switch format {
	case "txt", "text", "md", "markdown", "paste":
	default:
		return "", goerr.Wrap(model.ErrParseFailure, "unsupported format",
			goerr.V("format", format))
	}

	if !utf8.Valid(data) {
		return "", goerr.Wrap(model.ErrParseFailure, "not valid UTF-8 text",
			goerr.V("format", format))
	}

	text := strings.TrimSpace(strings.TrimPrefix(string(data), "\uFEFF"))
	if text == "" {
		return "", goerr.Wrap(model.ErrParseFailure, "empty document",
			goerr.V("format", format))
	}
	return text, nil
}
