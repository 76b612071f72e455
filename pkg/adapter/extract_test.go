package adapter_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/t-okano/brieflet/pkg/adapter"
	"github.com/t-okano/brieflet/pkg/model"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"notes.txt", "txt"},
		{"README.MD", "md"},
		{"deck.pdf", "pdf"},
		{"minutes", "txt"},
		{"archive.tar.gz", "gz"},
	}

	for _, tt := range tests {
		gt.Equal(t, adapter.DetectFormat(tt.name), tt.expected)
	}
}

func TestTextExtractor(t *testing.T) {
	e := adapter.NewTextExtractor()

	t.Run("plain text", func(t *testing.T) {
		text, err := e.Extract([]byte("hello world"), "txt")
		gt.NoError(t, err)
		gt.Equal(t, text, "hello world")
	})

	t.Run("markdown", func(t *testing.T) {
		text, err := e.Extract([]byte("# Title\n\nbody"), "md")
		gt.NoError(t, err)
		gt.Equal(t, text, "# Title\n\nbody")
	})

	t.Run("BOM and surrounding whitespace stripped", func(t *testing.T) {
		text, err := e.Extract([]byte("\xef\xbb\xbf  hello  \n"), "txt")
		gt.NoError(t, err)
		gt.Equal(t, text, "hello")
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := e.Extract([]byte("%PDF-1.4"), "pdf")
		gt.Error(t, err)
		gt.V(t, errors.Is(err, model.ErrParseFailure)).Equal(true)
	})

	t.Run("invalid UTF-8", func(t *testing.T) {
		_, err := e.Extract([]byte{0xff, 0xfe, 0x00}, "txt")
		gt.Error(t, err)
		gt.V(t, errors.Is(err, model.ErrParseFailure)).Equal(true)
	})

	t.Run("empty document", func(t *testing.T) {
		_, err := e.Extract([]byte("   \n\t"), "txt")
		gt.Error(t, err)
		gt.V(t, errors.Is(err, model.ErrParseFailure)).Equal(true)
	})
}
