package brief_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/t-okano/brieflet/pkg/usecase/brief"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "bare object",
			raw:      `{"a": 1}`,
			expected: `{"a": 1}`,
		},
		{
			name:     "json fence",
			raw:      "```json\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "generic fence",
			raw:      "```\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "prose around the object",
			raw:      "Here is the result:\n{\"a\": 1}\nHope this helps!",
			expected: `{"a": 1}`,
		},
		{
			name:     "nested braces",
			raw:      `{"a": {"b": [1, 2]}} trailing`,
			expected: `{"a": {"b": [1, 2]}}`,
		},
		{
			name:     "braces inside strings ignored",
			raw:      `{"a": "value with } brace"}`,
			expected: `{"a": "value with } brace"}`,
		},
		{
			name:     "truncated object returns open tail",
			raw:      `{"a": [1, 2`,
			expected: `{"a": [1, 2`,
		},
		{
			name:     "no object at all",
			raw:      "I could not produce a result.",
			expected: "",
		},
		{
			name:     "empty input",
			raw:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Equal(t, brief.ExtractJSON(tt.raw), tt.expected)
		})
	}
}
