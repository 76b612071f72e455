package brief

import (
	"encoding/json"
	"strings"
)

// ParseResult is the typed outcome of turning raw backend output into a
// JSON object: either a decoded object, or the raw text with a reason
// kept for diagnostics.
type ParseResult struct {
	Object map[string]any
	Raw    string
	Reason string
}

// Valid reports whether an object was decoded
func (r *ParseResult) Valid() bool {
	return r.Object != nil
}

// Parse runs the full extract-then-repair protocol over raw backend
// output. It is a pure function: identical input always yields an
// identical result.
func Parse(raw string) *ParseResult {
	candidate := ExtractJSON(raw)
	if candidate == "" {
		return &ParseResult{Raw: raw, Reason: "no JSON object found in output"}
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err == nil {
		return &ParseResult{Object: obj, Raw: raw}
	}

	repaired := RepairJSON(candidate)
	if err := json.Unmarshal([]byte(repaired), &obj); err != nil {
		return &ParseResult{Raw: raw, Reason: "JSON unparsable after repair: " + err.Error()}
	}
	return &ParseResult{Object: obj, Raw: raw}
}

// RepairJSON applies deterministic fix-ups to a truncated or sloppy JSON
// candidate: trailing commas before closers are dropped, an unterminated
// string is closed, and missing closers are appended by replaying the
// open brace/bracket depth. Already-valid JSON passes through unchanged,
// so the repair is idempotent.
func RepairJSON(s string) string {
	var out []byte
	var stack []byte
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			out = append(out, c)
			continue
		}

		switch {
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{' || c == '[':
			stack = append(stack, c)
		case c == '}' || c == ']':
			out = trimTrailingComma(out)
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
		out = append(out, c)
	}

	// A dangling escape means the string was cut mid-sequence
	if escaped {
		out = append(out, '\\')
	}
	if inString {
		out = append(out, '"')
	}

	out = trimTrailingComma(out)
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			out = append(out, '}')
		} else {
			out = append(out, ']')
		}
	}

	return string(out)
}

// trimTrailingComma drops a comma (plus trailing whitespace) sitting at
// the end of out
func trimTrailingComma(out []byte) []byte {
	end := len(out)
	for end > 0 && isSpace(out[end-1]) {
		end--
	}
	if end > 0 && out[end-1] == ',' {
		return out[:end-1]
	}
	return out
}

func isSpace(c byte) bool {
	return strings.IndexByte(" \t\r\n", c) >= 0
}
