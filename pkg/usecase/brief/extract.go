package brief

import "strings"

// ExtractJSON locates the outermost balanced {...} region in raw backend
// output, stripping markdown fences first. When the region never closes
// (truncated output) the open tail is returned so the repair step can
// complete it. Returns "" when no object start is present at all.
func ExtractJSON(raw string) string {
	text := stripFences(raw)

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{' || c == '[':
			depth++
		case c == '}' || c == ']':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}

	return text[start:]
}

// stripFences removes a markdown code fence wrapping, if present
func stripFences(raw string) string {
	text := strings.TrimSpace(raw)

	if i := strings.Index(text, "```json"); i >= 0 {
		text = text[i+len("```json"):]
		if j := strings.Index(text, "```"); j >= 0 {
			text = text[:j]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[i+1:]
		}
		if j := strings.LastIndex(text, "```"); j >= 0 {
			text = text[:j]
		}
		return strings.TrimSpace(text)
	}

	return text
}
