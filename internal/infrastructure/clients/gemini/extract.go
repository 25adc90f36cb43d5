package gemini

import "strings"

// cleanModelText trims the reply and removes a surrounding fenced code block,
// including an optional json language tag.
func cleanModelText(text string) string {
	cleaned := strings.TrimSpace(text)

	if strings.HasPrefix(cleaned, "```") {
		parts := strings.Split(cleaned, "```")
		if len(parts) >= 2 {
			cleaned = parts[1]
			cleaned = strings.TrimPrefix(cleaned, "json")
		}
	}

	return strings.TrimSpace(cleaned)
}

// extractJSONObject scans for the first balanced {...} object so that prose
// the model added before or after the JSON is ignored. The scan counts brace
// depth and is aware of string literals and escapes, so arbitrarily nested
// replies extract correctly. If no balanced object is found the input is
// returned unchanged and left to the JSON parser to reject.
func extractJSONObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return text
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}

	return text
}
