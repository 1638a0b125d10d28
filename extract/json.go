package extract

import (
	"encoding/json"
	"strings"
)

// JSONSubstring finds the first complete JSON value embedded in arbitrary
// prose. Whole-text strict parse is tried first, so a message that is
// exactly one JSON value of any kind (including a bare scalar) is returned
// as-is; failing that, the scan
// starts at the first '{' or '[' and tracks bracket depth with string-literal
// awareness (brackets inside quoted strings are ignored, escaped quotes
// respected). The candidate substring is accepted only if it parses
// strictly. A miss returns ("", false) and is not an error: callers treat it
// as nothing to enrich with.
func JSONSubstring(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", false
	}
	if json.Valid([]byte(trimmed)) {
		return trimmed, true
	}

	objIdx := strings.IndexByte(text, '{')
	arrIdx := strings.IndexByte(text, '[')

	// Prefer an object over an array when the object starts at the same or
	// an earlier position.
	first, second := arrIdx, objIdx
	if objIdx >= 0 && (arrIdx < 0 || objIdx <= arrIdx) {
		first, second = objIdx, arrIdx
	}

	for _, start := range []int{first, second} {
		if start < 0 {
			continue
		}
		if candidate, ok := scanBalanced(text, start); ok {
			return candidate, true
		}
	}
	return "", false
}

// scanBalanced walks forward from start until bracket depth returns to zero,
// then validates the substring with a strict parse.
func scanBalanced(text string, start int) (string, bool) {
	open := text[start]
	var close byte = '}'
	if open == '[' {
		close = ']'
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
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				candidate := text[start : i+1]
				if json.Valid([]byte(candidate)) {
					return candidate, true
				}
				return "", false
			}
		}
	}
	return "", false
}
