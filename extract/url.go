package extract

import (
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`https?://[^\s"'<>]+`)

// FirstURL returns the first well-formed http(s) URL token in text, with
// trailing sentence punctuation and unbalanced closing brackets stripped.
// The second return is false when no URL is present.
func FirstURL(text string) (string, bool) {
	match := urlPattern.FindString(text)
	if match == "" {
		return "", false
	}
	return trimURLTail(match), true
}

// trimURLTail removes punctuation a sentence or bracket context leaves glued
// to the URL. Closing brackets are stripped only when unbalanced, so a URL
// like .../path_(section) survives intact.
func trimURLTail(u string) string {
	for len(u) > 0 {
		last := u[len(u)-1]
		switch last {
		case '.', ',', ';', ':', '!', '?', '\'', '"':
			u = u[:len(u)-1]
		case ')':
			if strings.Count(u, "(") >= strings.Count(u, ")") {
				return u
			}
			u = u[:len(u)-1]
		case ']':
			if strings.Count(u, "[") >= strings.Count(u, "]") {
				return u
			}
			u = u[:len(u)-1]
		case '}':
			if strings.Count(u, "{") >= strings.Count(u, "}") {
				return u
			}
			u = u[:len(u)-1]
		default:
			return u
		}
	}
	return u
}
