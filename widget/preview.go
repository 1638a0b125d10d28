package widget

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PreviewKind classifies an HTTP response body for the API tester's
// response pane
type PreviewKind string

const (
	PreviewJSON PreviewKind = "json"
	PreviewHTML PreviewKind = "html"
	PreviewText PreviewKind = "text"
)

// ResponsePreview is the display form of a response body: pretty-printed
// JSON, or an HTML page reduced to title plus readable text, or the raw
// text unchanged.
type ResponsePreview struct {
	Kind  PreviewKind
	Body  string
	Title string
}

const maxPreviewChars = 4000

// ClassifyResponse derives a preview from a response body. The content type
// header is a hint only; the body shape decides. Parsing failures fall back
// to the plain text preview, never an error.
func ClassifyResponse(body, contentType string) ResponsePreview {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return ResponsePreview{Kind: PreviewText}
	}

	if looksLikeJSON(trimmed, contentType) {
		var value any
		if err := json.Unmarshal([]byte(trimmed), &value); err == nil {
			pretty, err := json.MarshalIndent(value, "", "  ")
			if err == nil {
				return ResponsePreview{Kind: PreviewJSON, Body: clip(string(pretty))}
			}
		}
	}

	if looksLikeHTML(trimmed, contentType) {
		if preview, ok := htmlPreview(trimmed); ok {
			return preview
		}
	}

	return ResponsePreview{Kind: PreviewText, Body: clip(trimmed)}
}

func looksLikeJSON(body, contentType string) bool {
	if strings.Contains(contentType, "json") {
		return true
	}
	return body[0] == '{' || body[0] == '['
}

func looksLikeHTML(body, contentType string) bool {
	if strings.Contains(contentType, "html") {
		return true
	}
	lower := strings.ToLower(body)
	return strings.Contains(lower, "<html") || strings.HasPrefix(lower, "<!doctype html")
}

// htmlPreview extracts the page title and readable text, dropping script,
// style and chrome elements.
func htmlPreview(body string) (ResponsePreview, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ResponsePreview{}, false
	}

	doc.Find("script, style, nav, header, footer, iframe, noscript").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	title := strings.TrimSpace(doc.Find("title").First().Text())
	text := compactLines(doc.Find("body").Text())

	return ResponsePreview{Kind: PreviewHTML, Title: title, Body: clip(text)}, true
}

func compactLines(text string) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func clip(s string) string {
	if len(s) <= maxPreviewChars {
		return s
	}
	return s[:maxPreviewChars] + "\n... (truncated)"
}
