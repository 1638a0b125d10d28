package classify

import (
	"regexp"
	"strings"
)

// Text relayed through a chat message often arrives with its line breaks
// flattened away. The Recover* functions re-insert breaks at structural
// boundaries, best effort. Input that already has a healthy newline density
// is returned untouched so well-formed multi-line text is never corrupted.

var (
	mdBoundaries = []*regexp.Regexp{
		regexp.MustCompile(`([ \t]+)(#{1,6} )`),
		regexp.MustCompile("([ \t]+)(```)"),
		regexp.MustCompile(`([ \t]+)(- \[[ xX]\] )`),
		regexp.MustCompile(`([ \t]+)([-*+] )`),
		regexp.MustCompile(`([ \t]+)(\d+\. )`),
		regexp.MustCompile(`([ \t]+)(\|[^|]+\|)`),
		regexp.MustCompile(`([ \t]+)(---+)`),
	}

	envBoundary = regexp.MustCompile(`([ \t]+)([A-Za-z_][A-Za-z0-9_]*[ \t]*=)`)

	logBoundaries = []*regexp.Regexp{
		regexp.MustCompile(`([ \t]+)(\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2})`),
		regexp.MustCompile(`(?i)([ \t]+)(\[(?:ERROR|WARN(?:ING)?|INFO|DEBUG|SUCCESS)\])`),
		regexp.MustCompile(`([ \t]+)(at \S+ \()`),
	}
)

// needsRecovery reports whether input looks like flattened single-line text.
// More than one existing break means the text is already structured.
func needsRecovery(s string) bool {
	return strings.Count(s, "\n") <= 1
}

// RecoverMarkdown inserts breaks before heading markers, fences, rules,
// list markers and table rows when markdown arrives as one long line.
func RecoverMarkdown(s string) string {
	if !needsRecovery(s) {
		return s
	}
	out := s
	for _, p := range mdBoundaries {
		out = p.ReplaceAllString(out, "\n$2")
	}
	return out
}

// RecoverEnv splits a single line at whitespace immediately preceding an
// identifier-equals pattern, e.g. "PORT=3000 API_KEY=x" becomes two lines.
func RecoverEnv(s string) string {
	if !needsRecovery(s) {
		return s
	}
	return envBoundary.ReplaceAllString(s, "\n$2")
}

// RecoverLogs splits before ISO timestamps, bracketed level tags, and
// stack-frame openers.
func RecoverLogs(s string) string {
	if !needsRecovery(s) {
		return s
	}
	out := s
	for _, p := range logBoundaries {
		out = p.ReplaceAllString(out, "\n$2")
	}
	return out
}
