package extract

import (
	"regexp"
)

// Single-purpose "looks like" predicates used by the enrichment scan over
// recent messages. Each is cheap and independent so new predicates can be
// added without touching the scanning plumbing.

var (
	envLinePattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*\s*=`)

	isoTimestampPattern = regexp.MustCompile(`\[?\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}`)
	levelTagPattern     = regexp.MustCompile(`(?i)\[(ERROR|WARN(?:ING)?|INFO|DEBUG|SUCCESS)\]`)
)

// LooksLikeEnv reports whether text contains an identifier-equals pattern,
// i.e. resembles dotenv content.
func LooksLikeEnv(text string) bool {
	return envLinePattern.MatchString(text)
}

// LooksLikeLog reports whether text carries a log signature: an ISO
// timestamp or a bracketed level tag.
func LooksLikeLog(text string) bool {
	return isoTimestampPattern.MatchString(text) || levelTagPattern.MatchString(text)
}
