package classify

import (
	"fmt"
	"regexp"
	"strings"
)

// Severity is the display level of a log line or block
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarn    Severity = "warn"
	SeverityInfo    Severity = "info"
	SeverityDebug   Severity = "debug"
	SeveritySuccess Severity = "success"
)

// LogBlock groups one or more log lines into a single visual and copy unit.
// A stack trace collapses/expands as one block; every other line is a block
// of its own.
type LogBlock struct {
	Lines []string
	Level Severity
	Stack bool
}

var (
	bracketLevelPattern = regexp.MustCompile(`(?i)\[\s*(ERROR|WARN(?:ING)?|INFO|DEBUG|SUCCESS)\s*\]`)

	// Exception signatures that can open a multi-line stack block
	exceptionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bError:`),
		regexp.MustCompile(`\b(?:Type|Reference|Syntax|Range)Error\b`),
		regexp.MustCompile(`\bat \S+ \(`),
	}

	stackFramePattern = regexp.MustCompile(`^\s*(at |\.\.\. )`)
)

// ClassifyLine determines the severity of a single log line. A bracketed
// level token wins; otherwise keyword heuristics apply in fixed order
// (error, warn, debug, success), defaulting to info.
func ClassifyLine(line string) Severity {
	if m := bracketLevelPattern.FindStringSubmatch(line); m != nil {
		switch strings.ToUpper(m[1]) {
		case "ERROR":
			return SeverityError
		case "WARN", "WARNING":
			return SeverityWarn
		case "INFO":
			return SeverityInfo
		case "DEBUG":
			return SeverityDebug
		case "SUCCESS":
			return SeveritySuccess
		}
	}

	lower := strings.ToLower(line)
	switch {
	case containsAny(lower, "error", "exception", "failed", "fatal"):
		return SeverityError
	case strings.Contains(lower, "warn"):
		return SeverityWarn
	case containsAny(lower, "debug", "trace"):
		return SeverityDebug
	case containsAny(lower, "success", "ok", "completed"):
		return SeveritySuccess
	default:
		return SeverityInfo
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// GroupLogBlocks splits lines into blocks. A line matching an exception
// signature whose next line looks like a stack frame starts a multi-line
// block that absorbs all immediately following stack-frame-shaped lines,
// including single blank separators followed by more stack lines.
func GroupLogBlocks(lines []string) []LogBlock {
	var blocks []LogBlock

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if isExceptionStart(line) && i+1 < len(lines) && isStackFrame(lines[i+1]) {
			block := LogBlock{Lines: []string{line}, Level: SeverityError, Stack: true}
			j := i + 1
			for j < len(lines) {
				if isStackFrame(lines[j]) {
					block.Lines = append(block.Lines, lines[j])
					j++
					continue
				}
				// A single blank separator stays in the block when more
				// stack frames follow.
				if strings.TrimSpace(lines[j]) == "" && j+1 < len(lines) && isStackFrame(lines[j+1]) {
					block.Lines = append(block.Lines, lines[j])
					j++
					continue
				}
				break
			}
			blocks = append(blocks, block)
			i = j - 1
			continue
		}

		blocks = append(blocks, LogBlock{Lines: []string{line}, Level: ClassifyLine(line)})
	}

	return blocks
}

func isExceptionStart(line string) bool {
	for _, p := range exceptionPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// isStackFrame matches frame-shaped continuation lines: leading "at " or
// "... ", or at least two leading spaces.
func isStackFrame(line string) bool {
	if stackFramePattern.MatchString(line) {
		return true
	}
	return strings.HasPrefix(line, "  ") && strings.TrimSpace(line) != ""
}

// SplitLogLines flattens raw log input into lines. Strings are split on
// newlines; arrays are flattened element by element, with non-string
// elements rendered through their default formatting.
func SplitLogLines(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return strings.Split(strings.ReplaceAll(v, "\r\n", "\n"), "\n")
	case []string:
		var lines []string
		for _, el := range v {
			lines = append(lines, strings.Split(strings.ReplaceAll(el, "\r\n", "\n"), "\n")...)
		}
		return lines
	case []any:
		var lines []string
		for _, el := range v {
			if s, ok := el.(string); ok {
				lines = append(lines, strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")...)
				continue
			}
			lines = append(lines, stringify(el))
		}
		return lines
	default:
		return []string{stringify(v)}
	}
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return strings.TrimSpace(strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " "))
}
