package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyLine_BracketedLevels(t *testing.T) {
	tests := []struct {
		line     string
		expected Severity
	}{
		{"[ERROR] db connection lost", SeverityError},
		{"[WARN] retrying", SeverityWarn},
		{"[WARNING] disk almost full", SeverityWarn},
		{"[INFO] listening on :8080", SeverityInfo},
		{"[DEBUG] cache miss", SeverityDebug},
		{"[SUCCESS] deploy finished", SeveritySuccess},
		{"2024-01-02 [error] lowercase tag", SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyLine(tt.line))
		})
	}
}

func TestClassifyLine_KeywordFallback(t *testing.T) {
	tests := []struct {
		line     string
		expected Severity
	}{
		{"request failed with timeout", SeverityError},
		{"unhandled exception in worker", SeverityError},
		{"warning: deprecated flag", SeverityWarn},
		{"trace: entering handler", SeverityDebug},
		{"migration completed", SeveritySuccess},
		{"listening on port 8080", SeverityInfo},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyLine(tt.line))
		})
	}
}

// The documented grouping contract: an exception line followed by stack
// frames forms one error block; everything else is a single-line block.
func TestGroupLogBlocks_StackTrace(t *testing.T) {
	lines := []string{
		"Error: boom",
		"  at foo (a.js:1)",
		"  at bar (b.js:2)",
		"next unrelated line",
	}

	blocks := GroupLogBlocks(lines)

	require.Len(t, blocks, 2)
	assert.True(t, blocks[0].Stack)
	assert.Equal(t, SeverityError, blocks[0].Level)
	assert.Len(t, blocks[0].Lines, 3)
	assert.False(t, blocks[1].Stack)
	assert.Equal(t, SeverityInfo, blocks[1].Level)
}

func TestGroupLogBlocks_BlankSeparatorInsideStack(t *testing.T) {
	lines := []string{
		"TypeError: x is not a function",
		"  at handler (routes.js:10)",
		"",
		"  at dispatch (app.js:3)",
		"done",
	}

	blocks := GroupLogBlocks(lines)

	require.Len(t, blocks, 2)
	assert.Len(t, blocks[0].Lines, 4)
}

func TestGroupLogBlocks_ExceptionWithoutFramesStaysSingle(t *testing.T) {
	lines := []string{
		"Error: nothing follows",
		"plain info line",
	}

	blocks := GroupLogBlocks(lines)

	require.Len(t, blocks, 2)
	assert.False(t, blocks[0].Stack)
	assert.Equal(t, SeverityError, blocks[0].Level)
}

func TestSplitLogLines(t *testing.T) {
	t.Run("string with newlines", func(t *testing.T) {
		lines := SplitLogLines("a\nb\r\nc")
		assert.Equal(t, []string{"a", "b", "c"}, lines)
	})

	t.Run("array of strings", func(t *testing.T) {
		lines := SplitLogLines([]any{"one", "two\nthree"})
		assert.Equal(t, []string{"one", "two", "three"}, lines)
	})

	t.Run("mixed array", func(t *testing.T) {
		lines := SplitLogLines([]any{"one", float64(2)})
		assert.Equal(t, []string{"one", "2"}, lines)
	})

	t.Run("nil and empty", func(t *testing.T) {
		assert.Nil(t, SplitLogLines(nil))
		assert.Nil(t, SplitLogLines(""))
	})
}
