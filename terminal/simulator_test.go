package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, sim *Simulator, command string) []string {
	t.Helper()
	var lines []string
	err := sim.Run(context.Background(), command, func(line string) {
		lines = append(lines, line)
	})
	require.NoError(t, err)
	return lines
}

func TestRun_KnownCommand(t *testing.T) {
	sim := NewSimulator(0)

	lines := collect(t, sim, "node --version")

	assert.Equal(t, []string{"v20.11.1"}, lines)
}

func TestRun_AliasResolves(t *testing.T) {
	sim := NewSimulator(0)

	assert.Equal(t, collect(t, sim, "ls -la"), collect(t, sim, "ls"))
	assert.Equal(t, collect(t, sim, "node --version"), collect(t, sim, "node -v"))
}

func TestRun_UnknownCommandNotFound(t *testing.T) {
	sim := NewSimulator(0)

	lines := collect(t, sim, "rm -rf /")

	assert.Equal(t, []string{"sh: command not found: rm"}, lines)
}

func TestRun_EmptyCommandEmitsNothing(t *testing.T) {
	sim := NewSimulator(0)

	lines := collect(t, sim, "   ")

	assert.Empty(t, lines)
}

func TestRun_NormalizesWhitespace(t *testing.T) {
	sim := NewSimulator(0)

	lines := collect(t, sim, "  git   status ")

	require.NotEmpty(t, lines)
	assert.Equal(t, "On branch main", lines[0])
}

func TestRun_CancelledContextStopsStream(t *testing.T) {
	sim := NewSimulator(50 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var lines []string
	err := sim.Run(ctx, "npm install", func(line string) {
		lines = append(lines, line)
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, lines)
}

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{"/home/dev/project"}, Lookup("pwd"))
	assert.Equal(t, []string{"sh: command not found: frobnicate"}, Lookup("frobnicate --fast"))
}
