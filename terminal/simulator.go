package terminal

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Simulator replays canned output for a closed set of known commands.
// Nothing is ever executed; unknown commands get a shell-style
// not-found line. Output is streamed line by line with an artificial
// delay so the widget renders like a live terminal.
type Simulator struct {
	delay time.Duration
}

// NewSimulator creates a simulator with the given base per-line delay
func NewSimulator(delay time.Duration) *Simulator {
	return &Simulator{delay: delay}
}

type cannedOutput struct {
	lines []string
	// slow marks output that should render noticeably slower than the
	// base delay, like package installs and test runs
	slow bool
}

var cannedOutputs = map[string]cannedOutput{
	"node --version": {lines: []string{"v20.11.1"}},
	"npm --version":  {lines: []string{"10.2.4"}},
	"go version":     {lines: []string{"go version go1.24.1 linux/amd64"}},
	"pwd":            {lines: []string{"/home/dev/project"}},
	"ls -la": {lines: []string{
		"total 64",
		"drwxr-xr-x   9 dev  dev   288 Aug 12 10:04 .",
		"drwxr-xr-x   5 dev  dev   160 Aug 10 09:12 ..",
		"-rw-r--r--   1 dev  dev   220 Aug 10 09:12 .env",
		"drwxr-xr-x  12 dev  dev   384 Aug 12 10:04 .git",
		"-rw-r--r--   1 dev  dev   310 Aug 10 09:12 .gitignore",
		"drwxr-xr-x 204 dev  dev  6528 Aug 11 14:30 node_modules",
		"-rw-r--r--   1 dev  dev  1204 Aug 11 14:30 package.json",
		"drwxr-xr-x   8 dev  dev   256 Aug 12 10:04 src",
		"-rw-r--r--   1 dev  dev   512 Aug 10 09:12 README.md",
	}},
	"npm install": {slow: true, lines: []string{
		"npm warn deprecated inflight@1.0.6: This module is not supported",
		"",
		"added 212 packages, and audited 213 packages in 4s",
		"",
		"42 packages are looking for funding",
		"  run `npm fund` for details",
		"",
		"found 0 vulnerabilities",
	}},
	"npm run dev": {slow: true, lines: []string{
		"> project@0.1.0 dev",
		"> next dev",
		"",
		"  ▲ Next.js 14.2.3",
		"  - Local:        http://localhost:3000",
		"",
		" ✓ Starting...",
		" ✓ Ready in 2.1s",
	}},
	"npm test": {slow: true, lines: []string{
		"> project@0.1.0 test",
		"> vitest run",
		"",
		" ✓ src/utils.test.ts (8 tests) 12ms",
		" ✓ src/api.test.ts (5 tests) 31ms",
		"",
		" Test Files  2 passed (2)",
		"      Tests  13 passed (13)",
	}},
	"git status": {lines: []string{
		"On branch main",
		"Your branch is up to date with 'origin/main'.",
		"",
		"Changes not staged for commit:",
		"  (use \"git add <file>...\" to update what will be committed)",
		"        modified:   src/index.ts",
		"",
		"no changes added to commit (use \"git add\" to stage changes)",
	}},
	"df -h": {lines: []string{
		"Filesystem      Size  Used Avail Use% Mounted on",
		"/dev/sda1       234G  118G  104G  54% /",
		"tmpfs           7.8G  2.1M  7.8G   1% /run",
	}},
}

// commandAliases lets close variants of a known command reuse its output
var commandAliases = map[string]string{
	"ls":           "ls -la",
	"ls -l":        "ls -la",
	"ls -al":       "ls -la",
	"node -v":      "node --version",
	"npm -v":       "npm --version",
	"npm run test": "npm test",
}

// Lookup returns the canned output lines for a command, or a shell-style
// not-found line for anything outside the table.
func Lookup(command string) []string {
	out, _ := lookup(command)
	return out.lines
}

func lookup(command string) (cannedOutput, bool) {
	cmd := strings.Join(strings.Fields(command), " ")
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}
	if out, ok := cannedOutputs[cmd]; ok {
		return out, true
	}
	name := cmd
	if i := strings.IndexByte(cmd, ' '); i > 0 {
		name = cmd[:i]
	}
	return cannedOutput{lines: []string{fmt.Sprintf("sh: command not found: %s", name)}}, false
}

// Run streams the canned output for command through emit, one line at a
// time, pausing between lines. A cancelled context stops mid-stream.
func (s *Simulator) Run(ctx context.Context, command string, emit func(line string)) error {
	if strings.TrimSpace(command) == "" {
		return nil
	}

	out, _ := lookup(command)
	delay := s.delay
	if out.slow {
		delay *= 3
	}

	for _, line := range out.lines {
		if delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		emit(line)
	}
	return nil
}
