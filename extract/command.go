package extract

import (
	"strings"
)

// Imperative prefixes stripped from a user utterance before treating the
// rest as a literal command. Longer phrases come first so "please run" wins
// over "run".
var imperativePrefixes = []string{
	"please run",
	"try running",
	"can you run",
	"could you run",
	"please execute",
	"run",
	"execute",
	"exec",
}

// phraseCommand maps a conversational phrase to a concrete shell command.
// This is a closed allow-list: the table never guesses commands that could
// be destructive, so an unrecognized phrase falls through to verbatim text.
type phraseCommand struct {
	phrases []string
	command string
}

var phraseCommands = []phraseCommand{
	{[]string{"check node version", "node version", "which node"}, "node --version"},
	{[]string{"check npm version", "npm version"}, "npm --version"},
	{[]string{"check go version", "go version"}, "go version"},
	{[]string{"list files", "show files", "list the files", "what files are here"}, "ls -la"},
	{[]string{"current directory", "where am i"}, "pwd"},
	{[]string{"start the server", "start the dev server", "start dev server", "run the server"}, "npm run dev"},
	{[]string{"install deps", "install dependencies", "install the dependencies"}, "npm install"},
	{[]string{"run the tests", "run tests"}, "npm test"},
	{[]string{"git status", "check git status"}, "git status"},
	{[]string{"disk usage", "check disk space"}, "df -h"},
}

// CommandFromText turns a user utterance into a terminal command:
// an imperative prefix is stripped and the remainder used verbatim, else the
// phrase table is consulted, else the whole text passes through unchanged.
func CommandFromText(text string) string {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	for _, prefix := range imperativePrefixes {
		if strings.HasPrefix(lower, prefix+" ") {
			rest := strings.TrimSpace(trimmed[len(prefix):])
			if rest != "" {
				return rest
			}
		}
	}

	for _, entry := range phraseCommands {
		for _, phrase := range entry.phrases {
			if strings.Contains(lower, phrase) {
				return entry.command
			}
		}
	}

	return trimmed
}
