package llm

import (
	"context"
	"fmt"
	"strings"
)

// CodegenRequest describes a code-generation task
type CodegenRequest struct {
	Task      string
	Language  string
	Framework string
}

// CodegenResult is the outcome of a code-generation call. Err carries any
// failure as a string; a non-empty Err means Code must not be used, even if
// the model produced partial output.
type CodegenResult struct {
	Code     string
	Language string
	Err      string
}

const codegenSystemPrompt = `You are a code generation assistant. Produce only the requested code.
Do not include explanations, commentary, or markdown fences. Output raw code only.`

// GenerateCode runs a code-generation task through the codegen LLM.
// Failures never return an error value; they populate the Err field so the
// widget can render the message.
func (m *Manager) GenerateCode(ctx context.Context, req CodegenRequest) CodegenResult {
	task := strings.TrimSpace(req.Task)
	if task == "" {
		return CodegenResult{Err: "no task provided"}
	}

	resp, err := m.Generate(ctx, PurposeCodegen, Request{
		Messages: []Message{
			{Role: "system", Content: codegenSystemPrompt},
			{Role: "user", Content: codegenPrompt(task, req.Language, req.Framework)},
		},
	})
	if err != nil {
		return CodegenResult{Language: req.Language, Err: err.Error()}
	}

	code := StripCodeFence(resp.Content)
	if strings.TrimSpace(code) == "" {
		return CodegenResult{Language: req.Language, Err: "model returned no code"}
	}

	return CodegenResult{Code: code, Language: req.Language}
}

func codegenPrompt(task, language, framework string) string {
	var b strings.Builder
	b.WriteString("Task: ")
	b.WriteString(task)
	if language != "" {
		fmt.Fprintf(&b, "\nLanguage: %s", language)
	}
	if framework != "" {
		fmt.Fprintf(&b, "\nFramework: %s", framework)
	}
	return b.String()
}

// StripCodeFence removes a surrounding markdown code fence, including an
// optional language tag on the opening fence. Text without a fence passes
// through unchanged.
func StripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return trimmed
	}

	// Drop the opening fence line (with any language tag)
	lines = lines[1:]

	// Drop the closing fence if present
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n")
}
