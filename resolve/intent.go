package resolve

import (
	"context"
	"encoding/json"
	"strings"

	. "workbench/core/types"
	"workbench/extract"
	"workbench/llm"
	"workbench/session"
	"workbench/widget"
)

// IntentResult is the outcome of parsing a free-text utterance: which tool
// to open (empty means none), the props to open it with, and a reply to show
// in the chat.
type IntentResult struct {
	Tool    Kind
	Payload map[string]any
	Message string
}

// IntentParser is the language-model boundary the free-text path calls.
// *llm.Manager satisfies it.
type IntentParser interface {
	Generate(ctx context.Context, purpose llm.Purpose, req llm.Request) (*llm.Response, error)
}

const intentFailureMessage = "Sorry, I couldn't work out which tool you need. Try naming it directly, e.g. \"open the json viewer\"."

// Keyword tables for pre-classification. Checked in order, first match wins;
// more specific phrases come before generic ones so "generate code" is not
// swallowed by "code" appearing in an unrelated phrase.
var intentKeywords = []struct {
	keywords []string
	kind     Kind
}{
	{[]string{"generate code", "write a function", "write code", "write me a", "scaffold"}, KindCodeGenerator},
	{[]string{"api", "endpoint", "http request", "rest call"}, KindAPITester},
	{[]string{"env var", "environment variable", ".env", "env file"}, KindEnvManager},
	{[]string{"markdown", "readme"}, KindMarkdownViewer},
	{[]string{"stack trace", "logs", "log output", "log file"}, KindLogViewer},
	{[]string{"chart", "graph", "plot", "visualize", "visualise"}, KindChartViewer},
	{[]string{"table", "spreadsheet", "rows and columns"}, KindTableViewer},
	{[]string{"json"}, KindJSONViewer},
	{[]string{"terminal", "shell", "command line", "run a command"}, KindTerminal},
}

// ClassifyIntent maps an utterance to a widget kind by keyword lookup.
// Returns false when no table entry matches; the caller then falls through
// to the language-model path.
func ClassifyIntent(input string) (Kind, bool) {
	lower := strings.ToLower(input)
	for _, entry := range intentKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.kind, true
			}
		}
	}
	return "", false
}

// intentSystemPrompt instructs the model to answer with one strict JSON
// object and nothing else. The tool list is kept in sync with AllKinds.
func intentSystemPrompt() string {
	names := make([]string, len(AllKinds))
	for i, k := range AllKinds {
		names[i] = string(k)
	}
	return `You map developer requests to workspace tools.
Valid tools: ` + strings.Join(names, ", ") + `.
Reply with exactly one JSON object, no prose, no markdown:
{"tool": "<tool name or null>", "payload": {}, "message": "<short reply to the user>"}
Use null for tool when no tool fits.`
}

// ResolveIntent parses a free-text utterance into an intent. The keyword
// table answers cheap, unambiguous cases without a model round trip; the
// rest goes to the intent LLM. Transport and parse failures never propagate:
// they become a generic failure result with an empty payload.
func (r *Resolver) ResolveIntent(ctx context.Context, utterance string) IntentResult {
	if kind, ok := ClassifyIntent(utterance); ok {
		return IntentResult{
			Tool:    kind,
			Payload: map[string]any{},
			Message: "Opening " + kind.DisplayName(),
		}
	}

	if r.llm == nil {
		return IntentResult{Payload: map[string]any{}, Message: intentFailureMessage}
	}

	resp, err := r.llm.Generate(ctx, llm.PurposeIntent, llm.Request{
		Messages: []llm.Message{
			{Role: "system", Content: intentSystemPrompt()},
			{Role: "user", Content: utterance},
		},
	})
	if err != nil {
		return IntentResult{Payload: map[string]any{}, Message: intentFailureMessage}
	}

	return parseIntentReply(resp.Content)
}

// parseIntentReply decodes the model's JSON answer. The model does not
// always obey the no-prose instruction, so the reply is located with the
// JSON-substring extractor before strict parsing.
func parseIntentReply(reply string) IntentResult {
	raw, ok := extract.JSONSubstring(reply)
	if !ok {
		return IntentResult{Payload: map[string]any{}, Message: intentFailureMessage}
	}

	var wire struct {
		Tool    *string        `json:"tool"`
		Payload map[string]any `json:"payload"`
		Message string         `json:"message"`
	}
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return IntentResult{Payload: map[string]any{}, Message: intentFailureMessage}
	}

	result := IntentResult{Payload: wire.Payload, Message: wire.Message}
	if result.Payload == nil {
		result.Payload = map[string]any{}
	}
	if result.Message == "" {
		result.Message = intentFailureMessage
	}

	if wire.Tool != nil {
		if kind, ok := directiveKinds[NormalizeComponentName(*wire.Tool)]; ok {
			result.Tool = kind
		}
	}
	return result
}

// OpenFromIntent opens the widget an intent result names, running the same
// prop mapping and enrichment as the directive path. The utterance stands in
// as the current message for enrichment scans.
func (r *Resolver) OpenFromIntent(utterance string, result IntentResult) (*widget.Instance, bool) {
	if result.Tool == "" {
		return nil, false
	}

	payload := mapPayload(result.Tool, Directive{
		Component: string(result.Tool),
		Props:     result.Payload,
	})
	inst := r.workspace.CreateWidget(payload)

	msg := session.Message{Role: session.RoleUser, Segments: []string{utterance}}
	if enriched, changed := r.enrich(payload, msg); changed {
		r.workspace.ReplacePayload(inst.ID, enriched)
	}
	return inst, true
}
