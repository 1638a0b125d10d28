package widget

import (
	"encoding/json"
	"strings"

	"workbench/classify"
	"workbench/envfile"
)

// Normalized views are what the renderers consume: derived, read-only
// shapes recomputed from the raw payload, never mutated in place. Malformed
// input populates the Err field; it is never raised as a panic or error
// value, so one bad payload cannot take down the workspace. Empty input is
// not an error: it normalizes to an empty view.

// TableView is the canonical shape for the data table widget
type TableView struct {
	Rows    []map[string]any
	Columns []classify.Column
	Err     string
}

// ChartView is the canonical shape for the chart widget
type ChartView struct {
	Rows       []map[string]any
	LabelKey   string
	SeriesKeys []string
	Kind       classify.ChartKind
	Err        string
}

// LogView is the canonical shape for the log viewer
type LogView struct {
	Lines  []string
	Blocks []classify.LogBlock
}

// JSONView is the canonical shape for the JSON tree viewer
type JSONView struct {
	Value  any
	Pretty string
	Err    string
}

// MarkdownView is the canonical shape for the markdown viewer
type MarkdownView struct {
	Blocks []classify.Block
	TOC    []classify.TOCEntry
}

// EnvView is the canonical shape for the env manager
type EnvView struct {
	Vars []envfile.Variable
}

// Normalize converts a table payload. A JSON string is parsed strictly;
// failures surface as the documented error strings from the classifier.
func (p TablePayload) Normalize() TableView {
	if IsEmptyData(p.Data) {
		return TableView{}
	}
	result := classify.Tabular(p.Data)
	return TableView{Rows: result.Rows, Columns: result.Columns, Err: result.Err}
}

// Normalize converts a chart payload: tabular extraction plus axis
// inference. An explicit ChartKind on the payload overrides the suggestion
// without re-deriving the axes.
func (p ChartPayload) Normalize() ChartView {
	if IsEmptyData(p.Data) {
		return ChartView{}
	}
	result := classify.Tabular(p.Data)
	if result.Err != "" {
		return ChartView{Err: result.Err}
	}

	axes := classify.InferAxes(result.Rows)
	view := ChartView{
		Rows:       result.Rows,
		LabelKey:   axes.LabelKey,
		SeriesKeys: axes.SeriesKeys,
		Kind:       axes.Suggested,
	}
	if p.ChartKind != "" {
		view.Kind = classify.ChartKind(p.ChartKind)
	}
	return view
}

// Normalize flattens raw log input into lines and groups stack traces into
// blocks. Flattened single-line input is recovered first.
func (p LogPayload) Normalize() LogView {
	raw := p.Raw
	if s, ok := raw.(string); ok {
		raw = classify.RecoverLogs(s)
	}
	lines := classify.SplitLogLines(raw)
	return LogView{Lines: lines, Blocks: classify.GroupLogBlocks(lines)}
}

// Normalize parses the JSON text strictly and pretty-prints it
func (p JSONViewerPayload) Normalize() JSONView {
	trimmed := strings.TrimSpace(p.Data)
	if trimmed == "" {
		return JSONView{}
	}

	var value any
	if err := json.Unmarshal([]byte(trimmed), &value); err != nil {
		return JSONView{Err: classify.ErrInvalidJSON}
	}

	pretty, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return JSONView{Err: classify.ErrInvalidJSON}
	}
	return JSONView{Value: value, Pretty: string(pretty)}
}

// Normalize parses markdown into typed blocks with a table of contents.
// Content that arrives as one long line is recovered first.
func (p MarkdownPayload) Normalize() MarkdownView {
	content := classify.RecoverMarkdown(p.Content)
	blocks := classify.ParseMarkdown(content)
	return MarkdownView{Blocks: blocks, TOC: classify.TableOfContents(blocks)}
}

// Normalize parses dotenv-style content into classified variables
func (p EnvPayload) Normalize() EnvView {
	return EnvView{Vars: envfile.Parse(p.Content)}
}

// IsEmptyData treats nil, empty strings, and the placeholder literals the
// collaborator sometimes sends ("{}", "[]") as absent data.
func IsEmptyData(data any) bool {
	switch v := data.(type) {
	case nil:
		return true
	case string:
		t := strings.TrimSpace(v)
		return t == "" || t == "{}" || t == "[]"
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}
