package ui

import (
	"fmt"
	"strings"

	"workbench/classify"
	"workbench/envfile"
	"workbench/session"
	"workbench/widget"

	. "workbench/core/types"
)

// RenderWorkspace returns a one-widget-per-line summary of the open widgets,
// marking the active one.
func RenderWorkspace(ws *session.Workspace) string {
	open := ws.Open()
	if len(open) == 0 {
		return "No widgets open."
	}

	activeID := ws.ActiveID()
	var b strings.Builder
	for i, inst := range open {
		marker := "  "
		if inst.ID == activeID {
			marker = "* "
		}
		fmt.Fprintf(&b, "%s[%d] %s\n", marker, i+1, inst.Title)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderWidget renders one widget's normalized view as terminal text.
// Normalization errors render as a message line, never as a failure of the
// render call itself.
func RenderWidget(inst *widget.Instance) string {
	var b strings.Builder
	fmt.Fprintf(&b, "── %s ──\n", inst.Title)

	switch p := inst.Payload.(type) {
	case widget.APITesterPayload:
		renderAPITester(&b, p)
	case widget.JSONViewerPayload:
		renderJSON(&b, p.Normalize())
	case widget.MarkdownPayload:
		renderMarkdown(&b, p.Normalize())
	case widget.LogPayload:
		renderLogs(&b, p.Normalize())
	case widget.TablePayload:
		renderTable(&b, p.Normalize())
	case widget.ChartPayload:
		renderChart(&b, p.Normalize())
	case widget.EnvPayload:
		renderEnv(&b, p.Normalize())
	case widget.CodeGenPayload:
		renderCodeGen(&b, p)
	case widget.TerminalPayload:
		fmt.Fprintf(&b, "$ %s\n", p.Command)
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderAPITester(b *strings.Builder, p widget.APITesterPayload) {
	fmt.Fprintf(b, "%s %s\n", p.Method, p.URL)
	for key, value := range p.Headers {
		fmt.Fprintf(b, "  %s: %s\n", key, value)
	}
	if p.Body != "" {
		fmt.Fprintf(b, "\n%s\n", p.Body)
	}
}

// RenderResponse renders an executed request's status line and classified
// body preview.
func RenderResponse(result widget.ResponseResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", result.Status)
	if result.Preview.Title != "" {
		fmt.Fprintf(&b, "%s\n", result.Preview.Title)
	}
	if result.Preview.Body != "" {
		b.WriteString(result.Preview.Body)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderJSON(b *strings.Builder, view widget.JSONView) {
	if view.Err != "" {
		fmt.Fprintf(b, "! %s\n", view.Err)
		return
	}
	b.WriteString(view.Pretty)
	b.WriteString("\n")
}

func renderMarkdown(b *strings.Builder, view widget.MarkdownView) {
	for _, block := range view.Blocks {
		switch block.Type {
		case classify.BlockHeading:
			fmt.Fprintf(b, "%s %s\n", strings.Repeat("#", block.Level), block.Text)
		case classify.BlockCode:
			for _, line := range block.Lines {
				fmt.Fprintf(b, "    %s\n", line)
			}
		case classify.BlockQuote:
			for _, item := range block.Items {
				fmt.Fprintf(b, "%s %s\n", strings.Repeat(">", item.Indent), item.Text)
			}
		case classify.BlockRule:
			b.WriteString("────────\n")
		case classify.BlockList, classify.BlockTaskList:
			for _, item := range block.Items {
				bullet := "-"
				if item.Task {
					bullet = "[ ]"
					if item.Checked {
						bullet = "[x]"
					}
				}
				fmt.Fprintf(b, "%s%s %s\n", strings.Repeat(" ", item.Indent), bullet, item.Text)
			}
		case classify.BlockTable:
			for _, row := range block.Rows {
				fmt.Fprintf(b, "| %s |\n", strings.Join(row, " | "))
			}
		default:
			fmt.Fprintf(b, "%s\n", block.Text)
		}
	}
}

func renderLogs(b *strings.Builder, view widget.LogView) {
	for _, block := range view.Blocks {
		if block.Stack {
			fmt.Fprintf(b, "[%s] %s  (+%d stack lines)\n",
				strings.ToUpper(string(block.Level)), block.Lines[0], len(block.Lines)-1)
			continue
		}
		for _, line := range block.Lines {
			fmt.Fprintf(b, "[%s] %s\n", strings.ToUpper(string(block.Level)), line)
		}
	}
}

func renderTable(b *strings.Builder, view widget.TableView) {
	if view.Err != "" {
		fmt.Fprintf(b, "! %s\n", view.Err)
		return
	}
	if len(view.Rows) == 0 {
		b.WriteString("(no data)\n")
		return
	}

	widths := make([]int, len(view.Columns))
	for i, col := range view.Columns {
		widths[i] = len(col.Key)
	}
	cells := make([][]string, len(view.Rows))
	for r, row := range view.Rows {
		cells[r] = make([]string, len(view.Columns))
		for i, col := range view.Columns {
			cell := CoerceString(row[col.Key])
			cells[r][i] = cell
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	for i, col := range view.Columns {
		fmt.Fprintf(b, "%-*s  ", widths[i], col.Key)
	}
	b.WriteString("\n")
	for _, row := range cells {
		for i, cell := range row {
			fmt.Fprintf(b, "%-*s  ", widths[i], cell)
		}
		b.WriteString("\n")
	}
}

const chartBarWidth = 30

func renderChart(b *strings.Builder, view widget.ChartView) {
	if view.Err != "" {
		fmt.Fprintf(b, "! %s\n", view.Err)
		return
	}
	if len(view.Rows) == 0 || len(view.SeriesKeys) == 0 {
		b.WriteString("(no data)\n")
		return
	}

	// Text rendering is always horizontal bars; the suggested kind is
	// shown so the caller knows what a graphical renderer would pick.
	series := view.SeriesKeys[0]
	fmt.Fprintf(b, "%s by %s (%s)\n", series, view.LabelKey, view.Kind)

	max := 0.0
	for _, row := range view.Rows {
		if v, ok := row[series].(float64); ok && v > max {
			max = v
		}
	}

	labelWidth := 0
	for _, row := range view.Rows {
		if l := len(CoerceString(row[view.LabelKey])); l > labelWidth {
			labelWidth = l
		}
	}

	for _, row := range view.Rows {
		value, _ := row[series].(float64)
		bar := 0
		if max > 0 {
			bar = int(value / max * chartBarWidth)
		}
		fmt.Fprintf(b, "%-*s  %s %v\n",
			labelWidth, CoerceString(row[view.LabelKey]),
			strings.Repeat("█", bar), row[series])
	}
}

func renderEnv(b *strings.Builder, view widget.EnvView) {
	if len(view.Vars) == 0 {
		b.WriteString("(empty)\n")
		return
	}
	for _, v := range view.Vars {
		fmt.Fprintf(b, "%s=%s  (%s)\n", v.Key, envfile.Mask(v), v.Type)
	}
}

func renderCodeGen(b *strings.Builder, p widget.CodeGenPayload) {
	fmt.Fprintf(b, "Task: %s\n", p.Task)
	if p.Language != "" {
		fmt.Fprintf(b, "Language: %s\n", p.Language)
	}
	if p.Framework != "" {
		fmt.Fprintf(b, "Framework: %s\n", p.Framework)
	}
}
