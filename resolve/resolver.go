package resolve

import (
	lru "github.com/hashicorp/golang-lru/v2"

	. "workbench/core/types"
	"workbench/extract"
	"workbench/session"
	"workbench/widget"
)

// directiveKinds maps normalized component names to widget kinds. The table
// is a fixed, total lookup for known names; unknown names resolve to no
// widget at all and are silently ignored.
var directiveKinds = map[string]Kind{
	"apitester":      KindAPITester,
	"apirequest":     KindAPITester,
	"httprequest":    KindAPITester,
	"jsonviewer":     KindJSONViewer,
	"json":           KindJSONViewer,
	"markdownviewer": KindMarkdownViewer,
	"markdown":       KindMarkdownViewer,
	"logviewer":      KindLogViewer,
	"logs":           KindLogViewer,
	"tableviewer":    KindTableViewer,
	"datatable":      KindTableViewer,
	"table":          KindTableViewer,
	"chartviewer":    KindChartViewer,
	"chart":          KindChartViewer,
	"graph":          KindChartViewer,
	"envmanager":     KindEnvManager,
	"enveditor":      KindEnvManager,
	"envfile":        KindEnvManager,
	"codegenerator":  KindCodeGenerator,
	"codegen":        KindCodeGenerator,
	"terminal":       KindTerminal,
	"shell":          KindTerminal,
	"console":        KindTerminal,
}

// consumedCacheSize bounds the directive-consumption record. Message ids
// long since trimmed from the transcript cannot replay, so an LRU of this
// size is effectively exact.
const consumedCacheSize = 512

// enrichScanLimit is how many recent user messages the predicate scans
// inspect, newest first.
const enrichScanLimit = 10

// Resolver is the single seam between the generative-UI collaborator and
// the workspace session: it consumes component directives attached to
// assistant messages and turns them into widget instances.
type Resolver struct {
	workspace *session.Workspace
	history   *session.History
	llm       IntentParser
	consumed  *lru.Cache[string, struct{}]
}

// NewResolver creates a resolver bound to a workspace and its transcript.
// parser may be nil; the free-text intent path then answers with its
// failure message.
func NewResolver(workspace *session.Workspace, history *session.History, parser IntentParser) *Resolver {
	consumed, _ := lru.New[string, struct{}](consumedCacheSize)
	return &Resolver{
		workspace: workspace,
		history:   history,
		llm:       parser,
		consumed:  consumed,
	}
}

// ProcessMessage consumes the directive attached to msg, if any, and opens
// at most one widget. Consumption is keyed by message id: re-processing the
// same message never creates a second widget, and an unmappable directive
// is consumed too so it is not re-evaluated.
func (r *Resolver) ProcessMessage(msg session.Message) (*widget.Instance, bool) {
	if msg.Directive == nil {
		return nil, false
	}
	if _, seen := r.consumed.Get(msg.ID); seen {
		return nil, false
	}
	r.consumed.Add(msg.ID, struct{}{})

	kind, ok := directiveKinds[NormalizeComponentName(msg.Directive.Component)]
	if !ok {
		return nil, false
	}

	payload := mapPayload(kind, *msg.Directive)
	inst := r.workspace.CreateWidget(payload)

	// Enrichment runs once per directive, after primary mapping and before
	// the widget renders. A scan that finds nothing leaves the payload as
	// mapped; that is not an error.
	if enriched, changed := r.enrich(payload, msg); changed {
		r.workspace.ReplacePayload(inst.ID, enriched)
	}
	return inst, true
}

// mapPayload copies directive props into the widget's payload shape.
// Absent optional fields default here; missing required fields are left
// empty for the enrichment pass.
func mapPayload(kind Kind, d Directive) widget.Payload {
	switch kind {
	case KindAPITester:
		p := widget.APITesterPayload{
			URL:    d.StringProp("url"),
			Method: d.StringProp("method"),
			Body:   d.StringProp("body"),
		}
		if p.Method == "" {
			p.Method = "GET"
		}
		if raw, ok := d.Prop("headers").(map[string]any); ok && len(raw) > 0 {
			p.Headers = make(map[string]string, len(raw))
			for k, v := range raw {
				p.Headers[k] = CoerceString(v)
			}
		}
		// contentType and authorization fold into headers only when set
		if ct := d.StringProp("contentType"); ct != "" {
			p.Headers = withHeader(p.Headers, "Content-Type", ct)
		}
		if auth := d.StringProp("authorization"); auth != "" {
			p.Headers = withHeader(p.Headers, "Authorization", auth)
		}
		return p

	case KindJSONViewer:
		return widget.JSONViewerPayload{Data: d.StringProp("data")}

	case KindMarkdownViewer:
		return widget.MarkdownPayload{Content: d.StringProp("content")}

	case KindLogViewer:
		return widget.LogPayload{Raw: d.Prop("logs")}

	case KindTableViewer:
		return widget.TablePayload{Data: d.Prop("data")}

	case KindChartViewer:
		return widget.ChartPayload{
			Data:      d.Prop("data"),
			ChartKind: d.StringProp("chartType"),
		}

	case KindEnvManager:
		return widget.EnvPayload{Content: d.StringProp("content")}

	case KindCodeGenerator:
		return widget.CodeGenPayload{
			Task:      d.StringProp("task"),
			Language:  d.StringProp("language"),
			Framework: d.StringProp("framework"),
		}

	case KindTerminal:
		return widget.TerminalPayload{Command: d.StringProp("command")}
	}
	return nil
}

// enrich backfills missing required fields from the chat transcript using
// per-kind predicates. It returns the (possibly replaced) payload and
// whether anything changed.
func (r *Resolver) enrich(payload widget.Payload, msg session.Message) (widget.Payload, bool) {
	switch p := payload.(type) {
	case widget.APITesterPayload:
		if p.URL != "" {
			return payload, false
		}
		// Current assistant message first, then the latest user message
		if url, ok := extract.FirstURL(msg.Content()); ok {
			p.URL = url
			return p, true
		}
		if url, ok := extract.FirstURL(r.history.LastUserText()); ok {
			p.URL = url
			return p, true
		}
		return payload, false

	case widget.CodeGenPayload:
		if p.Task != "" {
			return payload, false
		}
		if text := r.history.LastUserText(); text != "" {
			p.Task = text
			return p, true
		}
		return payload, false

	case widget.JSONViewerPayload:
		if !widget.IsEmptyData(p.Data) {
			return payload, false
		}
		if raw, ok := extract.JSONSubstring(r.history.LastUserText()); ok {
			p.Data = raw
			return p, true
		}
		return payload, false

	case widget.TablePayload:
		if !widget.IsEmptyData(p.Data) {
			return payload, false
		}
		if raw, ok := extract.JSONSubstring(r.history.LastUserText()); ok {
			p.Data = raw
			return p, true
		}
		return payload, false

	case widget.ChartPayload:
		if !widget.IsEmptyData(p.Data) {
			return payload, false
		}
		if raw, ok := extract.JSONSubstring(r.history.LastUserText()); ok {
			p.Data = raw
			return p, true
		}
		return payload, false

	case widget.LogPayload:
		if !widget.IsEmptyData(p.Raw) {
			return payload, false
		}
		if text, ok := r.scanUserMessages(extract.LooksLikeLog); ok {
			p.Raw = text
			return p, true
		}
		return payload, false

	case widget.EnvPayload:
		if p.Content != "" {
			return payload, false
		}
		if text, ok := r.scanUserMessages(extract.LooksLikeEnv); ok {
			p.Content = text
			return p, true
		}
		return payload, false

	case widget.TerminalPayload:
		if p.Command != "" {
			return payload, false
		}
		if text := r.history.LastUserText(); text != "" {
			p.Command = extract.CommandFromText(text)
			return p, true
		}
		return payload, false

	case widget.MarkdownPayload:
		if p.Content != "" {
			return payload, false
		}
		if text := r.history.LastUserText(); text != "" {
			p.Content = text
			return p, true
		}
		return payload, false
	}
	return payload, false
}

// scanUserMessages walks recent user messages newest first looking for one
// matching the predicate; if none match it falls back to the most recent
// user message.
func (r *Resolver) scanUserMessages(match func(string) bool) (string, bool) {
	recent := r.history.RecentUserMessages(enrichScanLimit)
	for _, msg := range recent {
		if match(msg.Content()) {
			return msg.Content(), true
		}
	}
	if len(recent) > 0 {
		return recent[0].Content(), true
	}
	return "", false
}

func withHeader(headers map[string]string, key, value string) map[string]string {
	if headers == nil {
		headers = make(map[string]string, 1)
	}
	headers[key] = value
	return headers
}
