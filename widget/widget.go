package widget

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	. "workbench/core/types"
)

// Payload is the closed union of per-kind widget payloads. The resolver and
// the normalizers switch exhaustively over the concrete types, so adding a
// widget kind is a compile-time-checked change.
type Payload interface {
	WidgetKind() Kind
}

// APITesterPayload configures the HTTP request builder widget
type APITesterPayload struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    string
}

// JSONViewerPayload holds raw JSON text for the tree viewer
type JSONViewerPayload struct {
	Data string
}

// MarkdownPayload holds raw markdown for the document viewer
type MarkdownPayload struct {
	Content string
}

// LogPayload holds raw log input: a string, []string, or a mixed array
type LogPayload struct {
	Raw any
}

// TablePayload holds raw tabular input: parsed JSON or a JSON string
type TablePayload struct {
	Data any
}

// ChartPayload holds raw chart input plus an optional explicit chart kind
// that overrides the suggestion
type ChartPayload struct {
	Data      any
	ChartKind string
}

// EnvPayload holds raw dotenv-style content for the env manager
type EnvPayload struct {
	Content string
}

// CodeGenPayload describes a code-generation task
type CodeGenPayload struct {
	Task      string
	Language  string
	Framework string
}

// TerminalPayload holds the command the simulator runs
type TerminalPayload struct {
	Command string
}

func (APITesterPayload) WidgetKind() Kind { return KindAPITester }

func (JSONViewerPayload) WidgetKind() Kind { return KindJSONViewer }

func (MarkdownPayload) WidgetKind() Kind { return KindMarkdownViewer }

func (LogPayload) WidgetKind() Kind { return KindLogViewer }

func (TablePayload) WidgetKind() Kind { return KindTableViewer }

func (ChartPayload) WidgetKind() Kind { return KindChartViewer }

func (EnvPayload) WidgetKind() Kind { return KindEnvManager }

func (CodeGenPayload) WidgetKind() Kind { return KindCodeGenerator }

func (TerminalPayload) WidgetKind() Kind { return KindTerminal }

// Instance is one open widget in the workspace. Instances are created by the
// resolver (or direct user action) and destroyed by explicit close; the
// payload is replaced only during pre-render enrichment.
type Instance struct {
	ID        string
	Kind      Kind
	Title     string
	Payload   Payload
	CreatedAt time.Time
}

// NewInstance builds a widget instance with a fresh opaque id.
// openCount is the number of widgets currently open; the title number is
// openCount+1, a display convention, not an identity: numbers can repeat
// after closes.
func NewInstance(kind Kind, payload Payload, openCount int) *Instance {
	return &Instance{
		ID:        uuid.NewString(),
		Kind:      kind,
		Title:     titleFor(kind, openCount+1),
		Payload:   payload,
		CreatedAt: time.Now(),
	}
}

func titleFor(kind Kind, n int) string {
	return fmt.Sprintf("%s #%d", kind.DisplayName(), n)
}
