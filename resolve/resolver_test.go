package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "workbench/core/types"
	"workbench/session"
	"workbench/widget"
)

func newTestResolver() (*Resolver, *session.Workspace, *session.History) {
	ws := session.NewWorkspace()
	history := session.NewHistory(0)
	return NewResolver(ws, history, nil), ws, history
}

func directiveMessage(id, component string, props map[string]any) session.Message {
	return session.Message{
		ID:        id,
		Role:      session.RoleAssistant,
		Segments:  []string{"Here you go."},
		Directive: &Directive{Component: component, Props: props},
	}
}

func TestProcessMessage_OpensWidget(t *testing.T) {
	r, ws, _ := newTestResolver()

	inst, created := r.ProcessMessage(directiveMessage("m1", "terminal", map[string]any{
		"command": "ls -la",
	}))

	require.True(t, created)
	assert.Equal(t, KindTerminal, inst.Kind)
	assert.Equal(t, "ls -la", inst.Payload.(widget.TerminalPayload).Command)
	assert.Equal(t, 1, ws.OpenCount())
}

func TestProcessMessage_Idempotent(t *testing.T) {
	r, ws, _ := newTestResolver()
	msg := directiveMessage("m1", "json-viewer", map[string]any{"data": `{"a":1}`})

	_, first := r.ProcessMessage(msg)
	_, second := r.ProcessMessage(msg)

	assert.True(t, first)
	assert.False(t, second)
	assert.Equal(t, 1, ws.OpenCount())
}

func TestProcessMessage_UnknownComponentIgnored(t *testing.T) {
	r, ws, _ := newTestResolver()

	inst, created := r.ProcessMessage(directiveMessage("m1", "kanban-board", nil))

	assert.False(t, created)
	assert.Nil(t, inst)
	assert.Equal(t, 0, ws.OpenCount())
}

func TestProcessMessage_UnmappableStillConsumed(t *testing.T) {
	r, ws, _ := newTestResolver()
	msg := directiveMessage("m1", "kanban-board", nil)

	r.ProcessMessage(msg)

	// Even an unmappable directive consumes its message id; a later replay
	// with a now-known name must not reopen evaluation.
	msg.Directive.Component = "terminal"
	_, created := r.ProcessMessage(msg)
	assert.False(t, created)
	assert.Equal(t, 0, ws.OpenCount())
}

func TestProcessMessage_NoDirective(t *testing.T) {
	r, _, _ := newTestResolver()

	_, created := r.ProcessMessage(session.Message{ID: "m1", Role: session.RoleAssistant, Segments: []string{"hi"}})

	assert.False(t, created)
}

func TestProcessMessage_ComponentNameAliases(t *testing.T) {
	r, _, _ := newTestResolver()

	for i, name := range []string{"ApiTester", "api_tester", "API-Tester", "http-request"} {
		inst, created := r.ProcessMessage(directiveMessage(
			string(rune('a'+i)), name, map[string]any{"url": "https://x.dev"}))
		require.True(t, created, name)
		assert.Equal(t, KindAPITester, inst.Kind, name)
	}
}

func TestMapPayload_APITesterHeaderFolding(t *testing.T) {
	payload := mapPayload(KindAPITester, Directive{
		Component: "api-tester",
		Props: map[string]any{
			"url":           "https://api.example.com",
			"method":        "POST",
			"contentType":   "application/json",
			"authorization": "Bearer tok",
		},
	}).(widget.APITesterPayload)

	assert.Equal(t, "POST", payload.Method)
	assert.Equal(t, "application/json", payload.Headers["Content-Type"])
	assert.Equal(t, "Bearer tok", payload.Headers["Authorization"])
}

func TestMapPayload_APITesterEmptyHeaderPropsNotFolded(t *testing.T) {
	payload := mapPayload(KindAPITester, Directive{
		Component: "api-tester",
		Props:     map[string]any{"url": "https://api.example.com", "contentType": ""},
	}).(widget.APITesterPayload)

	assert.Equal(t, "GET", payload.Method)
	assert.Nil(t, payload.Headers)
}

func TestEnrich_APITesterURLFromUserMessage(t *testing.T) {
	r, ws, history := newTestResolver()
	history.Append(session.RoleUser, "please test https://api.example.com/v1/users?x=1.")

	inst, created := r.ProcessMessage(directiveMessage("m1", "api-tester", nil))

	require.True(t, created)
	got, _ := ws.Get(inst.ID)
	assert.Equal(t, "https://api.example.com/v1/users?x=1", got.Payload.(widget.APITesterPayload).URL)
}

func TestEnrich_APITesterPrefersAssistantMessageURL(t *testing.T) {
	r, ws, history := newTestResolver()
	history.Append(session.RoleUser, "try https://user.example.com")

	msg := directiveMessage("m1", "api-tester", nil)
	msg.Segments = []string{"Testing https://assistant.example.com for you"}

	inst, _ := r.ProcessMessage(msg)
	got, _ := ws.Get(inst.ID)
	assert.Equal(t, "https://assistant.example.com", got.Payload.(widget.APITesterPayload).URL)
}

func TestEnrich_TableDataFromProse(t *testing.T) {
	r, ws, history := newTestResolver()
	history.Append(session.RoleUser, `here is the data [{"name":"a","n":1}] thanks`)

	inst, _ := r.ProcessMessage(directiveMessage("m1", "table", map[string]any{"data": "[]"}))

	got, _ := ws.Get(inst.ID)
	assert.Equal(t, `[{"name":"a","n":1}]`, got.Payload.(widget.TablePayload).Data)
}

func TestEnrich_DirectivePayloadWinsOverProse(t *testing.T) {
	r, ws, history := newTestResolver()
	history.Append(session.RoleUser, `ignore this {"x":9}`)

	inst, _ := r.ProcessMessage(directiveMessage("m1", "json", map[string]any{"data": `{"keep":true}`}))

	got, _ := ws.Get(inst.ID)
	assert.Equal(t, `{"keep":true}`, got.Payload.(widget.JSONViewerPayload).Data)
}

func TestEnrich_LogViewerPrefersLogLikeMessage(t *testing.T) {
	r, ws, history := newTestResolver()
	history.Append(session.RoleUser, "[ERROR] db timeout\n[INFO] retrying")
	history.Append(session.RoleUser, "can you show those logs")

	inst, _ := r.ProcessMessage(directiveMessage("m1", "log-viewer", nil))

	got, _ := ws.Get(inst.ID)
	assert.Equal(t, "[ERROR] db timeout\n[INFO] retrying", got.Payload.(widget.LogPayload).Raw)
}

func TestEnrich_LogViewerFallsBackToLatestUserMessage(t *testing.T) {
	r, ws, history := newTestResolver()
	history.Append(session.RoleUser, "something went wrong earlier")

	inst, _ := r.ProcessMessage(directiveMessage("m1", "log-viewer", nil))

	got, _ := ws.Get(inst.ID)
	assert.Equal(t, "something went wrong earlier", got.Payload.(widget.LogPayload).Raw)
}

func TestEnrich_EnvManagerScan(t *testing.T) {
	r, ws, history := newTestResolver()
	history.Append(session.RoleUser, "PORT=3000\nAPI_KEY=sk-1")
	history.Append(session.RoleUser, "open the env manager")

	inst, _ := r.ProcessMessage(directiveMessage("m1", "env-manager", nil))

	got, _ := ws.Get(inst.ID)
	assert.Equal(t, "PORT=3000\nAPI_KEY=sk-1", got.Payload.(widget.EnvPayload).Content)
}

func TestEnrich_TerminalCommandFromUtterance(t *testing.T) {
	r, ws, history := newTestResolver()
	history.Append(session.RoleUser, "please run npm test")

	inst, _ := r.ProcessMessage(directiveMessage("m1", "terminal", nil))

	got, _ := ws.Get(inst.ID)
	assert.Equal(t, "npm test", got.Payload.(widget.TerminalPayload).Command)
}

func TestEnrich_CodeGenTaskVerbatim(t *testing.T) {
	r, ws, history := newTestResolver()
	history.Append(session.RoleUser, "write a debounce helper in typescript")

	inst, _ := r.ProcessMessage(directiveMessage("m1", "code-generator", nil))

	got, _ := ws.Get(inst.ID)
	assert.Equal(t, "write a debounce helper in typescript", got.Payload.(widget.CodeGenPayload).Task)
}

func TestEnrich_MarkdownContentVerbatim(t *testing.T) {
	r, ws, history := newTestResolver()
	history.Append(session.RoleUser, "# Notes\nremember the thing")

	inst, _ := r.ProcessMessage(directiveMessage("m1", "markdown", nil))

	got, _ := ws.Get(inst.ID)
	assert.Equal(t, "# Notes\nremember the thing", got.Payload.(widget.MarkdownPayload).Content)
}

func TestEnrich_MissIsNotAnError(t *testing.T) {
	r, ws, _ := newTestResolver()

	// Empty transcript: nothing to enrich with, widget opens anyway
	inst, created := r.ProcessMessage(directiveMessage("m1", "api-tester", nil))

	require.True(t, created)
	got, _ := ws.Get(inst.ID)
	assert.Empty(t, got.Payload.(widget.APITesterPayload).URL)
}
