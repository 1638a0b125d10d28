package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeClient struct {
	reply     string
	err       error
	available bool
}

func (f *fakeClient) Generate(_ context.Context, _ Request) (*Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &Response{Content: f.reply, Model: "fake"}, nil
}

func (f *fakeClient) GetModel() string                   { return "fake" }
func (f *fakeClient) GetProvider() string                { return "fake" }
func (f *fakeClient) IsAvailable(_ context.Context) bool { return f.available }

func managerWith(client Client) *Manager {
	m := NewManager()
	m.RegisterClient(PurposeChat, client)
	return m
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"fenced with language", "```go\nfunc main() {}\n```", "func main() {}"},
		{"fenced without language", "```\nx = 1\n```", "x = 1"},
		{"no fence", "plain code", "plain code"},
		{"missing closing fence", "```js\nconsole.log(1)", "console.log(1)"},
		{"surrounding whitespace", "  ```py\nprint(1)\n```  ", "print(1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.input))
		})
	}
}

func TestGenerateCode_Success(t *testing.T) {
	m := managerWith(&fakeClient{reply: "```go\nfunc Add(a, b int) int { return a + b }\n```", available: true})

	result := m.GenerateCode(context.Background(), CodegenRequest{Task: "add two ints", Language: "go"})

	assert.Empty(t, result.Err)
	assert.Equal(t, "func Add(a, b int) int { return a + b }", result.Code)
	assert.Equal(t, "go", result.Language)
}

func TestGenerateCode_TransportErrorSuppressesCode(t *testing.T) {
	m := managerWith(&fakeClient{err: errors.New("connection refused"), available: true})

	result := m.GenerateCode(context.Background(), CodegenRequest{Task: "anything"})

	assert.NotEmpty(t, result.Err)
	assert.Empty(t, result.Code)
}

func TestGenerateCode_EmptyTask(t *testing.T) {
	m := managerWith(&fakeClient{reply: "x", available: true})

	result := m.GenerateCode(context.Background(), CodegenRequest{Task: "   "})

	assert.Equal(t, "no task provided", result.Err)
	assert.Empty(t, result.Code)
}

func TestGenerateCode_BlankReplyIsFailure(t *testing.T) {
	m := managerWith(&fakeClient{reply: "```\n\n```", available: true})

	result := m.GenerateCode(context.Background(), CodegenRequest{Task: "do a thing"})

	assert.Equal(t, "model returned no code", result.Err)
	assert.Empty(t, result.Code)
}

func TestManager_FallsBackToChatClient(t *testing.T) {
	chat := &fakeClient{reply: "from chat", available: true}
	m := managerWith(chat)

	resp, err := m.Generate(context.Background(), PurposeCodegen, Request{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})

	assert.NoError(t, err)
	assert.Equal(t, "from chat", resp.Content)
}

func TestManager_NoClients(t *testing.T) {
	m := NewManager()

	_, err := m.Generate(context.Background(), PurposeIntent, Request{})

	assert.Error(t, err)
}
