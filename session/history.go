package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	. "workbench/core/types"
)

// Role identifies the author of a chat message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is one transcript entry. Messages are immutable once appended;
// the content is an ordered sequence of text segments (a plain string is a
// single segment). An assistant message may carry at most one component
// directive from the generative-UI collaborator.
type Message struct {
	ID        string     `json:"id"`
	Role      Role       `json:"role"`
	Segments  []string   `json:"segments"`
	Directive *Directive `json:"directive,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// Content joins the message segments into one text body
func (m Message) Content() string {
	return strings.Join(m.Segments, "\n")
}

// History is the conversation transcript for one workspace session.
// Appended in arrival order; older turns are trimmed past maxTurns.
type History struct {
	messages []Message
	maxTurns int // user+assistant exchanges to keep, 0 = unlimited
	mu       sync.RWMutex
}

// NewHistory creates a transcript keeping at most maxTurns exchanges
func NewHistory(maxTurns int) *History {
	return &History{
		messages: make([]Message, 0),
		maxTurns: maxTurns,
	}
}

// Append adds a plain text message and returns the stored copy
func (h *History) Append(role Role, content string) Message {
	return h.AppendMessage(Message{Role: role, Segments: []string{content}})
}

// AppendMessage stores a message, assigning id and timestamp when unset
func (h *History) AppendMessage(msg Message) Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	h.messages = append(h.messages, msg)

	if h.maxTurns > 0 {
		maxMessages := h.maxTurns * 2
		if len(h.messages) > maxMessages {
			h.messages = h.messages[len(h.messages)-maxMessages:]
		}
	}

	return msg
}

// Messages returns a snapshot of the transcript in arrival order
func (h *History) Messages() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Len returns the number of stored messages
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.messages)
}

// Clear removes all messages
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
}

// LastByRole returns the most recent message with the given role
func (h *History) LastByRole(role Role) (Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for i := len(h.messages) - 1; i >= 0; i-- {
		if h.messages[i].Role == role {
			return h.messages[i], true
		}
	}
	return Message{}, false
}

// LastUserText returns the content of the most recent user message, or ""
func (h *History) LastUserText() string {
	msg, ok := h.LastByRole(RoleUser)
	if !ok {
		return ""
	}
	return msg.Content()
}

// RecentUserMessages returns up to limit user messages, newest first.
// This is the scan order the enrichment predicates run over:
// most-recent-match-wins per predicate.
func (h *History) RecentUserMessages(limit int) []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var out []Message
	for i := len(h.messages) - 1; i >= 0 && len(out) < limit; i-- {
		if h.messages[i].Role == RoleUser {
			out = append(out, h.messages[i])
		}
	}
	return out
}

// Summary describes the transcript in one line
func (h *History) Summary() string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.messages) == 0 {
		return "No conversation history"
	}
	return fmt.Sprintf("%d messages, started %s",
		len(h.messages), h.messages[0].Timestamp.Format("15:04:05"))
}
