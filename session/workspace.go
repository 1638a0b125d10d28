package session

import (
	"fmt"
	"sync"

	"workbench/widget"
)

// Workspace is the in-memory registry of open widget instances for one
// session: insertion-ordered, with at most one active widget. State lives
// only for the lifetime of the process; nothing is persisted.
//
// Invariant: activeID, when non-empty, always references a member of open.
// All transitions run on the single event-processing path; the mutex guards
// against accidental cross-goroutine use, not a concurrent design.
type Workspace struct {
	open     []*widget.Instance
	activeID string
	mu       sync.RWMutex

	// onEvent, when set, observes widget lifecycle transitions
	onEvent func(event string, inst *widget.Instance)
}

// NewWorkspace creates an empty workspace
func NewWorkspace() *Workspace {
	return &Workspace{}
}

// SetObserver registers a lifecycle callback (e.g. the audit log)
func (w *Workspace) SetObserver(fn func(event string, inst *widget.Instance)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onEvent = fn
}

// CreateWidget appends a new instance and makes it active. The title number
// comes from the current open count, not a monotonic counter, so numbers
// can repeat after closes; that is intentional display behavior.
func (w *Workspace) CreateWidget(payload widget.Payload) *widget.Instance {
	w.mu.Lock()
	inst := widget.NewInstance(payload.WidgetKind(), payload, len(w.open))
	w.open = append(w.open, inst)
	w.activeID = inst.ID
	observer := w.onEvent
	w.mu.Unlock()

	if observer != nil {
		observer("created", inst)
	}
	return inst
}

// CloseWidget removes the instance with the given id. When the active
// widget closes, the last remaining instance becomes active, or none.
func (w *Workspace) CloseWidget(id string) bool {
	w.mu.Lock()
	idx := -1
	for i, inst := range w.open {
		if inst.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		w.mu.Unlock()
		return false
	}

	closed := w.open[idx]
	w.open = append(w.open[:idx], w.open[idx+1:]...)

	if w.activeID == id {
		if len(w.open) > 0 {
			w.activeID = w.open[len(w.open)-1].ID
		} else {
			w.activeID = ""
		}
	}
	observer := w.onEvent
	w.mu.Unlock()

	if observer != nil {
		observer("closed", closed)
	}
	return true
}

// SetActive makes the given widget active. Passing an id that is not open
// is a caller bug; the workspace refuses it to keep the invariant intact.
func (w *Workspace) SetActive(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if id == "" {
		w.activeID = ""
		return nil
	}
	for _, inst := range w.open {
		if inst.ID == id {
			w.activeID = id
			return nil
		}
	}
	return fmt.Errorf("widget %q is not open", id)
}

// ReplacePayload swaps the payload of an open widget. Only the resolver's
// pre-render enrichment uses this; once rendered, a widget owns its own
// derived state.
func (w *Workspace) ReplacePayload(id string, payload widget.Payload) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, inst := range w.open {
		if inst.ID == id {
			inst.Payload = payload
			return true
		}
	}
	return false
}

// Open returns the open instances in insertion order
func (w *Workspace) Open() []*widget.Instance {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]*widget.Instance, len(w.open))
	copy(out, w.open)
	return out
}

// OpenCount returns how many widgets are open
func (w *Workspace) OpenCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.open)
}

// Active returns the active instance, or nil when none is active
func (w *Workspace) Active() *widget.Instance {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, inst := range w.open {
		if inst.ID == w.activeID {
			return inst
		}
	}
	return nil
}

// ActiveID returns the active widget id, or "" when none
func (w *Workspace) ActiveID() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.activeID
}

// Get returns the open instance with the given id
func (w *Workspace) Get(id string) (*widget.Instance, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, inst := range w.open {
		if inst.ID == id {
			return inst, true
		}
	}
	return nil, false
}
