package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"workbench/config"
	"workbench/widget"
)

// Event is a single widget-lifecycle entry in the audit log
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"` // created, closed
	WidgetID  string    `json:"widget_id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
}

// LogEvent appends one event to the JSONL audit log
func LogEvent(event Event) error {
	if !config.IsAuditEnabled() {
		return nil // Audit logging is disabled
	}

	logPath := config.GetAuditLogPath()

	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create audit log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer file.Close()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	if _, err := file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}

	return nil
}

// Observer returns a workspace observer that records widget lifecycle
// transitions. Write failures are swallowed; auditing must never interfere
// with the session.
func Observer() func(action string, inst *widget.Instance) {
	return func(action string, inst *widget.Instance) {
		_ = LogEvent(Event{
			Timestamp: time.Now(),
			Action:    action,
			WidgetID:  inst.ID,
			Kind:      string(inst.Kind),
			Title:     inst.Title,
		})
	}
}

// GetEvents reads all events from the audit log
func GetEvents() ([]Event, error) {
	logPath := config.GetAuditLogPath()

	data, err := os.ReadFile(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []Event{}, nil // No events yet
		}
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}

	var events []Event
	for _, line := range splitLines(string(data)) {
		if line == "" {
			continue
		}

		var event Event
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			// Skip malformed lines
			continue
		}

		events = append(events, event)
	}

	return events, nil
}

// GetRecentEvents returns the n most recent events
func GetRecentEvents(n int) ([]Event, error) {
	events, err := GetEvents()
	if err != nil {
		return nil, err
	}

	if len(events) <= n {
		return events, nil
	}

	return events[len(events)-n:], nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0

	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}

	if start < len(s) {
		lines = append(lines, s[start:])
	}

	return lines
}
