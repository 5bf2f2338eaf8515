// Package audit records harness runs as JSON Lines: one event per line,
// appended to a journal file so successive runs accumulate.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// EventType classifies a journal event.
type EventType string

const (
	EventRunStart EventType = "run_start"
	EventCase     EventType = "case"
	EventRunEnd   EventType = "run_end"
	EventAbort    EventType = "abort"
)

// Verdicts recorded on case events.
const (
	VerdictOk = "ok"
	VerdictKo = "ko"
)

// Event represents a single journal entry.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Case      string    `json:"case,omitempty"`
	Verdict   string    `json:"verdict,omitempty"`
	Details   string    `json:"details,omitempty"`
}

// Logger appends events to a journal file and reads them back.
type Logger struct {
	path string
}

// NewLogger creates a journal logger writing to path.
func NewLogger(path string) *Logger {
	return &Logger{path: path}
}

// Path returns the journal file location.
func (l *Logger) Path() string {
	return l.path
}

// Log appends an event to the journal.
func (l *Logger) Log(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// LogEvent is a convenience method that creates and logs a run-level event.
func (l *Logger) LogEvent(eventType EventType, details string) error {
	return l.Log(Event{
		Timestamp: time.Now(),
		Type:      eventType,
		Details:   details,
	})
}

// LogCase records the verdict for one case.
func (l *Logger) LogCase(id string, passed bool, details string) error {
	verdict := VerdictOk
	if !passed {
		verdict = VerdictKo
	}
	return l.Log(Event{
		Timestamp: time.Now(),
		Type:      EventCase,
		Case:      id,
		Verdict:   verdict,
		Details:   details,
	})
}

// Events reads every journal event in the order written.
func (l *Logger) Events() ([]Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // Skip malformed lines
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading journal: %w", err)
	}

	return events, nil
}

// LastRun returns the events of the most recent run: everything from the
// last run_start onwards.
func (l *Logger) LastRun() ([]Event, error) {
	events, err := l.Events()
	if err != nil {
		return nil, err
	}
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Type == EventRunStart {
			return events[i:], nil
		}
	}
	return events, nil
}

// Remove deletes the journal.
func (l *Logger) Remove() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
