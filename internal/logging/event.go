package logging

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// Event types.
const (
	EventCommand = "command" // a command ran and replied
	EventUnknown = "unknown" // addressed to the bot but no such command
	EventUsage   = "usage"   // a command was missing its argument
	EventError   = "error"   // a command ran but could not persist
	EventStart   = "start"   // a session started
)

// Event is one bot interaction.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	// Source names the front end that received the message: chat, say, tui.
	Source string `json:"source,omitempty"`

	Message string `json:"message,omitempty"`
	Command string `json:"command,omitempty"`
	Task    string `json:"task,omitempty"`
	Reply   string `json:"reply,omitempty"`
	Error   string `json:"error,omitempty"`
}

// EventWriter writes events.
type EventWriter interface {
	Write(event Event) error
}

// JSONLWriter writes one JSON object per line to an io.Writer.
type JSONLWriter struct {
	w io.Writer
}

// NewJSONLWriter creates a JSONL event writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{w: w}
}

// Write writes event as a single line.
func (j *JSONLWriter) Write(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal log event: %w", err)
	}
	data = append(data, '\n')
	_, err = j.w.Write(data)
	return err
}

// MultiWriter writes to several event writers.
type MultiWriter struct {
	writers []EventWriter
}

// NewMultiWriter creates a writer that fans out to writers. Nil writers are
// skipped.
func NewMultiWriter(writers ...EventWriter) *MultiWriter {
	m := &MultiWriter{}
	for _, w := range writers {
		if w != nil {
			m.writers = append(m.writers, w)
		}
	}
	return m
}

// Write writes the event to every writer and joins their errors.
func (m *MultiWriter) Write(event Event) error {
	var errs []error
	for _, w := range m.writers {
		if err := w.Write(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NullWriter drops every event.
type NullWriter struct{}

// Write does nothing.
func (NullWriter) Write(Event) error {
	return nil
}

type lockedWriter struct {
	mu     sync.Mutex
	writer EventWriter
}

func (l *lockedWriter) Write(event Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writer.Write(event)
}

// Synchronized returns a writer safe for concurrent use. A nil writer
// becomes a NullWriter.
func Synchronized(writer EventWriter) EventWriter {
	if writer == nil {
		return NullWriter{}
	}
	if _, ok := writer.(*lockedWriter); ok {
		return writer
	}
	return &lockedWriter{writer: writer}
}
