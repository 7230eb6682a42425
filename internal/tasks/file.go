package tasks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
)

// ErrMalformed reports a task file that is not an array of
// [description, done] pairs.
var ErrMalformed = errors.New("malformed task file")

// Fallbacks for a malformed task file on Open.
const (
	MalformedEmpty = "empty"
	MalformedFail  = "fail"
)

// Entry is one persisted task.
type Entry struct {
	Description string
	Done        bool
}

// MarshalJSON encodes the entry as a [description, done] pair.
func (e Entry) MarshalJSON() ([]byte, error) {
	desc, err := marshalString(e.Description)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	b.WriteByte('[')
	b.Write(desc)
	b.WriteByte(',')
	b.WriteString(strconv.FormatBool(e.Done))
	b.WriteByte(']')
	return b.Bytes(), nil
}

// UnmarshalJSON decodes a [description, done] pair.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("task entry: %w", err)
	}
	if pair == nil {
		return fmt.Errorf("task entry: expected array, got null")
	}
	if len(pair) != 2 {
		return fmt.Errorf("task entry: expected 2 elements, got %d", len(pair))
	}
	var desc string
	if err := json.Unmarshal(pair[0], &desc); err != nil {
		return fmt.Errorf("task entry description: %w", err)
	}
	var done bool
	if err := json.Unmarshal(pair[1], &done); err != nil {
		return fmt.Errorf("task entry done flag: %w", err)
	}
	e.Description = desc
	e.Done = done
	return nil
}

// Encode renders entries in the persisted file format. The output is a
// compact JSON array with no trailing newline and no HTML escaping.
func Encode(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries); err != nil {
		return nil, fmt.Errorf("marshal task file: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses the persisted file format.
func Decode(data []byte) ([]Entry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformed)
	}
	var entries []Entry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return entries, nil
}

// ReadFile reads and decodes the task file at path.
// A missing file yields no entries and no error.
func ReadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}
	return Decode(data)
}

// OpenOptions controls hydration.
type OpenOptions struct {
	// SchemaPath overrides the embedded JSON Schema.
	SchemaPath string
	// OnMalformed is MalformedEmpty (default) or MalformedFail.
	OnMalformed string
	// Warn receives hydration problems that did not fail Open.
	Warn func(msg string, keyvals ...any)
}

func (o OpenOptions) warn(msg string, keyvals ...any) {
	if o.Warn != nil {
		o.Warn(msg, keyvals...)
	}
}

// Open returns a store backed by path, hydrated from the file if it exists.
func Open(path string, opts OpenOptions) (*Store, error) {
	s := New(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}

	entries, err := hydrate(data, opts)
	if err != nil {
		if opts.OnMalformed == MalformedFail {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		opts.warn("task file is malformed, starting with an empty store", "path", path, "err", err)
		return s, nil
	}

	s.Load(entries)
	return s, nil
}

func hydrate(data []byte, opts OpenOptions) ([]Entry, error) {
	result := Validate(data, ValidationOptions{SchemaPath: opts.SchemaPath})
	for _, w := range result.Warnings {
		opts.warn(w)
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, errors.Join(result.Errors...))
	}
	return Decode(data)
}

func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
