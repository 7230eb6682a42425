package tasks

import (
	"fmt"
	"os"
	"strings"
)

// Store maps task descriptions to their completion state and mirrors every
// mutation to a JSON file.
type Store struct {
	path  string
	order []string
	done  map[string]bool
}

// New returns an empty store backed by the file at path.
// Nothing is read or written until the first mutation.
func New(path string) *Store {
	return &Store{
		path: path,
		done: make(map[string]bool),
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of tasks in the store.
func (s *Store) Len() int {
	return len(s.order)
}

// Descriptions are stored as UTF-8. Invalid bytes become U+FFFD, the same
// replacement the file encoding applies, so memory and file agree.
func normalize(description string) string {
	return strings.ToValidUTF8(description, "\uFFFD")
}

// Create adds description as a pending task and persists the store.
// An existing task with the same description is reset to pending and keeps
// its position.
func (s *Store) Create(description string) error {
	s.set(description, false)
	return s.persist()
}

// Complete marks description as done and persists the store.
// Unknown descriptions are ignored and nothing is written.
func (s *Store) Complete(description string) error {
	description = normalize(description)
	if _, ok := s.done[description]; !ok {
		return nil
	}
	s.done[description] = true
	return s.persist()
}

// Remove deletes description and persists the store.
// The file is rewritten even when description was not present.
func (s *Store) Remove(description string) error {
	description = normalize(description)
	if _, ok := s.done[description]; ok {
		delete(s.done, description)
		for i, d := range s.order {
			if d == description {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	return s.persist()
}

// ListPending returns the pending descriptions in insertion order.
func (s *Store) ListPending() []string {
	return s.filter(false)
}

// ListCompleted returns the completed descriptions in insertion order.
func (s *Store) ListCompleted() []string {
	return s.filter(true)
}

// Entries returns a copy of the store contents in insertion order.
func (s *Store) Entries() []Entry {
	entries := make([]Entry, 0, len(s.order))
	for _, d := range s.order {
		entries = append(entries, Entry{Description: d, Done: s.done[d]})
	}
	return entries
}

// Load replaces the store contents with entries without writing the file.
// A description that appears more than once keeps its first position and
// takes the flag of its last occurrence.
func (s *Store) Load(entries []Entry) {
	s.order = s.order[:0]
	s.done = make(map[string]bool, len(entries))
	for _, e := range entries {
		s.set(e.Description, e.Done)
	}
}

func (s *Store) set(description string, done bool) {
	description = normalize(description)
	if _, ok := s.done[description]; !ok {
		s.order = append(s.order, description)
	}
	s.done[description] = done
}

func (s *Store) filter(done bool) []string {
	out := make([]string, 0, len(s.order))
	for _, d := range s.order {
		if s.done[d] == done {
			out = append(out, d)
		}
	}
	return out
}

// persist overwrites the backing file with the full store contents.
func (s *Store) persist() error {
	data, err := Encode(s.Entries())
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	return nil
}
