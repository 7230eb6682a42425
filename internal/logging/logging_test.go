// Package logging provides tests for JSONL logging and tail output.
package logging

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewRunLogger(t *testing.T) {
	t.Run("successful creation with valid paths", func(t *testing.T) {
		logger, err := NewRunLogger(t.TempDir(), t.TempDir())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer logger.Close()

		if logger.Dir == "" || logger.RunID == "" || logger.LogPath == "" {
			t.Errorf("expected Dir, RunID and LogPath to be set, got %+v", logger)
		}
		if _, err := os.Stat(logger.LogPath); err != nil {
			t.Errorf("log file not created: %v", err)
		}
		if filepath.Dir(logger.LogPath) != logger.Dir {
			t.Errorf("LogPath %s not inside Dir %s", logger.LogPath, logger.Dir)
		}
	})

	t.Run("empty base dir returns error", func(t *testing.T) {
		_, err := NewRunLogger("", t.TempDir())
		if err == nil {
			t.Fatal("expected error for empty base dir, got nil")
		}
		if !strings.Contains(err.Error(), "empty") {
			t.Errorf("expected empty dir error, got %v", err)
		}
	})

	t.Run("creates log directory if missing", func(t *testing.T) {
		newLogDir := filepath.Join(t.TempDir(), "new-logs", "nested")

		logger, err := NewRunLogger(newLogDir, t.TempDir())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer logger.Close()

		if _, err := os.Stat(newLogDir); err != nil {
			t.Errorf("log directory not created: %v", err)
		}
	})
}

func TestRunLoggerWrite(t *testing.T) {
	logger, err := NewRunLogger(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	events := []Event{
		{Type: EventCommand, Source: "chat", Message: "taskbot todo milk", Command: "todo", Task: "milk", Reply: "added: milk"},
		{Type: EventError, Command: "done", Task: "milk", Error: "write task file: disk full"},
	}
	for _, ev := range events {
		if err := logger.Write(ev); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	file, err := os.Open(logger.LogPath)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	var got []Event
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("line %q is not JSON: %v", scanner.Text(), err)
		}
		got = append(got, ev)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Reply != "added: milk" || got[1].Error == "" {
		t.Errorf("events not preserved: %+v", got)
	}
	if got[0].Timestamp.IsZero() {
		t.Error("expected Write to stamp the event")
	}
}

func TestRunLoggerClose(t *testing.T) {
	logger, err := NewRunLogger(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := logger.Write(Event{Type: EventCommand}); err != nil {
		t.Errorf("Write after Close: %v", err)
	}

	var nilLogger *RunLogger
	if err := nilLogger.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"my-project", "my-project"},
		{"My Project", "My_Project"},
		{"a  b//c", "a_b_c"},
		{"__x__", "x"},
		{"", "project"},
		{"   ", "project"},
		{"!!!", "project"},
		{"..", "project"},
		{"v1.2_rc", "v1.2_rc"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := slugify(tt.input); got != tt.want {
				t.Errorf("slugify(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHashPath(t *testing.T) {
	a := hashPath("/home/user/project")
	b := hashPath("/home/user/project")
	c := hashPath("/home/other/project")

	if len(a) != 8 {
		t.Errorf("hash length: got %d, want 8", len(a))
	}
	if a != b {
		t.Errorf("hash not stable: %s vs %s", a, b)
	}
	if a == c {
		t.Errorf("different paths share hash %s", a)
	}
}

func TestProjectSlug(t *testing.T) {
	slug := projectSlug("/work/my tasks")
	if !strings.HasPrefix(slug, "my_tasks-") {
		t.Errorf("projectSlug: got %q, want my_tasks-<hash>", slug)
	}
}

func TestResolveBaseDir(t *testing.T) {
	work := filepath.Join(string(filepath.Separator), "work")
	abs := filepath.Join(string(filepath.Separator), "var", "log")

	if got := resolveBaseDir(abs, work); got != abs {
		t.Errorf("absolute: got %q, want %q", got, abs)
	}
	if got, want := resolveBaseDir("logs/../runs", work), filepath.Join(work, "runs"); got != want {
		t.Errorf("relative: got %q, want %q", got, want)
	}
}

func TestFindLogDir(t *testing.T) {
	base := t.TempDir()
	work := t.TempDir()

	dir, err := FindLogDir(base, work)
	if err != nil {
		t.Fatalf("FindLogDir: %v", err)
	}
	if filepath.Dir(dir) != base {
		t.Errorf("FindLogDir: %s not directly under %s", dir, base)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("FindLogDir must not create the directory")
	}

	logger, err := NewRunLogger(base, work)
	if err != nil {
		t.Fatal(err)
	}
	defer logger.Close()
	if logger.Dir != dir {
		t.Errorf("NewRunLogger dir %s differs from FindLogDir %s", logger.Dir, dir)
	}

	if _, err := FindLogDir("", work); err == nil {
		t.Error("expected error for empty base dir")
	}
}

func TestFindLatestLog(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		got, err := FindLatestLog(filepath.Join(t.TempDir(), "none"))
		if err != nil {
			t.Fatalf("FindLatestLog: %v", err)
		}
		if got != "" {
			t.Errorf("expected no log, got %s", got)
		}
	})

	t.Run("newest by mod time", func(t *testing.T) {
		dir := t.TempDir()
		old := filepath.Join(dir, "20240101-000000-1.jsonl")
		newer := filepath.Join(dir, "20240102-000000-2.jsonl")
		for _, p := range []string{old, newer, filepath.Join(dir, "notes.txt")} {
			if err := os.WriteFile(p, []byte("{}\n"), 0644); err != nil {
				t.Fatal(err)
			}
		}
		past := time.Now().Add(-time.Hour)
		if err := os.Chtimes(old, past, past); err != nil {
			t.Fatal(err)
		}

		got, err := FindLatestLog(dir)
		if err != nil {
			t.Fatalf("FindLatestLog: %v", err)
		}
		if got != newer {
			t.Errorf("FindLatestLog: got %s, want %s", got, newer)
		}

		runs, err := FindLogRuns(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(runs) != 2 || runs[0].RunID != "20240102-000000-2" {
			t.Errorf("FindLogRuns: got %+v", runs)
		}
	})
}

func TestTailLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.jsonl")
	if err := os.WriteFile(path, []byte("one\ntwo\nthree\nfour\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		n    int
		want string
	}{
		{0, "one\ntwo\nthree\nfour\n"},
		{1, "four\n"},
		{2, "three\nfour\n"},
		{4, "one\ntwo\nthree\nfour\n"},
		{10, "one\ntwo\nthree\nfour\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := TailLog(context.Background(), &buf, path, tt.n, false); err != nil {
			t.Fatalf("TailLog(n=%d): %v", tt.n, err)
		}
		if buf.String() != tt.want {
			t.Errorf("TailLog(n=%d): got %q, want %q", tt.n, buf.String(), tt.want)
		}
	}

	if err := TailLog(context.Background(), &bytes.Buffer{}, filepath.Join(t.TempDir(), "missing"), 1, false); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestTailLogLongFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.jsonl")
	var content strings.Builder
	for i := 0; i < 500; i++ {
		content.WriteString(strings.Repeat("x", 40))
		content.WriteString("\n")
	}
	content.WriteString("last\n")
	if err := os.WriteFile(path, []byte(content.String()), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := TailLog(context.Background(), &buf, path, 2, false); err != nil {
		t.Fatal(err)
	}
	if want := strings.Repeat("x", 40) + "\nlast\n"; buf.String() != want {
		t.Errorf("TailLog: got %q, want %q", buf.String(), want)
	}
}

func TestTailLogFollowStopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.jsonl")
	if err := os.WriteFile(path, []byte("first\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	var buf syncBuffer
	done := make(chan error, 1)
	go func() { done <- TailLog(ctx, &buf, path, 0, true) }()

	time.Sleep(50 * time.Millisecond)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("second\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("TailLog: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("TailLog did not return after cancel")
	}
	if got := buf.String(); got != "first\nsecond\n" {
		t.Errorf("followed output: got %q", got)
	}
}

func TestMultiWriter(t *testing.T) {
	var a, b bytes.Buffer
	failing := writerFunc(func(Event) error { return errors.New("boom") })
	m := NewMultiWriter(NewJSONLWriter(&a), nil, failing, NewJSONLWriter(&b))

	err := m.Write(Event{Type: EventCommand, Command: "list"})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected joined error, got %v", err)
	}
	if a.Len() == 0 || a.String() != b.String() {
		t.Errorf("writers did not receive the same line: %q vs %q", a.String(), b.String())
	}
}

func TestSynchronized(t *testing.T) {
	if _, ok := Synchronized(nil).(NullWriter); !ok {
		t.Error("Synchronized(nil) should be a NullWriter")
	}
	w := Synchronized(NullWriter{})
	if Synchronized(w) != w {
		t.Error("Synchronized should not wrap twice")
	}
}

func TestConsoleWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel, Formatter: log.LogfmtFormatter})
	w := NewConsoleWriter(logger)

	if err := w.Write(Event{Type: EventError, Command: "todo", Task: "milk", Error: "disk full"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"level=error", "command failed", "task=milk", "disk full"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output %q missing %q", out, want)
		}
	}
}

func TestParseLevelAndFormatter(t *testing.T) {
	levels := map[string]log.Level{
		"debug":   log.DebugLevel,
		"INFO":    log.InfoLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"bogus":   log.InfoLevel,
	}
	for in, want := range levels {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q): got %v, want %v", in, got, want)
		}
	}

	formats := map[string]log.Formatter{
		"json":   log.JSONFormatter,
		"logfmt": log.LogfmtFormatter,
		"text":   log.TextFormatter,
		"":       log.TextFormatter,
	}
	for in, want := range formats {
		if got := ParseFormatter(in); got != want {
			t.Errorf("ParseFormatter(%q): got %v, want %v", in, got, want)
		}
	}
}

type writerFunc func(Event) error

func (f writerFunc) Write(e Event) error { return f(e) }

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}
