package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/taskbot-go/internal/bot"
	"github.com/nibzard/taskbot-go/internal/tasks"
)

func newTestModel(t *testing.T, opts ...TUIOption) (*chatModel, *tasks.Store) {
	t.Helper()
	store := tasks.New(filepath.Join(t.TempDir(), "tasks.json"))
	m := newChatModel(bot.New("taskbot", store, bot.Options{}), opts...)
	m.Init()
	return m, store
}

func typeLine(m *chatModel, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestChatModelHandlesLines(t *testing.T) {
	m, store := newTestModel(t)

	typeLine(m, "todo buy milk")
	typeLine(m, "taskbot todo write report")
	typeLine(m, "done buy milk")

	if got := store.ListPending(); !reflect.DeepEqual(got, []string{"write report"}) {
		t.Errorf("ListPending: got %v", got)
	}
	if got := store.ListCompleted(); !reflect.DeepEqual(got, []string{"buy milk"}) {
		t.Errorf("ListCompleted: got %v", got)
	}

	view := m.View()
	for _, want := range []string{
		"you: todo buy milk",
		"taskbot: added: buy milk",
		"taskbot: done: buy milk",
		"Pending (1)",
		"  - write report",
		"Completed (1)",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestChatModelMultiLineReply(t *testing.T) {
	m, _ := newTestModel(t)
	typeLine(m, "todo a")
	typeLine(m, "todo b")
	typeLine(m, "list")

	view := m.View()
	if !strings.Contains(view, "taskbot: a\ntaskbot: b\n") {
		t.Errorf("expected one transcript line per task:\n%s", view)
	}
}

func TestChatModelShowsErrors(t *testing.T) {
	store := tasks.New(filepath.Join(t.TempDir(), "missing", "tasks.json"))
	m := newChatModel(bot.New("taskbot", store, bot.Options{}))
	typeLine(m, "todo milk")

	if view := m.View(); !strings.Contains(view, "!! error: write task file") {
		t.Errorf("expected error line:\n%s", view)
	}
}

func TestChatModelEditing(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("todo")})
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("xyz")})
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := string(m.input); got != "todo xy" {
		t.Errorf("input: got %q, want %q", got, "todo xy")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	if len(m.input) != 0 {
		t.Errorf("ctrl+u should clear input, got %q", string(m.input))
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.history) != 0 {
		t.Errorf("blank lines must not be sent, history %v", m.history)
	}
}

func TestChatModelHistory(t *testing.T) {
	m, _ := newTestModel(t)
	typeLine(m, "todo a")
	typeLine(m, "list")

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := string(m.input); got != "list" {
		t.Errorf("up: got %q, want list", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := string(m.input); got != "todo a" {
		t.Errorf("up at top: got %q, want todo a", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if len(m.input) != 0 {
		t.Errorf("down past end should clear input, got %q", string(m.input))
	}
}

func TestChatModelTranscriptLimit(t *testing.T) {
	m, _ := newTestModel(t, WithTranscriptLimit(4))
	for i := 0; i < 5; i++ {
		typeLine(m, "help donelist")
	}
	if len(m.lines) != 4 {
		t.Errorf("transcript: got %d lines, want 4", len(m.lines))
	}
}

func TestChatModelKeys(t *testing.T) {
	m, _ := newTestModel(t, WithTaskFile("/tmp/tasks.json"))

	m.Update(tea.KeyMsg{Type: tea.KeyF1})
	view := m.View()
	if !strings.Contains(view, "Keyboard Shortcuts") || !strings.Contains(view, "/tmp/tasks.json") {
		t.Errorf("help view:\n%s", view)
	}

	typeLine(m, "list")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if len(m.lines) != 0 {
		t.Errorf("ctrl+l should clear the transcript")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("esc: got %T, want tea.QuitMsg", cmd())
	}
}

func TestVisibleLinesFitsWindow(t *testing.T) {
	m, _ := newTestModel(t)
	for i := 0; i < 30; i++ {
		typeLine(m, "list")
	}
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	if got := len(m.visibleLines()); got >= len(m.lines) || got < 3 {
		t.Errorf("visibleLines: got %d of %d", got, len(m.lines))
	}
}

func TestWritePanelTruncates(t *testing.T) {
	items := make([]string, panelItems+3)
	for i := range items {
		items[i] = string(rune('a' + i))
	}
	var b strings.Builder
	writePanel(&b, "Pending", items)
	out := b.String()
	if !strings.Contains(out, "... 3 more") || strings.Contains(out, "  - a\n") {
		t.Errorf("panel:\n%s", out)
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("a buffer is not a TTY")
	}
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTTY(f) {
		t.Error("a regular file is not a TTY")
	}
}
