package tasks

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "tasks.json"))
}

func readBacking(t *testing.T, s *Store) string {
	t.Helper()
	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read backing file: %v", err)
	}
	return string(data)
}

func mustDo(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func contains(list []string, s string) int {
	n := 0
	for _, v := range list {
		if v == s {
			n++
		}
	}
	return n
}

func TestCreateListsPending(t *testing.T) {
	for _, d := range []string{"buy milk", "", "  spaced  ", "日本語のタスク", "<b>&amp;</b>"} {
		t.Run(d, func(t *testing.T) {
			s := newTestStore(t)
			mustDo(t, s.Create(d))

			if got := contains(s.ListPending(), d); got != 1 {
				t.Errorf("pending count for %q: got %d, want 1", d, got)
			}
			if got := contains(s.ListCompleted(), d); got != 0 {
				t.Errorf("completed count for %q: got %d, want 0", d, got)
			}
		})
	}
}

func TestCompleteUnknownIsNoop(t *testing.T) {
	s := newTestStore(t)
	mustDo(t, s.Create("a"))
	before := readBacking(t, s)

	mustDo(t, s.Complete("missing"))

	if got := s.ListPending(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("ListPending: got %v, want [a]", got)
	}
	if got := s.ListCompleted(); len(got) != 0 {
		t.Errorf("ListCompleted: got %v, want empty", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len: got %d, want 1", s.Len())
	}
	if after := readBacking(t, s); after != before {
		t.Errorf("backing file changed: got %s, want %s", after, before)
	}
}

func TestCompleteUnknownDoesNotWrite(t *testing.T) {
	s := newTestStore(t)
	mustDo(t, s.Complete("missing"))

	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Errorf("expected no backing file, stat err = %v", err)
	}
}

func TestCreateThenComplete(t *testing.T) {
	s := newTestStore(t)
	mustDo(t, s.Create("d"))
	mustDo(t, s.Complete("d"))

	if got := contains(s.ListPending(), "d"); got != 0 {
		t.Errorf("pending count: got %d, want 0", got)
	}
	if got := contains(s.ListCompleted(), "d"); got != 1 {
		t.Errorf("completed count: got %d, want 1", got)
	}
	if got := readBacking(t, s); got != `[["d",true]]` {
		t.Errorf("backing file: got %s", got)
	}
}

func TestCreateThenRemove(t *testing.T) {
	s := newTestStore(t)
	mustDo(t, s.Create("d"))
	mustDo(t, s.Remove("d"))

	if len(s.ListPending()) != 0 || len(s.ListCompleted()) != 0 {
		t.Errorf("expected empty store, got pending=%v completed=%v", s.ListPending(), s.ListCompleted())
	}
	if got := readBacking(t, s); got != "[]" {
		t.Errorf("backing file: got %s, want []", got)
	}
}

func TestRemoveTwiceIsIdempotent(t *testing.T) {
	once := newTestStore(t)
	twice := newTestStore(t)
	for _, s := range []*Store{once, twice} {
		mustDo(t, s.Create("a"))
		mustDo(t, s.Create("b"))
	}

	mustDo(t, once.Remove("a"))
	mustDo(t, twice.Remove("a"))
	mustDo(t, twice.Remove("a"))

	if !reflect.DeepEqual(once.Entries(), twice.Entries()) {
		t.Errorf("entries differ: once=%v twice=%v", once.Entries(), twice.Entries())
	}
	if readBacking(t, once) != readBacking(t, twice) {
		t.Errorf("backing files differ: %s vs %s", readBacking(t, once), readBacking(t, twice))
	}
}

func TestRemoveMissingStillWrites(t *testing.T) {
	s := newTestStore(t)
	mustDo(t, s.Remove("never added"))

	if got := readBacking(t, s); got != "[]" {
		t.Errorf("backing file: got %q, want []", got)
	}
}

func TestScenarioWriteReport(t *testing.T) {
	s := newTestStore(t)

	mustDo(t, s.Create("write report"))
	if got := s.ListPending(); !reflect.DeepEqual(got, []string{"write report"}) {
		t.Fatalf("ListPending after create: got %v", got)
	}

	mustDo(t, s.Complete("write report"))
	if got := s.ListPending(); len(got) != 0 {
		t.Errorf("ListPending after complete: got %v, want []", got)
	}
	if got := s.ListCompleted(); !reflect.DeepEqual(got, []string{"write report"}) {
		t.Errorf("ListCompleted after complete: got %v", got)
	}

	mustDo(t, s.Remove("write report"))
	if len(s.ListPending()) != 0 || len(s.ListCompleted()) != 0 {
		t.Errorf("expected both lists empty after remove")
	}
}

func TestScenarioTwoTasks(t *testing.T) {
	s := newTestStore(t)
	mustDo(t, s.Create("a"))
	mustDo(t, s.Create("b"))
	mustDo(t, s.Complete("a"))

	if got := s.ListPending(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("ListPending: got %v, want [b]", got)
	}
	if got := s.ListCompleted(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("ListCompleted: got %v, want [a]", got)
	}
	if got := readBacking(t, s); got != `[["a",true],["b",false]]` {
		t.Errorf("backing file: got %s", got)
	}
}

func TestDuplicateCreateResets(t *testing.T) {
	s := newTestStore(t)
	mustDo(t, s.Create("x"))
	mustDo(t, s.Create("x"))

	if got := s.ListPending(); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("ListPending: got %v, want [x]", got)
	}

	mustDo(t, s.Create("y"))
	mustDo(t, s.Complete("x"))
	mustDo(t, s.Create("x"))

	want := []Entry{{"x", false}, {"y", false}}
	if got := s.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries: got %v, want %v (re-create keeps position)", got, want)
	}
}

func TestListsAreSnapshots(t *testing.T) {
	s := newTestStore(t)
	mustDo(t, s.Create("a"))

	pending := s.ListPending()
	pending[0] = "mutated"
	entries := s.Entries()
	entries[0].Done = true

	if got := s.ListPending(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("store changed through returned slice: %v", got)
	}

	mustDo(t, s.Create("b"))
	if len(pending) != 1 {
		t.Errorf("earlier snapshot grew: %v", pending)
	}
}

func TestInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	for _, d := range []string{"c", "a", "b", "d"} {
		mustDo(t, s.Create(d))
	}
	mustDo(t, s.Complete("a"))
	mustDo(t, s.Complete("d"))
	mustDo(t, s.Remove("b"))
	mustDo(t, s.Create("b"))

	if got := s.ListPending(); !reflect.DeepEqual(got, []string{"c", "b"}) {
		t.Errorf("ListPending: got %v, want [c b]", got)
	}
	if got := s.ListCompleted(); !reflect.DeepEqual(got, []string{"a", "d"}) {
		t.Errorf("ListCompleted: got %v, want [a d]", got)
	}
}

func TestPersistFailureKeepsMemoryState(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing-dir", "tasks.json"))

	if err := s.Create("a"); err == nil {
		t.Fatal("expected write error for missing directory")
	}
	if got := s.ListPending(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("ListPending after failed write: got %v, want [a]", got)
	}
	if err := s.Remove("a"); err == nil {
		t.Error("expected write error on remove")
	}
	if s.Len() != 0 {
		t.Errorf("Len after failed remove: got %d, want 0", s.Len())
	}
}

func TestLoadBulk(t *testing.T) {
	s := newTestStore(t)
	mustDo(t, s.Create("stale"))

	s.Load([]Entry{{"a", false}, {"b", true}, {"a", true}, {"c", false}})

	want := []Entry{{"a", true}, {"b", true}, {"c", false}}
	if got := s.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries: got %v, want %v", got, want)
	}
	if got := readBacking(t, s); got != `[["stale",false]]` {
		t.Errorf("Load must not write, backing file: %s", got)
	}
}

func TestEmptyStoreEntriesNotNil(t *testing.T) {
	s := newTestStore(t)
	if s.Entries() == nil {
		t.Error("Entries should return an empty, non-nil slice")
	}
	if s.ListPending() == nil || s.ListCompleted() == nil {
		t.Error("lists should be empty, non-nil slices")
	}
}

func TestInvalidUTF8RoundTrip(t *testing.T) {
	s := newTestStore(t)
	mustDo(t, s.Create("a\xff"))
	mustDo(t, s.Create("a\xfe"))
	mustDo(t, s.Create("b"))
	mustDo(t, s.Complete("a\xfe"))

	want := []Entry{{"a\uFFFD", true}, {"b", false}}
	if got := s.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries: got %v, want %v", got, want)
	}

	reopened, err := Open(s.Path(), OpenOptions{OnMalformed: MalformedFail})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !reflect.DeepEqual(reopened.Entries(), s.Entries()) {
		t.Errorf("round trip: got %v, want %v", reopened.Entries(), s.Entries())
	}

	mustDo(t, s.Remove("a\xff"))
	if got := s.ListPending(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("ListPending after remove: got %q, want [b]", got)
	}
}
