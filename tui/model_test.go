package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"scratch/models"
	"scratch/notelist"

	tea "github.com/charmbracelet/bubbletea"
)

type memStore struct {
	mu      sync.Mutex
	notes   []models.Note
	failIDs map[string]bool
	listErr error
	updates int
}

func newMemStore(notes ...models.Note) *memStore {
	return &memStore{notes: notes, failIDs: map[string]bool{}}
}

func (s *memStore) ListNotes(ctx context.Context) ([]models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]models.Note(nil), s.notes...), nil
}

func (s *memStore) UpdateNote(ctx context.Context, id string, input models.NoteInput) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	if s.failIDs[id] {
		return nil, errors.New("update rejected")
	}
	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes[i].Content = input.Content
			s.notes[i].Attachment = input.Attachment
			note := s.notes[i]
			return &note, nil
		}
	}
	return nil, errors.New("not found")
}

func (s *memStore) content(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notes {
		if n.ID == id {
			return n.Content
		}
	}
	return ""
}

func sampleStore() *memStore {
	created := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	return newMemStore(
		models.Note{ID: "1", Content: "foo bar", CreatedAt: created},
		models.Note{ID: "2", Content: "baz\nsecond line", CreatedAt: created},
	)
}

func keyRunes(s string) []tea.KeyMsg {
	msgs := make([]tea.KeyMsg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, k := range keyRunes(s) {
		m, _ = update(t, m, k)
	}
	return m
}

// loaded returns a signed-in model whose notes are already loaded
func loaded(t *testing.T, store *memStore) Model {
	t.Helper()
	m := New(store, notelist.Session{Authenticated: true})
	t.Cleanup(m.Controller().Close)

	msg := m.loadCmd()()
	m, _ = update(t, m, msg)
	return m
}

func TestLanderWhenSignedOut(t *testing.T) {
	m := New(sampleStore(), notelist.Session{Authenticated: false})

	if m.Init() != nil {
		t.Error("signed-out model should not load notes")
	}
	view := m.View()
	if !strings.Contains(view, "A simple note taking app") {
		t.Errorf("expected lander, got %q", view)
	}
	if strings.Contains(view, "Your Notes") {
		t.Error("lander should not show the note list")
	}

	_, cmd := update(t, m, keyRunes("q")[0])
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should produce a quit message")
	}
}

func TestLoadingThenList(t *testing.T) {
	m := New(sampleStore(), notelist.Session{Authenticated: true})
	defer m.Controller().Close()

	if !strings.Contains(m.View(), "Loading...") {
		t.Error("model should show the spinner before the first load")
	}

	m, _ = update(t, m, m.loadCmd()())
	view := m.View()

	if strings.Contains(view, "Loading...") {
		t.Error("spinner should be gone after loading")
	}
	for _, want := range []string{"foo bar", "baz", "Created: "} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
	if strings.Contains(view, "second line") {
		t.Error("rows should show only the title line")
	}
}

func TestLoadFailureShown(t *testing.T) {
	store := sampleStore()
	store.listErr = errors.New("server down")

	m := loaded(t, store)
	if !strings.Contains(m.View(), "Could not load notes") {
		t.Error("load failure should be shown")
	}
}

func TestSearchFiltersList(t *testing.T) {
	m := loaded(t, sampleStore())

	m, _ = update(t, m, keyRunes("/")[0])
	if m.focus != focusSearch {
		t.Fatalf("/ should focus search, focus = %v", m.focus)
	}

	m = typeText(t, m, "baz")
	if got := m.Controller().Fields().Search; got != "baz" {
		t.Errorf("search term = %q, want baz", got)
	}
	if visible := m.Controller().Visible(); len(visible) != 1 || visible[0].ID != "2" {
		t.Errorf("visible = %v", visible)
	}

	// Case-sensitive: no match shows the empty state
	m = typeText(t, m, "Z")
	if !strings.Contains(m.View(), "No results") {
		t.Error("expected No results for a term with no match")
	}

	// q is text while typing, not quit
	m, cmd := update(t, m, keyRunes("q")[0])
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Error("q should not quit while the search field has focus")
		}
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.focus != focusList {
		t.Error("esc should leave the field")
	}
}

func TestToggleReplaceMode(t *testing.T) {
	m := loaded(t, sampleStore())

	m, _ = update(t, m, keyRunes("r")[0])
	if !m.Controller().State().ReplaceMode || m.focus != focusReplace {
		t.Fatal("r should open the replace field")
	}
	if !strings.Contains(m.View(), "Replace") {
		t.Error("replace field should render")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, keyRunes("r")[0])
	if m.Controller().State().ReplaceMode {
		t.Error("r should close replace mode again")
	}
}

// startReplace fills the form and submits it, returning the model with
// the confirm dialog open.
func startReplace(t *testing.T, m Model, search, replace string) Model {
	t.Helper()

	m, _ = update(t, m, keyRunes("r")[0])
	m = typeText(t, m, replace)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, search)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.running || m.events == nil {
		t.Fatal("enter should start the bulk replace")
	}

	m, _ = update(t, m, <-m.events)
	if !m.confirm.Active {
		t.Fatal("confirm dialog should be open")
	}
	return m
}

// answer presses k in the dialog and waits for the replace to finish
func answer(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()

	m, cmd := update(t, m, keyRunes(k)[0])
	if cmd == nil {
		t.Fatalf("%s should answer the dialog", k)
	}
	m, wait := update(t, m, cmd())
	if wait == nil {
		t.Fatal("answering should wait for the replace to finish")
	}
	return update(t, m, wait())
}

func TestReplaceConfirmed(t *testing.T) {
	store := sampleStore()
	m := loaded(t, store)
	m.successTTL = time.Millisecond

	m = startReplace(t, m, "foo", "qux")

	state := m.Controller().State()
	if !state.Loading || state.Phase != notelist.PhaseConfirming {
		t.Errorf("controller should wait in confirming, got %+v", state)
	}
	view := m.View()
	if !strings.Contains(view, "Are you sure you want to replace all instances of foo with qux?") {
		t.Errorf("dialog should show the prompt, got %q", view)
	}
	if !strings.Contains(view, "1 note will be updated.") {
		t.Error("dialog should summarize the plan")
	}

	m, tick := answer(t, m, "y")

	if got := store.content("1"); got != "qux bar" {
		t.Errorf("note 1 = %q, want %q", got, "qux bar")
	}
	state = m.Controller().State()
	if !state.LastReplaceSucceeded || state.ReplaceMode || state.Loading {
		t.Errorf("state after success = %+v", state)
	}
	if m.search.Value() != "" || m.replace.Value() != "" {
		t.Error("inputs should be cleared after success")
	}
	if !strings.Contains(m.View(), notelist.SuccessMessage) {
		t.Error("success alert should show")
	}

	if tick == nil {
		t.Fatal("success should schedule the alert to clear")
	}
	m, _ = update(t, m, tick())
	if m.Controller().State().LastReplaceSucceeded {
		t.Error("success alert should clear after the tick")
	}
}

func TestReplaceDeclined(t *testing.T) {
	store := sampleStore()
	m := loaded(t, store)

	m = startReplace(t, m, "foo", "qux")
	m, _ = answer(t, m, "n")

	if store.updates != 0 {
		t.Errorf("declined replace sent %d updates", store.updates)
	}
	state := m.Controller().State()
	if !state.ReplaceMode || state.Loading || state.LastOperationFailed {
		t.Errorf("state after decline = %+v", state)
	}
	if f := m.Controller().Fields(); f.Search != "foo" || f.Replace != "qux" {
		t.Errorf("fields should be kept, got %+v", f)
	}
	if m.running {
		t.Error("model should be idle again")
	}
}

func TestReplacePartialFailure(t *testing.T) {
	store := newMemStore(
		models.Note{ID: "1", Content: "foo one"},
		models.Note{ID: "2", Content: "foo two"},
	)
	store.failIDs["2"] = true
	m := loaded(t, store)

	m = startReplace(t, m, "foo", "qux")
	m, cmd := answer(t, m, "y")

	if cmd != nil {
		t.Error("failure should not schedule a success clear")
	}
	if !strings.Contains(m.View(), notelist.FailureMessage) {
		t.Error("failure alert should show")
	}
	// No rollback: the first note stays updated
	if got := store.content("1"); got != "qux one" {
		t.Errorf("note 1 = %q, want %q", got, "qux one")
	}
	if !m.Controller().State().ReplaceMode {
		t.Error("replace mode should stay open after a failure")
	}
}

func TestEmptySearchStillAsks(t *testing.T) {
	store := sampleStore()
	m := loaded(t, store)

	m = startReplace(t, m, "", "x")
	if !strings.Contains(m.View(), "every note") {
		t.Error("empty search should warn that every note changes")
	}
	if !strings.Contains(m.View(), "2 notes will be updated.") {
		t.Error("empty search should target every note")
	}

	m, _ = answer(t, m, "n")
	if store.updates != 0 {
		t.Errorf("declined replace sent %d updates", store.updates)
	}
}
