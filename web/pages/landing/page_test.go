package landing

import (
	"strings"
	"testing"
	"time"

	"scratch/models"
	"scratch/notelist"

	"github.com/rohanthewiz/element"
)

func TestLanderPage(t *testing.T) {
	html := NewLanderPage().Render()

	if !strings.HasPrefix(html, "<!DOCTYPE html>") {
		t.Error("page should start with a doctype")
	}
	if !strings.Contains(html, "A simple note taking app") {
		t.Error("lander should show the tagline")
	}
	if !strings.Contains(html, `href="/login"`) || !strings.Contains(html, `href="/register"`) {
		t.Error("lander should link to login and signup")
	}
	if strings.Contains(html, "Create a new note") {
		t.Error("lander should not show the note list")
	}
}

func TestNoteListRows(t *testing.T) {
	b := element.NewBuilder()
	NoteList{Notes: []models.Note{
		{ID: "1", Content: "Shopping\nmilk", CreatedAt: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)},
		{ID: "2", Content: "<script>alert(1)</script>"},
	}}.Render(b)
	html := b.String()

	if !strings.Contains(html, "Create a new note") {
		t.Error("list should start with the create action")
	}
	if !strings.Contains(html, "Shopping") || strings.Contains(html, "milk") {
		t.Error("rows should show only the first line as the title")
	}
	if !strings.Contains(html, "Created: ") {
		t.Error("rows should show the creation time")
	}
	if strings.Contains(html, "<script>") {
		t.Error("note content must be escaped")
	}
}

func TestNoteListEmptyAndLoading(t *testing.T) {
	tests := []struct {
		name string
		list NoteList
		want string
	}{
		{"no results", NoteList{}, "No results"},
		{"loading", NoteList{Loading: true}, "Loading..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := element.NewBuilder()
			tt.list.Render(b)
			if html := b.String(); !strings.Contains(html, tt.want) {
				t.Errorf("expected %q in %s", tt.want, html)
			}
		})
	}
}

func TestAlerts(t *testing.T) {
	tests := []struct {
		name       string
		alerts     Alerts
		wantOK     bool
		wantFailed bool
	}{
		{"none", Alerts{}, false, false},
		{"success", Alerts{Succeeded: true}, true, false},
		{"failure", Alerts{Failed: true}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := element.NewBuilder()
			tt.alerts.Render(b)
			html := b.String()

			if got := strings.Contains(html, "Holy guacamole!"); got != tt.wantOK {
				t.Errorf("success alert shown = %v, want %v", got, tt.wantOK)
			}
			if got := strings.Contains(html, "Womp Womp!"); got != tt.wantFailed {
				t.Errorf("failure alert shown = %v, want %v", got, tt.wantFailed)
			}
		})
	}
}

func TestSearchBarReplaceMode(t *testing.T) {
	b := element.NewBuilder()
	SearchBar{Fields: notelist.Fields{Search: "foo"}}.Render(b)
	html := b.String()

	if strings.Contains(html, `action="/replace"`) {
		t.Error("replace form should be hidden outside replace mode")
	}
	if !strings.Contains(html, "replace=1") {
		t.Error("toggle should open replace mode")
	}

	b = element.NewBuilder()
	SearchBar{Fields: notelist.Fields{Search: "foo", Replace: "bar"}, ReplaceMode: true}.Render(b)
	html = b.String()

	if !strings.Contains(html, `action="/replace"`) {
		t.Error("replace form should show in replace mode")
	}
	if !strings.Contains(html, `value="bar"`) {
		t.Error("replace input should keep its value")
	}
	if !strings.Contains(html, "Cancel") {
		t.Error("toggle should offer to leave replace mode")
	}
}

func TestConfirmPanel(t *testing.T) {
	fields := notelist.Fields{Search: "foo", Replace: "qux"}
	edits := notelist.Plan([]models.Note{{ID: "1", Content: "foo bar"}}, "foo", "qux")

	b := element.NewBuilder()
	NewConfirmPanel(fields, edits).Render(b)
	html := b.String()

	if !strings.Contains(html, "Are you sure you want to replace all instances of foo with qux?") {
		t.Error("panel should ask the confirmation question")
	}
	if !strings.Contains(html, "[-foo-]{+qux+} bar") {
		t.Error("panel should preview the edit as a diff")
	}
	if !strings.Contains(html, `value="yes"`) || !strings.Contains(html, `value="no"`) {
		t.Error("panel should offer both answers")
	}
}

func TestNotesPageShowsConfirmOnlyWhenAsked(t *testing.T) {
	page := NotesPage{
		State:   notelist.State{ReplaceMode: true},
		Fields:  notelist.Fields{Search: "foo", Replace: "qux"},
		Visible: []models.Note{{ID: "1", Content: "foo bar"}},
	}

	if strings.Contains(page.Render(), "Are you sure") {
		t.Error("confirmation should not render without a panel")
	}

	page.Confirm = NewConfirmPanel(page.Fields, nil)
	if !strings.Contains(page.Render(), "Are you sure") {
		t.Error("confirmation should render when set")
	}
}
