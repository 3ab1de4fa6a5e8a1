package landing

import (
	"scratch/models"
	"scratch/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// NoteList renders the filtered notes, newest action first
type NoteList struct {
	Notes   []models.Note
	Loading bool
}

// Render implements the element.Component interface
func (n NoteList) Render(b *element.Builder) (x any) {
	b.UlClass("list-group").R(
		b.Li("class", "list-group-item").R(
			b.A("href", "/notes/new").R(
				b.H3().T("<b>+</b> Create a new note"),
			),
		),
		n.renderRows(b),
	)
	return
}

func (n NoteList) renderRows(b *element.Builder) (x any) {
	if n.Loading {
		b.Li("class", "list-group-item empty").T("Loading...")
		return
	}
	if len(n.Notes) == 0 {
		b.Li("class", "list-group-item empty").T("No results")
		return
	}

	element.ForEach(n.Notes, func(note models.Note) {
		b.Li("class", "list-group-item", "data-id", shared.Escape(note.ID)).R(
			b.H3().T(shared.Escape(note.Title())),
			b.Small().T(shared.Escape(note.CreatedLabel())),
		)
	})
	return
}
