// Package landing renders the root page: the lander for anonymous
// visitors and the note list with its search and replace form once
// signed in.
package landing

import (
	"scratch/models"
	"scratch/notelist"
	"scratch/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// LanderPage is shown to anonymous visitors
type LanderPage struct {
	shared.Page
}

// NewLanderPage creates the anonymous landing page
func NewLanderPage() LanderPage {
	return LanderPage{}
}

// Render generates the complete HTML document
func (p LanderPage) Render() string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		p.Head(b),
		b.Body().R(
			element.RenderComponents(b, p.Navbar()),
			b.DivClass("container").R(
				b.DivClass("lander").R(
					b.H1().T(shared.AppName),
					b.P().T("A simple note taking app"),
				),
			),
			element.RenderComponents(b, p.Footer()),
		),
	)

	return "<!DOCTYPE html>" + b.String()
}

// NotesPage is the signed-in note list
type NotesPage struct {
	shared.Page
	State   notelist.State
	Fields  notelist.Fields
	Visible []models.Note
	Confirm *ConfirmPanel // set while a bulk replace awaits an answer
}

// Render generates the complete HTML document
func (p NotesPage) Render() string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		p.Head(b),
		b.Body().R(
			element.RenderComponents(b, p.Navbar()),
			b.DivClass("container").R(
				b.H2().T("Your Notes"),
				element.RenderComponents(b,
					Alerts{
						Succeeded: p.State.LastReplaceSucceeded,
						Failed:    p.State.LastOperationFailed,
					},
					SearchBar{Fields: p.Fields, ReplaceMode: p.State.ReplaceMode},
				),
				b.Wrap(func() {
					if p.Confirm != nil {
						element.RenderComponents(b, *p.Confirm)
					}
				}),
				element.RenderComponents(b, NoteList{Notes: p.Visible, Loading: p.State.Loading}),
			),
			element.RenderComponents(b, p.Footer()),
		),
	)

	return "<!DOCTYPE html>" + b.String()
}
