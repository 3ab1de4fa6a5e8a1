package landing

import (
	"scratch/notelist"
	"scratch/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// ConfirmPanel asks before a bulk replace runs and previews each edit
type ConfirmPanel struct {
	Prompt string
	Fields notelist.Fields
	Edits  []notelist.Edit
}

// NewConfirmPanel builds the panel for the given form input
func NewConfirmPanel(fields notelist.Fields, edits []notelist.Edit) *ConfirmPanel {
	return &ConfirmPanel{
		Prompt: notelist.ConfirmPrompt(fields),
		Fields: fields,
		Edits:  edits,
	}
}

// Render implements element.Component
func (c ConfirmPanel) Render(b *element.Builder) (x any) {
	b.DivClass("confirm").R(
		b.P().T(shared.Escape(c.Prompt)),
		c.renderEdits(b),
		b.Form("method", "post", "action", "/replace").R(
			b.Input("type", "hidden", "name", "search", "value", shared.Escape(c.Fields.Search)),
			b.Input("type", "hidden", "name", "replace", "value", shared.Escape(c.Fields.Replace)),
			b.Button("type", "submit", "name", "confirm", "value", "yes", "class", "btn btn-danger").T("OK"),
			b.Button("type", "submit", "name", "confirm", "value", "no", "class", "btn").T("Cancel"),
		),
	)
	return
}

func (c ConfirmPanel) renderEdits(b *element.Builder) (x any) {
	if len(c.Edits) == 0 {
		b.P("class", "empty").T("No notes match.")
		return
	}

	b.Ul().R(
		element.ForEach(c.Edits, func(edit notelist.Edit) {
			b.Li().R(
				b.Span("style", "font-weight:bold").T(shared.Escape(edit.Title)),
				b.Div("style", "white-space:pre-wrap;font-family:monospace").T(shared.Escape(edit.Diff())),
			)
		}),
	)
	return
}
