package landing

import (
	"scratch/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// NewNotePage is the form for creating a note
type NewNotePage struct {
	shared.Page
	Error string
}

// Render generates the complete HTML document
func (p NewNotePage) Render() string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		p.Head(b),
		b.Body().R(
			element.RenderComponents(b, p.Navbar()),
			b.DivClass("container").R(
				b.H2().T("New note"),
				b.Wrap(func() {
					if p.Error != "" {
						b.Div("class", "alert alert-danger", "role", "alert").T(shared.Escape(p.Error))
					}
				}),
				b.Form("method", "post", "action", "/notes").R(
					b.TextArea("name", "content", "placeholder", "Write your note").R(),
					b.DivClass("form-row").R(
						b.Input("type", "text", "name", "attachment", "placeholder", "Attachment reference (optional)"),
					),
					b.Button("type", "submit", "class", "btn btn-primary").T("Create"),
				),
			),
			element.RenderComponents(b, p.Footer()),
		),
	)

	return "<!DOCTYPE html>" + b.String()
}
