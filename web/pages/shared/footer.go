package shared

import "github.com/rohanthewiz/element"

// Footer is a stateless component
type Footer struct{}

// Render implements element.Component
func (f Footer) Render(b *element.Builder) any {
	b.Div("class", "container", "style", "color:#999;font-size:small").R(
		b.P().T("Scratch &copy; 2026"),
	)
	return nil
}
