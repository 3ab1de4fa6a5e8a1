// Package shared contains components used by every page.
package shared

import (
	"html"

	"github.com/rohanthewiz/element"
)

// AppName is shown in the navbar and page titles
const AppName = "Scratch"

// Page is embedded by full pages to share the document head and chrome
type Page struct {
	Title    string
	Username string // empty when anonymous
}

// Head renders the <head> element
func (p Page) Head(b *element.Builder) any {
	title := AppName
	if p.Title != "" {
		title = p.Title + " - " + AppName
	}

	return b.Head().R(
		b.Meta("charset", "UTF-8"),
		b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1.0"),
		b.Title().T(title),
		b.Link("rel", "stylesheet", "href", "/static/css/scratch.css"),
	)
}

// Navbar returns the top bar for this page
func (p Page) Navbar() Navbar {
	return Navbar{Username: p.Username}
}

// Footer returns the page footer
func (p Page) Footer() Footer {
	return Footer{}
}

// Navbar shows the app name and the session links
type Navbar struct {
	Username string
}

// Render implements element.Component
func (n Navbar) Render(b *element.Builder) any {
	b.DivClass("navbar").R(
		b.A("href", "/").T(AppName),
		b.Div().R(
			b.Wrap(func() {
				if n.Username == "" {
					b.A("href", "/register").T("Signup")
					b.A("href", "/login").T("Login")
					return
				}
				b.Span().T(Escape(n.Username))
				b.Form("method", "post", "action", "/logout", "style", "display:inline").R(
					b.Button("type", "submit", "class", "btn").T("Logout"),
				)
			}),
		),
	)
	return nil
}

// Escape makes user text safe for element text and attribute values,
// neither of which the builder escapes.
func Escape(s string) string {
	return html.EscapeString(s)
}
