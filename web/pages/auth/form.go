// Package auth renders the login and signup pages.
package auth

import (
	"scratch/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// FormPage is a username/password form posting back to Action
type FormPage struct {
	shared.Page
	Action   string
	Heading  string
	Submit   string
	Error    string
	Username string // refilled after a failed attempt
}

// NewLoginPage creates the login page
func NewLoginPage() FormPage {
	return FormPage{
		Page:    shared.Page{Title: "Login"},
		Action:  "/login",
		Heading: "Sign in to your account",
		Submit:  "Login",
	}
}

// NewRegisterPage creates the signup page
func NewRegisterPage() FormPage {
	return FormPage{
		Page:    shared.Page{Title: "Signup"},
		Action:  "/register",
		Heading: "Create an account",
		Submit:  "Signup",
	}
}

// Render generates the HTML for the page
func (p FormPage) Render() string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		p.Head(b),
		p.renderBody(b),
	)

	return "<!DOCTYPE html>" + b.String()
}

func (p FormPage) renderBody(b *element.Builder) any {
	return b.Body().R(
		element.RenderComponents(b, p.Navbar()),
		b.DivClass("container").R(
			b.H2().T(p.Heading),

			b.Wrap(func() {
				if p.Error != "" {
					b.Div("class", "alert alert-danger", "role", "alert").T(shared.Escape(p.Error))
				}
			}),

			b.Form("method", "post", "action", p.Action).R(
				b.DivClass("form-row").R(
					b.Input("type", "text", "name", "username", "value", shared.Escape(p.Username),
						"required", "required", "autocomplete", "username", "placeholder", "Username"),
				),
				b.DivClass("form-row").R(
					b.Input("type", "password", "name", "password",
						"required", "required", "placeholder", "Password"),
				),
				b.Button("type", "submit", "class", "btn btn-primary").T(p.Submit),
			),
		),
		element.RenderComponents(b, p.Footer()),
	)
}
