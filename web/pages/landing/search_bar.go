package landing

import (
	"net/url"

	"scratch/notelist"
	"scratch/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// SearchBar filters the list and, in replace mode, carries the
// replacement text for a bulk replace.
//
// Layout: [search input] [Search] [Replace | Cancel]
//
//	[replace input] [Replace all]   (replace mode only)
type SearchBar struct {
	Fields      notelist.Fields
	ReplaceMode bool
}

// Render implements element.Component
func (s SearchBar) Render(b *element.Builder) (x any) {
	search := shared.Escape(s.Fields.Search)

	b.Form("method", "get", "action", "/", "class", "form-row").R(
		b.Input("type", "text", "name", "search", "value", search,
			"placeholder", "Search", "autocomplete", "off"),
		b.Wrap(func() {
			if s.ReplaceMode {
				b.Input("type", "hidden", "name", "replace", "value", "1")
			}
		}),
		b.Button("type", "submit", "class", "btn").T("Search"),
		b.A("class", "btn", "href", s.toggleHref()).T(s.toggleLabel()),
	)

	if !s.ReplaceMode {
		return
	}

	b.Form("method", "post", "action", "/replace", "class", "form-row").R(
		b.Input("type", "hidden", "name", "search", "value", search),
		b.Input("type", "text", "name", "replace", "value", shared.Escape(s.Fields.Replace),
			"placeholder", "Replace with", "autocomplete", "off"),
		b.Button("type", "submit", "class", "btn btn-primary").T("Replace all"),
	)
	return
}

func (s SearchBar) toggleLabel() string {
	if s.ReplaceMode {
		return "Cancel"
	}
	return "Replace"
}

// toggleHref flips replace mode while keeping the search term
func (s SearchBar) toggleHref() string {
	q := url.Values{}
	if s.Fields.Search != "" {
		q.Set("search", s.Fields.Search)
	}
	if !s.ReplaceMode {
		q.Set("replace", "1")
	}
	if len(q) == 0 {
		return "/"
	}
	return shared.Escape("/?" + q.Encode())
}
