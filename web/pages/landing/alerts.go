package landing

import (
	"scratch/notelist"
	"scratch/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// Alerts shows the outcome of the last bulk replace
type Alerts struct {
	Succeeded bool
	Failed    bool
}

// Render implements the element.Component interface
func (a Alerts) Render(b *element.Builder) (x any) {
	if a.Succeeded {
		b.Div("class", "alert alert-success", "role", "alert").T(shared.Escape(notelist.SuccessMessage))
	}
	if a.Failed {
		b.Div("class", "alert alert-danger", "role", "alert").T(shared.Escape(notelist.FailureMessage))
	}
	return
}
