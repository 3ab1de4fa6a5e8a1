package notelist

import (
	"context"

	"scratch/models"

	"github.com/rohanthewiz/logger"
)

// Store is the remote note store the controller reads and writes.
// client.Client satisfies it.
type Store interface {
	ListNotes(ctx context.Context) ([]models.Note, error)
	UpdateNote(ctx context.Context, id string, input models.NoteInput) (*models.Note, error)
}

// Session is the caller's authentication state, fixed for the
// lifetime of a controller.
type Session struct {
	Authenticated bool
}

// Confirmer gates destructive actions. Confirm blocks until the user
// answers and returns true to proceed.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Answer is a Confirmer whose answer was collected beforehand, e.g. by
// a dialog or a --yes flag.
type Answer bool

func (a Answer) Confirm(context.Context, string) bool {
	return bool(a)
}

// ErrorReporter receives failures the user should hear about.
// Report must not block.
type ErrorReporter interface {
	Report(err error)
}

// ReporterFunc adapts a function to ErrorReporter
type ReporterFunc func(err error)

func (f ReporterFunc) Report(err error) {
	f(err)
}

// LogReporter reports by logging
type LogReporter struct{}

func (LogReporter) Report(err error) {
	logger.LogErr(err, "note list operation failed")
}
