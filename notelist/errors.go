package notelist

import (
	"fmt"
)

// LoadError is reported when listing notes fails. The previous note
// list stays in place.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return "failed to load notes: " + e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ReplaceResult is the outcome of one note's update within a bulk replace
type ReplaceResult struct {
	NoteID string
	Err    error
}

// ReplaceFanOutError describes a bulk replace that did not fully land.
// Updates that succeeded are not rolled back.
type ReplaceFanOutError struct {
	Total     int
	Failures  []ReplaceResult
	ReloadErr error // set when every update landed but the reload failed
}

func (e *ReplaceFanOutError) Error() string {
	if len(e.Failures) == 0 && e.ReloadErr != nil {
		return fmt.Sprintf("bulk replace updated %d notes but reload failed: %v", e.Total, e.ReloadErr)
	}
	return fmt.Sprintf("bulk replace failed for %d of %d notes", len(e.Failures), e.Total)
}

// Unwrap exposes every underlying failure to errors.Is and errors.As
func (e *ReplaceFanOutError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures)+1)
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	if e.ReloadErr != nil {
		errs = append(errs, e.ReloadErr)
	}
	return errs
}

// FailedIDs lists the notes whose update failed
func (e *ReplaceFanOutError) FailedIDs() []string {
	ids := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		ids[i] = f.NoteID
	}
	return ids
}
