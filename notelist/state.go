package notelist

import "scratch/models"

// ReplacePhase tracks one bulk replace attempt.
//
//	Idle -> Confirming -> Idle            (declined)
//	Idle -> Confirming -> Executing -> Succeeded | PartiallyFailed
//
// Succeeded and PartiallyFailed are terminal for the attempt; the next
// attempt starts from Confirming again.
type ReplacePhase int

const (
	PhaseIdle ReplacePhase = iota
	PhaseConfirming
	PhaseExecuting
	PhaseSucceeded
	PhasePartiallyFailed
)

func (p ReplacePhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseConfirming:
		return "confirming"
	case PhaseExecuting:
		return "executing"
	case PhaseSucceeded:
		return "succeeded"
	case PhasePartiallyFailed:
		return "partially_failed"
	default:
		return "unknown"
	}
}

// Fields is the search/replace form input. Never persisted.
type Fields struct {
	Search  string
	Replace string
}

// State is a snapshot of the controller. Notes is a copy and may be
// modified by the caller.
type State struct {
	Notes                []models.Note
	Loading              bool
	ReplaceMode          bool
	LastReplaceSucceeded bool
	LastOperationFailed  bool
	Phase                ReplacePhase
}

// Alert texts shown by the front ends for the two outcome flags
const (
	SuccessMessage = "Holy guacamole! Search and replace was successful."
	FailureMessage = "Womp Womp! Something happened and we weren't able to complete your request. Please try again."
)
