// Package notelist holds the note list controller: it loads the user's
// notes, filters them for display and runs bulk search-and-replace
// against the remote store.
//
// A bulk replace fans out one update per matching note and waits for
// all of them. If any update fails the attempt is reported as failed and
// nothing is rolled back: notes already updated stay updated and the
// local list is not refreshed. Callers must treat the local list as
// possibly stale after a failed attempt.
package notelist

import (
	"context"
	"strconv"
	"sync"
	"time"

	"scratch/models"

	"github.com/rohanthewiz/logger"
	"golang.org/x/sync/errgroup"
)

// DefaultSuccessTTL is how long the success flag stays up after a replace
const DefaultSuccessTTL = 4 * time.Second

// Controller owns the note list, the search/replace form and the
// bulk replace workflow. It is safe for concurrent use.
type Controller struct {
	store       Store
	session     Session
	reporter    ErrorReporter
	successTTL  time.Duration
	concurrency int

	mu           sync.Mutex
	state        State
	fields       Fields
	successTimer *time.Timer
}

// Option configures a Controller
type Option func(*Controller)

// WithReporter sets where load failures are reported
func WithReporter(r ErrorReporter) Option {
	return func(c *Controller) { c.reporter = r }
}

// WithSuccessTTL sets how long the success flag stays up.
// Zero disables the automatic clear; callers then use ClearTransientSuccess.
func WithSuccessTTL(d time.Duration) Option {
	return func(c *Controller) { c.successTTL = d }
}

// WithConcurrency caps the number of in-flight updates during a bulk
// replace. Zero means unbounded.
func WithConcurrency(n int) Option {
	return func(c *Controller) { c.concurrency = n }
}

// New creates a controller. Its state starts empty and loading.
func New(store Store, session Session, opts ...Option) *Controller {
	c := &Controller{
		store:      store,
		session:    session,
		reporter:   LogReporter{},
		successTTL: DefaultSuccessTTL,
		state: State{
			Notes:   []models.Note{},
			Loading: true,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the controller state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.Notes = append([]models.Note(nil), c.state.Notes...)
	return s
}

// Fields returns the current search/replace input
func (c *Controller) Fields() Fields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields
}

// SetSearch updates the search term
func (c *Controller) SetSearch(term string) {
	c.mu.Lock()
	c.fields.Search = term
	c.mu.Unlock()
}

// SetReplace updates the replacement text
func (c *Controller) SetReplace(text string) {
	c.mu.Lock()
	c.fields.Replace = text
	c.mu.Unlock()
}

// SetReplaceMode toggles the replace form
func (c *Controller) SetReplaceMode(on bool) {
	c.mu.Lock()
	c.state.ReplaceMode = on
	c.mu.Unlock()
}

// Visible returns the notes matching the current search term
func (c *Controller) Visible() []models.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Filter(c.state.Notes, c.fields.Search)
}

// Load fetches the note list. It does nothing for an unauthenticated
// session. On failure the previous list is kept and a *LoadError is
// reported.
func (c *Controller) Load(ctx context.Context) {
	if !c.session.Authenticated {
		return
	}

	c.setLoading(true)
	defer c.setLoading(false)

	notes, err := c.store.ListNotes(ctx)
	if err != nil {
		c.reporter.Report(&LoadError{Err: err})
		return
	}

	c.mu.Lock()
	c.state.Notes = notes
	c.mu.Unlock()

	logger.Debug("Notes loaded", "count", strconv.Itoa(len(notes)))
}

// ReplaceReport describes the outcome of one BulkReplace call
type ReplaceReport struct {
	Search    string
	Replace   string
	Declined  bool
	Results   []ReplaceResult // one per targeted note, in list order
	ReloadErr error
}

// Failed returns the results whose update errored
func (r *ReplaceReport) Failed() []ReplaceResult {
	var failed []ReplaceResult
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Succeeded returns the ids of notes whose update landed
func (r *ReplaceReport) Succeeded() []string {
	var ids []string
	for _, res := range r.Results {
		if res.Err == nil {
			ids = append(ids, res.NoteID)
		}
	}
	return ids
}

// Err returns a *ReplaceFanOutError when the attempt did not fully land,
// nil otherwise. A declined attempt is not an error.
func (r *ReplaceReport) Err() error {
	failed := r.Failed()
	if len(failed) == 0 && r.ReloadErr == nil {
		return nil
	}
	return &ReplaceFanOutError{Total: len(r.Results), Failures: failed, ReloadErr: r.ReloadErr}
}

// BulkReplace replaces the first occurrence of the search term with the
// replacement in every note matching the search term.
//
// The user is asked first, even when the search term is empty. Once
// confirmed, every update is sent concurrently and the call waits for
// all of them. Only a fully successful fan-out reloads the list, clears
// the form and leaves replace mode. Failures are logged and flagged on
// the state; they are not sent to the reporter.
func (c *Controller) BulkReplace(ctx context.Context, confirmer Confirmer) *ReplaceReport {
	c.mu.Lock()
	fields := c.fields
	notes := c.state.Notes
	c.state.Loading = true
	c.state.Phase = PhaseConfirming
	c.mu.Unlock()

	report := &ReplaceReport{Search: fields.Search, Replace: fields.Replace}

	if !confirmer.Confirm(ctx, ConfirmPrompt(fields)) {
		c.mu.Lock()
		c.state.Loading = false
		c.state.Phase = PhaseIdle
		c.mu.Unlock()

		report.Declined = true
		logger.Debug("Bulk replace declined", "search", fields.Search)
		return report
	}

	c.mu.Lock()
	c.state.Phase = PhaseExecuting
	c.state.LastOperationFailed = false
	c.state.LastReplaceSucceeded = false
	c.mu.Unlock()

	edits := Plan(notes, fields.Search, fields.Replace)
	report.Results = c.fanOut(ctx, edits)

	if failed := report.Failed(); len(failed) > 0 {
		for _, res := range failed {
			logger.LogErr(res.Err, "bulk replace update failed", "note_id", res.NoteID)
		}
		logger.Info("Bulk replace partially applied",
			"updated", strconv.Itoa(len(report.Results)-len(failed)),
			"failed", strconv.Itoa(len(failed)))
		c.markFailed()
		return report
	}

	reloaded, err := c.store.ListNotes(ctx)
	if err != nil {
		report.ReloadErr = err
		logger.LogErr(err, "failed to reload notes after bulk replace")
		c.markFailed()
		return report
	}

	c.mu.Lock()
	c.state.Notes = reloaded
	c.fields = Fields{}
	c.state.ReplaceMode = false
	c.state.LastReplaceSucceeded = true
	c.state.Phase = PhaseSucceeded
	c.state.Loading = false
	c.scheduleSuccessClearLocked()
	c.mu.Unlock()

	logger.Info("Bulk replace completed", "updated", strconv.Itoa(len(report.Results)))
	return report
}

// fanOut sends every edit concurrently and records each outcome at the
// edit's index. Tasks never return an error to the group so one failure
// does not stop the others.
func (c *Controller) fanOut(ctx context.Context, edits []Edit) []ReplaceResult {
	results := make([]ReplaceResult, len(edits))

	var g errgroup.Group
	if c.concurrency > 0 {
		g.SetLimit(c.concurrency)
	}

	for i, edit := range edits {
		i, edit := i, edit
		g.Go(func() error {
			_, err := c.store.UpdateNote(ctx, edit.NoteID, edit.Input())
			results[i] = ReplaceResult{NoteID: edit.NoteID, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// ClearTransientSuccess drops the success flag
func (c *Controller) ClearTransientSuccess() {
	c.mu.Lock()
	c.state.LastReplaceSucceeded = false
	c.mu.Unlock()
}

// Close stops the pending success-flag timer
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.successTimer != nil {
		c.successTimer.Stop()
		c.successTimer = nil
	}
}

func (c *Controller) scheduleSuccessClearLocked() {
	if c.successTimer != nil {
		c.successTimer.Stop()
		c.successTimer = nil
	}
	if c.successTTL > 0 {
		c.successTimer = time.AfterFunc(c.successTTL, c.ClearTransientSuccess)
	}
}

func (c *Controller) markFailed() {
	c.mu.Lock()
	c.state.LastOperationFailed = true
	c.state.Phase = PhasePartiallyFailed
	c.state.Loading = false
	c.mu.Unlock()
}

func (c *Controller) setLoading(on bool) {
	c.mu.Lock()
	c.state.Loading = on
	c.mu.Unlock()
}
