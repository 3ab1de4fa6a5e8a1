// Package tui is the terminal front end of the note list: a filterable
// list of notes with a search and replace form.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"scratch/notelist"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focus int

const (
	focusList focus = iota
	focusSearch
	focusReplace
)

// --- Messages ---

type loadedMsg struct{}

// confirmRequestMsg carries a prompt from a running bulk replace that
// is blocked until answer receives a value
type confirmRequestMsg struct {
	prompt string
	detail string
	answer chan<- bool
}

type replaceDoneMsg struct {
	report *notelist.ReplaceReport
}

type clearSuccessMsg struct{}

// loadErrors keeps the last load failure reported by the controller,
// which calls in from a command goroutine
type loadErrors struct {
	mu  sync.Mutex
	err error
}

func (l *loadErrors) Report(err error) {
	notelist.LogReporter{}.Report(err)
	l.mu.Lock()
	l.err = err
	l.mu.Unlock()
}

func (l *loadErrors) take() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	err := l.err
	l.err = nil
	return err
}

// Model is the bubbletea model for the note list
type Model struct {
	ctrl          *notelist.Controller
	authenticated bool
	successTTL    time.Duration

	search  textinput.Model
	replace textinput.Model
	focus   focus
	confirm confirmDialog
	spinner spinner.Model

	loadErrs *loadErrors
	loadErr  error

	// events carries messages out of a running bulk replace
	events        chan tea.Msg
	pendingAnswer chan<- bool
	running       bool

	width, height int
}

// New builds the model and its controller. The controller must not be
// shared; the model clears the success flag itself on a timer.
func New(store notelist.Store, session notelist.Session, opts ...notelist.Option) Model {
	loadErrs := &loadErrors{}
	opts = append(opts, notelist.WithReporter(loadErrs), notelist.WithSuccessTTL(0))

	search := textinput.New()
	search.Prompt = ""
	search.Placeholder = "search notes"
	search.CharLimit = 256

	replace := textinput.New()
	replace.Prompt = ""
	replace.Placeholder = "replace with"
	replace.CharLimit = 256

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return Model{
		ctrl:          notelist.New(store, session, opts...),
		authenticated: session.Authenticated,
		successTTL:    notelist.DefaultSuccessTTL,
		search:        search,
		replace:       replace,
		confirm:       newConfirmDialog(),
		spinner:       sp,
		loadErrs:      loadErrs,
	}
}

// Controller exposes the underlying note list controller
func (m Model) Controller() *notelist.Controller {
	return m.ctrl
}

func (m Model) Init() tea.Cmd {
	if !m.authenticated {
		return nil
	}
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m Model) loadCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctrl.Load(context.Background())
		return loadedMsg{}
	}
}

// startReplace runs the bulk replace off the update loop. The confirmer
// hands its prompt to the dialog and blocks until the user answers.
func (m *Model) startReplace() tea.Cmd {
	events := make(chan tea.Msg)
	m.events = events
	m.running = true

	ctrl := m.ctrl
	fields := ctrl.Fields()
	edits := notelist.Plan(ctrl.State().Notes, fields.Search, fields.Replace)

	confirmer := notelist.ConfirmFunc(func(ctx context.Context, prompt string) bool {
		answer := make(chan bool, 1)
		events <- confirmRequestMsg{prompt: prompt, detail: planSummary(edits), answer: answer}
		return <-answer
	})

	go func() {
		report := ctrl.BulkReplace(context.Background(), confirmer)
		events <- replaceDoneMsg{report: report}
	}()

	return tea.Batch(waitForEvent(events), m.spinner.Tick)
}

func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

func planSummary(edits []notelist.Edit) string {
	switch len(edits) {
	case 0:
		return "No notes match."
	case 1:
		return "1 note will be updated."
	default:
		return fmt.Sprintf("%d notes will be updated.", len(edits))
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.search.Width = max(msg.Width-16, 10)
		m.replace.Width = max(msg.Width-16, 10)
		return m, nil

	case loadedMsg:
		m.loadErr = m.loadErrs.take()
		return m, nil

	case confirmRequestMsg:
		m.pendingAnswer = msg.answer
		m.confirm.Activate(msg.prompt, msg.detail)
		return m, nil

	case ConfirmedMsg:
		return m.answer(true)

	case CancelledMsg:
		return m.answer(false)

	case replaceDoneMsg:
		m.running = false
		m.events = nil
		if msg.report.Declined {
			return m, nil
		}
		if m.ctrl.State().LastReplaceSucceeded {
			// The controller cleared the form and left replace mode
			m.search.SetValue("")
			m.replace.SetValue("")
			m.blur()
			return m, tea.Tick(m.successTTL, func(time.Time) tea.Msg { return clearSuccessMsg{} })
		}
		return m, nil

	case clearSuccessMsg:
		m.ctrl.ClearTransientSuccess()
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.State().Loading && !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) answer(yes bool) (tea.Model, tea.Cmd) {
	if m.pendingAnswer == nil {
		return m, nil
	}
	m.pendingAnswer <- yes
	m.pendingAnswer = nil
	return m, waitForEvent(m.events)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.confirm.Active {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}

	if !m.authenticated {
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.focus != focusList {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Search):
		cmd := m.focusOn(focusSearch)
		return m, cmd
	case key.Matches(msg, keys.Replace):
		return m.toggleReplace()
	case key.Matches(msg, keys.Reload):
		if m.running {
			return m, nil
		}
		return m, tea.Batch(m.loadCmd(), m.spinner.Tick)
	case key.Matches(msg, keys.Submit):
		return m.submit()
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Blur):
		m.blur()
		return m, nil
	case key.Matches(msg, keys.Next):
		if !m.ctrl.State().ReplaceMode {
			return m, nil
		}
		next := focusSearch
		if m.focus == focusSearch {
			next = focusReplace
		}
		cmd := m.focusOn(next)
		return m, cmd
	case key.Matches(msg, keys.Submit):
		if m.ctrl.State().ReplaceMode {
			return m.submit()
		}
		m.blur()
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusSearch {
		m.search, cmd = m.search.Update(msg)
		m.ctrl.SetSearch(m.search.Value())
	} else {
		m.replace, cmd = m.replace.Update(msg)
		m.ctrl.SetReplace(m.replace.Value())
	}
	return m, cmd
}

func (m Model) toggleReplace() (tea.Model, tea.Cmd) {
	on := !m.ctrl.State().ReplaceMode
	m.ctrl.SetReplaceMode(on)
	if on {
		cmd := m.focusOn(focusReplace)
		return m, cmd
	}
	m.blur()
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.running || !m.ctrl.State().ReplaceMode {
		return m, nil
	}
	m.blur()
	cmd := m.startReplace()
	return m, cmd
}

func (m *Model) focusOn(f focus) tea.Cmd {
	m.blur()
	m.focus = f
	if f == focusReplace {
		return m.replace.Focus()
	}
	return m.search.Focus()
}

func (m *Model) blur() {
	m.focus = focusList
	m.search.Blur()
	m.replace.Blur()
}

// --- View ---

func (m Model) View() string {
	if !m.authenticated {
		return appStyle.Render(m.landerView())
	}

	state := m.ctrl.State()
	var sections []string

	sections = append(sections, titleStyle.Render("Your Notes"))

	if state.LastReplaceSucceeded {
		sections = append(sections, successStyle.Render(notelist.SuccessMessage))
	}
	if state.LastOperationFailed {
		sections = append(sections, dangerStyle.Render(notelist.FailureMessage))
	}
	if m.loadErr != nil {
		sections = append(sections, dangerStyle.Render("Could not load notes: "+m.loadErr.Error()))
	}

	sections = append(sections, labelStyle.Render("Search")+m.search.View())
	if state.ReplaceMode {
		sections = append(sections, labelStyle.Render("Replace")+m.replace.View())
	}

	if m.confirm.Active {
		sections = append(sections, m.confirm.View())
	} else if state.Loading || m.running {
		sections = append(sections, m.spinner.View()+" Loading...")
	} else {
		sections = append(sections, m.listView())
	}

	sections = append(sections, faintStyle.Render(keys.helpLine(state.ReplaceMode)))

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) landerView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Scratch"),
		"A simple note taking app",
		"",
		faintStyle.Render("Run `scratch login` or `scratch register` to get started.  q quit"),
	)
}

func (m Model) listView() string {
	visible := m.ctrl.Visible()
	if len(visible) == 0 {
		return faintStyle.Render("No results")
	}

	// Each row takes two lines; leave room for the header and the form
	limit := len(visible)
	if m.height > 0 {
		limit = min(limit, max((m.height-12)/2, 1))
	}

	var b strings.Builder
	for i, note := range visible[:limit] {
		if i > 0 {
			b.WriteString("\n")
		}
		title := note.Title()
		if title == "" {
			title = "(empty)"
		}
		b.WriteString(noteStyle.Render(title) + "\n")
		b.WriteString(faintStyle.Render(note.CreatedLabel()))
	}
	if limit < len(visible) {
		b.WriteString("\n" + faintStyle.Render(fmt.Sprintf("... %d more", len(visible)-limit)))
	}
	return b.String()
}
