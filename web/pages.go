package web

import (
	"context"
	"net/http"
	"strings"

	"scratch/models"
	"scratch/notelist"
	"scratch/web/api"
	"scratch/web/pages/auth"
	"scratch/web/pages/landing"
	"scratch/web/pages/shared"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// pageSession is a request-scoped note list controller for the signed-in user
type pageSession struct {
	ctrl    *notelist.Controller
	page    shared.Page
	loadErr error
}

func newPageSession(c rweb.Context) *pageSession {
	ps := &pageSession{}
	username, _ := c.Get("username").(string)
	ps.page = shared.Page{Title: "Notes", Username: username}

	reporter := notelist.ReporterFunc(func(err error) {
		ps.loadErr = err
		notelist.LogReporter{}.Report(err)
	})

	// The page is rendered once per request, so the success flag never needs a timer
	ps.ctrl = notelist.New(
		userNoteStore{userGUID: api.GetCurrentUserGUID(c)},
		notelist.Session{Authenticated: api.IsAuthenticated(c)},
		notelist.WithReporter(reporter),
		notelist.WithSuccessTTL(0),
	)
	ps.ctrl.Load(context.Background())
	return ps
}

func (ps *pageSession) render(c rweb.Context, confirm *landing.ConfirmPanel) error {
	defer ps.ctrl.Close()

	state := ps.ctrl.State()
	if ps.loadErr != nil {
		state.LastOperationFailed = true
	}

	page := landing.NotesPage{
		Page:    ps.page,
		State:   state,
		Fields:  ps.ctrl.Fields(),
		Visible: ps.ctrl.Visible(),
		Confirm: confirm,
	}
	return c.WriteHTML(page.Render())
}

// homePage handles GET /
// Anonymous visitors get the lander; signed-in users get their notes
// filtered by ?search= with ?replace=1 opening the replace form.
func homePage(c rweb.Context) error {
	if !api.IsAuthenticated(c) {
		return c.WriteHTML(landing.NewLanderPage().Render())
	}

	ps := newPageSession(c)
	ps.ctrl.SetSearch(c.Request().QueryParam("search"))
	ps.ctrl.SetReplaceMode(c.Request().QueryParam("replace") == "1")
	return ps.render(c, nil)
}

// replaceSubmit handles POST /replace
// Without a confirm value it shows the confirmation panel with a preview
// of every edit. confirm=yes runs the bulk replace, confirm=no declines it.
func replaceSubmit(c rweb.Context) error {
	if !api.IsAuthenticated(c) {
		return c.Redirect(http.StatusFound, "/login")
	}

	ps := newPageSession(c)
	ps.ctrl.SetReplaceMode(true)
	ps.ctrl.SetSearch(c.Request().FormValue("search"))
	ps.ctrl.SetReplace(c.Request().FormValue("replace"))

	answer := c.Request().FormValue("confirm")
	if answer == "" {
		fields := ps.ctrl.Fields()
		edits := notelist.Plan(ps.ctrl.State().Notes, fields.Search, fields.Replace)
		return ps.render(c, landing.NewConfirmPanel(fields, edits))
	}

	report := ps.ctrl.BulkReplace(context.Background(), notelist.Answer(answer == "yes"))
	if err := report.Err(); err != nil {
		c.SetStatus(http.StatusBadGateway)
	}
	return ps.render(c, nil)
}

// newNotePage handles GET /notes/new
func newNotePage(c rweb.Context) error {
	if !api.IsAuthenticated(c) {
		return c.Redirect(http.StatusFound, "/login")
	}
	username, _ := c.Get("username").(string)
	return c.WriteHTML(landing.NewNotePage{Page: shared.Page{Title: "New note", Username: username}}.Render())
}

// createNoteSubmit handles POST /notes
func createNoteSubmit(c rweb.Context) error {
	if !api.IsAuthenticated(c) {
		return c.Redirect(http.StatusFound, "/login")
	}

	input := models.NoteInput{
		Content:    c.Request().FormValue("content"),
		Attachment: strings.TrimSpace(c.Request().FormValue("attachment")),
	}
	if strings.TrimSpace(input.Content) == "" {
		username, _ := c.Get("username").(string)
		page := landing.NewNotePage{
			Page:  shared.Page{Title: "New note", Username: username},
			Error: "Note content is required",
		}
		c.SetStatus(http.StatusBadRequest)
		return c.WriteHTML(page.Render())
	}

	note, err := models.CreateNote(api.GetCurrentUserGUID(c), input)
	if err != nil {
		return serr.Wrap(err, "failed to create note from form")
	}

	logger.Info("Note created", "id", note.ID)
	return c.Redirect(http.StatusFound, "/")
}

func loginPage(c rweb.Context) error {
	return c.WriteHTML(auth.NewLoginPage().Render())
}

// loginSubmit handles POST /login
func loginSubmit(c rweb.Context) error {
	input := models.UserLoginInput{
		Username: c.Request().FormValue("username"),
		Password: c.Request().FormValue("password"),
	}

	resp, status, err := api.LoginUser(input)
	if err != nil {
		page := auth.NewLoginPage()
		page.Error = err.Error()
		page.Username = input.Username
		c.SetStatus(status)
		return c.WriteHTML(page.Render())
	}
	return startSession(c, resp.Token)
}

func registerPage(c rweb.Context) error {
	return c.WriteHTML(auth.NewRegisterPage().Render())
}

// registerSubmit handles POST /register
func registerSubmit(c rweb.Context) error {
	input := models.UserRegisterInput{
		Username: c.Request().FormValue("username"),
		Password: c.Request().FormValue("password"),
	}

	resp, status, err := api.RegisterUser(input)
	if err != nil {
		page := auth.NewRegisterPage()
		page.Error = err.Error()
		page.Username = input.Username
		c.SetStatus(status)
		return c.WriteHTML(page.Render())
	}
	return startSession(c, resp.Token)
}

// logoutSubmit handles POST /logout
func logoutSubmit(c rweb.Context) error {
	if err := c.SetCookie(tokenCookie, ""); err != nil {
		logger.LogErr(err, "failed to clear token cookie")
	}
	return c.Redirect(http.StatusFound, "/")
}

func startSession(c rweb.Context, token string) error {
	if err := c.SetCookie(tokenCookie, token); err != nil {
		return serr.Wrap(err, "failed to set token cookie")
	}
	return c.Redirect(http.StatusFound, "/")
}
