package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"scratch/client"
	"scratch/models"
	"scratch/notelist"
)

// fakeAPI is an in-memory notes server speaking the JSON envelope
type fakeAPI struct {
	mu    sync.Mutex
	notes []models.Note
	fail  map[string]bool
	puts  int
}

func writeEnvelope(w http.ResponseWriter, status int, data interface{}, errMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": errMsg == "",
		"data":    data,
		"error":   errMsg,
	})
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/v1/auth/login":
		var input models.UserLoginInput
		json.NewDecoder(r.Body).Decode(&input)
		if input.Password != "secret" {
			writeEnvelope(w, http.StatusUnauthorized, nil, "invalid credentials")
			return
		}
		writeEnvelope(w, http.StatusOK, map[string]string{"token": "tok-" + input.Username}, "")

	case r.Header.Get("Authorization") != "Bearer tok":
		writeEnvelope(w, http.StatusUnauthorized, nil, "authentication required")

	case r.Method == http.MethodGet && r.URL.Path == "/api/v1/notes":
		writeEnvelope(w, http.StatusOK, f.notes, "")

	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/api/v1/notes/"):
		id := strings.TrimPrefix(r.URL.Path, "/api/v1/notes/")
		f.puts++
		if f.fail[id] {
			writeEnvelope(w, http.StatusInternalServerError, nil, "update failed")
			return
		}
		var input models.NoteInput
		json.NewDecoder(r.Body).Decode(&input)
		for i := range f.notes {
			if f.notes[i].ID == id {
				f.notes[i].Content = input.Content
				f.notes[i].Attachment = input.Attachment
				writeEnvelope(w, http.StatusOK, f.notes[i], "")
				return
			}
		}
		writeEnvelope(w, http.StatusNotFound, nil, "note not found")

	default:
		writeEnvelope(w, http.StatusNotFound, nil, "not found")
	}
}

func (f *fakeAPI) content(id string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notes {
		if n.ID == id {
			return n.Content
		}
	}
	return ""
}

func (f *fakeAPI) putCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.puts
}

// setup starts a fake API and points the config at it. token is written
// to the session file unless empty.
func setup(t *testing.T, token string) (*fakeAPI, string) {
	t.Helper()

	created := time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC)
	api := &fakeAPI{
		notes: []models.Note{
			{ID: "1", Content: "foo bar", Attachment: "a.png", CreatedAt: created},
			{ID: "2", Content: "baz", CreatedAt: created},
			{ID: "3", Content: "foo foo", CreatedAt: created},
		},
		fail: map[string]bool{},
	}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	tokenPath := filepath.Join(t.TempDir(), "token")
	if token != "" {
		if err := client.SaveToken(tokenPath, token); err != nil {
			t.Fatalf("SaveToken: %v", err)
		}
	}

	t.Setenv("SCRATCH_API_URL", srv.URL)
	t.Setenv("SCRATCH_TOKEN_PATH", tokenPath)
	t.Setenv("SCRATCH_LOG_LEVEL", "error")
	return api, tokenPath
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestList(t *testing.T) {
	setup(t, "tok")

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name: "all notes",
			args: []string{"list"},
			want: []string{"foo bar", "baz", "foo foo", "Created: "},
		},
		{
			name:    "filtered",
			args:    []string{"list", "--search", "foo"},
			want:    []string{"foo bar", "foo foo"},
			notWant: []string{"baz"},
		},
		{
			name: "no match",
			args: []string{"list", "-s", "FOO"},
			want: []string{"No results"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "", tt.args...)
			if err != nil {
				t.Fatalf("list failed: %v\n%s", err, out)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestListRequiresSession(t *testing.T) {
	setup(t, "")

	_, err := run(t, "", "list")
	if !errors.Is(err, errNotLoggedIn) {
		t.Errorf("err = %v, want errNotLoggedIn", err)
	}
}

func TestListExpiredSession(t *testing.T) {
	setup(t, "stale")

	_, err := run(t, "", "list")
	if err == nil || !client.IsUnauthorized(err) {
		t.Errorf("err = %v, want an unauthorized error", err)
	}
}

func TestReplaceDryRun(t *testing.T) {
	api, _ := setup(t, "tok")

	out, err := run(t, "", "replace", "--search", "foo", "--replace", "qux", "--dry-run")
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if !strings.Contains(out, "[-foo-]{+qux+} bar") {
		t.Errorf("preview missing diff:\n%s", out)
	}
	if !strings.Contains(out, "2 note(s) will be updated.") {
		t.Errorf("preview missing count:\n%s", out)
	}
	if api.putCount() != 0 {
		t.Errorf("dry run sent %d updates", api.putCount())
	}
}

func TestReplacePrompt(t *testing.T) {
	tests := []struct {
		name      string
		stdin     string
		wantPuts  int
		wantOut   string
		wantNote1 string
	}{
		{"confirmed", "y\n", 2, notelist.SuccessMessage, "qux bar"},
		{"declined", "n\n", 0, "Cancelled.", "foo bar"},
		{"no answer", "", 0, "Cancelled.", "foo bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, _ := setup(t, "tok")

			out, err := run(t, tt.stdin, "replace", "-s", "foo", "-r", "qux")
			if err != nil {
				t.Fatalf("replace failed: %v\n%s", err, out)
			}
			if !strings.Contains(out, "Are you sure you want to replace all instances of foo with qux? [y/N]") {
				t.Errorf("prompt missing:\n%s", out)
			}
			if !strings.Contains(out, tt.wantOut) {
				t.Errorf("output missing %q:\n%s", tt.wantOut, out)
			}
			if got := api.putCount(); got != tt.wantPuts {
				t.Errorf("updates sent = %d, want %d", got, tt.wantPuts)
			}
			if got := api.content("1"); got != tt.wantNote1 {
				t.Errorf("note 1 = %q, want %q", got, tt.wantNote1)
			}
		})
	}
}

func TestReplaceOnlyFirstOccurrence(t *testing.T) {
	api, _ := setup(t, "tok")

	if _, err := run(t, "", "replace", "-s", "foo", "-r", "qux", "--yes"); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if got := api.content("3"); got != "qux foo" {
		t.Errorf("note 3 = %q, want %q", got, "qux foo")
	}
	if got := api.content("2"); got != "baz" {
		t.Errorf("non-matching note changed to %q", got)
	}
}

func TestReplacePartialFailure(t *testing.T) {
	api, _ := setup(t, "tok")
	api.fail["3"] = true

	out, err := run(t, "", "replace", "-s", "foo", "-r", "qux", "--yes")

	var fanOut *notelist.ReplaceFanOutError
	if !errors.As(err, &fanOut) {
		t.Fatalf("err = %v, want *ReplaceFanOutError", err)
	}
	if ids := fanOut.FailedIDs(); len(ids) != 1 || ids[0] != "3" {
		t.Errorf("failed ids = %v", ids)
	}
	if !strings.Contains(out, notelist.FailureMessage) || !strings.Contains(out, "3: ") {
		t.Errorf("output should report the failure:\n%s", out)
	}
	// The successful update is kept
	if got := api.content("1"); got != "qux bar" {
		t.Errorf("note 1 = %q, want %q", got, "qux bar")
	}
}

func TestLogin(t *testing.T) {
	_, tokenPath := setup(t, "")

	out, err := run(t, "", "login", "-u", "alice", "-p", "secret")
	if err != nil {
		t.Fatalf("login failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Logged in as alice") {
		t.Errorf("output = %q", out)
	}
	token, err := client.LoadToken(tokenPath)
	if err != nil || token != "tok-alice" {
		t.Errorf("saved token = %q, %v", token, err)
	}

	if _, err := run(t, "", "logout"); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := os.Stat(tokenPath); !os.IsNotExist(err) {
		t.Error("logout should remove the token file")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	_, tokenPath := setup(t, "")

	_, err := run(t, "", "login", "-u", "alice", "-p", "nope")
	if !client.IsUnauthorized(err) {
		t.Errorf("err = %v, want unauthorized", err)
	}
	if token, _ := client.LoadToken(tokenPath); token != "" {
		t.Error("a failed login should not save a session")
	}
}

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"  y  \n", true},
		{"y", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
		{"", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		confirmer := promptConfirmer(strings.NewReader(tt.input), &out)
		if got := confirmer.Confirm(context.Background(), "Sure?"); got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if !strings.HasPrefix(out.String(), "Sure? [y/N] ") {
			t.Errorf("prompt = %q", out.String())
		}
	}
}
