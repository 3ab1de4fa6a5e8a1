// Package client talks to the scratch notes API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"scratch/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

const notesPath = "/api/v1/notes"

// Client is a thin JSON client for the notes API. It carries the
// bearer token of the current session; an empty token means anonymous.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	msgpack bool
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithMsgPack sends and receives note content msgpack-encoded
func WithMsgPack(enabled bool) Option {
	return func(c *Client) { c.msgpack = enabled }
}

// New creates a client for the API rooted at baseURL
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the bearer token in use
func (c *Client) Token() string {
	return c.token
}

// Authenticated reports whether the client holds a session token
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// apiResponse mirrors the server's JSON envelope
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type authResponse struct {
	Token string `json:"token"`
}

// Health pings the API
func (c *Client) Health(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/api/v1/health", nil, nil)
}

// Register creates an account and adopts the returned token
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	return c.authenticate(ctx, "/api/v1/auth/register", username, password)
}

// Login exchanges credentials for a token and adopts it
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	return c.authenticate(ctx, "/api/v1/auth/login", username, password)
}

func (c *Client) authenticate(ctx context.Context, path, username, password string) (string, error) {
	input := models.UserLoginInput{Username: username, Password: password}

	var resp authResponse
	if err := c.doJSON(ctx, http.MethodPost, path, input, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &RequestError{Op: "POST " + path, Status: http.StatusOK, Message: "response missing token"}
	}

	c.token = resp.Token
	return resp.Token, nil
}

// ListNotes fetches every note of the session user
func (c *Client) ListNotes(ctx context.Context) ([]models.Note, error) {
	if !c.msgpack {
		var notes []models.Note
		if err := c.doJSON(ctx, http.MethodGet, notesPath, nil, &notes); err != nil {
			return nil, err
		}
		return notes, nil
	}

	var encoded []models.MsgPackNoteResponse
	if err := c.doJSON(ctx, http.MethodGet, notesPath, nil, &encoded); err != nil {
		return nil, err
	}

	notes := make([]models.Note, 0, len(encoded))
	for _, enc := range encoded {
		note, err := enc.ToNote()
		if err != nil {
			return nil, serr.Wrap(err, "failed to decode note", "id", enc.ID)
		}
		notes = append(notes, note)
	}
	return notes, nil
}

// CreateNote stores a new note
func (c *Client) CreateNote(ctx context.Context, input models.NoteInput) (*models.Note, error) {
	return c.writeNote(ctx, http.MethodPost, notesPath, input)
}

// UpdateNote replaces the content and attachment of note id
func (c *Client) UpdateNote(ctx context.Context, id string, input models.NoteInput) (*models.Note, error) {
	return c.writeNote(ctx, http.MethodPut, notesPath+"/"+url.PathEscape(id), input)
}

func (c *Client) writeNote(ctx context.Context, method, path string, input models.NoteInput) (*models.Note, error) {
	if !c.msgpack {
		var note models.Note
		if err := c.doJSON(ctx, method, path, input, &note); err != nil {
			return nil, err
		}
		return &note, nil
	}

	req, err := models.NewMsgPackNoteRequest(input)
	if err != nil {
		return nil, err
	}

	var encoded models.MsgPackNoteResponse
	if err := c.doJSON(ctx, method, path, req, &encoded); err != nil {
		return nil, err
	}

	note, err := encoded.ToNote()
	if err != nil {
		return nil, serr.Wrap(err, "failed to decode note", "id", encoded.ID)
	}
	return &note, nil
}

// doJSON sends body as JSON and decodes the envelope's data into out.
// Any failure comes back as a *RequestError.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Op: op, Err: serr.Wrap(err, "failed to marshal request")}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.msgpack {
		req.Header.Set(models.BodyEncodingHeader, models.BodyEncodingMsgPack)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	logger.Debug("API request completed", "op", op, "status", strconv.Itoa(resp.StatusCode),
		"duration", time.Since(start).String())

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Op: op, Status: resp.StatusCode, Err: err}
	}

	var envelope apiResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &envelope); err != nil && resp.StatusCode < 300 {
			return &RequestError{Op: op, Status: resp.StatusCode, Err: serr.Wrap(err, "failed to decode response")}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := envelope.Error
		if msg == "" {
			msg = strings.TrimSpace(http.StatusText(resp.StatusCode))
		}
		return &RequestError{Op: op, Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return &RequestError{Op: op, Status: resp.StatusCode, Err: serr.Wrap(err, "failed to decode response data")}
		}
	}
	return nil
}
