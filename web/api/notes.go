package api

import (
	"encoding/json"
	"net/http"

	"scratch/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// APIResponse provides a consistent JSON response structure for all API endpoints.
// Success responses include data, error responses include an error message.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// writeSuccess sends a successful JSON response with data.
func writeSuccess(ctx rweb.Context, status int, data interface{}) error {
	ctx.SetStatus(status)
	return ctx.WriteJSON(APIResponse{Success: true, Data: data})
}

// writeError sends an error JSON response.
func writeError(ctx rweb.Context, status int, message string) error {
	ctx.SetStatus(status)
	return ctx.WriteJSON(APIResponse{Success: false, Error: message})
}

// wantsMsgPack reports whether the client asked for msgpack-encoded content
func wantsMsgPack(ctx rweb.Context) bool {
	return ctx.Request().Header(models.BodyEncodingHeader) == models.BodyEncodingMsgPack
}

// decodeNoteInput reads a note body in either plain or msgpack form
func decodeNoteInput(ctx rweb.Context) (models.NoteInput, error) {
	body := ctx.Request().Body()

	if !wantsMsgPack(ctx) {
		var input models.NoteInput
		if err := json.Unmarshal(body, &input); err != nil {
			return input, serr.Wrap(err, "failed to decode request body")
		}
		return input, nil
	}

	var req models.MsgPackNoteRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return models.NoteInput{}, serr.Wrap(err, "failed to decode msgpack request body")
	}
	return req.ToNoteInput()
}

// noteData shapes a note for the response, msgpack-encoding content when asked
func noteData(ctx rweb.Context, note models.Note) (interface{}, error) {
	if !wantsMsgPack(ctx) {
		return note, nil
	}
	return note.ToMsgPackResponse()
}

// CreateNote handles POST /api/v1/notes
func CreateNote(ctx rweb.Context) error {
	userGUID := GetCurrentUserGUID(ctx)

	input, err := decodeNoteInput(ctx)
	if err != nil {
		logger.LogErr(err, "invalid note body")
		return writeError(ctx, http.StatusBadRequest, "invalid JSON body")
	}

	note, err := models.CreateNote(userGUID, input)
	if err != nil {
		logger.LogErr(serr.Wrap(err, "failed to create note"), "database error")
		return writeError(ctx, http.StatusInternalServerError, "failed to create note")
	}

	data, err := noteData(ctx, *note)
	if err != nil {
		logger.LogErr(err, "failed to encode note", "id", note.ID)
		return writeError(ctx, http.StatusInternalServerError, "failed to encode note")
	}

	logger.Info("Note created", "id", note.ID)
	return writeSuccess(ctx, http.StatusCreated, data)
}

// GetNote handles GET /api/v1/notes/:id
func GetNote(ctx rweb.Context) error {
	id := ctx.Request().Param("id")

	note, err := models.GetNote(GetCurrentUserGUID(ctx), id)
	if err != nil {
		logger.LogErr(serr.Wrap(err, "failed to get note"), "database error")
		return writeError(ctx, http.StatusInternalServerError, "database error")
	}
	if note == nil {
		return writeError(ctx, http.StatusNotFound, "note not found")
	}

	data, err := noteData(ctx, *note)
	if err != nil {
		logger.LogErr(err, "failed to encode note", "id", id)
		return writeError(ctx, http.StatusInternalServerError, "failed to encode note")
	}
	return writeSuccess(ctx, http.StatusOK, data)
}

// ListNotes handles GET /api/v1/notes
// Returns every note of the authenticated user, oldest first.
func ListNotes(ctx rweb.Context) error {
	notes, err := models.ListNotes(GetCurrentUserGUID(ctx))
	if err != nil {
		logger.LogErr(serr.Wrap(err, "failed to list notes"), "database error")
		return writeError(ctx, http.StatusInternalServerError, "database error")
	}

	if !wantsMsgPack(ctx) {
		return writeSuccess(ctx, http.StatusOK, notes)
	}

	encoded := make([]models.MsgPackNoteResponse, 0, len(notes))
	for _, note := range notes {
		resp, err := note.ToMsgPackResponse()
		if err != nil {
			logger.LogErr(err, "failed to encode note", "id", note.ID)
			return writeError(ctx, http.StatusInternalServerError, "failed to encode notes")
		}
		encoded = append(encoded, resp)
	}
	return writeSuccess(ctx, http.StatusOK, encoded)
}

// UpdateNote handles PUT /api/v1/notes/:id
// The body replaces both content and attachment.
func UpdateNote(ctx rweb.Context) error {
	id := ctx.Request().Param("id")

	input, err := decodeNoteInput(ctx)
	if err != nil {
		logger.LogErr(err, "invalid note body", "id", id)
		return writeError(ctx, http.StatusBadRequest, "invalid JSON body")
	}

	note, err := models.UpdateNote(GetCurrentUserGUID(ctx), id, input)
	if err != nil {
		logger.LogErr(serr.Wrap(err, "failed to update note"), "database error")
		return writeError(ctx, http.StatusInternalServerError, "failed to update note")
	}
	if note == nil {
		return writeError(ctx, http.StatusNotFound, "note not found")
	}

	data, err := noteData(ctx, *note)
	if err != nil {
		logger.LogErr(err, "failed to encode note", "id", id)
		return writeError(ctx, http.StatusInternalServerError, "failed to encode note")
	}

	logger.Info("Note updated", "id", note.ID)
	return writeSuccess(ctx, http.StatusOK, data)
}

// DeleteNote handles DELETE /api/v1/notes/:id
func DeleteNote(ctx rweb.Context) error {
	id := ctx.Request().Param("id")

	deleted, err := models.DeleteNote(GetCurrentUserGUID(ctx), id)
	if err != nil {
		logger.LogErr(serr.Wrap(err, "failed to delete note"), "database error")
		return writeError(ctx, http.StatusInternalServerError, "failed to delete note")
	}
	if !deleted {
		return writeError(ctx, http.StatusNotFound, "note not found")
	}

	logger.Info("Note deleted", "id", id)
	return writeSuccess(ctx, http.StatusOK, map[string]interface{}{"deleted": true, "id": id})
}
