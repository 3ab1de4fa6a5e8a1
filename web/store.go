package web

import (
	"context"

	"scratch/models"

	"github.com/rohanthewiz/serr"
)

// userNoteStore serves a note list controller straight from the
// database, scoped to one user.
type userNoteStore struct {
	userGUID string
}

func (s userNoteStore) ListNotes(ctx context.Context) ([]models.Note, error) {
	return models.ListNotes(s.userGUID)
}

func (s userNoteStore) UpdateNote(ctx context.Context, id string, input models.NoteInput) (*models.Note, error) {
	note, err := models.UpdateNote(s.userGUID, id, input)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, serr.New("note not found")
	}
	return note, nil
}
