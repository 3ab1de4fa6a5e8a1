package models

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rohanthewiz/serr"
)

// Note is a single user note. Content is free multi-line text whose
// first line doubles as the title; Attachment is an opaque reference
// the store keeps alongside it.
type Note struct {
	ID         string    `json:"noteId"`
	UserGUID   string    `json:"userId,omitempty"`
	Content    string    `json:"content"`
	Attachment string    `json:"attachment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NoteInput is the writable part of a note. Updates replace both
// fields wholesale; there are no partial-field semantics.
type NoteInput struct {
	Content    string `json:"content"`
	Attachment string `json:"attachment,omitempty"`
}

// CreateNotesTableSQL returns the DDL for the notes table.
// note_id is a uuid assigned on create and never changes.
// content_iv is set when content holds AES-GCM ciphertext.
const CreateNotesTableSQL = `
CREATE TABLE IF NOT EXISTS notes (
    note_id    VARCHAR PRIMARY KEY,
    user_guid  VARCHAR NOT NULL,
    content    VARCHAR NOT NULL,
    content_iv VARCHAR,
    attachment VARCHAR,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// Title returns the first line of the trimmed content
func (n Note) Title() string {
	title, _, _ := strings.Cut(strings.TrimSpace(n.Content), "\n")
	return strings.TrimSpace(title)
}

// CreatedLayout formats creation times in note lists
const CreatedLayout = "1/2/2006, 3:04:05 PM"

// CreatedLabel is the "Created: ..." line shown under a note title
func (n Note) CreatedLabel() string {
	return "Created: " + n.CreatedAt.Local().Format(CreatedLayout)
}

// Input returns the writable fields of the note
func (n Note) Input() NoteInput {
	return NoteInput{Content: n.Content, Attachment: n.Attachment}
}

const noteColumns = `note_id, user_guid, content, content_iv, attachment, created_at, updated_at`

// CreateNote stores a new note owned by userGUID
func CreateNote(userGUID string, input NoteInput) (*Note, error) {
	if userGUID == "" {
		return nil, serr.New("user guid is required")
	}

	now := time.Now().UTC()
	note := &Note{
		ID:         uuid.NewString(),
		UserGUID:   userGUID,
		Content:    input.Content,
		Attachment: input.Attachment,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	stored, iv, err := sealContent(note.Content)
	if err != nil {
		return nil, err
	}

	_, err = writeDB(`
		INSERT INTO notes (`+noteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, note.ID, note.UserGUID, stored, nullString(iv), nullString(note.Attachment), note.CreatedAt, note.UpdatedAt)
	if err != nil {
		return nil, serr.Wrap(err, "failed to create note")
	}

	return note, nil
}

// ListNotes returns every note owned by userGUID, oldest first
func ListNotes(userGUID string) ([]Note, error) {
	rows, err := queryDB(`
		SELECT `+noteColumns+`
		FROM notes
		WHERE user_guid = ?
		ORDER BY created_at ASC, note_id ASC
	`, userGUID)
	if err != nil {
		return nil, serr.Wrap(err, "failed to list notes")
	}
	defer rows.Close()

	return scanNotes(rows)
}

// GetNote retrieves one note owned by userGUID.
// Returns nil, nil if the note does not exist.
func GetNote(userGUID, id string) (*Note, error) {
	row, err := queryRowDB(`
		SELECT `+noteColumns+`
		FROM notes
		WHERE user_guid = ? AND note_id = ?
	`, userGUID, id)
	if err != nil {
		return nil, err
	}

	note, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, serr.Wrap(err, "failed to get note", "id", id)
	}
	return note, nil
}

// UpdateNote replaces the content and attachment of a note.
// Returns nil, nil if the note does not exist for this user.
func UpdateNote(userGUID, id string, input NoteInput) (*Note, error) {
	stored, iv, err := sealContent(input.Content)
	if err != nil {
		return nil, err
	}

	affected, err := writeDB(`
		UPDATE notes
		SET content = ?, content_iv = ?, attachment = ?, updated_at = ?
		WHERE user_guid = ? AND note_id = ?
	`, stored, nullString(iv), nullString(input.Attachment), time.Now().UTC(), userGUID, id)
	if err != nil {
		return nil, serr.Wrap(err, "failed to update note", "id", id)
	}
	if affected == 0 {
		return nil, nil
	}

	return GetNote(userGUID, id)
}

// DeleteNote removes a note. Reports false when nothing matched.
func DeleteNote(userGUID, id string) (bool, error) {
	affected, err := writeDB(`DELETE FROM notes WHERE user_guid = ? AND note_id = ?`, userGUID, id)
	if err != nil {
		return false, serr.Wrap(err, "failed to delete note", "id", id)
	}
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNote(row rowScanner) (*Note, error) {
	var note Note
	var iv, attachment sql.NullString
	err := row.Scan(&note.ID, &note.UserGUID, &note.Content, &iv, &attachment,
		&note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return nil, err
	}

	note.Content, err = openContent(note.Content, iv.String)
	if err != nil {
		return nil, serr.Wrap(err, "failed to decrypt note", "id", note.ID)
	}
	note.Attachment = attachment.String
	return &note, nil
}

func scanNotes(rows *sql.Rows) ([]Note, error) {
	notes := []Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, serr.Wrap(err, "failed to scan note")
		}
		notes = append(notes, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.Wrap(err, "failed to iterate notes")
	}
	return notes, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
