package models

import (
	"encoding/base64"
	"time"

	"github.com/rohanthewiz/serr"
	"github.com/vmihailenco/msgpack/v5"
)

// Clients opt into msgpack-encoded content by sending this header
// with BodyEncodingMsgPack. Only the content field is encoded; the
// rest of the payload stays plain JSON so it remains readable in logs.
const (
	BodyEncodingHeader  = "X-Body-Encoding"
	BodyEncodingMsgPack = "msgpack"
)

// MsgPackNoteRequest is the request body used in msgpack mode
type MsgPackNoteRequest struct {
	ContentEncoded string `json:"content_encoded"` // Base64-encoded msgpack bytes
	Attachment     string `json:"attachment,omitempty"`
}

// MsgPackNoteResponse is the note representation used in msgpack mode
type MsgPackNoteResponse struct {
	ID             string    `json:"noteId"`
	ContentEncoded string    `json:"content_encoded"`
	Attachment     string    `json:"attachment,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// EncodeMsgPackContent encodes content as Base64 msgpack.
// Pipeline: string -> msgpack bytes -> Base64 string
func EncodeMsgPackContent(content string) (string, error) {
	if content == "" {
		return "", nil
	}

	msgpackBytes, err := msgpack.Marshal(content)
	if err != nil {
		return "", serr.Wrap(err, "failed to msgpack encode content")
	}
	return base64.StdEncoding.EncodeToString(msgpackBytes), nil
}

// DecodeMsgPackContent reverses EncodeMsgPackContent
func DecodeMsgPackContent(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}

	msgpackBytes, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", serr.Wrap(err, "failed to decode base64 content")
	}

	var content string
	if err := msgpack.Unmarshal(msgpackBytes, &content); err != nil {
		return "", serr.Wrap(err, "failed to unmarshal msgpack content")
	}
	return content, nil
}

// ToNoteInput decodes the request into a plain NoteInput
func (r MsgPackNoteRequest) ToNoteInput() (NoteInput, error) {
	content, err := DecodeMsgPackContent(r.ContentEncoded)
	if err != nil {
		return NoteInput{}, err
	}
	return NoteInput{Content: content, Attachment: r.Attachment}, nil
}

// NewMsgPackNoteRequest encodes a NoteInput for msgpack mode
func NewMsgPackNoteRequest(input NoteInput) (MsgPackNoteRequest, error) {
	encoded, err := EncodeMsgPackContent(input.Content)
	if err != nil {
		return MsgPackNoteRequest{}, err
	}
	return MsgPackNoteRequest{ContentEncoded: encoded, Attachment: input.Attachment}, nil
}

// ToMsgPackResponse encodes a note for msgpack mode
func (n Note) ToMsgPackResponse() (MsgPackNoteResponse, error) {
	encoded, err := EncodeMsgPackContent(n.Content)
	if err != nil {
		return MsgPackNoteResponse{}, err
	}
	return MsgPackNoteResponse{
		ID:             n.ID,
		ContentEncoded: encoded,
		Attachment:     n.Attachment,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}, nil
}

// ToNote decodes a msgpack-mode response back into a Note
func (r MsgPackNoteResponse) ToNote() (Note, error) {
	content, err := DecodeMsgPackContent(r.ContentEncoded)
	if err != nil {
		return Note{}, err
	}
	return Note{
		ID:         r.ID,
		Content:    content,
		Attachment: r.Attachment,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}, nil
}
