package notelist

import (
	"fmt"
	"strings"

	"scratch/models"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Edit is the update a bulk replace will send for one note
type Edit struct {
	NoteID     string
	Title      string
	Attachment string
	Before     string
	After      string
}

// Input is the full-replacement payload for the store
func (e Edit) Input() models.NoteInput {
	return models.NoteInput{Content: e.After, Attachment: e.Attachment}
}

// Changed reports whether the update alters the content at all
func (e Edit) Changed() bool {
	return e.Before != e.After
}

// Diff renders the change inline, deletions as [-text-] and
// insertions as {+text+}.
func (e Edit) Diff() string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(e.Before, e.After, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+" + d.Text + "+}")
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

// Plan computes the edits a bulk replace would issue: one per note
// matching search, each replacing the first occurrence only. Notes keep
// their own attachment.
func Plan(notes []models.Note, search, replace string) []Edit {
	targets := Filter(notes, search)
	edits := make([]Edit, len(targets))
	for i, note := range targets {
		edits[i] = Edit{
			NoteID:     note.ID,
			Title:      note.Title(),
			Attachment: note.Attachment,
			Before:     note.Content,
			After:      ReplaceFirst(note.Content, search, replace),
		}
	}
	return edits
}

// ConfirmPrompt is the question asked before a bulk replace runs
func ConfirmPrompt(fields Fields) string {
	prompt := fmt.Sprintf("Are you sure you want to replace all instances of %s with %s?",
		fields.Search, fields.Replace)
	if fields.Search == "" {
		prompt += " The search is empty, so every note will be modified."
	}
	return prompt
}
