package notelist

import (
	"strings"

	"scratch/models"
)

// Filter returns the notes whose content contains term, in their
// original order. Matching is case-sensitive and an empty term matches
// every note. The input slice is never modified.
func Filter(notes []models.Note, term string) []models.Note {
	matched := make([]models.Note, 0, len(notes))
	for _, note := range notes {
		if strings.Contains(note.Content, term) {
			matched = append(matched, note)
		}
	}
	return matched
}

// ReplaceFirst substitutes only the first occurrence of search.
// An empty search inserts replace at the start of content.
func ReplaceFirst(content, search, replace string) string {
	return strings.Replace(content, search, replace, 1)
}
