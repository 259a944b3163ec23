package model

import (
	"errors"
	"strings"
	"time"
)

type Note struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

func NewNote(id int64, content string, now time.Time) Note {
	return Note{
		ID:        id,
		Content:   strings.TrimSpace(content),
		CreatedAt: FormatTimestamp(now),
	}
}

func (n Note) Validate() error {
	if n.ID <= 0 {
		return ErrInvalidID
	}
	if strings.TrimSpace(n.Content) == "" {
		return errors.New("model: note content is required")
	}
	if _, err := ParseTimestamp(n.CreatedAt); err != nil {
		return ErrInvalidCreatedAt
	}
	return nil
}

type NoteDocument map[string][]Note

func (d NoteDocument) Bucket(date string) []Note {
	if d == nil {
		return nil
	}
	return d[date]
}

func (d NoteDocument) WithBucket(date string, notes []Note) NoteDocument {
	out := make(NoteDocument, len(d)+1)
	for k, v := range d {
		out[k] = v
	}
	if notes == nil {
		notes = []Note{}
	}
	out[date] = notes
	return out
}

func (d NoteDocument) MaxID() int64 {
	var highest int64
	for _, bucket := range d {
		for _, n := range bucket {
			if n.ID > highest {
				highest = n.ID
			}
		}
	}
	return highest
}

func PrependNote(notes []Note, n Note) []Note {
	out := make([]Note, 0, len(notes)+1)
	out = append(out, n)
	return append(out, notes...)
}

func RemoveNote(notes []Note, id int64) ([]Note, bool) {
	for i, n := range notes {
		if n.ID != id {
			continue
		}
		out := make([]Note, 0, len(notes)-1)
		out = append(out, notes[:i]...)
		return append(out, notes[i+1:]...), true
	}
	return notes, false
}
