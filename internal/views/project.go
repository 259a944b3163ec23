package views

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sandeepkv93/daypad/internal/model"
)

const (
	NoTasksPlaceholder = "No tasks yet"
	NoNotesPlaceholder = "No notes yet"
)

type TaskRow struct {
	ID        int64
	Text      string
	Completed bool
	Age       string
}

// TaskListView is the projection of one day's tasks. Placeholder is set only
// when Rows is empty and is never addressable as a row.
type TaskListView struct {
	Rows        []TaskRow
	Placeholder string
}

type NoteRow struct {
	ID      int64
	Content string
	Age     string
}

type NoteListView struct {
	Rows        []NoteRow
	Placeholder string
}

func ProjectTasks(tasks []model.Task, now time.Time) TaskListView {
	if len(tasks) == 0 {
		return TaskListView{Rows: []TaskRow{}, Placeholder: NoTasksPlaceholder}
	}
	rows := make([]TaskRow, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, TaskRow{ID: t.ID, Text: t.Text, Completed: t.Completed, Age: age(t.CreatedAt, now)})
	}
	return TaskListView{Rows: rows}
}

func ProjectNotes(notes []model.Note, now time.Time) NoteListView {
	if len(notes) == 0 {
		return NoteListView{Rows: []NoteRow{}, Placeholder: NoNotesPlaceholder}
	}
	rows := make([]NoteRow, 0, len(notes))
	for _, n := range notes {
		rows = append(rows, NoteRow{ID: n.ID, Content: n.Content, Age: age(n.CreatedAt, now)})
	}
	return NoteListView{Rows: rows}
}

func age(createdAt string, now time.Time) string {
	created, err := model.ParseTimestamp(createdAt)
	if err != nil {
		return ""
	}
	return humanize.RelTime(created, now, "ago", "from now")
}
