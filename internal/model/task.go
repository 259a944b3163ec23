package model

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidID        = errors.New("model: invalid id")
	ErrInvalidCreatedAt = errors.New("model: invalid created_at")
)

type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}

func NewTask(id int64, text string, now time.Time) Task {
	return Task{
		ID:        id,
		Text:      strings.TrimSpace(text),
		Completed: false,
		CreatedAt: FormatTimestamp(now),
	}
}

func (t Task) Validate() error {
	if t.ID <= 0 {
		return ErrInvalidID
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	if _, err := ParseTimestamp(t.CreatedAt); err != nil {
		return ErrInvalidCreatedAt
	}
	return nil
}

// TaskDocument maps a date key to that day's tasks, most recent first.
type TaskDocument map[string][]Task

func (d TaskDocument) Bucket(date string) []Task {
	if d == nil {
		return nil
	}
	return d[date]
}

// WithBucket returns a copy of the document with the bucket for date replaced.
// The receiver is left untouched.
func (d TaskDocument) WithBucket(date string, tasks []Task) TaskDocument {
	out := make(TaskDocument, len(d)+1)
	for k, v := range d {
		out[k] = v
	}
	if tasks == nil {
		tasks = []Task{}
	}
	out[date] = tasks
	return out
}

func (d TaskDocument) MaxID() int64 {
	var highest int64
	for _, bucket := range d {
		for _, t := range bucket {
			if t.ID > highest {
				highest = t.ID
			}
		}
	}
	return highest
}

func PrependTask(tasks []Task, t Task) []Task {
	out := make([]Task, 0, len(tasks)+1)
	out = append(out, t)
	return append(out, tasks...)
}

// ToggleTask flips Completed on the task with id. The second result is false
// when no task matched.
func ToggleTask(tasks []Task, id int64) ([]Task, bool) {
	idx := indexOfTask(tasks, id)
	if idx < 0 {
		return tasks, false
	}
	out := make([]Task, len(tasks))
	copy(out, tasks)
	out[idx].Completed = !out[idx].Completed
	return out, true
}

func RemoveTask(tasks []Task, id int64) ([]Task, bool) {
	idx := indexOfTask(tasks, id)
	if idx < 0 {
		return tasks, false
	}
	out := make([]Task, 0, len(tasks)-1)
	out = append(out, tasks[:idx]...)
	return append(out, tasks[idx+1:]...), true
}

func indexOfTask(tasks []Task, id int64) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
