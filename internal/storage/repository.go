package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

const (
	// KeyPrefix is shared by every key daypad writes.
	KeyPrefix = "productivity-"

	KeyTasks = "productivity-tasks"
	KeyNotes = "productivity-notes"
	KeyTheme = "productivity-theme"
)

// Repository is a durable string key-value store. Put overwrites the whole
// value stored under key.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, filter ListFilter) ([]Entry, error)
}

type Entry struct {
	Key       string `db:"key"`
	Value     string `db:"value"`
	UpdatedAt string `db:"updated_at"`
}

type ListFilter struct {
	Prefix string
	Limit  int
	Offset int
}
