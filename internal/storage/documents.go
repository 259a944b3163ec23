package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sandeepkv93/daypad/internal/model"
)

// Documents stores the three logical documents on top of a Repository. Each
// save rewrites the whole document under its key.
type Documents struct {
	repo Repository
	log  *zap.Logger
}

func NewDocuments(repo Repository, log *zap.Logger) *Documents {
	if log == nil {
		log = zap.NewNop()
	}
	return &Documents{repo: repo, log: log}
}

func (d *Documents) LoadTasks(ctx context.Context) (model.TaskDocument, error) {
	doc, err := loadJSON[model.TaskDocument](ctx, d, KeyTasks)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return model.TaskDocument{}, nil
	}
	for date, tasks := range doc {
		kept := tasks[:0]
		for _, t := range tasks {
			if err := t.Validate(); err != nil {
				d.log.Warn("dropping invalid task", zap.String("date", date), zap.Int64("id", t.ID), zap.Error(err))
				continue
			}
			kept = append(kept, t)
		}
		doc[date] = kept
	}
	return doc, nil
}

func (d *Documents) SaveTasks(ctx context.Context, doc model.TaskDocument) error {
	if doc == nil {
		doc = model.TaskDocument{}
	}
	return d.saveJSON(ctx, KeyTasks, doc)
}

func (d *Documents) LoadNotes(ctx context.Context) (model.NoteDocument, error) {
	doc, err := loadJSON[model.NoteDocument](ctx, d, KeyNotes)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return model.NoteDocument{}, nil
	}
	for date, notes := range doc {
		kept := notes[:0]
		for _, n := range notes {
			if err := n.Validate(); err != nil {
				d.log.Warn("dropping invalid note", zap.String("date", date), zap.Int64("id", n.ID), zap.Error(err))
				continue
			}
			kept = append(kept, n)
		}
		doc[date] = kept
	}
	return doc, nil
}

func (d *Documents) SaveNotes(ctx context.Context, doc model.NoteDocument) error {
	if doc == nil {
		doc = model.NoteDocument{}
	}
	return d.saveJSON(ctx, KeyNotes, doc)
}

func (d *Documents) LoadTheme(ctx context.Context) (model.Theme, error) {
	raw, err := d.repo.Get(ctx, KeyTheme)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.ThemeLight, nil
		}
		return model.ThemeLight, fmt.Errorf("load %s: %w", KeyTheme, err)
	}
	return model.ParseTheme(raw), nil
}

func (d *Documents) SaveTheme(ctx context.Context, theme model.Theme) error {
	if err := d.repo.Put(ctx, KeyTheme, string(model.ParseTheme(string(theme)))); err != nil {
		return fmt.Errorf("save %s: %w", KeyTheme, err)
	}
	return nil
}

// loadJSON decodes the document under key. Absent or malformed documents
// decode to the zero value; only repository failures are returned.
func loadJSON[T any](ctx context.Context, d *Documents, key string) (T, error) {
	var out T
	raw, err := d.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return out, nil
		}
		return out, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		d.log.Warn("discarding malformed document", zap.String("key", key), zap.Error(err))
		var zero T
		return zero, nil
	}
	return out, nil
}

func (d *Documents) saveJSON(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := d.repo.Put(ctx, key, string(payload)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
