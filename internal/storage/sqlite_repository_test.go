package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/daypad/internal/clock"
)

func setupRepo(t *testing.T, driver string) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "daypad-test.db")
	fake := clock.NewFake(time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC))
	repo, err := OpenSQLite(driver, dbPath, fake)
	if err != nil {
		t.Fatalf("open sqlite (%s): %v", driver, err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestKVCRUDAndList(t *testing.T) {
	for _, driver := range []string{DriverCGO, DriverPure} {
		t.Run(driver, func(t *testing.T) {
			repo := setupRepo(t, driver)
			ctx := context.Background()

			if _, err := repo.Get(ctx, KeyTasks); err != ErrNotFound {
				t.Fatalf("expected ErrNotFound for absent key, got: %v", err)
			}

			if err := repo.Put(ctx, KeyTasks, `{"2026-02-09":[]}`); err != nil {
				t.Fatalf("put: %v", err)
			}
			if err := repo.Put(ctx, KeyTasks, `{}`); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, err := repo.Get(ctx, KeyTasks)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got != `{}` {
				t.Fatalf("expected overwritten value, got %q", got)
			}

			if err := repo.Put(ctx, KeyTheme, "dark"); err != nil {
				t.Fatalf("put theme: %v", err)
			}
			if err := repo.Put(ctx, "other_key", "x"); err != nil {
				t.Fatalf("put other: %v", err)
			}

			entries, err := repo.List(ctx, ListFilter{Prefix: "productivity-"})
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(entries) != 2 || entries[0].Key != KeyTasks || entries[1].Key != KeyTheme {
				t.Fatalf("unexpected list: %#v", entries)
			}
			if entries[0].UpdatedAt != "2026-02-09T12:00:00Z" {
				t.Fatalf("unexpected updated_at: %q", entries[0].UpdatedAt)
			}

			underscore, err := repo.List(ctx, ListFilter{Prefix: "other_"})
			if err != nil {
				t.Fatalf("list underscore prefix: %v", err)
			}
			if len(underscore) != 1 {
				t.Fatalf("expected literal underscore match, got %#v", underscore)
			}

			paged, err := repo.List(ctx, ListFilter{Limit: 1, Offset: 1})
			if err != nil {
				t.Fatalf("list paged: %v", err)
			}
			if len(paged) != 1 || paged[0].Key != KeyTasks {
				t.Fatalf("unexpected page: %#v", paged)
			}

			if err := repo.Delete(ctx, KeyTheme); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if err := repo.Delete(ctx, KeyTheme); err != ErrNotFound {
				t.Fatalf("expected ErrNotFound on second delete, got: %v", err)
			}
		})
	}
}

func TestKVSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "reopen.db")
	repo, err := OpenSQLite(DriverPure, dbPath, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := repo.Put(context.Background(), KeyTheme, "dark"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenSQLite(DriverPure, dbPath, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.Get(context.Background(), KeyTheme)
	if err != nil || got != "dark" {
		t.Fatalf("expected persisted theme, got %q err=%v", got, err)
	}
}

func TestOpenSQLiteRejectsUnknownDriver(t *testing.T) {
	if _, err := OpenSQLite("postgres", filepath.Join(t.TempDir(), "x.db"), nil); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	if _, err := OpenSQLite(DriverPure, "  ", nil); err == nil {
		t.Fatal("expected error for empty path")
	}
}
