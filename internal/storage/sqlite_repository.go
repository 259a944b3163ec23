package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"github.com/sandeepkv93/daypad/internal/clock"
)

const sqliteTimeLayout = time.RFC3339Nano

const (
	// DriverCGO is mattn/go-sqlite3.
	DriverCGO = "sqlite3"
	// DriverPure is modernc.org/sqlite.
	DriverPure = "sqlite"
)

func init() {
	sqlx.BindDriver(DriverPure, sqlx.QUESTION)
}

type SQLiteRepository struct {
	db    *sqlx.DB
	clock clock.Clock
}

func NewSQLiteRepository(db *sqlx.DB, c clock.Clock) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if c == nil {
		c = clock.Real{}
	}
	return &SQLiteRepository{db: db, clock: c}, nil
}

// OpenSQLite opens (creating if needed) the database at path with the named
// driver and applies pending migrations.
func OpenSQLite(driver, path string, c clock.Clock) (*SQLiteRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage: db path is empty")
	}
	dsn, err := sqliteDSN(driver, path)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := MigrateUp(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db, c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func sqliteDSN(driver, path string) (string, error) {
	if strings.HasPrefix(path, "file:") {
		return path, nil
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: path}
	q := u.Query()
	q.Set("mode", "rwc")
	switch driver {
	case DriverCGO:
		q.Set("_busy_timeout", "5000")
	case DriverPure:
		q.Set("_pragma", "busy_timeout(5000)")
	default:
		return "", fmt.Errorf("storage: unsupported driver %q", driver)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, `SELECT value FROM kv WHERE key = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, key, value string) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at)
		VALUES (:key, :value, :updated_at)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		Entry{Key: key, Value: value, UpdatedAt: mustTime(r.clock.Now())},
	)
	return err
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
	query := `SELECT key, value, updated_at FROM kv`
	args := make([]any, 0, 3)
	if filter.Prefix != "" {
		query += ` WHERE key LIKE ? ESCAPE '\'`
		args = append(args, escapeLike(filter.Prefix)+"%")
	}
	query += ` ORDER BY key ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	out := make([]Entry, 0)
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func escapeLike(v string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(v)
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		if limit <= 0 {
			sql += " LIMIT -1"
		}
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
