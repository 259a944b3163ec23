package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sandeepkv93/daypad/internal/app"
	"github.com/sandeepkv93/daypad/internal/clock"
	"github.com/sandeepkv93/daypad/internal/config"
	"github.com/sandeepkv93/daypad/internal/logging"
	"github.com/sandeepkv93/daypad/internal/scheduler"
	"github.com/sandeepkv93/daypad/internal/storage"
)

// Session bundles everything one daypad run needs. Close releases it.
type Session struct {
	ID     string
	Config config.Config
	Clock  clock.Clock
	Log    *zap.Logger
	App    *app.App

	// Store is the key-value store under App. May be nil.
	Store storage.Repository

	closers []func() error
}

// Opener builds a Session. Tests substitute one backed by memory storage.
type Opener func(ctx context.Context, opts config.Options) (*Session, error)

func (s *Session) Close() error {
	var errs []error
	if s.App != nil {
		s.App.Close()
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenSession loads the configuration, opens the SQLite store and restores
// the persisted state.
func OpenSession(ctx context.Context, opts config.Options) (*Session, error) {
	cfg, err := config.Load(opts)
	if err != nil {
		return nil, err
	}

	base, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	log := base.With(zap.String("session", id))

	s := &Session{ID: id, Config: cfg, Clock: clock.Real{}, Log: log}
	s.closers = append(s.closers, func() error {
		_ = log.Sync()
		return nil
	})

	repo, err := storage.OpenSQLite(cfg.Driver, cfg.DBPath, s.Clock)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.Store = repo
	s.closers = append(s.closers, repo.Close)
	log.Info("store opened", zap.String("driver", cfg.Driver), zap.String("path", cfg.DBPath))

	engine, err := scheduler.NewEngine(s.Clock, time.Second, cfg.TickBuffer)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("create ticker: %w", err)
	}

	a, err := app.New(ctx, app.Deps{
		Docs:         storage.NewDocuments(repo, log),
		Clock:        s.Clock,
		Engine:       engine,
		Log:          log,
		Presets:      cfg.TimerPresets,
		DefaultTimer: cfg.DefaultTimer,
		DefaultView:  app.View(cfg.DefaultView),
	})
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.App = a
	return s, nil
}

// NewSession wraps an already built App. Used by tests and embedders.
func NewSession(a *app.App, c clock.Clock, cfg config.Config) *Session {
	if c == nil {
		c = clock.Real{}
	}
	return &Session{
		ID:     uuid.NewString(),
		Config: cfg,
		Clock:  c,
		Log:    zap.NewNop(),
		App:    a,
	}
}
