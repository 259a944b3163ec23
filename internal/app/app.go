package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sandeepkv93/daypad/internal/clock"
	"github.com/sandeepkv93/daypad/internal/commands"
	"github.com/sandeepkv93/daypad/internal/model"
	"github.com/sandeepkv93/daypad/internal/scheduler"
	"github.com/sandeepkv93/daypad/internal/storage"
	"github.com/sandeepkv93/daypad/internal/timer"
)

// Deps wires an App. Engine may be nil for surfaces that never run the
// timer, such as one-shot CLI commands.
type Deps struct {
	Docs         *storage.Documents
	Clock        clock.Clock
	Engine       *scheduler.Engine
	Log          *zap.Logger
	Presets      []int
	DefaultTimer int
	DefaultView  View
}

// App owns the session state and carries out the effects Reduce reports.
// It is not safe for concurrent use; the TUI calls it from Update only.
type App struct {
	state  State
	docs   *storage.Documents
	clock  clock.Clock
	engine *scheduler.Engine
	log    *zap.Logger
}

// New loads the stored documents and theme and fixes today's date key.
func New(ctx context.Context, deps Deps) (*App, error) {
	if deps.Docs == nil {
		return nil, errors.New("app: documents store is required")
	}
	if deps.Clock == nil {
		deps.Clock = clock.Real{}
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	presets := deps.Presets
	if len(presets) == 0 {
		presets = timer.DefaultPresets
	}
	duration := deps.DefaultTimer
	if !timer.IsPreset(presets, duration) {
		duration = presets[0]
	}
	view, ok := ParseView(string(deps.DefaultView))
	if !ok {
		view = ViewToday
	}

	tasks, err := deps.Docs.LoadTasks(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := deps.Docs.LoadNotes(ctx)
	if err != nil {
		return nil, err
	}
	theme, err := deps.Docs.LoadTheme(ctx)
	if err != nil {
		return nil, err
	}

	lastID := tasks.MaxID()
	if n := notes.MaxID(); n > lastID {
		lastID = n
	}
	date := model.DateKey(deps.Clock.Now())
	deps.Log.Info("session state loaded",
		zap.String("date", date),
		zap.Int("tasks_today", len(tasks.Bucket(date))),
		zap.Int("notes_today", len(notes.Bucket(date))),
		zap.String("theme", string(theme)),
	)

	return &App{
		state: State{
			Date:    date,
			Tasks:   tasks,
			Notes:   notes,
			Theme:   theme,
			Timer:   timer.New(duration),
			Presets: append([]int(nil), presets...),
			View:    view,
			LastID:  lastID,
		},
		docs:   deps.Docs,
		clock:  deps.Clock,
		engine: deps.Engine,
		log:    deps.Log,
	}, nil
}

func (a *App) State() State {
	return a.state
}

// Ticks delivers timer ticks while the countdown runs. It is nil without an
// engine.
func (a *App) Ticks() <-chan scheduler.Tick {
	if a.engine == nil {
		return nil
	}
	return a.engine.C()
}

// Dispatch resolves cmd against the visible rows, reduces it, writes every
// document the transition touched and starts or stops the ticker. When a
// write fails the in-memory state is left as it was before cmd.
func (a *App) Dispatch(ctx context.Context, cmd commands.Command) (Effects, error) {
	cmd, err := commands.Resolve(cmd, a.state.Rows())
	if err != nil {
		return Effects{}, err
	}
	if cmd.Type == commands.TypeTick && a.staleTick(cmd.Seq) {
		return Effects{}, nil
	}

	next, eff := Reduce(a.state, cmd, a.clock.Now())
	if !eff.Changed() {
		return eff, nil
	}
	if eff.Persist() {
		if err := a.persist(ctx, next, eff); err != nil {
			a.log.Error("persist failed", zap.String("command", string(cmd.Type)), zap.Error(err))
			return Effects{}, err
		}
	}
	a.state = next

	if eff.StopTicker && a.engine != nil {
		a.engine.Stop()
		a.log.Debug("timer stopped", zap.String("remaining", next.Timer.Display()))
	}
	if eff.StartTicker && a.engine != nil {
		seq, err := a.engine.Start()
		if err != nil && !errors.Is(err, scheduler.ErrAlreadyRunning) {
			return eff, fmt.Errorf("start timer: %w", err)
		}
		a.log.Debug("timer started", zap.Uint64("seq", seq), zap.String("remaining", next.Timer.Display()))
	}
	if eff.TimerCompleted {
		a.log.Info("timer complete", zap.Int("duration_minutes", next.Timer.Duration))
	}
	return eff, nil
}

// Close stops the ticker if it is running.
func (a *App) Close() {
	if a.engine != nil {
		a.engine.Stop()
	}
}

func (a *App) staleTick(seq uint64) bool {
	if a.engine == nil {
		return false
	}
	current, ok := a.engine.Current()
	return !ok || current != seq
}

func (a *App) persist(ctx context.Context, next State, eff Effects) error {
	if eff.PersistTasks {
		if err := a.docs.SaveTasks(ctx, next.Tasks); err != nil {
			return err
		}
	}
	if eff.PersistNotes {
		if err := a.docs.SaveNotes(ctx, next.Notes); err != nil {
			return err
		}
	}
	if eff.PersistTheme {
		if err := a.docs.SaveTheme(ctx, next.Theme); err != nil {
			return err
		}
	}
	return nil
}
