package app

import (
	"strings"

	"github.com/sandeepkv93/daypad/internal/commands"
	"github.com/sandeepkv93/daypad/internal/model"
	"github.com/sandeepkv93/daypad/internal/timer"
)

type View string

const (
	ViewToday View = "today"
	ViewNotes View = "notes"
	ViewTimer View = "timer"
)

// Views is the tab order.
var Views = []View{ViewToday, ViewNotes, ViewTimer}

func ParseView(raw string) (View, bool) {
	v := View(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Views {
		if v == known {
			return v, true
		}
	}
	return "", false
}

func (v View) Title() string {
	switch v {
	case ViewToday:
		return "Today"
	case ViewNotes:
		return "Notes"
	case ViewTimer:
		return "Timer"
	default:
		return string(v)
	}
}

type Forms struct {
	TaskOpen bool
	NoteOpen bool
}

// State is everything a session holds in memory. Reduce never mutates a
// State in place; documents are copied on write.
type State struct {
	Date    string
	Tasks   model.TaskDocument
	Notes   model.NoteDocument
	Theme   model.Theme
	Timer   timer.Countdown
	Presets []int
	View    View
	Forms   Forms
	// LastID is the highest id handed out so far.
	LastID int64
}

func (s State) TodayTasks() []model.Task {
	return s.Tasks.Bucket(s.Date)
}

func (s State) TodayNotes() []model.Note {
	return s.Notes.Bucket(s.Date)
}

// Rows lists today's ids in display order, for resolving row numbers.
func (s State) Rows() commands.Rows {
	tasks := s.TodayTasks()
	notes := s.TodayNotes()
	rows := commands.Rows{
		Tasks: make([]int64, 0, len(tasks)),
		Notes: make([]int64, 0, len(notes)),
	}
	for _, t := range tasks {
		rows.Tasks = append(rows.Tasks, t.ID)
	}
	for _, n := range notes {
		rows.Notes = append(rows.Notes, n.ID)
	}
	return rows
}

// Effects reports what a transition changed so the caller can persist and
// redraw only what is needed.
type Effects struct {
	PersistTasks bool
	PersistNotes bool
	PersistTheme bool

	RenderTasks bool
	RenderNotes bool
	RenderTimer bool
	RenderTheme bool
	RenderView  bool

	StartTicker    bool
	StopTicker     bool
	TimerCompleted bool

	ClearTaskInput bool
	ClearNoteInput bool
}

func (e Effects) Persist() bool {
	return e.PersistTasks || e.PersistNotes || e.PersistTheme
}

func (e Effects) Changed() bool {
	return e != Effects{}
}
