package app

import (
	"strings"
	"time"

	"github.com/sandeepkv93/daypad/internal/commands"
	"github.com/sandeepkv93/daypad/internal/model"
	"github.com/sandeepkv93/daypad/internal/timer"
)

// Reduce applies cmd to s and returns the next state with the effects the
// caller must carry out. It performs no I/O; now is the only time input.
// Invalid input and unknown ids yield s unchanged and no effects.
func Reduce(s State, cmd commands.Command, now time.Time) (State, Effects) {
	switch cmd.Type {
	case commands.TypeAddTask:
		return addTask(s, cmd.Text, now)
	case commands.TypeToggleTask:
		tasks, ok := model.ToggleTask(s.TodayTasks(), cmd.ID)
		if !ok {
			return s, Effects{}
		}
		s.Tasks = s.Tasks.WithBucket(s.Date, tasks)
		return s, Effects{PersistTasks: true, RenderTasks: true}
	case commands.TypeDeleteTask:
		tasks, ok := model.RemoveTask(s.TodayTasks(), cmd.ID)
		if !ok {
			return s, Effects{}
		}
		s.Tasks = s.Tasks.WithBucket(s.Date, tasks)
		return s, Effects{PersistTasks: true, RenderTasks: true}
	case commands.TypeOpenTaskForm:
		s.Forms.TaskOpen = !s.Forms.TaskOpen
		return s, Effects{RenderTasks: true}
	case commands.TypeCancelTaskForm:
		s.Forms.TaskOpen = false
		return s, Effects{RenderTasks: true, ClearTaskInput: true}

	case commands.TypeSaveNote:
		return saveNote(s, cmd.Text, now)
	case commands.TypeDeleteNote:
		notes, ok := model.RemoveNote(s.TodayNotes(), cmd.ID)
		if !ok {
			return s, Effects{}
		}
		s.Notes = s.Notes.WithBucket(s.Date, notes)
		return s, Effects{PersistNotes: true, RenderNotes: true}
	case commands.TypeOpenNoteForm:
		s.Forms.NoteOpen = !s.Forms.NoteOpen
		return s, Effects{RenderNotes: true}
	case commands.TypeCancelNoteForm:
		s.Forms.NoteOpen = false
		return s, Effects{RenderNotes: true, ClearNoteInput: true}

	case commands.TypeToggleTimer:
		return toggleTimer(s)
	case commands.TypeStartTimer:
		if s.Timer.Running {
			return s, Effects{}
		}
		return toggleTimer(s)
	case commands.TypePauseTimer:
		if !s.Timer.Running {
			return s, Effects{}
		}
		return toggleTimer(s)
	case commands.TypeResetTimer:
		eff := Effects{RenderTimer: true, StopTicker: s.Timer.Running}
		s.Timer = s.Timer.Reset()
		return s, eff
	case commands.TypeSelectDuration:
		if !timer.IsPreset(s.Presets, cmd.Minutes) {
			return s, Effects{}
		}
		eff := Effects{RenderTimer: true, StopTicker: s.Timer.Running}
		s.Timer = s.Timer.Select(cmd.Minutes)
		return s, eff
	case commands.TypeTick:
		if !s.Timer.Running {
			return s, Effects{}
		}
		next, done := s.Timer.Tick()
		s.Timer = next
		return s, Effects{RenderTimer: true, StopTicker: done, TimerCompleted: done}

	case commands.TypeToggleTheme:
		s.Theme = s.Theme.Toggle()
		return s, Effects{PersistTheme: true, RenderTheme: true}
	case commands.TypeSelectView:
		v, ok := ParseView(cmd.View)
		if !ok {
			return s, Effects{}
		}
		s.View = v
		return s, Effects{RenderView: true}
	default:
		return s, Effects{}
	}
}

func addTask(s State, text string, now time.Time) (State, Effects) {
	text = strings.TrimSpace(text)
	if text == "" {
		return s, Effects{}
	}
	id := model.NextID(now, s.LastID)
	s.LastID = id
	s.Tasks = s.Tasks.WithBucket(s.Date, model.PrependTask(s.TodayTasks(), model.NewTask(id, text, now)))
	s.Forms.TaskOpen = false
	return s, Effects{PersistTasks: true, RenderTasks: true, ClearTaskInput: true}
}

func saveNote(s State, content string, now time.Time) (State, Effects) {
	content = strings.TrimSpace(content)
	if content == "" {
		return s, Effects{}
	}
	id := model.NextID(now, s.LastID)
	s.LastID = id
	s.Notes = s.Notes.WithBucket(s.Date, model.PrependNote(s.TodayNotes(), model.NewNote(id, content, now)))
	s.Forms.NoteOpen = false
	return s, Effects{PersistNotes: true, RenderNotes: true, ClearNoteInput: true}
}

func toggleTimer(s State) (State, Effects) {
	s.Timer = s.Timer.Toggle()
	if s.Timer.Running {
		return s, Effects{RenderTimer: true, StartTicker: true}
	}
	return s, Effects{RenderTimer: true, StopTicker: true}
}
