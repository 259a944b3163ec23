package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daypad/internal/commands"
	"github.com/sandeepkv93/daypad/internal/model"
)

func (m Model) handleNoteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.noteCursor > 0 {
			m.noteCursor--
		}
	case "down", "j":
		if m.noteCursor < len(m.app.State().TodayNotes())-1 {
			m.noteCursor++
		}
	case "a", "n":
		next, cmd := m.dispatch(commands.OpenNoteForm())
		if next.app.State().Forms.NoteOpen {
			next.noteArea.Focus()
		}
		return next, cmd
	case "d", "delete":
		if note, ok := m.currentNote(); ok {
			return m.dispatch(commands.DeleteNote(note.ID))
		}
	case "y":
		if note, ok := m.currentNote(); ok {
			return m, copyNoteCmd(m.copyText, note.Content)
		}
	}
	return m, nil
}

// copyNoteCmd writes to the clipboard outside Update.
func copyNoteCmd(copyText func(string) error, content string) tea.Cmd {
	return func() tea.Msg {
		if err := copyText(content); err != nil {
			return AppErrorMsg{Err: fmt.Errorf("copy failed: %w", err)}
		}
		return SetStatusMsg{Text: "note copied to clipboard"}
	}
}

func (m Model) handleNoteFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.dispatch(commands.CancelNoteForm())
	case "ctrl+s":
		before := len(m.app.State().TodayNotes())
		next, cmd := m.dispatch(commands.SaveNote(m.noteArea.Value()))
		if len(next.app.State().TodayNotes()) > before {
			next.noteCursor = 0
		}
		return next, cmd
	}
	var cmd tea.Cmd
	m.noteArea, cmd = m.noteArea.Update(msg)
	return m, cmd
}

func (m Model) currentNote() (model.Note, bool) {
	notes := m.app.State().TodayNotes()
	if m.noteCursor < 0 || m.noteCursor >= len(notes) {
		return model.Note{}, false
	}
	return notes[m.noteCursor], true
}
