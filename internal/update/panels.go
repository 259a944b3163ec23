package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daypad/internal/app"
	"github.com/sandeepkv93/daypad/internal/model"
	"github.com/sandeepkv93/daypad/internal/views"
)

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderTaskView(s app.State, st views.Styles) string {
	return views.RenderTaskPanel(views.TaskPanelData{
		Styles:    st,
		Date:      model.DisplayDate(s.Date),
		List:      views.ProjectTasks(s.TodayTasks(), m.clock.Now()),
		Cursor:    m.taskCursor,
		FormOpen:  s.Forms.TaskOpen,
		InputView: m.taskInput.View(),
	})
}

func (m Model) renderNoteView(s app.State, st views.Styles) string {
	preview := ""
	if note, ok := m.currentNote(); ok && !s.Forms.NoteOpen {
		vp := m.notePreview
		vp.SetContent(views.RenderMarkdown(note.Content, s.Theme, m.previewWidth()))
		preview = vp.View()
	}
	return views.RenderNotePanel(views.NotePanelData{
		Styles:      st,
		Date:        model.DisplayDate(s.Date),
		List:        views.ProjectNotes(s.TodayNotes(), m.clock.Now()),
		Cursor:      m.noteCursor,
		FormOpen:    s.Forms.NoteOpen,
		EditorView:  m.noteArea.View(),
		PreviewView: strings.TrimRight(preview, " \n"),
	})
}

func (m Model) renderTimerView(s app.State, st views.Styles) string {
	return views.RenderTimerPanel(views.TimerPanelData{
		Styles:       st,
		Display:      s.Timer.Display(),
		Running:      s.Timer.Running,
		Duration:     s.Timer.Duration,
		Presets:      s.Presets,
		ProgressView: m.timerProgress.ViewAs(s.Timer.Progress()),
	})
}

func (m Model) previewWidth() int {
	w := m.width - 8
	if w < 20 {
		return 20
	}
	if w > 66 {
		return 66
	}
	return w
}

// notifyCmd sends a desktop notification off the update loop. Failures come
// back as AppErrorMsg.
func (m Model) notifyCmd(title, body string) tea.Cmd {
	if !m.DesktopEnabled || m.notifier == nil || strings.TrimSpace(body) == "" {
		return nil
	}
	notifier := m.notifier
	n := Notification{Title: title, Body: body, At: m.clock.Now()}
	return func() tea.Msg {
		if err := notifier.Send(n); err != nil {
			return AppErrorMsg{Err: fmt.Errorf("desktop notification: %w", err)}
		}
		return nil
	}
}

func clearStatusAfter(text string, d time.Duration) tea.Cmd {
	if text == "" {
		return nil
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{Text: text}
	})
}
