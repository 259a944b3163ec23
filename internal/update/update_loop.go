package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daypad/internal/app"
	"github.com/sandeepkv93/daypad/internal/commands"
	"github.com/sandeepkv93/daypad/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("daypad")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		if typed.Width > 0 {
			m.width = typed.Width
		}
		return m, nil
	case TimerTickMsg:
		m.waiting = false
		next, cmd := m.dispatch(commands.Tick(typed.Tick.Seq))
		return next, cmd
	case SwitchViewMsg:
		next, cmd := m.dispatch(commands.SelectView(string(typed.View)))
		return next, cmd
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, clearStatusAfter(typed.Text, statusTTL)
	case ClearStatusMsg:
		if typed.Text == "" || typed.Text == m.Status.Text {
			m.Status = StatusBar{}
		}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		m.app.Close()
		return m, tea.Quit
	}

	// The completion alert blocks everything until acknowledged.
	if m.Alert != "" {
		switch keyStr {
		case "enter", "esc", " ":
			m.Alert = ""
			m.Status = StatusBar{Text: "timer acknowledged"}
		}
		return m, nil
	}

	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}

	s := m.app.State()
	if s.View == app.ViewToday && s.Forms.TaskOpen {
		return m.handleTaskFormKey(msg)
	}
	if s.View == app.ViewNotes && s.Forms.NoteOpen {
		return m.handleNoteFormKey(msg)
	}

	switch keyStr {
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Today:
		return m.dispatch(commands.SelectView(string(app.ViewToday)))
	case m.Keys.Notes:
		return m.dispatch(commands.SelectView(string(app.ViewNotes)))
	case m.Keys.Timer:
		return m.dispatch(commands.SelectView(string(app.ViewTimer)))
	case m.Keys.Theme:
		return m.dispatch(commands.ToggleTheme())
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		m.app.Close()
		return m, tea.Quit
	}

	switch s.View {
	case app.ViewToday:
		return m.handleTaskKey(msg)
	case app.ViewNotes:
		return m.handleNoteKey(msg)
	case app.ViewTimer:
		return m.handleTimerKey(msg)
	}
	return m, nil
}

// dispatch hands cmd to the App and applies the reported effects to the
// terminal side: input buffers, cursors, the alert and the tick subscription.
func (m Model) dispatch(cmd commands.Command) (Model, tea.Cmd) {
	eff, err := m.app.Dispatch(m.ctx, cmd)
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	if eff.ClearTaskInput {
		m.taskInput.SetValue("")
		m.taskInput.Blur()
	}
	if eff.ClearNoteInput {
		m.noteArea.Reset()
		m.noteArea.Blur()
	}
	if eff.RenderTasks {
		m.taskCursor = clampCursor(m.taskCursor, len(m.app.State().TodayTasks()))
	}
	if eff.RenderNotes {
		m.noteCursor = clampCursor(m.noteCursor, len(m.app.State().TodayNotes()))
	}
	if eff.RenderTheme {
		m.Status = StatusBar{Text: fmt.Sprintf("theme: %s", m.app.State().Theme)}
	}
	var cmds []tea.Cmd
	if eff.TimerCompleted {
		m.Alert = completionText
		cmds = append(cmds, m.notifyCmd("daypad", completionText))
	}
	if m.app.State().Timer.Running && !m.waiting {
		m.waiting = true
		cmds = append(cmds, waitForTickCmd(m.app))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	s := m.app.State()
	st := views.StylesFor(s.Theme)

	tabs := make([]views.Tab, 0, len(app.Views))
	keys := map[app.View]string{app.ViewToday: m.Keys.Today, app.ViewNotes: m.Keys.Notes, app.ViewTimer: m.Keys.Timer}
	for _, v := range app.Views {
		tabs = append(tabs, views.Tab{Key: keys[v], Title: v.Title(), Active: v == s.View})
	}
	tabBar := views.RenderTabs(st, tabs, s.Theme.Glyph())

	if m.Alert != "" {
		return views.RenderApp(views.AppData{
			Styles: st,
			Tabs:   tabBar,
			Modal:  views.RenderCompletionModal(st, m.Alert),
		})
	}

	var body string
	switch s.View {
	case app.ViewNotes:
		body = m.renderNoteView(s, st)
	case app.ViewTimer:
		body = m.renderTimerView(s, st)
	default:
		body = m.renderTaskView(s, st)
	}
	if help := m.renderHelpIfVisible(); help != "" {
		body = strings.TrimSpace(body) + "\n\n" + help
	}

	return views.RenderApp(views.AppData{
		Styles:        st,
		Tabs:          tabBar,
		Body:          body,
		Palette:       m.renderCommandPalette(),
		Status:        m.Status.Text,
		StatusIsError: m.Status.IsError,
		Footer: fmt.Sprintf("keys: %s today | %s notes | %s timer | %s theme | / cmd | %s help | %s quit",
			m.Keys.Today, m.Keys.Notes, m.Keys.Timer, m.Keys.Theme, m.Keys.Help, m.Keys.Quit),
	})
}
