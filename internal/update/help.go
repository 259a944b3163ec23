package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/daypad/internal/app"
	"github.com/sandeepkv93/daypad/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.app.State().View),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Today, Action: "switch to Today"},
		{Key: m.Keys.Notes, Action: "switch to Notes"},
		{Key: m.Keys.Timer, Action: "switch to Timer"},
		{Key: m.Keys.Theme, Action: "toggle light/dark theme"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.app.State().View {
	case app.ViewToday:
		return []KeyBinding{
			{Key: "a", Action: "add task"},
			{Key: "j/k", Action: "move selection"},
			{Key: "space", Action: "toggle completed"},
			{Key: "d", Action: "delete task"},
		}
	case app.ViewNotes:
		return []KeyBinding{
			{Key: "a", Action: "write note (ctrl+s saves)"},
			{Key: "j/k", Action: "move selection"},
			{Key: "d", Action: "delete note"},
			{Key: "y", Action: "copy note"},
		}
	case app.ViewTimer:
		return []KeyBinding{
			{Key: "space", Action: "start/pause timer"},
			{Key: "r", Action: "reset timer"},
			{Key: "p/h/l", Action: "change duration"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
