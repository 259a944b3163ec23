package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daypad/internal/app"
	"github.com/sandeepkv93/daypad/internal/commands"
)

func (m Model) handleTimerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ", "enter":
		return m.dispatch(commands.ToggleTimer())
	case "r":
		return m.dispatch(commands.ResetTimer())
	case "p", "right", "l":
		s := m.app.State()
		return m.dispatch(commands.SelectDuration(nextPreset(s.Presets, s.Timer.Duration, 1)))
	case "left", "h":
		s := m.app.State()
		return m.dispatch(commands.SelectDuration(nextPreset(s.Presets, s.Timer.Duration, -1)))
	}
	return m, nil
}

// waitForTickCmd blocks on the engine channel for the next tick. The model
// keeps at most one outstanding.
func waitForTickCmd(a *app.App) tea.Cmd {
	ch := a.Ticks()
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		tick, ok := <-ch
		if !ok {
			return nil
		}
		return TimerTickMsg{Tick: tick}
	}
}
