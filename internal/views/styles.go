package views

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/daypad/internal/model"
)

type Styles struct {
	Theme     model.Theme
	Header    lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Panel     lipgloss.Style
	Selected  lipgloss.Style
	Done      lipgloss.Style
	Muted     lipgloss.Style
	Timer     lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Footer    lipgloss.Style
	Modal     lipgloss.Style
}

type palette struct {
	fg, accent, muted, ok, bad, border lipgloss.Color
}

var palettes = map[model.Theme]palette{
	model.ThemeLight: {fg: "0", accent: "4", muted: "8", ok: "2", bad: "1", border: "7"},
	model.ThemeDark:  {fg: "15", accent: "12", muted: "8", ok: "10", bad: "9", border: "8"},
}

func StylesFor(theme model.Theme) Styles {
	p, ok := palettes[theme]
	if !ok {
		theme = model.ThemeLight
		p = palettes[theme]
	}
	return Styles{
		Theme:     theme,
		Header:    lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		Tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(p.muted),
		ActiveTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(p.accent),
		Panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border).Padding(0, 1),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(p.fg),
		Done:      lipgloss.NewStyle().Strikethrough(true).Foreground(p.muted),
		Muted:     lipgloss.NewStyle().Foreground(p.muted),
		Timer:     lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		Status:    lipgloss.NewStyle().Foreground(p.ok),
		Error:     lipgloss.NewStyle().Foreground(p.bad),
		Footer:    lipgloss.NewStyle().Foreground(p.muted),
		Modal:     lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(p.accent).Padding(1, 4).Bold(true),
	}
}
