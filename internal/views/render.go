package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/daypad/internal/model"
)

type AppData struct {
	Styles Styles
	Tabs   string
	Body   string
	Status string
	// StatusIsError switches the status line to the error style.
	StatusIsError bool
	Palette       string
	Footer        string
	Modal         string
}

func RenderApp(data AppData) string {
	st := data.Styles
	if data.Modal != "" {
		return lipgloss.JoinVertical(lipgloss.Left, data.Tabs, data.Modal)
	}

	lines := []string{
		data.Tabs,
		st.Panel.Width(72).Render(data.Body),
	}
	if data.Palette != "" {
		lines = append(lines, data.Palette)
	}
	if data.Status != "" {
		if data.StatusIsError {
			lines = append(lines, st.Error.Render(data.Status))
		} else {
			lines = append(lines, st.Status.Render(data.Status))
		}
	}
	if data.Footer != "" {
		lines = append(lines, st.Footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders md with the glamour style matching theme, falling
// back to the raw text.
func RenderMarkdown(md string, theme model.Theme, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "light"
	if theme == model.ThemeDark {
		style = "dark"
	}
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
