package views

import (
	"fmt"
	"strings"
)

type Tab struct {
	Key    string
	Title  string
	Active bool
}

type TaskPanelData struct {
	Styles    Styles
	Date      string
	List      TaskListView
	Cursor    int
	FormOpen  bool
	InputView string
}

type NotePanelData struct {
	Styles      Styles
	Date        string
	List        NoteListView
	Cursor      int
	FormOpen    bool
	EditorView  string
	PreviewView string
}

type TimerPanelData struct {
	Styles       Styles
	Display      string
	Running      bool
	Duration     int
	Presets      []int
	ProgressView string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

// RenderTabs draws the view switcher with exactly one highlighted tab and the
// theme indicator glyph at the end.
func RenderTabs(st Styles, tabs []Tab, glyph string) string {
	parts := make([]string, 0, len(tabs)+2)
	parts = append(parts, st.Header.Render("daypad"))
	for _, tab := range tabs {
		label := fmt.Sprintf("%s %s", tab.Key, tab.Title)
		if tab.Active {
			parts = append(parts, st.ActiveTab.Render(label))
		} else {
			parts = append(parts, st.Tab.Render(label))
		}
	}
	parts = append(parts, st.Muted.Render("[t] "+glyph))
	return strings.Join(parts, " ")
}

func RenderTaskPanel(data TaskPanelData) string {
	st := data.Styles
	var b strings.Builder
	b.WriteString(st.Header.Render("Today's tasks") + " " + st.Muted.Render(data.Date) + "\n")
	if data.FormOpen {
		b.WriteString(data.InputView + "\n")
		b.WriteString(st.Muted.Render("[enter] save  [esc] cancel") + "\n")
	} else {
		b.WriteString(st.Muted.Render("[a] add  [space] toggle  [d] delete  [j/k] move") + "\n")
	}
	b.WriteString("\n")
	if data.List.Placeholder != "" {
		b.WriteString(st.Muted.Render(data.List.Placeholder))
		return b.String()
	}
	for i, row := range data.List.Rows {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		box := "[ ]"
		text := row.Text
		if row.Completed {
			box = "[x]"
			text = st.Done.Render(text)
		} else if i == data.Cursor {
			text = st.Selected.Render(text)
		}
		b.WriteString(fmt.Sprintf("%s %s %s", cursor, box, text))
		if row.Age != "" {
			b.WriteString("  " + st.Muted.Render(row.Age))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderNotePanel(data NotePanelData) string {
	st := data.Styles
	var b strings.Builder
	b.WriteString(st.Header.Render("Notes") + " " + st.Muted.Render(data.Date) + "\n")
	if data.FormOpen {
		b.WriteString(data.EditorView + "\n")
		b.WriteString(st.Muted.Render("[ctrl+s] save  [esc] cancel") + "\n")
	} else {
		b.WriteString(st.Muted.Render("[a] add  [d] delete  [y] copy  [j/k] move") + "\n")
	}
	b.WriteString("\n")
	if data.List.Placeholder != "" {
		b.WriteString(st.Muted.Render(data.List.Placeholder))
		return b.String()
	}
	for i, row := range data.List.Rows {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		first := firstLine(row.Content)
		if i == data.Cursor {
			first = st.Selected.Render(first)
		}
		b.WriteString(fmt.Sprintf("%s %s", cursor, first))
		if row.Age != "" {
			b.WriteString("  " + st.Muted.Render(row.Age))
		}
		b.WriteString("\n")
	}
	if data.PreviewView != "" {
		b.WriteString("\n" + data.PreviewView + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderTimerPanel(data TimerPanelData) string {
	st := data.Styles
	status := "paused"
	action := "start"
	if data.Running {
		status = "running"
		action = "pause"
	}
	presets := make([]string, 0, len(data.Presets))
	for _, p := range data.Presets {
		label := fmt.Sprintf("%dm", p)
		if p == data.Duration {
			label = st.ActiveTab.Render("[" + label + "]")
		}
		presets = append(presets, label)
	}

	var b strings.Builder
	b.WriteString(st.Header.Render("Timer") + "\n\n")
	b.WriteString(st.Timer.Render(data.Display) + "  " + st.Muted.Render(status) + "\n")
	if data.ProgressView != "" {
		b.WriteString(data.ProgressView + "\n")
	}
	b.WriteString("\npresets: " + strings.Join(presets, " ") + "\n")
	b.WriteString(st.Muted.Render(fmt.Sprintf("[space] %s  [r] reset  [p] next preset", action)))
	return b.String()
}

// RenderCompletionModal is the blocking alert shown when the countdown ends.
func RenderCompletionModal(st Styles, text string) string {
	return st.Modal.Render(text + "\n\n" + st.Muted.Render("[enter] ok"))
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

// RenderTaskListPlain is the uncoloured numbered list printed by the CLI.
func RenderTaskListPlain(list TaskListView) string {
	if list.Placeholder != "" {
		return list.Placeholder
	}
	var b strings.Builder
	for i, row := range list.Rows {
		box := "[ ]"
		if row.Completed {
			box = "[x]"
		}
		fmt.Fprintf(&b, "%d. %s %s", i+1, box, row.Text)
		if row.Age != "" {
			fmt.Fprintf(&b, " (%s)", row.Age)
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderNoteListPlain(list NoteListView) string {
	if list.Placeholder != "" {
		return list.Placeholder
	}
	var b strings.Builder
	for i, row := range list.Rows {
		fmt.Fprintf(&b, "%d. %s", i+1, firstLine(row.Content))
		if row.Age != "" {
			fmt.Fprintf(&b, " (%s)", row.Age)
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
