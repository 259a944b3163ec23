package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/daypad/internal/app"
	"github.com/sandeepkv93/daypad/internal/clock"
	"github.com/sandeepkv93/daypad/internal/scheduler"
)

const (
	completionText = "Timer complete!"
	statusTTL      = 4 * time.Second
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Today string
	Notes string
	Timer string
	Theme string
	Help  string
	Quit  string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Model is the bubbletea model. All daypad state lives in the App; Model only
// keeps what the terminal needs: cursors, text buffers and overlays.
type Model struct {
	Keys           GlobalKeyMap
	Status         StatusBar
	HelpVisible    bool
	Palette        CommandPaletteState
	Alert          string
	DesktopEnabled bool
	Quitting       bool
	LastError      error

	app        *app.App
	ctx        context.Context
	clock      clock.Clock
	notifier   DesktopNotifier
	copyText   func(string) error
	taskCursor int
	noteCursor int
	// waiting is true while a waitForTickCmd is outstanding.
	waiting bool
	width   int

	taskInput     textinput.Model
	commandInput  textinput.Model
	noteArea      textarea.Model
	timerProgress progress.Model
	helpModel     help.Model
	notePreview   viewport.Model
}

type Options struct {
	Clock                clock.Clock
	DesktopNotifications bool
	Notifier             DesktopNotifier
	// Clipboard replaces the system clipboard writer.
	Clipboard func(string) error
}

type Notification struct {
	Title string
	Body  string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SwitchViewMsg struct {
	View app.View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

// ClearStatusMsg clears the status bar if it still shows Text. An empty Text
// clears unconditionally.
type ClearStatusMsg struct {
	Text string
}

type AppErrorMsg struct {
	Err error
}

type TimerTickMsg struct {
	Tick scheduler.Tick
}

func NewModel(ctx context.Context, a *app.App, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Notifier == nil {
		opts.Notifier = NoopDesktopNotifier{}
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	m := Model{
		Keys: GlobalKeyMap{
			Today: "1",
			Notes: "2",
			Timer: "3",
			Theme: "t",
			Help:  "?",
			Quit:  "q",
		},
		DesktopEnabled: opts.DesktopNotifications,
		app:            a,
		ctx:            ctx,
		clock:          opts.Clock,
		notifier:       opts.Notifier,
		copyText:       opts.Clipboard,
		width:          80,
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskInput = textinput.New()
	m.taskInput.Prompt = "task> "
	m.taskInput.Placeholder = "What needs doing?"
	m.taskInput.CharLimit = 256
	m.taskInput.Width = 56

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 56

	m.noteArea = textarea.New()
	m.noteArea.SetWidth(66)
	m.noteArea.SetHeight(6)
	m.noteArea.ShowLineNumbers = false
	m.noteArea.Placeholder = "Note (markdown)"

	m.timerProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(48))
	m.helpModel = help.New()
	m.notePreview = viewport.New(66, 8)
}

// App exposes the application context the model drives.
func (m Model) App() *app.App {
	return m.app
}
