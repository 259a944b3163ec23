package update

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daypad/internal/app"
	"github.com/sandeepkv93/daypad/internal/clock"
	"github.com/sandeepkv93/daypad/internal/scheduler"
	"github.com/sandeepkv93/daypad/internal/storage"
)

type recordingNotifier struct {
	sent []Notification
}

func (r *recordingNotifier) Send(n Notification) error {
	r.sent = append(r.sent, n)
	return nil
}

type testHarness struct {
	fake     *clock.Fake
	repo     *storage.MemoryRepository
	notifier *recordingNotifier
	copied   []string
}

func newTestModel(t *testing.T) (Model, *testHarness) {
	t.Helper()
	h := &testHarness{
		fake:     clock.NewFake(time.Date(2026, 2, 9, 9, 0, 0, 0, time.Local)),
		repo:     storage.NewMemoryRepository(),
		notifier: &recordingNotifier{},
	}
	engine, err := scheduler.NewEngine(h.fake, time.Second, 4)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	a, err := app.New(context.Background(), app.Deps{
		Docs:         storage.NewDocuments(h.repo, nil),
		Clock:        h.fake,
		Engine:       engine,
		Presets:      []int{1, 5},
		DefaultTimer: 1,
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(a.Close)
	m := NewModel(context.Background(), a, Options{
		Clock:                h.fake,
		DesktopNotifications: true,
		Notifier:             h.notifier,
		Clipboard: func(s string) error {
			h.copied = append(h.copied, s)
			return nil
		},
	})
	return m, h
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, c := m.Update(msg)
		m = updated.(Model)
		cmd = c
	}
	return m, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	return m
}

// runCmd executes cmd synchronously and feeds its message back to the model.
func runCmd(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	if msg == nil {
		return m, nil
	}
	updated, next := m.Update(msg)
	return updated.(Model), next
}

func todayTexts(m Model) []string {
	var out []string
	for _, task := range m.App().State().TodayTasks() {
		out = append(out, task.Text)
	}
	return out
}

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t)
	if m.App().State().View != app.ViewToday {
		t.Fatalf("expected default view %q, got %q", app.ViewToday, m.App().State().View)
	}
	if m.Keys.Quit != "q" || m.Keys.Theme != "t" {
		t.Fatalf("unexpected keys: %+v", m.Keys)
	}
	if !strings.Contains(m.View(), "No tasks yet") {
		t.Fatalf("expected empty placeholder in view:\n%s", m.View())
	}
	if !strings.Contains(m.View(), "February 9, 2026") {
		t.Fatalf("expected long date in header:\n%s", m.View())
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, "2")
	if m.App().State().View != app.ViewNotes {
		t.Fatalf("expected notes view, got %q", m.App().State().View)
	}
	m, _ = press(t, m, "3")
	if m.App().State().View != app.ViewTimer {
		t.Fatalf("expected timer view, got %q", m.App().State().View)
	}

	updated, _ := m.Update(SwitchViewMsg{View: app.View("calendar")})
	m = updated.(Model)
	if m.App().State().View != app.ViewTimer {
		t.Fatalf("expected view unchanged for unknown view, got %q", m.App().State().View)
	}
}

func TestTaskFormAddToggleDelete(t *testing.T) {
	m, h := newTestModel(t)

	m, _ = press(t, m, "a")
	if !m.App().State().Forms.TaskOpen {
		t.Fatal("expected task form open")
	}
	m = typeText(t, m, "buy milk")
	m, _ = press(t, m, "enter")
	if m.App().State().Forms.TaskOpen || m.taskInput.Value() != "" {
		t.Fatal("expected form closed and cleared after save")
	}

	h.fake.Advance(time.Millisecond)
	m, _ = press(t, m, "a")
	m = typeText(t, m, "call mom")
	m, _ = press(t, m, "enter")
	if got := strings.Join(todayTexts(m), ","); got != "call mom,buy milk" {
		t.Fatalf("unexpected order: %s", got)
	}

	m, _ = press(t, m, "j", "space")
	tasks := m.App().State().TodayTasks()
	if tasks[0].Completed || !tasks[1].Completed {
		t.Fatalf("expected buy milk completed only, got %+v", tasks)
	}

	m, _ = press(t, m, "k", "d")
	if got := strings.Join(todayTexts(m), ","); got != "buy milk" {
		t.Fatalf("unexpected tasks after delete: %s", got)
	}
	if h.repo.Writes() != 4 {
		t.Fatalf("expected one write per mutation, got %d", h.repo.Writes())
	}
}

func TestTaskFormEmptySaveKeepsFormOpen(t *testing.T) {
	m, h := newTestModel(t)
	m, _ = press(t, m, "a")
	m = typeText(t, m, "   ")
	m, _ = press(t, m, "enter")
	if !m.App().State().Forms.TaskOpen {
		t.Fatal("expected form to stay open")
	}
	m, _ = press(t, m, "esc")
	if m.App().State().Forms.TaskOpen || m.taskInput.Value() != "" {
		t.Fatal("expected cancel to close and clear")
	}
	if h.repo.Writes() != 0 {
		t.Fatalf("expected no writes, got %d", h.repo.Writes())
	}
}

func TestToggleOnPlaceholderIsIgnored(t *testing.T) {
	m, h := newTestModel(t)
	m, _ = press(t, m, "space", "d")
	if len(m.App().State().TodayTasks()) != 0 || h.repo.Writes() != 0 {
		t.Fatal("placeholder row must not be actionable")
	}
}

func TestNotesSaveCopyDelete(t *testing.T) {
	m, h := newTestModel(t)
	m, _ = press(t, m, "2", "a")
	m = typeText(t, m, "standup notes")
	m, _ = press(t, m, "ctrl+s")
	notes := m.App().State().TodayNotes()
	if len(notes) != 1 || notes[0].Content != "standup notes" {
		t.Fatalf("unexpected notes: %+v", notes)
	}
	if m.App().State().Forms.NoteOpen || m.noteArea.Value() != "" {
		t.Fatal("expected note form closed and cleared")
	}

	m, cmd := press(t, m, "y")
	if len(h.copied) != 0 {
		t.Fatal("clipboard must be written outside Update")
	}
	m, clearCmd := runCmd(t, m, cmd)
	if len(h.copied) != 1 || h.copied[0] != "standup notes" {
		t.Fatalf("unexpected clipboard: %v", h.copied)
	}
	if m.Status.Text != "note copied to clipboard" || clearCmd == nil {
		t.Fatalf("expected copied status with a timed clear, got %+v", m.Status)
	}

	m, _ = press(t, m, "d")
	if len(m.App().State().TodayNotes()) != 0 {
		t.Fatal("expected note deleted")
	}
	if !strings.Contains(m.View(), "No notes yet") {
		t.Fatalf("expected notes placeholder:\n%s", m.View())
	}
}

func TestClipboardFailureShowsError(t *testing.T) {
	m, _ := newTestModel(t)
	m.copyText = func(string) error { return errors.New("no clipboard") }
	m, _ = press(t, m, "2", "a")
	m = typeText(t, m, "x")
	m, cmd := press(t, m, "ctrl+s", "y")
	m, _ = runCmd(t, m, cmd)
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "no clipboard") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestThemeToggleKey(t *testing.T) {
	m, h := newTestModel(t)
	if !strings.Contains(m.View(), "🌙") {
		t.Fatal("expected moon glyph in light theme")
	}
	m, _ = press(t, m, "t")
	if !strings.Contains(m.View(), "☀️") {
		t.Fatal("expected sun glyph in dark theme")
	}
	raw, err := h.repo.Get(context.Background(), storage.KeyTheme)
	if err != nil || raw != "dark" {
		t.Fatalf("expected persisted dark theme, got %q err=%v", raw, err)
	}
}

func runTick(t *testing.T, m Model, cmd tea.Cmd, h *testHarness) (Model, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a pending tick command")
	}
	h.fake.Advance(time.Second)
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		updated, next := m.Update(msg)
		return updated.(Model), next
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for tick")
		return m, nil
	}
}

func TestTimerCompletesAndBlocksUntilAcknowledged(t *testing.T) {
	m, h := newTestModel(t)
	m, cmd := press(t, m, "3", "space")
	if !m.App().State().Timer.Running {
		t.Fatal("expected timer running")
	}

	for i := 0; i < 60; i++ {
		m, cmd = runTick(t, m, cmd, h)
	}
	if m.Alert != completionText {
		t.Fatalf("expected completion alert, got %q", m.Alert)
	}
	if m.App().State().Timer.Display() != "00:00" || m.App().State().Timer.Running {
		t.Fatalf("unexpected timer: %+v", m.App().State().Timer)
	}
	if len(h.notifier.sent) != 0 {
		t.Fatal("notification must be sent outside Update")
	}
	// the only pending command is the notification; no tick wait remains
	m, cmd = runCmd(t, m, cmd)
	if cmd != nil {
		t.Fatal("expected no further commands after completion")
	}
	if len(h.notifier.sent) != 1 {
		t.Fatalf("expected one desktop notification, got %d", len(h.notifier.sent))
	}
	if !strings.Contains(m.View(), completionText) {
		t.Fatalf("expected modal in view:\n%s", m.View())
	}

	m, _ = press(t, m, "1", "t")
	if m.App().State().View != app.ViewTimer || m.App().State().Theme != "light" {
		t.Fatal("keys must be swallowed while the alert is shown")
	}
	m, _ = press(t, m, "enter")
	if m.Alert != "" {
		t.Fatal("expected alert acknowledged")
	}
}

func TestTimerPauseResetAndPresets(t *testing.T) {
	m, h := newTestModel(t)
	m, cmd := press(t, m, "3", "space")
	m, _ = runTick(t, m, cmd, h)
	if m.App().State().Timer.Display() != "00:59" {
		t.Fatalf("expected 00:59, got %s", m.App().State().Timer.Display())
	}
	m, _ = press(t, m, "space")
	if m.App().State().Timer.Running {
		t.Fatal("expected paused")
	}
	m, _ = press(t, m, "r")
	if m.App().State().Timer.Display() != "01:00" {
		t.Fatalf("expected reset to 01:00, got %s", m.App().State().Timer.Display())
	}
	m, _ = press(t, m, "p")
	if m.App().State().Timer.Display() != "05:00" {
		t.Fatalf("expected next preset 05:00, got %s", m.App().State().Timer.Display())
	}
	m, _ = press(t, m, "p")
	if m.App().State().Timer.Display() != "01:00" {
		t.Fatalf("expected wrap to 01:00, got %s", m.App().State().Timer.Display())
	}
}

func TestPaletteRunsCommands(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, "/")
	if !m.Palette.Active {
		t.Fatal("expected palette active")
	}
	m = typeText(t, m, "add pay rent")
	m, _ = press(t, m, "enter")
	if m.Palette.Active {
		t.Fatal("expected palette closed")
	}
	if got := todayTexts(m); len(got) != 1 || got[0] != "pay rent" {
		t.Fatalf("unexpected tasks: %v", got)
	}

	m, _ = press(t, m, "/")
	m = typeText(t, m, "done 1")
	m, _ = press(t, m, "enter")
	if !m.App().State().TodayTasks()[0].Completed {
		t.Fatal("expected task completed via palette")
	}

	m, _ = press(t, m, "/")
	m = typeText(t, m, "add")
	m, _ = press(t, m, "space")
	m = typeText(t, m, "buy")
	m, _ = press(t, m, "space")
	m = typeText(t, m, "milk")
	if m.Palette.Input != "add buy milk" {
		t.Fatalf("unexpected palette buffer %q", m.Palette.Input)
	}
	m, _ = press(t, m, "enter")
	if got := todayTexts(m); len(got) != 2 || got[0] != "buy milk" {
		t.Fatalf("expected space-separated palette command to add a task, got %v", got)
	}

	m, _ = press(t, m, "/")
	m = typeText(t, m, "view")
	m, _ = press(t, m, "space")
	m = typeText(t, m, "notes")
	m, _ = press(t, m, "enter")
	if m.App().State().View != app.ViewNotes {
		t.Fatalf("expected notes view via palette, got %q (status %+v)", m.App().State().View, m.Status)
	}

	m, _ = press(t, m, "/")
	m = typeText(t, m, "bogus")
	m, _ = press(t, m, "enter")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "unknown_command") {
		t.Fatalf("expected unknown command status, got %+v", m.Status)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m, _ := newTestModel(t)
	updated, clearCmd := m.Update(SetStatusMsg{Text: "ready", IsError: false})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError || clearCmd == nil {
		t.Fatalf("unexpected status: %+v", next.Status)
	}
	updated, _ = next.Update(ClearStatusMsg{Text: "older"})
	next = updated.(Model)
	if next.Status.Text != "ready" {
		t.Fatalf("stale clear must not wipe a newer status: %+v", next.Status)
	}
	updated, _ = next.Update(ClearStatusMsg{Text: "ready"})
	next = updated.(Model)
	if next.Status.Text != "" {
		t.Fatalf("expected status cleared, got %+v", next.Status)
	}

	updated, _ = next.Update(AppErrorMsg{Err: errors.New("boom")})
	next = updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, "?")
	if !m.HelpVisible || !strings.Contains(m.View(), "toggle completed") {
		t.Fatalf("expected help shown:\n%s", m.View())
	}
	m, _ = press(t, m, "?")
	if m.HelpVisible {
		t.Fatal("expected help hidden")
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := press(t, m, "q")
	if !m.Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
}

type failingNotifier struct{}

func (failingNotifier) Send(Notification) error { return errors.New("no notify-send") }

func TestNotificationFailureReportsError(t *testing.T) {
	m, _ := newTestModel(t)
	m.notifier = failingNotifier{}
	m, _ = runCmd(t, m, m.notifyCmd("daypad", completionText))
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "no notify-send") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}

	m.DesktopEnabled = false
	if m.notifyCmd("daypad", completionText) != nil {
		t.Fatal("expected no command when notifications are disabled")
	}
}
