package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daypad/internal/commands"
	"github.com/sandeepkv93/daypad/internal/model"
)

func (m Model) handleTaskKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.taskCursor > 0 {
			m.taskCursor--
		}
	case "down", "j":
		if m.taskCursor < len(m.app.State().TodayTasks())-1 {
			m.taskCursor++
		}
	case "a", "n":
		next, cmd := m.dispatch(commands.OpenTaskForm())
		if next.app.State().Forms.TaskOpen {
			next.taskInput.Focus()
		}
		return next, cmd
	case " ", "x", "enter":
		if task, ok := m.currentTask(); ok {
			return m.dispatch(commands.ToggleTask(task.ID))
		}
	case "d", "delete":
		if task, ok := m.currentTask(); ok {
			return m.dispatch(commands.DeleteTask(task.ID))
		}
	}
	return m, nil
}

func (m Model) handleTaskFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.dispatch(commands.CancelTaskForm())
	case "enter":
		before := len(m.app.State().TodayTasks())
		next, cmd := m.dispatch(commands.AddTask(m.taskInput.Value()))
		if len(next.app.State().TodayTasks()) > before {
			next.taskCursor = 0
		}
		return next, cmd
	}
	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	return m, cmd
}

// currentTask maps the cursor to a task. Placeholder rows are never returned.
func (m Model) currentTask() (model.Task, bool) {
	tasks := m.app.State().TodayTasks()
	if m.taskCursor < 0 || m.taskCursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.taskCursor], true
}
