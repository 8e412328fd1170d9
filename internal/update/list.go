package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown", IsError: false}
		} else {
			m.Status = StatusBar{Text: "help hidden", IsError: false}
		}
	case m.Keys.Input, "enter":
		m.Mode = ModeInput
		m.taskInput.Focus()
		m.Status = StatusBar{Text: "input mode", IsError: false}
		return m, textinput.Blink
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.visibleTasks())-1 {
			m.Cursor++
		}
	case m.Keys.Toggle:
		if task, ok := m.currentTask(); ok {
			m.Store.Toggle(task.ID)
			m.clampCursor()
			if task.Completed {
				m.Status = StatusBar{Text: fmt.Sprintf("reopened %q", task.Text), IsError: false}
			} else {
				m.Status = StatusBar{Text: fmt.Sprintf("completed %q", task.Text), IsError: false}
			}
		}
	case m.Keys.Delete:
		if task, ok := m.currentTask(); ok {
			m.Store.Delete(task.ID)
			m.clampCursor()
			m.Status = StatusBar{Text: fmt.Sprintf("removed %q", task.Text), IsError: false}
		}
	case m.Keys.CycleTab:
		m.ActiveTab = m.ActiveTab.Next()
		m.Cursor = 0
		m.Status = StatusBar{Text: fmt.Sprintf("filter: %s", m.ActiveTab), IsError: false}
	case m.Keys.Stats:
		m.StatsVisible = !m.StatsVisible
		if m.StatsVisible {
			m.Status = StatusBar{Text: "stats shown", IsError: false}
		} else {
			m.Status = StatusBar{Text: "stats hidden", IsError: false}
		}
	case m.Keys.Motivate:
		if m.motivator == nil {
			return m, nil
		}
		if m.AIBusy {
			m.Status = StatusBar{Text: "assistant is busy, hang on", IsError: false}
			return m, nil
		}
		m.AIBusy = true
		m.Status = StatusBar{Text: "asking the coach", IsError: false}
		return m, tea.Batch(m.aiSpinner.Tick, motivateCmd(m.motivator, m.Store.PendingCount()))
	default:
		// Any other rune starts a fresh entry, same as quick capture.
		if msg.Type == tea.KeyRunes {
			m.Mode = ModeInput
			m.taskInput.Focus()
			m.taskInput.SetValue(string(msg.Runes))
			m.Status = StatusBar{Text: "input mode", IsError: false}
			return m, textinput.Blink
		}
	}
	return m, nil
}
