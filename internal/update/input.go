package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// handleInputKey runs while the text input is focused. Enter adds the text
// as-is, ctrl+s routes it through the assistant, esc drops back to the
// list. Submits are refused while an AI call is pending; editing is not.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	case "esc":
		m.Mode = ModeList
		m.taskInput.Blur()
		m.Status = StatusBar{Text: "list mode", IsError: false}
		return m, nil
	case "enter":
		if m.AIBusy {
			m.Status = StatusBar{Text: "assistant is busy, hang on", IsError: false}
			return m, nil
		}
		task, ok := m.Store.Add(m.taskInput.Value(), "")
		if !ok {
			m.Status = StatusBar{Text: "nothing to add", IsError: false}
			return m, nil
		}
		m.taskInput.SetValue("")
		m.Cursor = 0
		m.Status = StatusBar{Text: fmt.Sprintf("added %q", task.Text), IsError: false}
		return m, nil
	case "ctrl+s":
		if m.AIBusy {
			m.Status = StatusBar{Text: "assistant is busy, hang on", IsError: false}
			return m, nil
		}
		text := m.taskInput.Value()
		if strings.TrimSpace(text) == "" {
			m.Status = StatusBar{Text: "nothing to add", IsError: false}
			return m, nil
		}
		m.AIBusy = true
		m.taskInput.SetValue("")
		m.Status = StatusBar{Text: "asking the assistant", IsError: false}
		return m, tea.Batch(m.aiSpinner.Tick, smartAddCmd(m.Store, text))
	}

	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	return m, cmd
}
