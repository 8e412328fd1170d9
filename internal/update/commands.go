package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/doable/internal/store"
)

// smartAddCmd runs the two-step assisted add off the event loop. The text
// is captured at dispatch time, so later edits to the input do not change
// what gets added. There is no abort signal; the result is applied when it
// arrives.
func smartAddCmd(tasks *store.Store, text string) tea.Cmd {
	return func() tea.Msg {
		created, _ := tasks.SmartAdd(context.Background(), text)
		return SmartAddResultMsg{Created: created}
	}
}

func motivateCmd(motivator Motivator, pendingCount int) tea.Cmd {
	return func() tea.Msg {
		return MotivationMsg{Text: motivator.Motivate(context.Background(), pendingCount)}
	}
}
