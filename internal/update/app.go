package update

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	domainmodel "github.com/sandeepkv93/doable/internal/model"
	"github.com/sandeepkv93/doable/internal/store"
)

type Mode string

const (
	ModeList  Mode = "list"
	ModeInput Mode = "input"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Input    string
	Toggle   string
	Delete   string
	CycleTab string
	Stats    string
	Motivate string
	Help     string
	Quit     string
}

// Motivator is the slice of the AI client the view needs for the coach
// panel. It absorbs its own failures and always returns displayable text.
type Motivator interface {
	Motivate(ctx context.Context, pendingCount int) string
}

// Model is the single Elm-style state record for the app. Business state
// lives in the task store; everything here is presentational: the current
// mode, cursor, filter tab, AI busy flag, and panel visibility.
type Model struct {
	Store        *store.Store
	Mode         Mode
	ActiveTab    domainmodel.FilterTab
	Cursor       int
	AIBusy       bool
	StatsVisible bool
	Motivation   string
	HelpVisible  bool
	Status       StatusBar
	Keys         GlobalKeyMap
	Quitting     bool
	// Bubble components used for rich TUI controls
	taskInput textinput.Model
	aiSpinner spinner.Model
	helpModel help.Model
	motivator Motivator
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

// SmartAddResultMsg carries the outcome of a background smart add back
// onto the event loop. It is applied unconditionally when it arrives.
type SmartAddResultMsg struct {
	Created []domainmodel.Task
}

type MotivationMsg struct {
	Text string
}

func NewModel(tasks *store.Store, motivator Motivator) Model {
	m := Model{
		Store:     tasks,
		Mode:      ModeList,
		ActiveTab: domainmodel.FilterAll,
		Keys: GlobalKeyMap{
			Input:    "i",
			Toggle:   " ",
			Delete:   "d",
			CycleTab: "tab",
			Stats:    "s",
			Motivate: "m",
			Help:     "?",
			Quit:     "q",
		},
		motivator: motivator,
		// Init fires the startup motivation fetch, so the busy flag starts
		// raised whenever a motivator is attached.
		AIBusy: motivator != nil,
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskInput = textinput.New()
	m.taskInput.Prompt = "add> "
	m.taskInput.Placeholder = "what needs doing?"
	m.taskInput.CharLimit = 256
	m.taskInput.Width = 42

	m.aiSpinner = spinner.New()
	m.aiSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
}

// visibleTasks projects the store through the active filter tab.
func (m Model) visibleTasks() []domainmodel.Task {
	return m.Store.Filter(m.ActiveTab)
}

func (m Model) currentTask() (domainmodel.Task, bool) {
	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		return domainmodel.Task{}, false
	}
	if m.Cursor < 0 || m.Cursor >= len(tasks) {
		return domainmodel.Task{}, false
	}
	return tasks[m.Cursor], true
}

func (m *Model) clampCursor() {
	visible := len(m.visibleTasks())
	if m.Cursor >= visible {
		m.Cursor = visible - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}
