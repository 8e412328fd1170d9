package update

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	domainmodel "github.com/sandeepkv93/doable/internal/model"
	"github.com/sandeepkv93/doable/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.motivator == nil {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, m.aiSpinner.Tick, motivateCmd(m.motivator, m.Store.PendingCount()))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Mode == ModeInput {
			return m.handleInputKey(typed)
		}
		return m.handleListKey(typed)
	case tea.WindowSizeMsg:
		m.helpModel.Width = typed.Width
		if typed.Width > 12 {
			m.taskInput.Width = typed.Width - 12
		}
		return m, nil
	case spinner.TickMsg:
		if m.AIBusy {
			var cmd tea.Cmd
			m.aiSpinner, cmd = m.aiSpinner.Update(typed)
			return m, cmd
		}
	case SmartAddResultMsg:
		m.AIBusy = false
		m.Cursor = 0
		switch len(typed.Created) {
		case 0:
			m.Status = StatusBar{Text: "nothing to add", IsError: false}
		case 1:
			m.Status = StatusBar{Text: fmt.Sprintf("added %q", typed.Created[0].Text), IsError: false}
		default:
			m.Status = StatusBar{Text: fmt.Sprintf("broke it down into %d subtasks", len(typed.Created)), IsError: false}
		}
		return m, nil
	case MotivationMsg:
		m.AIBusy = false
		m.Motivation = typed.Text
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	inputLine := ""
	if m.Mode == ModeInput {
		inputLine = m.taskInput.View()
	}

	rightPane := ""
	if m.StatsVisible {
		rightPane = views.RenderStatsPanel(m.statsPanelData())
	}
	rightPane += m.renderHelpIfVisible()

	total := len(m.Store.Tasks())
	pending := m.Store.PendingCount()

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("doable | %d open / %d total | tab: %s", pending, total, m.ActiveTab),
		InputLine:  inputLine,
		LeftPane:   views.RenderTaskPanel(m.taskPanelData()),
		RightPane:  rightPane,
		StatusLine: status,
		Motivation: m.Motivation,
		Footer: fmt.Sprintf("keys: %s add | %s toggle | %s delete | %s filter | %s stats | %s coach | %s help | %s quit",
			m.Keys.Input, keyLabel(m.Keys.Toggle), m.Keys.Delete, m.Keys.CycleTab,
			m.Keys.Stats, m.Keys.Motivate, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) taskPanelData() views.TaskPanelData {
	tasks := m.visibleTasks()
	now := time.Now()
	items := make([]views.TaskItemData, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, views.TaskItemData{
			ID:        task.ID,
			Text:      task.Text,
			Completed: task.Completed,
			Priority:  string(task.Priority),
			Age:       formatAge(task.CreatedAt, now),
		})
	}

	selectedID := ""
	if task, ok := m.currentTask(); ok {
		selectedID = task.ID
	}

	busyView := ""
	if m.AIBusy {
		busyView = m.aiSpinner.View() + " assistant thinking"
	}

	emptyHint := "(nothing here)"
	if len(m.Store.Tasks()) == 0 {
		emptyHint = fmt.Sprintf("(no tasks yet, press %s to add one)", m.Keys.Input)
	}

	return views.TaskPanelData{
		Tabs:       m.tabData(),
		Items:      items,
		SelectedID: selectedID,
		EmptyHint:  emptyHint,
		BusyView:   busyView,
	}
}

func (m Model) tabData() []views.TabData {
	tabs := make([]views.TabData, 0, 3)
	for _, tab := range domainmodel.FilterTabs() {
		tabs = append(tabs, views.TabData{
			Name:   string(tab),
			Count:  len(m.Store.Filter(tab)),
			Active: tab == m.ActiveTab,
		})
	}
	return tabs
}

func (m Model) statsPanelData() views.StatsPanelData {
	entries := m.Store.Stats()
	data := make([]views.StatsEntryData, 0, len(entries))
	for _, entry := range entries {
		data = append(data, views.StatsEntryData{Name: entry.Name, Value: entry.Value})
	}
	return views.StatsPanelData{Entries: data, Pending: m.Store.PendingCount()}
}
