package views

import (
	"fmt"
	"strings"
)

type TabData struct {
	Name   string
	Count  int
	Active bool
}

type TaskItemData struct {
	ID        string
	Text      string
	Completed bool
	Priority  string
	Age       string
}

type TaskPanelData struct {
	Tabs       []TabData
	Items      []TaskItemData
	SelectedID string
	EmptyHint  string
	BusyView   string
}

type StatsEntryData struct {
	Name  string
	Value int
}

type StatsPanelData struct {
	Entries []StatsEntryData
	Pending int
}

type HelpPanelData struct {
	Mode     string
	Bindings []string
	HelpView string
}

func RenderTaskPanel(data TaskPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	b.WriteString(renderTabLine(data.Tabs) + "\n")
	b.WriteString("actions: [i]add [space]toggle [d]delete [tab]filter [s]stats [m]coach\n")
	if data.BusyView != "" {
		b.WriteString(data.BusyView + "\n")
	}
	if len(data.Items) == 0 {
		b.WriteString(data.EmptyHint)
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		cursor := " "
		if data.SelectedID != "" && data.SelectedID == item.ID {
			cursor = ">"
		}
		checkbox := "[ ]"
		if item.Completed {
			checkbox = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s (%s)\n", cursor, checkbox, priorityBadge(item.Priority), item.Text, item.Age))
	}
	return strings.TrimSpace(b.String())
}

func RenderStatsPanel(data StatsPanelData) string {
	var b strings.Builder
	b.WriteString("stats:\n")
	if len(data.Entries) == 0 {
		b.WriteString("(nothing pending)")
		return b.String()
	}
	for _, entry := range data.Entries {
		b.WriteString(fmt.Sprintf("%-6s %s %d\n", entry.Name, strings.Repeat("#", entry.Value), entry.Value))
	}
	b.WriteString(fmt.Sprintf("pending total: %d", data.Pending))
	return b.String()
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s mode:\n%s\n%s",
		strings.ToLower(data.Mode),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func renderTabLine(tabs []TabData) string {
	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		label := fmt.Sprintf("%s %d", tab.Name, tab.Count)
		if tab.Active {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	return "tabs: " + strings.Join(parts, " ")
}

func priorityBadge(priority string) string {
	switch priority {
	case "High":
		return "[RED]"
	case "Medium":
		return "[YELLOW]"
	default:
		return "[GREEN]"
	}
}
