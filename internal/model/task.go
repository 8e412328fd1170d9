package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidPriority = errors.New("model: invalid task priority")

// Priority is the urgency level assigned to a task at creation. It is
// mutable only by replacing the task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Priorities lists all priorities in display order, most urgent first.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// FilterTab selects which slice of the task list is visible.
type FilterTab string

const (
	FilterAll       FilterTab = "all"
	FilterActive    FilterTab = "active"
	FilterCompleted FilterTab = "completed"
)

func (f FilterTab) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	default:
		return false
	}
}

// Next cycles through all, active, completed and back to all.
func (f FilterTab) Next() FilterTab {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// FilterTabs lists the tabs in display order.
func FilterTabs() []FilterTab {
	return []FilterTab{FilterAll, FilterActive, FilterCompleted}
}

// Task is one actionable item. IDs are unique for the lifetime of the list
// and tasks are destroyed only by explicit deletion.
type Task struct {
	ID        string
	Text      string
	Completed bool
	Priority  Priority
	CreatedAt time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	return nil
}

// StatsEntry is one bar of the aggregate chart: a priority label and the
// count of incomplete tasks carrying it. Derived state, never persisted.
type StatsEntry struct {
	Name  string
	Value int
}
