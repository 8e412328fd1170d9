package store

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/doable/internal/model"
	"github.com/sandeepkv93/doable/internal/storage"
)

// Assist is the slice of the AI client the store needs for smart add. Both
// calls absorb their own failures and return safe defaults, never errors.
type Assist interface {
	SuggestPriority(ctx context.Context, taskText string) model.Priority
	Decompose(ctx context.Context, taskText string) []string
}

// Repository persists the whole task list. A nil repository means a
// memory-only session.
type Repository interface {
	SaveTasks(ctx context.Context, tasks []storage.TaskRecord) error
	LoadTasks(ctx context.Context) ([]storage.TaskRecord, error)
}

// Store holds the ordered task list, newest first. It is the single source
// of truth: every mutation goes through one of its methods and is written
// through to the repository before the method returns. The mutex makes
// SmartAdd safe to run from a background command while the event loop keeps
// adding, toggling, and deleting.
type Store struct {
	mu     sync.Mutex
	tasks  []model.Task
	repo   Repository
	assist Assist
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

func New(repo Repository, assist Assist, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		repo:   repo,
		assist: assist,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Load rehydrates the list from the repository and returns how many tasks
// were restored. Missing, unreadable, or invalid data all yield an empty
// list; startup never fails on storage contents.
func (s *Store) Load(ctx context.Context) int {
	if s.repo == nil {
		return 0
	}
	records, err := s.repo.LoadTasks(ctx)
	if err != nil {
		s.logger.Warn("discarding persisted tasks", "error", err)
		return 0
	}
	tasks := make([]model.Task, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		task := model.Task{
			ID:        rec.ID,
			Text:      rec.Text,
			Completed: rec.Completed,
			Priority:  model.Priority(rec.Priority),
			CreatedAt: rec.CreatedAt,
		}
		if err := task.Validate(); err != nil || seen[task.ID] {
			s.logger.Warn("discarding persisted tasks", "task", rec.ID, "error", err)
			return 0
		}
		seen[task.ID] = true
		tasks = append(tasks, task)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
	return len(tasks)
}

// Add prepends a new incomplete task. Blank text is a no-op; an empty or
// unknown priority falls back to Low.
func (s *Store) Add(text string, p model.Priority) (model.Task, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return model.Task{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prependLocked(trimmed, p), true
}

// SmartAdd runs the assisted pipeline: ask for a priority, then a subtask
// breakdown. A non-empty breakdown prepends one task per subtask, all
// sharing the suggested priority — the original text is discarded in that
// branch. An empty breakdown falls back to a plain add of the original text
// with the suggested priority. The AI calls run outside the lock so plain
// mutations stay live while a request is pending.
func (s *Store) SmartAdd(ctx context.Context, text string) ([]model.Task, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false
	}

	priority := s.assist.SuggestPriority(ctx, trimmed)
	subtasks := s.assist.Decompose(ctx, trimmed)

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(subtasks) == 0 {
		return []model.Task{s.prependLocked(trimmed, priority)}, true
	}

	created := make([]model.Task, 0, len(subtasks))
	for _, sub := range subtasks {
		created = append(created, s.newTask(sub, priority))
	}
	// Prepend the whole batch at once so the visible order matches the
	// breakdown order.
	s.tasks = append(append([]model.Task{}, created...), s.tasks...)
	s.persistLocked()
	return created, true
}

// Toggle flips the completion state of the matching task. Unknown ids are
// a no-op.
func (s *Store) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			s.persistLocked()
			return true
		}
	}
	return false
}

// Delete removes the matching task. Unknown ids are a no-op, so a repeated
// delete is harmless.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.persistLocked()
			return true
		}
	}
	return false
}

// Tasks returns a copy of the full list, newest first.
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Filter projects the list through a tab without mutating it: all passes
// everything, active excludes completed tasks, completed keeps only them.
func (s *Store) Filter(tab model.FilterTab) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		switch tab {
		case model.FilterActive:
			if task.Completed {
				continue
			}
		case model.FilterCompleted:
			if !task.Completed {
				continue
			}
		}
		out = append(out, task)
	}
	return out
}

// Stats counts incomplete tasks per priority, most urgent first. Priorities
// with no incomplete tasks are omitted entirely.
func (s *Store) Stats() []model.StatsEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[model.Priority]int, 3)
	for _, task := range s.tasks {
		if !task.Completed {
			counts[task.Priority]++
		}
	}
	out := make([]model.StatsEntry, 0, len(counts))
	for _, p := range model.Priorities() {
		if counts[p] > 0 {
			out = append(out, model.StatsEntry{Name: string(p), Value: counts[p]})
		}
	}
	return out
}

// PendingCount reports how many tasks are still incomplete.
func (s *Store) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, task := range s.tasks {
		if !task.Completed {
			count++
		}
	}
	return count
}

func (s *Store) newTask(text string, p model.Priority) model.Task {
	if !p.IsValid() {
		p = model.PriorityLow
	}
	return model.Task{
		ID:        s.newID(),
		Text:      text,
		Priority:  p,
		CreatedAt: s.now(),
	}
}

func (s *Store) prependLocked(text string, p model.Priority) model.Task {
	task := s.newTask(text, p)
	s.tasks = append([]model.Task{task}, s.tasks...)
	s.persistLocked()
	return task
}

// persistLocked mirrors the current list to storage. Write failures are
// logged and absorbed; the in-memory list stays authoritative.
func (s *Store) persistLocked() {
	if s.repo == nil {
		return
	}
	records := make([]storage.TaskRecord, len(s.tasks))
	for i, task := range s.tasks {
		records[i] = storage.TaskRecord{
			ID:        task.ID,
			Text:      task.Text,
			Completed: task.Completed,
			Priority:  string(task.Priority),
			CreatedAt: task.CreatedAt,
		}
	}
	if err := s.repo.SaveTasks(context.Background(), records); err != nil {
		s.logger.Warn("persist tasks", "error", err, "count", len(records))
	}
}
