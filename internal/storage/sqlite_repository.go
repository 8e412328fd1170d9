package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLiteRepository persists the list wholesale: one flat set of task rows,
// rewritten in a single transaction after every mutation and read once at
// startup. Position carries insertion order (0 = newest) so reload never
// depends on timestamp ties.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if err := MigrateUp(db); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// SaveTasks replaces the stored list with tasks, preserving slice order.
func (r *SQLiteRepository) SaveTasks(ctx context.Context, tasks []TaskRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	for i, task := range tasks {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (position, id, text, completed, priority, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			i, task.ID, task.Text, boolInt(task.Completed), task.Priority, mustTime(task.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("insert task %s: %w", task.ID, err)
		}
	}
	return tx.Commit()
}

// LoadTasks returns the stored list in its persisted order. Any row that
// fails to scan or parse makes the whole load fail; callers treat that as
// an empty list.
func (r *SQLiteRepository) LoadTasks(ctx context.Context) ([]TaskRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, text, completed, priority, created_at
		FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TaskRecord, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (TaskRecord, error) {
	var out TaskRecord
	var completed int
	var created string
	if err := s.Scan(&out.ID, &out.Text, &completed, &out.Priority, &created); err != nil {
		return TaskRecord{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return TaskRecord{}, err
	}
	out.Completed = completed == 1
	out.CreatedAt = createdAt
	return out, nil
}
