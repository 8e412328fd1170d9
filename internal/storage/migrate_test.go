package storage

import (
	"context"
	"testing"
	"time"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	db := setupDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	ctx := context.Background()
	want := []TaskRecord{{
		ID:        "task-rt-1",
		Text:      "Roundtrip task",
		Priority:  "Medium",
		CreatedAt: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
	}}
	if err := repo.SaveTasks(ctx, want); err != nil {
		t.Fatalf("save after roundtrip failed: %v", err)
	}

	got, err := repo.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("load after roundtrip failed: %v", err)
	}
	if len(got) != 1 || got[0].Text != "Roundtrip task" {
		t.Fatalf("unexpected tasks after roundtrip: %#v", got)
	}
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	db := setupDB(t)
	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("repeat migrate up failed: %v", err)
	}
}

func TestMigrateDownDropsData(t *testing.T) {
	db := setupDB(t)
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	ctx := context.Background()
	records := []TaskRecord{{
		ID:        "task-drop-1",
		Text:      "Doomed task",
		Priority:  "Low",
		CreatedAt: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
	}}
	if err := repo.SaveTasks(ctx, records); err != nil {
		t.Fatalf("save tasks: %v", err)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up failed: %v", err)
	}

	got, err := repo.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list after schema rebuild, got %#v", got)
	}
}
