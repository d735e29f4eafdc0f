package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"docsum/internal/domain"
	"docsum/internal/history"
)

func entry(id string, at time.Time) domain.HistoryEntry {
	return domain.HistoryEntry{ID: id, Source: id + ".txt", Policy: domain.PolicyMedium, Summary: "s " + id, CreatedAt: at}
}

func TestStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		if err := s.Add(ctx, entry(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Add(%s): %v", id, err)
		}
	}
	list, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != "c" || list[1].ID != "b" {
		t.Fatalf("expected newest first, got %+v", list)
	}
	got, err := s.Get(ctx, "a")
	if err != nil || got.Summary != "s a" {
		t.Fatalf("Get: %+v, %v", got, err)
	}
	if err := s.Delete(ctx, "b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "b"); !errors.Is(err, history.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Get(ctx, "b"); !errors.Is(err, history.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	all, _ := s.List(ctx, 0)
	if len(all) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(all))
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if all, _ := s.List(ctx, 0); len(all) != 0 {
		t.Fatalf("expected empty store, got %d", len(all))
	}
}

func TestStore_ReplaceSameID(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_ = s.Add(ctx, entry("a", time.Time{}))
	_ = s.Add(ctx, entry("b", time.Time{}))
	e := entry("a", time.Time{})
	e.Summary = "updated"
	_ = s.Add(ctx, e)
	list, _ := s.List(ctx, 0)
	if len(list) != 2 || list[0].ID != "a" || list[0].Summary != "updated" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewStore().Add(ctx, entry("a", time.Time{})); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
