package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"docsum/internal/domain"
	"docsum/internal/history"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	at := time.Date(2024, 3, 2, 12, 30, 0, 123, time.UTC)
	want := domain.HistoryEntry{
		ID:         "e1",
		DocumentID: "doc",
		Source:     "تقرير.pdf",
		Policy:     domain.PolicyLong,
		Summary:    "ملخص قصير.",
		Text:       "نص كامل.",
		Stats:      domain.Stats{SourceSentenceCount: 4, SourceWordCount: 40, SummaryWordCount: 12, CompressionRatioPercent: 30},
		CreatedAt:  at,
	}
	if err := s.Add(ctx, want); err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, err := s.Get(ctx, "e1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.CreatedAt.Equal(at) {
		t.Fatalf("CreatedAt = %v, want %v", got.CreatedAt, at)
	}
	got.CreatedAt = want.CreatedAt
	if got != want {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestStore_ListDeleteClear(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		e := domain.HistoryEntry{ID: id, Policy: domain.PolicyShort, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := s.Add(ctx, e); err != nil {
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
	if err := s.Delete(ctx, "c"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "c"); !errors.Is(err, history.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Get(ctx, "c"); !errors.Is(err, history.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if all, _ := s.List(ctx, 0); len(all) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(all))
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if all, _ := s.List(ctx, 0); len(all) != 0 {
		t.Fatalf("expected empty store, got %d", len(all))
	}
}

func TestStore_AddReplacesSameID(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for _, e := range []domain.HistoryEntry{
		{ID: "x", Policy: domain.PolicyShort, Summary: "قديم", CreatedAt: at},
		{ID: "y", Policy: domain.PolicyShort, Summary: "آخر", CreatedAt: at},
		{ID: "x", Policy: domain.PolicyLong, Summary: "جديد", CreatedAt: at},
	} {
		if err := s.Add(ctx, e); err != nil {
			t.Fatalf("Add(%s): %v", e.ID, err)
		}
	}
	list, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != "x" || list[0].Summary != "جديد" || list[0].Policy != domain.PolicyLong {
		t.Fatalf("expected replaced entry first, got %+v", list)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := s.Add(cancelled, domain.HistoryEntry{ID: "x", Policy: domain.PolicyShort, Summary: "ضائع", CreatedAt: at}); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
	got, err := s.Get(ctx, "x")
	if err != nil || got.Summary != "جديد" {
		t.Fatalf("failed replace lost the entry: %+v, %v", got, err)
	}
}

func TestStore_ReopenKeepsEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "h.db")
	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = s.Add(ctx, domain.HistoryEntry{ID: "keep", Policy: domain.PolicyMedium, CreatedAt: time.Now()})
	_ = s.Close()
	s, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if _, err := s.Get(ctx, "keep"); err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
}

func TestEnsurePragmas(t *testing.T) {
	cases := []struct{ in, want string }{
		{":memory:", ":memory:"},
		{"h.db", "file:h.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"},
		{"file:h.db?_pragma=busy_timeout(10)", "file:h.db?_pragma=busy_timeout(10)&_pragma=journal_mode(WAL)"},
	}
	for _, c := range cases {
		if got := ensurePragmas(c.in, busyTimeoutMS); got != c.want {
			t.Errorf("ensurePragmas(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
