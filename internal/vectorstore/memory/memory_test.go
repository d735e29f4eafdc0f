package memory

import (
	"testing"

	"docsum/internal/domain"
	"docsum/internal/vectorstore"
)

func TestStorage_SearchOrdersByScore(t *testing.T) {
	s := NewStorage()
	if err := s.Init(2); err != nil {
		t.Fatalf("Init: %v", err)
	}
	records := []vectorstore.Record{
		{EntryID: "a", Passage: domain.Passage{Index: 0, Text: "first"}},
		{EntryID: "b", Passage: domain.Passage{Index: 0, Text: "second"}},
		{EntryID: "c", Passage: domain.Passage{Index: 0, Text: "third"}},
	}
	vectors := [][]float64{{1, 0}, {0, 1}, {0.6, 0.8}}
	if err := s.Upsert(records, vectors); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	got, err := s.Search([]float64{0, 1}, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 || got[0].Record.EntryID != "b" || got[1].Record.EntryID != "c" {
		t.Fatalf("unexpected matches: %+v", got)
	}
}

func TestStorage_Errors(t *testing.T) {
	s := NewStorage()
	if err := s.Init(0); err == nil {
		t.Fatalf("expected error for zero dimension")
	}
	_ = s.Init(3)
	if err := s.Upsert([]vectorstore.Record{{EntryID: "x"}}, nil); err == nil {
		t.Fatalf("expected length mismatch error")
	}
	if err := s.Upsert([]vectorstore.Record{{EntryID: "x"}}, [][]float64{{1}}); err == nil {
		t.Fatalf("expected dimension mismatch error")
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, _ := s.Search([]float64{1, 0, 0}, 3)
	if len(got) != 0 {
		t.Fatalf("expected empty result after Clear, got %+v", got)
	}
}
