package history

import (
	"testing"
	"time"

	"docsum/internal/domain"
	"docsum/internal/embedding/tfidf"
	"docsum/internal/vectorstore/memory"
)

func newTestIndex(t *testing.T, entries ...domain.HistoryEntry) *Index {
	t.Helper()
	ix := NewIndex(tfidf.NewEmbedder(), memory.NewStorage())
	if err := ix.Rebuild(entries); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	return ix
}

func TestIndex_SearchFindsEntry(t *testing.T) {
	ix := newTestIndex(t,
		domain.HistoryEntry{ID: "fin", Text: "Quarterly revenue grew strongly. Margins improved across regions. The board approved a dividend."},
		domain.HistoryEntry{ID: "ar", Text: "أعلنت الشركة عن نتائجها السنوية. ارتفعت الأرباح بشكل كبير."},
	)
	got, err := ix.Search("revenue dividend", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) == 0 || got[0].Entry.ID != "fin" {
		t.Fatalf("expected finance entry first, got %+v", got)
	}
	got, err = ix.Search("الشركه", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) == 0 || got[0].Entry.ID != "ar" {
		t.Fatalf("expected Arabic entry for normalized query, got %+v", got)
	}
}

func TestIndex_AddIncremental(t *testing.T) {
	ix := newTestIndex(t)
	if got, _ := ix.Search("anything", 5); len(got) != 0 {
		t.Fatalf("expected no results on empty index, got %+v", got)
	}
	if err := ix.Add(domain.HistoryEntry{ID: "a", Summary: "Solar panels lower energy bills."}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := ix.Add(domain.HistoryEntry{ID: "a", Summary: "Solar panels lower energy bills."}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if ix.Len() != 1 {
		t.Fatalf("Len = %d, want 1", ix.Len())
	}
	got, err := ix.Search("solar energy", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].Entry.ID != "a" {
		t.Fatalf("unexpected results: %+v", got)
	}
}

func TestIndex_LexicalFallbackForStopwords(t *testing.T) {
	ix := newTestIndex(t, domain.HistoryEntry{ID: "x", Text: "The cat sat on the mat."})
	// stopwords are outside the TF-IDF vocabulary
	got, err := ix.Search("the", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].Score <= 0 {
		t.Fatalf("expected lexical match, got %+v", got)
	}
}

func TestOverlapOchiai(t *testing.T) {
	q := tokenSet("alpha beta")
	if got := overlapOchiai(q, "alpha beta"); got < 0.999 {
		t.Fatalf("identical sets = %v, want 1", got)
	}
	if got := overlapOchiai(q, "gamma"); got != 0 {
		t.Fatalf("disjoint sets = %v, want 0", got)
	}
	if got := overlapOchiai(q, ""); got != 0 {
		t.Fatalf("empty text = %v, want 0", got)
	}
}

func TestNewEntry(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.FixedZone("X", 3600))
	doc := domain.Document{ID: "d1", Source: "a.txt", Pages: []string{"p1", "p2"}}
	sum := domain.Summary{Text: "s", Policy: domain.PolicyShort, Stats: domain.Stats{SourceWordCount: 2}}
	e := NewEntry(doc, sum, now)
	if e.ID == "" || e.DocumentID != "d1" || e.Source != "a.txt" || e.Policy != domain.PolicyShort {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if e.Text != "p1\n\np2" {
		t.Fatalf("Text = %q", e.Text)
	}
	if !e.CreatedAt.Equal(now) || e.CreatedAt.Location() != time.UTC {
		t.Fatalf("CreatedAt = %v", e.CreatedAt)
	}
	if other := NewEntry(doc, sum, now); other.ID == e.ID {
		t.Fatalf("expected unique IDs")
	}
}
