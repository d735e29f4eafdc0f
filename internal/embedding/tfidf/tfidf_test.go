package tfidf

import (
	"math"
	"testing"
)

func TestEmbedder_NotPrepared(t *testing.T) {
	e := NewEmbedder()
	if _, err := e.Embed("anything"); err == nil {
		t.Fatalf("expected error before Prepare")
	}
	if err := e.Prepare(nil); err == nil {
		t.Fatalf("expected error for empty corpus")
	}
}

func TestEmbedder_ArabicVariantsShareVocabulary(t *testing.T) {
	e := NewEmbedder()
	if err := e.Prepare([]string{"أحمد يعمل في الشركة", "the annual report"}); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	a, err := e.Embed("احمد")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	b, _ := e.Embed("أحمد")
	if dot(a, b) < 0.999 {
		t.Fatalf("expected normalized variants to embed identically, dot=%v", dot(a, b))
	}
	if norm := math.Sqrt(dot(a, a)); math.Abs(norm-1) > 1e-9 {
		t.Fatalf("vector not L2 normalized: %v", norm)
	}
}

func TestEmbedder_OutOfVocabularyIsZero(t *testing.T) {
	e := NewEmbedder()
	if err := e.Prepare([]string{"quarterly revenue growth"}); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if e.Dimension() != 3 {
		t.Fatalf("dimension = %d, want 3", e.Dimension())
	}
	v, err := e.Embed("unrelated words entirely")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if dot(v, v) != 0 {
		t.Fatalf("expected zero vector, got %v", v)
	}
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
