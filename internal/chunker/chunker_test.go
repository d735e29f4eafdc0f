package chunker

import (
	"testing"

	"docsum/internal/domain"
)

func TestSentenceSplitter_Split(t *testing.T) {
	s := NewSentenceSplitter()
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"no terminator", "just one unit of text", []string{"just one unit of text"}},
		{"latin", "First one. Second one! Third one?", []string{"First one", "Second one", "Third one"}},
		{"arabic", "مرحبا بكم؟ هذا نص. وداعا", []string{"مرحبا بكم", "هذا نص", "وداعا"}},
		{"delimiter runs", "One...\n\nTwo?!\nThree", []string{"One", "Two", "Three"}},
		{"devanagari danda", "पहला। दूसरा", []string{"पहला", "दूसरा"}},
		{"only delimiters", "...\n!?", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := s.Split(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("Split(%q) returned %d sentences, want %d: %+v", tc.in, len(got), len(tc.want), got)
			}
			for i, sent := range got {
				if sent.Text != tc.want[i] {
					t.Fatalf("sentence %d = %q, want %q", i, sent.Text, tc.want[i])
				}
				if sent.Position != i {
					t.Fatalf("sentence %d has position %d", i, sent.Position)
				}
			}
		})
	}
}

func TestJoin(t *testing.T) {
	if got := Join(nil); got != "" {
		t.Fatalf("Join(nil) = %q", got)
	}
	got := Join([]domain.Sentence{{Text: "a b"}, {Text: "c d"}})
	if got != "a b. c d." {
		t.Fatalf("Join = %q", got)
	}
}

func TestWindowChunker_Chunk(t *testing.T) {
	c := NewWindowChunker(2, 1)
	passages := c.Chunk("One. Two. Three. Four.")
	want := []string{"One. Two.", "Two. Three.", "Three. Four."}
	if len(passages) != len(want) {
		t.Fatalf("got %d passages, want %d: %+v", len(passages), len(want), passages)
	}
	for i, p := range passages {
		if p.Text != want[i] || p.Index != i {
			t.Fatalf("passage %d = %+v, want %q", i, p, want[i])
		}
	}
}

func TestWindowChunker_OverlapClamped(t *testing.T) {
	c := NewWindowChunker(2, 5)
	passages := c.Chunk("One. Two. Three.")
	if len(passages) != 2 {
		t.Fatalf("expected 2 passages, got %+v", passages)
	}
	if c.Chunk("   ") != nil {
		t.Fatalf("expected no passages for blank text")
	}
}
