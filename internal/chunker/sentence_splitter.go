package chunker

import (
	"regexp"
	"strings"

	"docsum/internal/domain"
)

// SentenceSplitter segments text on runs of sentence-final punctuation and
// line breaks. Delimiters are consumed; the surface text of each sentence is
// kept as is.
type SentenceSplitter struct {
	splitter *regexp.Regexp
}

// NewSentenceSplitter creates a splitter for Latin and Arabic terminators.
func NewSentenceSplitter() *SentenceSplitter {
	return &SentenceSplitter{splitter: regexp.MustCompile(`[.!?؟।\n]+`)}
}

// Split returns the non-empty sentences of text with 0-based positions.
func (s *SentenceSplitter) Split(text string) []domain.Sentence {
	parts := s.splitter.Split(text, -1)
	sentences := make([]domain.Sentence, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		sentences = append(sentences, domain.Sentence{Text: p, Position: len(sentences)})
	}
	return sentences
}

// Join reassembles sentences with a period separator and a trailing period.
func Join(sentences []domain.Sentence) string {
	if len(sentences) == 0 {
		return ""
	}
	texts := make([]string, len(sentences))
	for i, s := range sentences {
		texts[i] = s.Text
	}
	return strings.Join(texts, ". ") + "."
}
