package summarizer

import (
	"unicode/utf8"

	"docsum/internal/domain"
	"docsum/internal/textclean"
)

// MinTokenRunes is the shortest token counted in the frequency table.
const MinTokenRunes = 3

// BuildFrequency counts normalized, non-stop-word tokens across all sentences.
func BuildFrequency(sentences []domain.Sentence) map[string]int {
	freq := map[string]int{}
	for _, s := range sentences {
		for _, tok := range textclean.Tokens(s.Text) {
			if utf8.RuneCountInString(tok) < MinTokenRunes || textclean.IsStopword(tok) {
				continue
			}
			freq[tok]++
		}
	}
	return freq
}
