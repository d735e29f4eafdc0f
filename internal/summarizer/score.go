package summarizer

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"docsum/internal/domain"
	"docsum/internal/textclean"
)

// Score sums the independent signals for the sentence at position within all.
func (s *ExtractiveSummarizer) Score(sentence domain.Sentence, all []domain.Sentence, freq map[string]int, position int) float64 {
	w := s.weights
	words := strings.Fields(sentence.Text)
	tokens := textclean.Tokens(sentence.Text)

	score := lengthFitness(len(words), w)
	score += positionBonus(position, len(all), w)

	hits, distinct := keywords.match(tokens)
	score += float64(hits) * w.Keyword
	if len(distinct) > 2 {
		score += w.KeywordCompound
	}
	if n, _ := questions.match(tokens); n > 0 {
		score += float64(n) * w.Question
	}
	if n, _ := connectors.match(tokens); n > 0 {
		score += float64(n) * w.Connector
	}

	if strings.IndexFunc(sentence.Text, textclean.IsDigit) >= 0 {
		score += w.Numeric
	}
	if strings.ContainsAny(sentence.Text, "%٪$€£") {
		score += w.Symbol
	}

	score += salience(tokens, freq, w)

	if strings.ContainsAny(sentence.Text, "\"«»'") {
		score += w.Quote
	}
	if hasProperNoun(words) {
		score += w.ProperNoun
	}
	return score
}

func lengthFitness(n int, w Weights) float64 {
	return math.Max(0, w.LengthMax-w.LengthPenalty*math.Abs(float64(n)-w.IdealLength))
}

func positionBonus(position, total int, w Weights) float64 {
	switch {
	case position == 0:
		return w.PositionFirst
	case position == total-1:
		return w.PositionLast
	case position == 1:
		return w.PositionSecond
	case position < 3:
		return w.PositionEarly
	}
	return 0
}

// salience rewards tokens that recur without being ubiquitous.
func salience(tokens []string, freq map[string]int, w Weights) float64 {
	total := 0.0
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) < w.SalienceMinRunes {
			continue
		}
		if f := freq[tok]; f >= w.SalienceMinFreq && f <= w.SalienceMaxFreq {
			total += w.Salience
		}
	}
	return math.Min(total, w.SalienceCap)
}

// hasProperNoun looks for a capitalized Latin word after the first word.
func hasProperNoun(words []string) bool {
	for i, word := range words {
		if i == 0 {
			continue
		}
		word = strings.TrimLeft(word, "\"'(«[“")
		r, _ := utf8.DecodeRuneInString(word)
		if textclean.IsLatinLetter(r) && unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
