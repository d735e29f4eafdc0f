// Package summarizer implements heuristic extractive summarization: sentences
// are scored by position, length, vocabulary and term-frequency signals, and
// the best ones are returned in document order.
package summarizer

import (
	"math"
	"sort"
	"strings"

	"docsum/internal/chunker"
	"docsum/internal/domain"
	"docsum/internal/textclean"
)

// DefaultMinWords is the smallest input worth summarizing.
const DefaultMinWords = 10

// Options configures an ExtractiveSummarizer.
type Options struct {
	MinWords int
	Weights  Weights
}

// ExtractiveSummarizer selects the highest scoring sentences of a text. It
// holds no mutable state and is safe for concurrent use.
type ExtractiveSummarizer struct {
	splitter *chunker.SentenceSplitter
	weights  Weights
	minWords int
}

// NewExtractiveSummarizer creates a summarizer. A zero Weights value selects
// DefaultWeights.
func NewExtractiveSummarizer(opts Options) *ExtractiveSummarizer {
	if opts.MinWords <= 0 {
		opts.MinWords = DefaultMinWords
	}
	if opts.Weights == (Weights{}) {
		opts.Weights = DefaultWeights()
	}
	return &ExtractiveSummarizer{
		splitter: chunker.NewSentenceSplitter(),
		weights:  opts.Weights,
		minWords: opts.MinWords,
	}
}

// Normalize returns the cleaned form of text used before scoring.
func Normalize(text string) string {
	return textclean.Clean(text)
}

// Summarize cleans text, scores its sentences and keeps the share chosen by
// policy, in original order.
func (s *ExtractiveSummarizer) Summarize(text string, policy domain.LengthPolicy) (domain.Summary, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Summary{}, ErrEmptyInput
	}
	cleaned := textclean.Clean(text)
	if cleaned == "" {
		return domain.Summary{}, ErrEmptyInput
	}
	words := textclean.CountWords(cleaned)
	if words < s.minWords {
		return domain.Summary{}, &InsufficientInputError{Words: words, MinWords: s.minWords}
	}
	sentences := s.splitter.Split(cleaned)
	if len(sentences) == 0 {
		return domain.Summary{}, ErrEmptyInput
	}
	if len(sentences) <= 2 {
		return assemble(sentences, len(sentences), words, policy), nil
	}

	freq := BuildFrequency(sentences)
	for i := range sentences {
		sentences[i].Score = s.Score(sentences[i], sentences, freq, i)
	}
	selected := selectTop(sentences, policy.Target(len(sentences)))
	return assemble(selected, len(sentences), words, policy), nil
}

// selectTop returns the k best sentences, ties broken by position, restored
// to document order.
func selectTop(sentences []domain.Sentence, k int) []domain.Sentence {
	ranked := make([]domain.Sentence, len(sentences))
	copy(ranked, sentences)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Position < ranked[j].Position
	})
	selected := ranked[:k]
	sort.Slice(selected, func(i, j int) bool { return selected[i].Position < selected[j].Position })
	return selected
}

func assemble(selected []domain.Sentence, sourceSentences, sourceWords int, policy domain.LengthPolicy) domain.Summary {
	text := chunker.Join(selected)
	summaryWords := textclean.CountWords(text)
	return domain.Summary{
		Text:     text,
		Policy:   policy,
		Selected: selected,
		Stats: domain.Stats{
			SourceSentenceCount:     sourceSentences,
			SourceWordCount:         sourceWords,
			SummaryWordCount:        summaryWords,
			CompressionRatioPercent: int(math.Round(float64(summaryWords) / float64(sourceWords) * 100)),
		},
	}
}
