package chunker

import "docsum/internal/domain"

// WindowChunker splits text into sentence-based passages with overlap.
type WindowChunker struct {
	sentencesPerChunk int
	overlapSentences  int
	splitter          *SentenceSplitter
}

func NewWindowChunker(sentencesPerChunk, overlapSentences int) *WindowChunker {
	if sentencesPerChunk <= 0 {
		sentencesPerChunk = 5
	}
	if overlapSentences < 0 {
		overlapSentences = 0
	}
	// the window has to advance
	if overlapSentences >= sentencesPerChunk {
		overlapSentences = sentencesPerChunk - 1
	}
	return &WindowChunker{
		sentencesPerChunk: sentencesPerChunk,
		overlapSentences:  overlapSentences,
		splitter:          NewSentenceSplitter(),
	}
}

func (c *WindowChunker) Chunk(text string) []domain.Passage {
	sentences := c.splitter.Split(text)
	if len(sentences) == 0 {
		return nil
	}
	var passages []domain.Passage
	i := 0
	idx := 0
	for i < len(sentences) {
		end := i + c.sentencesPerChunk
		if end > len(sentences) {
			end = len(sentences)
		}
		passages = append(passages, domain.Passage{Index: idx, Text: Join(sentences[i:end])})
		if end == len(sentences) {
			break
		}
		i = end - c.overlapSentences
		idx++
	}
	return passages
}
