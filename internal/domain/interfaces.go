package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Kind identifies the format a document was extracted from.
type Kind string

const (
	KindText  Kind = "text"
	KindPDF   Kind = "pdf"
	KindImage Kind = "image"
	KindDOCX  Kind = "docx"
	KindXLSX  Kind = "xlsx"
	KindXLS   Kind = "xls"
)

// Document represents text extracted from a single source.
type Document struct {
	ID      string
	Source  string
	Kind    Kind
	Pages   []string
	Content string
}

// Body returns the page texts joined by blank lines, without page markers.
func (d Document) Body() string {
	if len(d.Pages) == 0 {
		return d.Content
	}
	return strings.Join(d.Pages, "\n\n")
}

// Sentence is a 0-indexed slice of a document with its computed score.
type Sentence struct {
	Text     string
	Position int
	Score    float64
}

// LengthPolicy controls how many sentences a summary keeps.
type LengthPolicy string

const (
	PolicyShort  LengthPolicy = "short"
	PolicyMedium LengthPolicy = "medium"
	PolicyLong   LengthPolicy = "long"
)

// Policies lists every policy in increasing length order.
var Policies = []LengthPolicy{PolicyShort, PolicyMedium, PolicyLong}

// ParsePolicy converts a user supplied name into a LengthPolicy.
func ParsePolicy(s string) (LengthPolicy, error) {
	switch LengthPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyShort:
		return PolicyShort, nil
	case PolicyMedium, "":
		return PolicyMedium, nil
	case PolicyLong:
		return PolicyLong, nil
	}
	return "", fmt.Errorf("unknown length policy: %q", s)
}

// Fraction returns the share of sentences the policy keeps.
func (p LengthPolicy) Fraction() float64 {
	switch p {
	case PolicyShort:
		return 0.25
	case PolicyLong:
		return 0.75
	default:
		return 0.5
	}
}

// Target returns clamp(floor(n*fraction), 1, n). It returns 0 when n is 0.
func (p LengthPolicy) Target(n int) int {
	if n <= 0 {
		return 0
	}
	k := int(float64(n) * p.Fraction())
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}
	return k
}

// Next cycles short -> medium -> long -> short.
func (p LengthPolicy) Next() LengthPolicy {
	for i, q := range Policies {
		if q == p {
			return Policies[(i+1)%len(Policies)]
		}
	}
	return PolicyMedium
}

// Stats describes how much a summary compressed its source.
type Stats struct {
	SourceSentenceCount     int
	SourceWordCount         int
	SummaryWordCount        int
	CompressionRatioPercent int
}

// Summary is the result of one summarization call.
type Summary struct {
	Text     string
	Policy   LengthPolicy
	Selected []Sentence
	Stats    Stats
}

// HistoryEntry records one produced summary.
type HistoryEntry struct {
	ID         string
	DocumentID string
	Source     string
	Policy     LengthPolicy
	Summary    string
	Text       string
	Stats      Stats
	CreatedAt  time.Time
}

// SearchResult represents a matching history passage with a relevance score.
type SearchResult struct {
	Entry   HistoryEntry
	Passage Passage
	Score   float64
}

// Summarizer produces an extractive summary of the provided text.
type Summarizer interface {
	Summarize(text string, policy LengthPolicy) (Summary, error)
}

// Extractor turns raw source bytes into a Document.
type Extractor interface {
	Extract(ctx context.Context, source string, data []byte) (Document, error)
}

// HistoryStore persists produced summaries. It is owned by the caller.
type HistoryStore interface {
	Add(ctx context.Context, entry HistoryEntry) error
	Get(ctx context.Context, id string) (HistoryEntry, error)
	List(ctx context.Context, limit int) ([]HistoryEntry, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// Sink accepts a finished summary, e.g. a file or the clipboard.
type Sink interface {
	Write(ctx context.Context, summary string) error
}

// Passage is a window of consecutive sentences used for history search.
type Passage struct {
	Index int
	Text  string
}
