// Package history records produced summaries and searches over them.
package history

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"docsum/internal/domain"
)

// ErrNotFound is returned when an entry ID is not present in a store.
var ErrNotFound = errors.New("history entry not found")

// NewEntry builds an entry for a summary of doc with a fresh ID.
func NewEntry(doc domain.Document, summary domain.Summary, now time.Time) domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:         uuid.NewString(),
		DocumentID: doc.ID,
		Source:     doc.Source,
		Policy:     summary.Policy,
		Summary:    summary.Text,
		Text:       doc.Body(),
		Stats:      summary.Stats,
		CreatedAt:  now.UTC(),
	}
}
