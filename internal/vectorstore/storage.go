package vectorstore

import "docsum/internal/domain"

// Record ties an indexed passage to the history entry it came from.
type Record struct {
	EntryID string
	Passage domain.Passage
}

// Match is a stored record with its similarity to a query vector.
type Match struct {
	Record Record
	Score  float64
}

// Storage persists vectors and supports similarity search.
type Storage interface {
	Init(dimension int) error
	Upsert(records []Record, vectors [][]float64) error
	Search(vector []float64, topK int) ([]Match, error)
	Clear() error
}
