package memory

import (
	"context"
	"sync"

	"docsum/internal/domain"
	"docsum/internal/history"
)

// Store keeps history entries in process memory.
type Store struct {
	mu      sync.RWMutex
	entries []domain.HistoryEntry
}

func NewStore() *Store { return &Store{} }

// Add appends entry. An entry with the same ID is replaced and moved to the front.
func (s *Store) Add(ctx context.Context, entry domain.HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(entry.ID)
	s.entries = append(s.entries, entry)
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (domain.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return domain.HistoryEntry{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.HistoryEntry{}, history.ErrNotFound
}

// List returns up to limit entries, newest first. A non-positive limit returns all.
func (s *Store) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.HistoryEntry, 0, limit)
	for i := n - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.remove(id) {
		return history.ErrNotFound
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
	return nil
}

// remove must be called with the write lock held.
func (s *Store) remove(id string) bool {
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}
