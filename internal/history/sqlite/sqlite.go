package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure Go sqlite driver

	"docsum/internal/domain"
	"docsum/internal/history"
)

const busyTimeoutMS = 5000

// Store persists history entries in a SQLite database.
type Store struct{ db *sql.DB }

// Open opens or creates the history database at dsn and ensures its schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("sqlite history: empty dsn")
	}
	db, err := sql.Open("sqlite", ensurePragmas(dsn, busyTimeoutMS))
	if err != nil {
		return nil, fmt.Errorf("open sqlite history: %w", err)
	}
	// a single writer connection keeps :memory: databases shared
	db.SetMaxOpenConns(1)
	s := &Store{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS entries (
            seq INTEGER PRIMARY KEY AUTOINCREMENT,
            id TEXT NOT NULL UNIQUE,
            document_id TEXT NOT NULL,
            source TEXT NOT NULL,
            policy TEXT NOT NULL,
            summary TEXT NOT NULL,
            body TEXT NOT NULL,
            source_sentences INTEGER NOT NULL,
            source_words INTEGER NOT NULL,
            summary_words INTEGER NOT NULL,
            ratio INTEGER NOT NULL,
            created_at INTEGER NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS idx_entries_created ON entries(created_at);`,
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure history schema: %w", err)
		}
	}
	return tx.Commit()
}

func (s *Store) Close() error { return s.db.Close() }

// Add inserts entry, replacing any entry with the same ID. A replaced entry
// takes a new sequence number so it lists as the most recent addition.
func (s *Store) Add(ctx context.Context, e domain.HistoryEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE id=?`, e.ID); err != nil {
		return fmt.Errorf("replace history entry: %w", err)
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO entries(id, document_id, source, policy, summary, body,
        source_sentences, source_words, summary_words, ratio, created_at)
        VALUES(?,?,?,?,?,?,?,?,?,?,?)`,
		e.ID, e.DocumentID, e.Source, string(e.Policy), e.Summary, e.Text,
		e.Stats.SourceSentenceCount, e.Stats.SourceWordCount, e.Stats.SummaryWordCount,
		e.Stats.CompressionRatioPercent, e.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return tx.Commit()
}

const selectColumns = `SELECT id, document_id, source, policy, summary, body,
    source_sentences, source_words, summary_words, ratio, created_at FROM entries`

func (s *Store) Get(ctx context.Context, id string) (domain.HistoryEntry, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id=?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.HistoryEntry{}, history.ErrNotFound
	}
	return e, err
}

// List returns up to limit entries, newest first. A non-positive limit returns all.
func (s *Store) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC, seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.HistoryEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return history.ErrNotFound
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM entries`)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (domain.HistoryEntry, error) {
	var (
		e       domain.HistoryEntry
		policy  string
		created int64
	)
	err := sc.Scan(&e.ID, &e.DocumentID, &e.Source, &policy, &e.Summary, &e.Text,
		&e.Stats.SourceSentenceCount, &e.Stats.SourceWordCount, &e.Stats.SummaryWordCount,
		&e.Stats.CompressionRatioPercent, &created)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	e.Policy = domain.LengthPolicy(policy)
	e.CreatedAt = time.Unix(0, created).UTC()
	return e, nil
}
