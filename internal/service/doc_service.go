package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"docsum/internal/domain"
)

// Loader fetches raw bytes for a source and expands source patterns.
type Loader interface {
	Load(ctx context.Context, source string) ([]byte, error)
	Expand(sources []string) []string
}

// SearchIndex ranks recorded history passages against a query.
type SearchIndex interface {
	Add(entry domain.HistoryEntry) error
	Rebuild(entries []domain.HistoryEntry) error
	Search(query string, topK int) ([]domain.SearchResult, error)
}

// Result is the outcome of processing one source. Err is set when the
// source could not be loaded, extracted or summarized.
type Result struct {
	Source   string
	Document domain.Document
	Summary  domain.Summary
	Entry    domain.HistoryEntry
	Err      error
}

// DocService loads documents, summarizes them and keeps a searchable history.
type DocService struct {
	loader     Loader
	extractor  domain.Extractor
	summarizer domain.Summarizer
	store      domain.HistoryStore
	index      SearchIndex
	logger     *zap.Logger
	newEntry   func(domain.Document, domain.Summary, time.Time) domain.HistoryEntry
	now        func() time.Time
}

func NewDocService(
	loader Loader,
	extractor domain.Extractor,
	summarizer domain.Summarizer,
	store domain.HistoryStore,
	index SearchIndex,
	newEntry func(domain.Document, domain.Summary, time.Time) domain.HistoryEntry,
	logger *zap.Logger,
) *DocService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocService{
		loader:     loader,
		extractor:  extractor,
		summarizer: summarizer,
		store:      store,
		index:      index,
		logger:     logger,
		newEntry:   newEntry,
		now:        time.Now,
	}
}

// WarmHistory indexes up to limit stored entries for search.
func (s *DocService) WarmHistory(ctx context.Context, limit int) error {
	entries, err := s.store.List(ctx, limit)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	if err := s.index.Rebuild(entries); err != nil {
		return fmt.Errorf("index history: %w", err)
	}
	s.logger.Debug("history indexed", zap.Int("entries", len(entries)))
	return nil
}

// Process summarizes every source in order. Per-source failures are reported
// in the matching Result; only context cancellation aborts the run.
func (s *DocService) Process(ctx context.Context, sources []string, policy domain.LengthPolicy) ([]Result, error) {
	expanded := s.loader.Expand(sources)
	results := make([]Result, 0, len(expanded))
	for _, src := range expanded {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res := s.processOne(ctx, src, policy)
		if res.Err != nil {
			s.logger.Warn("source skipped", zap.String("source", src), zap.Error(res.Err))
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *DocService) processOne(ctx context.Context, src string, policy domain.LengthPolicy) Result {
	res := Result{Source: src}
	data, err := s.loader.Load(ctx, src)
	if err != nil {
		res.Err = err
		return res
	}
	doc, err := s.extractor.Extract(ctx, src, data)
	if err != nil {
		res.Err = err
		return res
	}
	res.Document = doc
	sum, err := s.summarizer.Summarize(doc.Body(), policy)
	if err != nil {
		res.Err = fmt.Errorf("summarize %s: %w", src, err)
		return res
	}
	res.Summary = sum
	s.logger.Info("source summarized",
		zap.String("source", src),
		zap.String("kind", string(doc.Kind)),
		zap.Int("pages", len(doc.Pages)),
		zap.Int("words", sum.Stats.SourceWordCount),
		zap.Int("ratio", sum.Stats.CompressionRatioPercent),
	)
	res.Entry = s.newEntry(doc, sum, s.now())
	if err := s.record(ctx, res.Entry); err != nil {
		// the summary is still usable
		s.logger.Warn("history not recorded", zap.String("source", src), zap.Error(err))
	}
	return res
}

func (s *DocService) record(ctx context.Context, entry domain.HistoryEntry) error {
	if err := s.store.Add(ctx, entry); err != nil {
		return err
	}
	return s.index.Add(entry)
}

// Resummarize recomputes the summary of an extracted document under another
// policy. Nothing is recorded.
func (s *DocService) Resummarize(doc domain.Document, policy domain.LengthPolicy) (domain.Summary, error) {
	return s.summarizer.Summarize(doc.Body(), policy)
}

// SearchHistory returns up to topK history passages matching query.
func (s *DocService) SearchHistory(query string, topK int) ([]domain.SearchResult, error) {
	return s.index.Search(query, topK)
}
