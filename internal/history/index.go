package history

import (
	"math"
	"sort"
	"sync"

	"docsum/internal/chunker"
	"docsum/internal/domain"
	"docsum/internal/embedding"
	"docsum/internal/textclean"
	"docsum/internal/vectorstore"
)

const (
	passageSentences = 3
	passageOverlap   = 1
	defaultTopK      = 5
)

// Index answers free-text queries over recorded entries. Passages are
// embedded with the configured embedder and ranked by cosine similarity;
// queries with no vocabulary overlap fall back to Ochiai token overlap.
type Index struct {
	mu       sync.Mutex
	chunker  *chunker.WindowChunker
	embedder embedding.Embedder
	store    vectorstore.Storage
	entries  map[string]domain.HistoryEntry
	order    []string
	records  []vectorstore.Record
}

func NewIndex(embedder embedding.Embedder, store vectorstore.Storage) *Index {
	return &Index{
		chunker:  chunker.NewWindowChunker(passageSentences, passageOverlap),
		embedder: embedder,
		store:    store,
		entries:  make(map[string]domain.HistoryEntry),
	}
}

// Rebuild replaces the indexed entries.
func (ix *Index) Rebuild(entries []domain.HistoryEntry) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.entries = make(map[string]domain.HistoryEntry, len(entries))
	ix.order = ix.order[:0]
	for _, e := range entries {
		ix.put(e)
	}
	return ix.reindex()
}

// Add indexes one entry. The TF-IDF vocabulary spans the whole corpus, so
// every passage is re-embedded.
func (ix *Index) Add(entry domain.HistoryEntry) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.put(entry)
	return ix.reindex()
}

// Len reports the number of indexed entries.
func (ix *Index) Len() int {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return len(ix.order)
}

func (ix *Index) put(e domain.HistoryEntry) {
	if _, ok := ix.entries[e.ID]; !ok {
		ix.order = append(ix.order, e.ID)
	}
	ix.entries[e.ID] = e
}

func (ix *Index) reindex() error {
	ix.records = ix.records[:0]
	var texts []string
	for _, id := range ix.order {
		e := ix.entries[id]
		body := e.Text
		if body == "" {
			body = e.Summary
		}
		for _, p := range ix.chunker.Chunk(body) {
			ix.records = append(ix.records, vectorstore.Record{EntryID: id, Passage: p})
			texts = append(texts, p.Text)
		}
	}
	if len(texts) == 0 {
		return ix.store.Clear()
	}
	if err := ix.embedder.Prepare(texts); err != nil {
		// nothing embeddable, lexical search still works
		return ix.store.Clear()
	}
	if err := ix.store.Init(ix.embedder.Dimension()); err != nil {
		return err
	}
	vectors := make([][]float64, len(ix.records))
	for i := range ix.records {
		vec, err := ix.embedder.Embed(ix.records[i].Passage.Text)
		if err != nil {
			return err
		}
		vectors[i] = vec
	}
	return ix.store.Upsert(ix.records, vectors)
}

// Search returns up to topK passages matching query, best first.
func (ix *Index) Search(query string, topK int) ([]domain.SearchResult, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if topK <= 0 {
		topK = defaultTopK
	}
	if len(ix.records) == 0 || len(textclean.Tokens(query)) == 0 {
		return nil, nil
	}
	if ix.embedder.Dimension() == 0 {
		return ix.lexicalSearch(query, topK), nil
	}
	vec, err := ix.embedder.Embed(query)
	if err != nil {
		return nil, err
	}
	if isZero(vec) {
		return ix.lexicalSearch(query, topK), nil
	}
	matches, err := ix.store.Search(vec, topK)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SearchResult, 0, len(matches))
	for _, m := range matches {
		if m.Score <= 1e-9 {
			continue
		}
		out = append(out, domain.SearchResult{Entry: ix.entries[m.Record.EntryID], Passage: m.Record.Passage, Score: m.Score})
	}
	if len(out) == 0 {
		return ix.lexicalSearch(query, topK), nil
	}
	return out, nil
}

func (ix *Index) lexicalSearch(query string, topK int) []domain.SearchResult {
	qset := tokenSet(query)
	type pair struct {
		idx   int
		score float64
	}
	scores := make([]pair, 0, len(ix.records))
	for i, r := range ix.records {
		if s := overlapOchiai(qset, r.Passage.Text); s > 0 {
			scores = append(scores, pair{i, s})
		}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if topK > len(scores) {
		topK = len(scores)
	}
	out := make([]domain.SearchResult, 0, topK)
	for _, p := range scores[:topK] {
		r := ix.records[p.idx]
		out = append(out, domain.SearchResult{Entry: ix.entries[r.EntryID], Passage: r.Passage, Score: p.score})
	}
	return out
}

func tokenSet(s string) map[string]struct{} {
	tokens := textclean.Tokens(s)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

// overlapOchiai computes |A∩B| / sqrt(|A||B|) over distinct tokens.
func overlapOchiai(qset map[string]struct{}, text string) float64 {
	seen := tokenSet(text)
	if len(qset) == 0 || len(seen) == 0 {
		return 0
	}
	inter := 0
	for t := range seen {
		if _, ok := qset[t]; ok {
			inter++
		}
	}
	return float64(inter) / math.Sqrt(float64(len(qset))*float64(len(seen)))
}

func isZero(vec []float64) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}
