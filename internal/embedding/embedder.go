package embedding

// Embedder converts history passages and queries into vectors for similarity
// search. Implementations may require a preparation phase over the corpus;
// Prepare replaces any previous vocabulary.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}
