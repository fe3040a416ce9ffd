package retrieval

// SearchResult is a single hit: the record index and its squared Euclidean
// distance to the query (lower is better).
type SearchResult struct {
	RecordIndex int
	Distance    float64
}

// Index holds the question embeddings for exact nearest-neighbour search.
// Embeddings[i] belongs to record i. It is never mutated after construction.
type Index struct {
	Embeddings [][]float32 // One vector per record, in record order
	Dimension  int         // Embedding vector dimension
	ModelInfo  string      // Model name/version used
}
