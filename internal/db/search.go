package db

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName string
	Vector    []float32
	K         int
}

// TextQuery is the input for BM25 text search.
type TextQuery struct {
	IndexName string
	Query     string
	TopK      int
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key   string
	Score float64
}
