package domain

// Candidate is one object as scored by a single retrieval channel.
// The score is channel-local and not comparable across channels.
type Candidate struct {
	ID    string
	Score float64
}

// EmbeddingResult holds a query embedding and its token usage.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}
