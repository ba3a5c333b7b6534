package search

import (
	"context"

	"github.com/quarrylabs/quarry/internal/domain"
)

// LexicalSearcher is the full-text retrieval channel.
type LexicalSearcher interface {
	Search(ctx context.Context, query string, cap int) ([]domain.Candidate, error)
}

// VectorSearcher is the vector similarity retrieval channel.
// An unconfigured channel legitimately returns zero candidates.
type VectorSearcher interface {
	Search(ctx context.Context, query string, cap int) ([]domain.Candidate, error)
}
