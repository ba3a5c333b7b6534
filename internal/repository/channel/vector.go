package channel

import (
	"context"
	"fmt"

	"github.com/quarrylabs/quarry/internal/db"
	"github.com/quarrylabs/quarry/internal/domain"
)

// knnStore is the consumer interface for vector search (ISP).
type knnStore interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// embedder turns query text into a vector.
type embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Vector retrieves similarity-scored candidates by embedding the query and
// running a KNN search against the vector index.
type Vector struct {
	store     knnStore
	embedder  embedder
	indexName string
	keyPrefix string
}

// NewVector creates the vector retrieval channel.
func NewVector(s knnStore, e embedder, indexName, keyPrefix string) *Vector {
	return &Vector{store: s, embedder: e, indexName: indexName, keyPrefix: keyPrefix}
}

// Search embeds the query and returns up to limit similarity candidates.
func (v *Vector) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	emb, err := v.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	sr, err := v.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName: v.indexName,
		Vector:    emb.Embedding,
		K:         limit,
	})
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	return toCandidates(sr, v.keyPrefix), nil
}

// Disabled is a vector channel stand-in for deployments without an
// embedding provider. It always contributes zero candidates, leaving
// fusion to run lexical-only.
type Disabled struct{}

// Search returns no candidates and no error.
func (Disabled) Search(context.Context, string, int) ([]domain.Candidate, error) {
	return nil, nil
}
