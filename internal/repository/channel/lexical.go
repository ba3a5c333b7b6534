package channel

import (
	"context"
	"fmt"
	"strings"

	"github.com/quarrylabs/quarry/internal/db"
	"github.com/quarrylabs/quarry/internal/domain"
)

// textStore is the consumer interface for BM25 search (ISP).
type textStore interface {
	SearchBM25(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

// Lexical retrieves BM25-scored candidates from the full-text index.
type Lexical struct {
	store     textStore
	indexName string
	keyPrefix string
}

// NewLexical creates the lexical retrieval channel.
func NewLexical(s textStore, indexName, keyPrefix string) *Lexical {
	return &Lexical{store: s, indexName: indexName, keyPrefix: keyPrefix}
}

// Search returns up to limit raw-scored candidates for the query.
func (l *Lexical) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	sr, err := l.store.SearchBM25(ctx, &db.TextQuery{
		IndexName: l.indexName,
		Query:     query,
		TopK:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("lexical search: %w", err)
	}

	return toCandidates(sr, l.keyPrefix), nil
}

// toCandidates converts store entries into channel candidates, stripping
// the storage key prefix to recover object ids.
func toCandidates(sr *db.SearchResult, keyPrefix string) []domain.Candidate {
	if sr == nil || len(sr.Entries) == 0 {
		return nil
	}

	cands := make([]domain.Candidate, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		cands = append(cands, domain.Candidate{
			ID:    strings.TrimPrefix(entry.Key, keyPrefix),
			Score: entry.Score,
		})
	}
	return cands
}
