package channel

import (
	"context"
	"errors"
	"testing"

	"github.com/quarrylabs/quarry/internal/db"
	"github.com/quarrylabs/quarry/internal/domain"
)

func TestLexical_Search(t *testing.T) {
	ms := &mockStore{
		searchBM25Fn: func(_ context.Context, q *db.TextQuery) (*db.SearchResult, error) {
			if q.IndexName != "objects:idx" {
				t.Errorf("index = %q", q.IndexName)
			}
			if q.Query != "coffee" || q.TopK != 200 {
				t.Errorf("query = %q, topK = %d", q.Query, q.TopK)
			}
			return &db.SearchResult{
				Total: 2,
				Entries: []db.SearchEntry{
					{Key: "obj:abc", Score: 3.5},
					{Key: "obj:def", Score: 1.2},
				},
			}, nil
		},
	}

	ch := NewLexical(ms, "objects:idx", "obj:")
	cands, err := ch.Search(context.Background(), "coffee", 200)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(cands) != 2 {
		t.Fatalf("candidates = %d, want 2", len(cands))
	}
	want := []domain.Candidate{{ID: "abc", Score: 3.5}, {ID: "def", Score: 1.2}}
	for i, c := range cands {
		if c != want[i] {
			t.Errorf("candidate %d = %+v, want %+v", i, c, want[i])
		}
	}
}

func TestLexical_SearchError(t *testing.T) {
	storeErr := errors.New("connection refused")
	ms := &mockStore{
		searchBM25Fn: func(context.Context, *db.TextQuery) (*db.SearchResult, error) {
			return nil, storeErr
		},
	}

	ch := NewLexical(ms, "objects:idx", "obj:")
	if _, err := ch.Search(context.Background(), "coffee", 10); !errors.Is(err, storeErr) {
		t.Fatalf("err = %v, want wrapped store error", err)
	}
}

func TestLexical_SearchEmpty(t *testing.T) {
	ch := NewLexical(&mockStore{}, "objects:idx", "obj:")
	cands, err := ch.Search(context.Background(), "coffee", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(cands) != 0 {
		t.Errorf("candidates = %d, want 0", len(cands))
	}
}

func TestVector_Search(t *testing.T) {
	me := &mockEmbedder{
		embedFn: func(_ context.Context, text string) (domain.EmbeddingResult, error) {
			if text != "coffee" {
				t.Errorf("embed text = %q", text)
			}
			return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2, 0.3}}, nil
		},
	}
	ms := &mockStore{
		searchKNNFn: func(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
			if len(q.Vector) != 3 {
				t.Errorf("vector len = %d, want 3", len(q.Vector))
			}
			if q.K != 50 {
				t.Errorf("k = %d, want 50", q.K)
			}
			return &db.SearchResult{
				Total:   1,
				Entries: []db.SearchEntry{{Key: "obj:abc", Score: 0.91}},
			}, nil
		},
	}

	ch := NewVector(ms, me, "objects:idx", "obj:")
	cands, err := ch.Search(context.Background(), "coffee", 50)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(cands) != 1 || cands[0].ID != "abc" || cands[0].Score != 0.91 {
		t.Fatalf("candidates = %+v", cands)
	}
}

func TestVector_EmbedErrorStopsSearch(t *testing.T) {
	embErr := errors.New("provider down")
	me := &mockEmbedder{
		embedFn: func(context.Context, string) (domain.EmbeddingResult, error) {
			return domain.EmbeddingResult{}, embErr
		},
	}
	ms := &mockStore{
		searchKNNFn: func(context.Context, *db.KNNQuery) (*db.SearchResult, error) {
			t.Fatal("SearchKNN must not be called when embedding fails")
			return nil, nil
		},
	}

	ch := NewVector(ms, me, "objects:idx", "obj:")
	if _, err := ch.Search(context.Background(), "coffee", 10); !errors.Is(err, embErr) {
		t.Fatalf("err = %v, want wrapped embed error", err)
	}
}

func TestDisabled_Search(t *testing.T) {
	cands, err := Disabled{}.Search(context.Background(), "coffee", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if cands != nil {
		t.Errorf("candidates = %+v, want nil", cands)
	}
}
