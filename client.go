// Package quarry provides an embeddable client for hybrid search over a
// Redis-backed object index. It fuses lexical (BM25) and vector (KNN)
// retrieval channels and exposes cursor-based pagination.
package quarry

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	dbredis "github.com/quarrylabs/quarry/internal/db/redis"
	"github.com/quarrylabs/quarry/internal/domain"
	"github.com/quarrylabs/quarry/internal/repository/channel"
	searchuc "github.com/quarrylabs/quarry/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Default index settings, matching the server defaults.
const (
	DefaultIndexName = "quarry:objects:idx"
	DefaultKeyPrefix = "quarry:obj:"
)

// Embedder turns query text into a vector. Implementations wrap an
// embedding provider such as the OpenAI embeddings API.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// EmbeddingResult holds a query embedding and its token usage.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Client is a hybrid search client. It is safe for concurrent use.
type Client struct {
	store  *dbredis.Store
	search *searchuc.Service
	logger *zap.Logger
}

// New creates a Client, connects to the database and waits for it to
// become ready. The caller must Close the client when done.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		indexName:    DefaultIndexName,
		keyPrefix:    DefaultKeyPrefix,
		candidateCap: searchuc.DefaultCandidateCap,
	}
	for _, o := range opts {
		o(cfg)
	}
	if len(cfg.addrs) == 0 {
		return nil, errors.New("quarry: database address required (use WithRedis)")
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	store, err := dbredis.NewStore(dbredis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultReadinessTimeout)
	defer cancel()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, err
	}

	return wireClient(store, cfg), nil
}

// wireClient assembles the retrieval channels and the search service on
// top of an already connected store.
func wireClient(store *dbredis.Store, cfg *clientConfig) *Client {
	lexical := channel.NewLexical(store, cfg.indexName, cfg.keyPrefix)

	var vector searchuc.VectorSearcher = channel.Disabled{}
	if cfg.embedder != nil {
		adapter := embedderAdapter{inner: cfg.embedder}
		vector = channel.NewVector(store, adapter, cfg.indexName, cfg.keyPrefix)
	}

	svc := searchuc.New(lexical, vector, cfg.logger).WithCandidateCap(cfg.candidateCap)

	return &Client{store: store, search: svc, logger: cfg.logger}
}

// Ping checks connectivity to the database.
func (c *Client) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

// Close releases the database connection.
func (c *Client) Close() {
	c.store.Close()
}

// embedderAdapter bridges the public Embedder into the internal channel
// contract.
type embedderAdapter struct {
	inner Embedder
}

func (a embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	res, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, err
	}
	return domain.EmbeddingResult{
		Embedding:    res.Embedding,
		PromptTokens: res.PromptTokens,
		TotalTokens:  res.TotalTokens,
	}, nil
}
