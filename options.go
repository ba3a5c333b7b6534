package quarry

import "go.uber.org/zap"

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs    []string
	password string

	embedder Embedder

	indexName    string
	keyPrefix    string
	candidateCap int

	logger *zap.Logger
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithEmbedder sets the text embedding provider. Without it the vector
// channel is disabled and search runs lexical-only.
func WithEmbedder(e Embedder) Option {
	return func(c *clientConfig) {
		c.embedder = e
	}
}

// WithIndex sets the FT index name and the storage key prefix.
// Defaults: "quarry:objects:idx" and "quarry:obj:".
func WithIndex(name, keyPrefix string) Option {
	return func(c *clientConfig) {
		c.indexName = name
		c.keyPrefix = keyPrefix
	}
}

// WithCandidateCap sets the per-channel candidate retrieval cap.
// Default: 200.
func WithCandidateCap(cap int) Option {
	return func(c *clientConfig) {
		c.candidateCap = cap
	}
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
