package domain

import "errors"

var (
	// ErrInvalidQuery signals a missing or malformed search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidDirection signals an unsupported pagination direction.
	ErrInvalidDirection = errors.New("invalid direction")
	// ErrRetrievalFailed signals that every retrieval channel failed for a
	// request. Callers should treat it as transient and eligible for retry.
	ErrRetrievalFailed = errors.New("all retrieval channels failed")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
