package domain

import "errors"

var (
	// ErrPageNotFound signals a missing page metadata record.
	ErrPageNotFound = errors.New("page not found")
	// ErrIndexUnavailable signals that the vector index cannot be reached.
	ErrIndexUnavailable = errors.New("vector index unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrReasoningProviderError signals a decision/verification provider failure.
	// Callers treat it as fail-open, never as a request failure.
	ErrReasoningProviderError = errors.New("reasoning provider error")
	// ErrEmptyChunk rejects ingestion input with no usable text.
	ErrEmptyChunk = errors.New("empty page chunk")
)
