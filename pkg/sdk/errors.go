package pagetrail

import "github.com/pagetrail/pagetrail/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrPageNotFound           = domain.ErrPageNotFound
	ErrIndexUnavailable       = domain.ErrIndexUnavailable
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrEmptyChunk             = domain.ErrEmptyChunk
)
