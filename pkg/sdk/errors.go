package audex

import "github.com/kailas-cloud/audex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound     = domain.ErrNotFound
	ErrUnknownField = domain.ErrUnknownField
	ErrKindMismatch = domain.ErrKindMismatch
	ErrDecode       = domain.ErrDecode
	ErrInvalidName  = domain.ErrInvalidName
)
