package boiledegg

import "github.com/NathanielBerney/boiledegg/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrEmptyInput            = domain.ErrEmptyInput
	ErrMoleculeParse         = domain.ErrMoleculeParse
	ErrDescriptorUnavailable = domain.ErrDescriptorUnavailable
)
