package domain

import "context"

// Descriptors holds the two molecular descriptors the classifier operates on.
// TPSA is the topological polar surface area (S and P atoms included),
// WLogP the computed lipophilicity. Values are as returned by the source,
// not yet rounded.
type Descriptors struct {
	TPSA  float64
	WLogP float64
}

// DescriptorSource parses a SMILES string and computes its descriptors.
// An unparseable SMILES yields an error wrapping ErrMoleculeParse; any
// transport-level failure wraps ErrDescriptorUnavailable.
type DescriptorSource interface {
	Descriptors(ctx context.Context, smiles string) (Descriptors, error)
}

// HealthChecker is an optional capability of a DescriptorSource.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
