package classify

import (
	"context"

	"github.com/NathanielBerney/boiledegg/internal/domain"
)

// DescriptorSource parses a SMILES string and computes its molecular
// descriptors in one call.
type DescriptorSource interface {
	Descriptors(ctx context.Context, smiles string) (domain.Descriptors, error)
}
