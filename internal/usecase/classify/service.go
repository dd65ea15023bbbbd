// Package classify implements the BOILED-Egg classification engine:
// descriptor-to-point mapping and containment against the fixed boundary
// models, with all per-compound failures returned as data.
package classify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/NathanielBerney/boiledegg/internal/domain"
	"github.com/NathanielBerney/boiledegg/internal/domain/compound"
	"github.com/NathanielBerney/boiledegg/internal/domain/egg"
	"github.com/NathanielBerney/boiledegg/internal/domain/property"
	"github.com/NathanielBerney/boiledegg/internal/metrics"
)

// Service is the classification engine. It is stateless apart from the
// shared read-only boundary models, so a single instance serves any number
// of concurrent callers.
type Service struct {
	source DescriptorSource
	bbb    egg.Polygon
	gia    egg.Polygon
	logger *zap.Logger
}

// New creates a classification engine over the given descriptor source.
func New(source DescriptorSource, logger *zap.Logger) *Service {
	return &Service{
		source: source,
		bbb:    egg.BBB(),
		gia:    egg.GIA(),
		logger: logger,
	}
}

// Classify evaluates the requested properties for one SMILES string.
// Unknown property names are dropped silently; an empty intersection still
// succeeds with an empty property map. Every failure (blank input, parse
// failure, descriptor source outage) is captured into the returned result,
// never raised.
func (s *Service) Classify(ctx context.Context, smiles string, requested []property.Name) compound.Result {
	smiles = strings.TrimSpace(smiles)
	if smiles == "" {
		metrics.ClassificationsTotal.WithLabelValues("error").Inc()
		return compound.NewFailure(smiles, domain.ErrEmptyInput)
	}

	props := property.Filter(requested)

	desc, err := s.source.Descriptors(ctx, smiles)
	if err != nil {
		s.logger.Warn("descriptor computation failed",
			zap.String("smiles", smiles), zap.Error(err))
		metrics.ClassificationsTotal.WithLabelValues("error").Inc()
		return compound.NewFailure(smiles, fmt.Errorf("compute descriptors: %w", err))
	}

	point, err := egg.NewPoint(desc.TPSA, desc.WLogP)
	if err != nil {
		metrics.ClassificationsTotal.WithLabelValues("error").Inc()
		return compound.NewFailure(smiles, fmt.Errorf("build descriptor point: %w", err))
	}

	results := make(map[property.Name]compound.PropertyResult, len(props))
	for _, prop := range props {
		results[prop] = s.evaluate(prop, point)
	}

	metrics.ClassificationsTotal.WithLabelValues("success").Inc()
	return compound.NewSuccess(smiles, results)
}

// evaluate computes one property from the rounded descriptor point.
// Containment is coerced to 1.0/0.0 to keep all property values numeric.
func (s *Service) evaluate(prop property.Name, point egg.Point) compound.PropertyResult {
	switch prop {
	case property.BBB:
		return compound.NewPropertyValue(prop, boolToFloat(s.bbb.Contains(point)))
	case property.GIA:
		return compound.NewPropertyValue(prop, boolToFloat(s.gia.Contains(point)))
	case property.TPSA:
		return compound.NewPropertyValue(prop, point.X)
	case property.WLogP:
		return compound.NewPropertyValue(prop, point.Y)
	default:
		// Unreachable after Filter; kept so a future property cannot slip
		// through as a zero value.
		return compound.NewPropertyError(prop, fmt.Sprintf("property %q not implemented", prop))
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
