// Package batch applies the classification engine across a list of SMILES
// inputs with per-item failure isolation.
package batch

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/NathanielBerney/boiledegg/internal/domain/compound"
	"github.com/NathanielBerney/boiledegg/internal/domain/property"
)

// DefaultWorkers is the worker-pool size used when none is configured.
const DefaultWorkers = 4

// Classifier evaluates one SMILES string.
type Classifier interface {
	Classify(ctx context.Context, smiles string, requested []property.Name) compound.Result
}

// Service orchestrates batch classification. Engine calls are independent
// and side-effect-free, so items are fanned out across a bounded worker
// pool; results land at their input index, preserving order.
type Service struct {
	engine  Classifier
	workers int
	logger  *zap.Logger
}

// New creates a batch orchestrator.
func New(engine Classifier, logger *zap.Logger) *Service {
	return &Service{engine: engine, workers: DefaultWorkers, logger: logger}
}

// WithWorkers configures the worker-pool size. 1 means sequential.
func (s *Service) WithWorkers(n int) *Service {
	if n > 0 {
		s.workers = n
	}
	return s
}

// Classify evaluates every input in order. The returned slice always has
// one entry per input at the matching index; a failure on one input never
// affects its siblings.
func (s *Service) Classify(ctx context.Context, smilesList []string, requested []property.Name) []compound.Result {
	results := make([]compound.Result, len(smilesList))
	if len(smilesList) == 0 {
		return results
	}

	workers := s.workers
	if workers > len(smilesList) {
		workers = len(smilesList)
	}

	if workers == 1 {
		for i, smiles := range smilesList {
			results[i] = s.engine.Classify(ctx, smiles, requested)
		}
		s.logBatch(results)
		return results
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = s.engine.Classify(ctx, smilesList[i], requested)
			}
		}()
	}

	for i := range smilesList {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	s.logBatch(results)
	return results
}

func (s *Service) logBatch(results []compound.Result) {
	failed := 0
	for _, r := range results {
		if r.Status() == compound.StatusError {
			failed++
		}
	}
	s.logger.Debug("batch classified",
		zap.Int("total", len(results)),
		zap.Int("failed", failed),
	)
}
