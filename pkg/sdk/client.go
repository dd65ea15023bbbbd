package boiledegg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/NathanielBerney/boiledegg/internal/db"
	dbRedis "github.com/NathanielBerney/boiledegg/internal/db/redis"
	"github.com/NathanielBerney/boiledegg/internal/domain"
	"github.com/NathanielBerney/boiledegg/internal/repository/desccache"
	"github.com/NathanielBerney/boiledegg/internal/transport/rdkit"
	batchuc "github.com/NathanielBerney/boiledegg/internal/usecase/batch"
	classifyuc "github.com/NathanielBerney/boiledegg/internal/usecase/classify"
	healthuc "github.com/NathanielBerney/boiledegg/internal/usecase/health"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultCacheTTL         = 720 * time.Hour
)

// Client is the boiledegg embedded client entry point.
type Client struct {
	store       db.Store
	classifySvc *classifyuc.Service
	batchSvc    *batchuc.Service
	healthSvc   *healthuc.Service
	obs         *observer
}

// New creates a Client. A descriptor source is required: either an RDKit
// sidecar URL via WithRDKit, or a custom source via WithDescriptorSource.
// The provided context is used for the cache readiness check, if any.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		includeSandP: true,
		cacheTTL:     defaultCacheTTL,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	source := cfg.source
	if source == nil {
		if cfg.rdkitBaseURL == "" {
			return nil, errors.New("boiledegg: descriptor source required (use WithRDKit or WithDescriptorSource)")
		}
		source = rdkit.NewClient(&rdkit.Config{
			BaseURL:      cfg.rdkitBaseURL,
			Timeout:      cfg.rdkitTimeout,
			IncludeSandP: cfg.includeSandP,
			Logger:       zap.NewNop(),
		})
	}

	var store db.Store
	if len(cfg.cacheAddrs) > 0 {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.cacheAddrs,
			Password: cfg.cachePassword,
		})
		if err != nil {
			return nil, fmt.Errorf("boiledegg: create cache store: %w", err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("boiledegg: cache not ready: %w", err)
		}
		store = s
		source = desccache.New(source, s, cfg.cacheTTL, nil, zap.NewNop())
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}

	classifySvc := classifyuc.New(source, zap.NewNop())
	batchSvc := batchuc.New(classifySvc, zap.NewNop())
	if cfg.workers > 0 {
		batchSvc = batchSvc.WithWorkers(cfg.workers)
	}

	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	healthSvc := healthuc.New(sourceChecker{source}, cachePinger)

	return &Client{
		store:       store,
		classifySvc: classifySvc,
		batchSvc:    batchSvc,
		healthSvc:   healthSvc,
		obs:         obs,
	}, nil
}

// Close releases the cache connection, if any.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Classify evaluates one compound. Failures are reported in the Result,
// never as a Go error; a blank SMILES yields a StatusError result.
func (c *Client) Classify(ctx context.Context, smiles string, opts ...ClassifyOption) Result {
	start := time.Now()

	var cc classifyConfig
	for _, o := range opts {
		o(&cc)
	}

	res := c.classifySvc.Classify(ctx, smiles, toPropertyNames(cc.properties))
	c.obs.observe("classify", start, res.Err())
	return toResult(res)
}

// ClassifyBatch evaluates multiple compounds concurrently. Results are
// returned in input order; each compound fails or succeeds independently.
func (c *Client) ClassifyBatch(ctx context.Context, smilesList []string, opts ...ClassifyOption) []Result {
	start := time.Now()

	var cc classifyConfig
	for _, o := range opts {
		o(&cc)
	}

	results := c.batchSvc.Classify(ctx, smilesList, toPropertyNames(cc.properties))
	out := make([]Result, len(results))
	var firstErr error
	for i, r := range results {
		out[i] = toResult(r)
		if firstErr == nil {
			firstErr = r.Err()
		}
	}
	c.obs.observe("classify_batch", start, firstErr)
	return out
}

// sourceChecker adapts a DescriptorSource to the health check contract.
type sourceChecker struct {
	source domain.DescriptorSource
}

func (s sourceChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := s.source.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}
