// Package desccache caches descriptor results in a key-value store.
// Descriptor computation is deterministic per SMILES, so cached values
// never go stale; TTL only bounds storage growth.
package desccache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/NathanielBerney/boiledegg/internal/db"
	"github.com/NathanielBerney/boiledegg/internal/domain"
)

const cacheKeyPrefix = "boiledegg:desc_cache:"

// encodedSize is two little-endian float64s: TPSA then WLogP.
const encodedSize = 16

// store is the consumer interface for the descriptor cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedSource is a caching decorator over a descriptor source. Cache
// failures degrade to the inner source and never fail a classification.
// Parse failures are not cached: they are cheap to reproduce and caching
// them would pin transient sidecar bugs.
type CachedSource struct {
	inner      domain.DescriptorSource
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner domain.DescriptorSource,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedSource {
	return &CachedSource{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Descriptors returns cached descriptors or calls the inner source.
func (c *CachedSource) Descriptors(ctx context.Context, smiles string) (domain.Descriptors, error) {
	key := c.cacheKey(smiles)

	if desc, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return desc, nil
	}

	c.incCache("miss")

	desc, err := c.inner.Descriptors(ctx, smiles)
	if err != nil {
		return domain.Descriptors{}, fmt.Errorf("compute descriptors: %w", err)
	}

	c.putToCache(ctx, key, desc)
	return desc, nil
}

// HealthCheck delegates to the inner source when it supports health checks.
func (c *CachedSource) HealthCheck(ctx context.Context) error {
	if hc, ok := c.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}

func (c *CachedSource) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedSource) cacheKey(smiles string) string {
	h := sha256.Sum256([]byte(smiles))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedSource) getFromCache(ctx context.Context, key string) (domain.Descriptors, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached descriptors", zap.String("key", key), zap.Error(err))
		}
		return domain.Descriptors{}, false
	}

	desc, err := decode(data)
	if err != nil {
		c.logger.Warn("Failed to parse cached descriptors", zap.String("key", key), zap.Error(err))
		return domain.Descriptors{}, false
	}
	return desc, true
}

func (c *CachedSource) putToCache(ctx context.Context, key string, desc domain.Descriptors) {
	if err := c.store.SetWithTTL(ctx, key, encode(desc), c.ttl); err != nil {
		c.logger.Warn("Failed to cache descriptors", zap.String("key", key), zap.Error(err))
	}
}

func encode(desc domain.Descriptors) []byte {
	buf := make([]byte, encodedSize)
	binary.LittleEndian.PutUint64(buf[0:], math.Float64bits(desc.TPSA))
	binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(desc.WLogP))
	return buf
}

func decode(data []byte) (domain.Descriptors, error) {
	if len(data) != encodedSize {
		return domain.Descriptors{}, fmt.Errorf("invalid descriptor cache data: len=%d", len(data))
	}
	return domain.Descriptors{
		TPSA:  math.Float64frombits(binary.LittleEndian.Uint64(data[0:])),
		WLogP: math.Float64frombits(binary.LittleEndian.Uint64(data[8:])),
	}, nil
}
