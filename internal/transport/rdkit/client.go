// Package rdkit is the HTTP client for the RDKit descriptor sidecar, the
// external source of TPSA and WLogP values.
package rdkit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/NathanielBerney/boiledegg/internal/domain"
	"github.com/NathanielBerney/boiledegg/internal/metrics"
)

const defaultTimeout = 10 * time.Second

// Client computes molecular descriptors via the sidecar's REST API.
type Client struct {
	baseURL      string
	includeSandP bool
	httpClient   *http.Client
	logger       *zap.Logger
}

// Config holds the descriptor sidecar settings.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	IncludeSandP bool
	Logger       *zap.Logger
}

// NewClient creates a descriptor sidecar client.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		includeSandP: cfg.IncludeSandP,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       cfg.Logger,
	}
}

type descriptorRequest struct {
	SMILES       string `json:"smiles"`
	IncludeSandP bool   `json:"include_s_and_p"`
}

type descriptorResponse struct {
	TPSA  float64 `json:"tpsa"`
	WLogP float64 `json:"wlogp"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Descriptors implements the descriptor source contract. The sidecar
// answers 422 for a SMILES it cannot parse; that maps to ErrMoleculeParse.
// Every other failure maps to ErrDescriptorUnavailable.
func (c *Client) Descriptors(ctx context.Context, smiles string) (domain.Descriptors, error) {
	body, err := json.Marshal(descriptorRequest{SMILES: smiles, IncludeSandP: c.includeSandP})
	if err != nil {
		return domain.Descriptors{}, fmt.Errorf("marshal descriptor request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/descriptors", bytes.NewReader(body))
	if err != nil {
		return domain.Descriptors{}, fmt.Errorf("build descriptor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		metrics.DescriptorRequestsTotal.WithLabelValues("error").Inc()
		c.logger.Warn("descriptor request failed",
			zap.String("base_url", c.baseURL),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return domain.Descriptors{}, fmt.Errorf("post descriptors: %v: %w", err, domain.ErrDescriptorUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusUnprocessableEntity:
		metrics.DescriptorRequestsTotal.WithLabelValues("parse_error").Inc()
		return domain.Descriptors{}, fmt.Errorf("%s: %w", readDetail(resp.Body), domain.ErrMoleculeParse)
	default:
		metrics.DescriptorRequestsTotal.WithLabelValues("error").Inc()
		return domain.Descriptors{}, fmt.Errorf("descriptor API status %d: %s: %w",
			resp.StatusCode, readDetail(resp.Body), domain.ErrDescriptorUnavailable)
	}

	var dr descriptorResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		metrics.DescriptorRequestsTotal.WithLabelValues("error").Inc()
		return domain.Descriptors{}, fmt.Errorf("decode descriptor response: %v: %w",
			err, domain.ErrDescriptorUnavailable)
	}

	metrics.DescriptorRequestsTotal.WithLabelValues("success").Inc()
	metrics.DescriptorRequestDuration.Observe(duration.Seconds())

	return domain.Descriptors{TPSA: dr.TPSA, WLogP: dr.WLogP}, nil
}

// HealthCheck verifies sidecar availability via its health endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	u, err := url.JoinPath(c.baseURL, "health")
	if err != nil {
		return fmt.Errorf("build health URL: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("descriptor sidecar unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("descriptor sidecar health status %d", resp.StatusCode)
	}
	return nil
}

// readDetail extracts the "detail" field from a JSON error body, falling
// back to the raw body (truncated) for non-JSON responses.
func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return "unreadable error body"
	}
	var parsed errorResponse
	if json.Unmarshal(raw, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return strings.TrimSpace(string(raw))
}
