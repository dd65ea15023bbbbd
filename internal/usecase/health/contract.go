package health

import "context"

// DescriptorChecker checks descriptor sidecar availability.
type DescriptorChecker interface {
	HealthCheck(ctx context.Context) error
}

// CachePinger checks cache store availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
