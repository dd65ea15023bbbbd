package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks. The boundary models are in-process
// constants and need no check; only the external collaborators do.
type Service struct {
	descriptors DescriptorChecker
	cache       CachePinger
}

// New creates a Service. cache can be nil when caching is disabled.
func New(descriptors DescriptorChecker, cache CachePinger) *Service {
	return &Service{descriptors: descriptors, cache: cache}
}

// Check runs health checks against all external components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.descriptors.HealthCheck(ctx); err != nil {
		checks["descriptor_source"] = CheckError
	} else {
		checks["descriptor_source"] = CheckOK
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
		} else {
			checks["cache"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
