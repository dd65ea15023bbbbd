package health

import (
	"context"
	"errors"
	"testing"
)

type stubChecker struct{ err error }

func (s *stubChecker) HealthCheck(context.Context) error { return s.err }

type stubPinger struct{ err error }

func (s *stubPinger) Ping(context.Context) error { return s.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&stubChecker{}, &stubPinger{})

	report := svc.Check(context.Background())

	if report.Status != Healthy {
		t.Errorf("status = %q, want %q", report.Status, Healthy)
	}
	if report.Checks["descriptor_source"] != CheckOK {
		t.Errorf("descriptor_source = %q, want ok", report.Checks["descriptor_source"])
	}
	if report.Checks["cache"] != CheckOK {
		t.Errorf("cache = %q, want ok", report.Checks["cache"])
	}
}

func TestCheck_DescriptorDown(t *testing.T) {
	svc := New(&stubChecker{err: errors.New("connection refused")}, nil)

	report := svc.Check(context.Background())

	if report.Status != Degraded {
		t.Errorf("status = %q, want %q", report.Status, Degraded)
	}
	if report.Checks["descriptor_source"] != CheckError {
		t.Errorf("descriptor_source = %q, want error", report.Checks["descriptor_source"])
	}
}

func TestCheck_NoCacheConfigured(t *testing.T) {
	svc := New(&stubChecker{}, nil)

	report := svc.Check(context.Background())

	if report.Status != Healthy {
		t.Errorf("status = %q, want %q", report.Status, Healthy)
	}
	if _, ok := report.Checks["cache"]; ok {
		t.Error("cache check reported despite cache being disabled")
	}
}

func TestCheck_CacheDown(t *testing.T) {
	svc := New(&stubChecker{}, &stubPinger{err: errors.New("timeout")})

	report := svc.Check(context.Background())

	if report.Status != Degraded {
		t.Errorf("status = %q, want %q", report.Status, Degraded)
	}
	if report.Checks["cache"] != CheckError {
		t.Errorf("cache = %q, want error", report.Checks["cache"])
	}
}
