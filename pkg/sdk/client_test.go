package boiledegg

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/NathanielBerney/boiledegg/internal/domain"
)

// stubSource serves canned descriptors keyed by SMILES.
type stubSource struct {
	descriptors map[string]domain.Descriptors
	calls       int
}

func (s *stubSource) Descriptors(_ context.Context, smiles string) (domain.Descriptors, error) {
	s.calls++
	d, ok := s.descriptors[smiles]
	if !ok {
		return domain.Descriptors{}, fmt.Errorf("parse %q: %w", smiles, domain.ErrMoleculeParse)
	}
	return d, nil
}

func newTestClient(t *testing.T, src domain.DescriptorSource) *Client {
	t.Helper()
	c, err := New(context.Background(), WithDescriptorSource(src))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestNew_RequiresSource(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error when no descriptor source is configured")
	}
}

func TestClassify(t *testing.T) {
	src := &stubSource{descriptors: map[string]domain.Descriptors{
		// White center: inside both boundaries.
		"CCO": {TPSA: 71.051, WLogP: 2.292},
	}}
	c := newTestClient(t, src)

	res := c.Classify(context.Background(), "CCO")

	if res.Status != StatusSuccess {
		t.Fatalf("status = %q, error = %q", res.Status, res.Error)
	}
	if res.SMILES != "CCO" {
		t.Errorf("smiles = %q", res.SMILES)
	}
	if len(res.Results) != 4 {
		t.Fatalf("results = %v, want all 4 properties", res.Results)
	}
	if got := res.Results["GIA"].Value; got != 1.0 {
		t.Errorf("GIA = %v, want 1.0", got)
	}
	if got := res.Results["TPSA"].Value; got != 71.05 {
		t.Errorf("TPSA = %v, want rounded 71.05", got)
	}
}

func TestClassify_WithProperties(t *testing.T) {
	src := &stubSource{descriptors: map[string]domain.Descriptors{
		"CCO": {TPSA: 20.23, WLogP: -0.0014},
	}}
	c := newTestClient(t, src)

	res := c.Classify(context.Background(), "CCO", WithProperties("BBB", "bogus"))

	if len(res.Results) != 1 {
		t.Fatalf("results = %v, want only BBB", res.Results)
	}
	if _, ok := res.Results["BBB"]; !ok {
		t.Error("BBB missing from results")
	}
}

func TestClassify_Failures(t *testing.T) {
	src := &stubSource{descriptors: map[string]domain.Descriptors{}}
	c := newTestClient(t, src)

	t.Run("empty smiles", func(t *testing.T) {
		res := c.Classify(context.Background(), "  ")
		if res.Status != StatusError {
			t.Fatalf("status = %q, want error", res.Status)
		}
		if src.calls != 0 {
			t.Errorf("source called %d times for blank input", src.calls)
		}
	})

	t.Run("unparseable", func(t *testing.T) {
		res := c.Classify(context.Background(), "garbage")
		if res.Status != StatusError {
			t.Fatalf("status = %q, want error", res.Status)
		}
		if res.Error == "" {
			t.Error("error message empty")
		}
	})
}

func TestClassifyBatch(t *testing.T) {
	src := &stubSource{descriptors: map[string]domain.Descriptors{
		"CCO":      {TPSA: 20.23, WLogP: -0.0014},
		"c1ccccc1": {TPSA: 0, WLogP: 1.6866},
	}}
	c := newTestClient(t, src)

	results := c.ClassifyBatch(context.Background(),
		[]string{"CCO", "bad", "c1ccccc1"}, WithProperties("TPSA"))

	if len(results) != 3 {
		t.Fatalf("len = %d, want 3", len(results))
	}
	if results[0].SMILES != "CCO" || results[2].SMILES != "c1ccccc1" {
		t.Errorf("input order not preserved: %+v", results)
	}
	if results[1].Status != StatusError {
		t.Errorf("results[1].status = %q, want error", results[1].Status)
	}
	if results[0].Status != StatusSuccess || results[2].Status != StatusSuccess {
		t.Error("sibling compounds should succeed independently")
	}
}

func TestHealth(t *testing.T) {
	t.Run("plain source has no checker", func(t *testing.T) {
		c := newTestClient(t, &stubSource{})
		hs := c.Health(context.Background())
		if hs.Status != "ok" {
			t.Errorf("status = %q, want ok", hs.Status)
		}
	})

	t.Run("failing checker degrades", func(t *testing.T) {
		c := newTestClient(t, &checkableSource{
			stubSource: stubSource{},
			healthErr:  errors.New("down"),
		})
		hs := c.Health(context.Background())
		if hs.Status != "degraded" {
			t.Errorf("status = %q, want degraded", hs.Status)
		}
		if hs.Checks["descriptor_source"] != "error" {
			t.Errorf("checks = %v", hs.Checks)
		}
	})
}

// checkableSource adds a HealthCheck to stubSource.
type checkableSource struct {
	stubSource
	healthErr error
}

func (s *checkableSource) HealthCheck(context.Context) error { return s.healthErr }

func TestSupportedProperties(t *testing.T) {
	got := SupportedProperties()
	want := []string{"BBB", "GIA", "TPSA", "WLogP"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
