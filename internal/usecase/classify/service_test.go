package classify

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"testing"

	"go.uber.org/zap"

	"github.com/NathanielBerney/boiledegg/internal/domain"
	"github.com/NathanielBerney/boiledegg/internal/domain/compound"
	"github.com/NathanielBerney/boiledegg/internal/domain/property"
)

// --- Mocks ---

type mockSource struct {
	descriptors map[string]domain.Descriptors
	err         error
	callCount   int
}

func (m *mockSource) Descriptors(_ context.Context, smiles string) (domain.Descriptors, error) {
	m.callCount++
	if m.err != nil {
		return domain.Descriptors{}, m.err
	}
	d, ok := m.descriptors[smiles]
	if !ok {
		return domain.Descriptors{}, fmt.Errorf("parse %q: %w", smiles, domain.ErrMoleculeParse)
	}
	return d, nil
}

func newService(src DescriptorSource) *Service {
	return New(src, zap.NewNop())
}

var allProps = []property.Name{property.BBB, property.GIA, property.TPSA, property.WLogP}

func TestClassify_AllProperties(t *testing.T) {
	// Descriptors at the white-region center: inside both boundaries.
	src := &mockSource{descriptors: map[string]domain.Descriptors{
		"CCO": {TPSA: 71.051, WLogP: 2.292},
	}}
	svc := newService(src)

	res := svc.Classify(context.Background(), "CCO", allProps)

	if res.Status() != compound.StatusSuccess {
		t.Fatalf("status = %q, want success (%v)", res.Status(), res.Err())
	}
	if res.SMILES() != "CCO" {
		t.Errorf("smiles = %q", res.SMILES())
	}

	want := map[property.Name]float64{
		property.BBB:   1.0,
		property.GIA:   1.0,
		property.TPSA:  71.05,
		property.WLogP: 2.29,
	}
	for name, value := range want {
		got, ok := res.Property(name)
		if !ok {
			t.Fatalf("missing property %q", name)
		}
		if got.Status() != compound.StatusSuccess {
			t.Errorf("%s status = %q, want success", name, got.Status())
		}
		if got.Value() != value {
			t.Errorf("%s = %v, want %v", name, got.Value(), value)
		}
	}
}

func TestClassify_FarOutsidePoint(t *testing.T) {
	src := &mockSource{descriptors: map[string]domain.Descriptors{
		"X": {TPSA: 500, WLogP: -10},
	}}
	res := newService(src).Classify(context.Background(), "X", []property.Name{property.BBB, property.GIA})

	for _, name := range []property.Name{property.BBB, property.GIA} {
		got, _ := res.Property(name)
		if got.Value() != 0.0 {
			t.Errorf("%s = %v, want 0.0", name, got.Value())
		}
	}
}

func TestClassify_RequestedSubsetOnly(t *testing.T) {
	src := &mockSource{descriptors: map[string]domain.Descriptors{
		"CCO": {TPSA: 20.23, WLogP: -0.0014},
	}}
	res := newService(src).Classify(context.Background(), "CCO",
		[]property.Name{property.TPSA, property.WLogP})

	keys := make([]string, 0, len(res.Properties()))
	for k := range res.Properties() {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	if !reflect.DeepEqual(keys, []string{"TPSA", "WLogP"}) {
		t.Fatalf("result keys = %v, want [TPSA WLogP]", keys)
	}

	tpsa, _ := res.Property(property.TPSA)
	if tpsa.Value() != 20.23 {
		t.Errorf("TPSA = %v, want 20.23", tpsa.Value())
	}
	wlogp, _ := res.Property(property.WLogP)
	if wlogp.Value() != 0 {
		t.Errorf("WLogP = %v, want 0 (rounded)", wlogp.Value())
	}
}

func TestClassify_UnknownPropertiesFiltered(t *testing.T) {
	src := &mockSource{descriptors: map[string]domain.Descriptors{
		"CCO": {TPSA: 20.23, WLogP: 0},
	}}
	res := newService(src).Classify(context.Background(), "CCO",
		[]property.Name{"MW", property.TPSA, "logS"})

	if res.Status() != compound.StatusSuccess {
		t.Fatalf("status = %q, want success", res.Status())
	}
	if len(res.Properties()) != 1 {
		t.Fatalf("result keys = %v, want only TPSA", res.Properties())
	}
	if _, ok := res.Property(property.TPSA); !ok {
		t.Error("TPSA missing from results")
	}
}

func TestClassify_EmptyIntersectionSucceeds(t *testing.T) {
	src := &mockSource{descriptors: map[string]domain.Descriptors{
		"CCO": {TPSA: 20.23, WLogP: 0},
	}}
	res := newService(src).Classify(context.Background(), "CCO", []property.Name{"MW"})

	if res.Status() != compound.StatusSuccess {
		t.Fatalf("status = %q, want success", res.Status())
	}
	if len(res.Properties()) != 0 {
		t.Errorf("result keys = %v, want empty", res.Properties())
	}
}

func TestClassify_EmptyInput(t *testing.T) {
	for _, smiles := range []string{"", "   ", "\t\n"} {
		t.Run(fmt.Sprintf("%q", smiles), func(t *testing.T) {
			src := &mockSource{}
			res := newService(src).Classify(context.Background(), smiles, allProps)

			if res.Status() != compound.StatusError {
				t.Fatalf("status = %q, want error", res.Status())
			}
			if !errors.Is(res.Err(), domain.ErrEmptyInput) {
				t.Errorf("err = %v, want ErrEmptyInput", res.Err())
			}
			if len(res.Properties()) != 0 {
				t.Errorf("error result has properties: %v", res.Properties())
			}
			if src.callCount != 0 {
				t.Error("descriptor source called for blank input")
			}
		})
	}
}

func TestClassify_ParseFailure(t *testing.T) {
	src := &mockSource{descriptors: map[string]domain.Descriptors{}}
	res := newService(src).Classify(context.Background(), "not-a-molecule", allProps)

	if res.Status() != compound.StatusError {
		t.Fatalf("status = %q, want error", res.Status())
	}
	if !errors.Is(res.Err(), domain.ErrMoleculeParse) {
		t.Errorf("err = %v, want ErrMoleculeParse", res.Err())
	}
	if res.ErrorMessage() == "" {
		t.Error("error result has empty message")
	}
}

func TestClassify_SourceUnavailable(t *testing.T) {
	src := &mockSource{err: fmt.Errorf("post descriptors: %w", domain.ErrDescriptorUnavailable)}
	res := newService(src).Classify(context.Background(), "CCO", allProps)

	if res.Status() != compound.StatusError {
		t.Fatalf("status = %q, want error", res.Status())
	}
	if !errors.Is(res.Err(), domain.ErrDescriptorUnavailable) {
		t.Errorf("err = %v, want ErrDescriptorUnavailable", res.Err())
	}
}

func TestClassify_NonFiniteDescriptors(t *testing.T) {
	nan := 0.0
	nan /= nan
	src := &mockSource{descriptors: map[string]domain.Descriptors{
		"CCO": {TPSA: nan, WLogP: 1},
	}}
	res := newService(src).Classify(context.Background(), "CCO", allProps)

	if res.Status() != compound.StatusError {
		t.Fatalf("status = %q, want error for NaN descriptor", res.Status())
	}
}

func TestClassify_Idempotent(t *testing.T) {
	src := &mockSource{descriptors: map[string]domain.Descriptors{
		"c1ccccc1": {TPSA: 0, WLogP: 1.6866},
	}}
	svc := newService(src)

	first := svc.Classify(context.Background(), "c1ccccc1", allProps)
	second := svc.Classify(context.Background(), "c1ccccc1", allProps)

	if !reflect.DeepEqual(first.Properties(), second.Properties()) {
		t.Errorf("repeated classification differs:\nfirst:  %v\nsecond: %v",
			first.Properties(), second.Properties())
	}
}

func TestClassify_TrimsInput(t *testing.T) {
	src := &mockSource{descriptors: map[string]domain.Descriptors{
		"CCO": {TPSA: 20.23, WLogP: 0},
	}}
	res := newService(src).Classify(context.Background(), "  CCO\n", []property.Name{property.TPSA})

	if res.Status() != compound.StatusSuccess {
		t.Fatalf("status = %q, want success (%v)", res.Status(), res.Err())
	}
	if res.SMILES() != "CCO" {
		t.Errorf("smiles = %q, want trimmed %q", res.SMILES(), "CCO")
	}
}
