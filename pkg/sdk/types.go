package boiledegg

import (
	"github.com/NathanielBerney/boiledegg/internal/domain/compound"
	"github.com/NathanielBerney/boiledegg/internal/domain/property"
)

// Status is the outcome of a compound or property evaluation.
type Status string

// Status constants.
const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// PropertyResult is the outcome of a single property evaluation.
// For BBB and GIA, Value is 1 (inside the boundary) or 0 (outside).
// For TPSA and WLogP, Value is the rounded descriptor itself.
type PropertyResult struct {
	Status Status
	Value  float64
	Error  string
}

// Result is the classification outcome for one compound. When Status is
// StatusError, Results is empty and Error describes the failure.
type Result struct {
	SMILES  string
	Status  Status
	Results map[string]PropertyResult
	Error   string
}

// SupportedProperties returns the property names the engine can evaluate,
// in canonical order: BBB, GIA, TPSA, WLogP.
func SupportedProperties() []string {
	names := property.Supported()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}

func toResult(res compound.Result) Result {
	out := Result{
		SMILES: res.SMILES(),
		Status: Status(res.Status()),
	}
	if res.Err() != nil {
		out.Error = res.ErrorMessage()
		return out
	}
	out.Results = make(map[string]PropertyResult, len(res.Properties()))
	for name, pr := range res.Properties() {
		out.Results[string(name)] = PropertyResult{
			Status: Status(pr.Status()),
			Value:  pr.Value(),
			Error:  pr.Message(),
		}
	}
	return out
}

func toPropertyNames(names []string) []property.Name {
	if len(names) == 0 {
		return property.Supported()
	}
	out := make([]property.Name, len(names))
	for i, n := range names {
		out[i] = property.Name(n)
	}
	return out
}
