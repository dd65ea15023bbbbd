// Package compound holds the per-compound classification result records.
package compound

import "github.com/NathanielBerney/boiledegg/internal/domain/property"

// Status is the processing outcome of a compound or a single property.
type Status string

// Status values.
const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// PropertyResult is the outcome of evaluating one property for a compound.
// Invariant: an error result carries no value and a non-empty message; a
// success result carries a value and no message. The constructors are the
// only way to build one.
type PropertyResult struct {
	name    property.Name
	status  Status
	value   float64
	message string
}

// NewPropertyValue creates a successful property result.
// Containment outcomes are coerced to 1.0/0.0 by the caller.
func NewPropertyValue(name property.Name, value float64) PropertyResult {
	return PropertyResult{name: name, status: StatusSuccess, value: value}
}

// NewPropertyError creates a failed property result.
func NewPropertyError(name property.Name, message string) PropertyResult {
	return PropertyResult{name: name, status: StatusError, message: message}
}

// Name returns the property name.
func (p PropertyResult) Name() property.Name { return p.name }

// Status returns the evaluation outcome.
func (p PropertyResult) Status() Status { return p.status }

// Value returns the numeric value. Meaningful only when Status is success.
func (p PropertyResult) Value() float64 { return p.value }

// Message returns the error message, empty on success.
func (p PropertyResult) Message() string { return p.message }

// Result is the classification outcome for a single input compound
// (immutable value object). A failed result has an empty property map and
// retains the underlying error for sentinel inspection at the transport
// boundary.
type Result struct {
	smiles     string
	status     Status
	properties map[property.Name]PropertyResult
	err        error
}

// NewSuccess creates a successful compound result. The property map is
// copied; an empty or nil map is valid (nothing requested).
func NewSuccess(smiles string, properties map[property.Name]PropertyResult) Result {
	props := make(map[property.Name]PropertyResult, len(properties))
	for k, v := range properties {
		props[k] = v
	}
	return Result{smiles: smiles, status: StatusSuccess, properties: props}
}

// NewFailure creates a failed compound result carrying err.
func NewFailure(smiles string, err error) Result {
	return Result{smiles: smiles, status: StatusError, err: err}
}

// SMILES returns the input SMILES string.
func (r Result) SMILES() string { return r.smiles }

// Status returns the processing outcome.
func (r Result) Status() Status { return r.status }

// Properties returns the evaluated property results keyed by name.
// Empty when Status is error. The map is shared; callers must not mutate it.
func (r Result) Properties() map[property.Name]PropertyResult { return r.properties }

// Property returns the result for a single property name.
func (r Result) Property(name property.Name) (PropertyResult, bool) {
	p, ok := r.properties[name]
	return p, ok
}

// Err returns the underlying error, nil on success.
func (r Result) Err() error { return r.err }

// ErrorMessage returns a human-readable failure description, empty on success.
func (r Result) ErrorMessage() string {
	if r.err == nil {
		return ""
	}
	return r.err.Error()
}
