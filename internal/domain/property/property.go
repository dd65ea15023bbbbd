// Package property defines the pharmacokinetic property names the
// classifier can evaluate.
package property

// Name identifies a classifiable property.
type Name string

// Supported property names.
const (
	// BBB is blood-brain-barrier permeability (boundary containment).
	BBB Name = "BBB"
	// GIA is gastrointestinal absorption (boundary containment).
	GIA Name = "GIA"
	// TPSA is the raw topological polar surface area descriptor.
	TPSA Name = "TPSA"
	// WLogP is the raw computed lipophilicity descriptor.
	WLogP Name = "WLogP"
)

// all lists every supported property in canonical order.
var all = []Name{BBB, GIA, TPSA, WLogP}

// Supported returns the supported property names in canonical order.
// The returned slice is a fresh copy.
func Supported() []Name {
	out := make([]Name, len(all))
	copy(out, all)
	return out
}

// IsSupported reports whether name is a supported property.
func IsSupported(name Name) bool {
	switch name {
	case BBB, GIA, TPSA, WLogP:
		return true
	default:
		return false
	}
}

// Filter intersects requested with the supported set, preserving request
// order and dropping duplicates. Unknown names are dropped silently, not
// rejected.
func Filter(requested []Name) []Name {
	out := make([]Name, 0, len(requested))
	seen := make(map[Name]bool, len(requested))
	for _, name := range requested {
		if !IsSupported(name) || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
