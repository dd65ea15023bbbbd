package property

import (
	"reflect"
	"testing"
)

func TestSupported_CanonicalOrder(t *testing.T) {
	got := Supported()
	want := []Name{BBB, GIA, TPSA, WLogP}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Supported() = %v, want %v", got, want)
	}
}

func TestSupported_ReturnsCopy(t *testing.T) {
	first := Supported()
	first[0] = Name("MW")
	if Supported()[0] != BBB {
		t.Fatal("mutating the returned slice leaked into the supported set")
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name      string
		requested []Name
		want      []Name
	}{
		{"all supported", []Name{BBB, GIA, TPSA, WLogP}, []Name{BBB, GIA, TPSA, WLogP}},
		{"request order preserved", []Name{WLogP, BBB}, []Name{WLogP, BBB}},
		{"unknown dropped silently", []Name{"MW", TPSA, "logS"}, []Name{TPSA}},
		{"duplicates dropped", []Name{BBB, BBB, GIA}, []Name{BBB, GIA}},
		{"all unknown", []Name{"MW", "HBD"}, []Name{}},
		{"empty request", []Name{}, []Name{}},
		{"case sensitive", []Name{"bbb", "Gia"}, []Name{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tt.requested)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%v) = %v, want %v", tt.requested, got, tt.want)
			}
		})
	}
}

func TestIsSupported(t *testing.T) {
	for _, name := range Supported() {
		if !IsSupported(name) {
			t.Errorf("IsSupported(%q) = false, want true", name)
		}
	}
	if IsSupported("MW") {
		t.Error(`IsSupported("MW") = true, want false`)
	}
}
