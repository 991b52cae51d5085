package galaxy

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultParametersAreValid(t *testing.T) {
	p := DefaultParameters()
	if err := p.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if p.Count != 100000 || p.Size != 0.01 || p.Radius != 5 || p.Branches != 3 {
		t.Fatalf("unexpected defaults %+v", p)
	}
	if p.Spin != 1 || p.Randomness != 3 || p.BranchDensity != 2 || p.DensityFalloff != 1 {
		t.Fatalf("unexpected defaults %+v", p)
	}
	if p.InsideColor.Hex() != "#ff6030" || p.OutsideColor.Hex() != "#1b3984" {
		t.Fatalf("unexpected default colors %s %s", p.InsideColor.Hex(), p.OutsideColor.Hex())
	}
}

func TestValidateRejectsOutOfDomain(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*ParameterSet)
	}{
		{"count", func(p *ParameterSet) { p.Count = -1 }},
		{"count", func(p *ParameterSet) { p.Count = MaxCount + 1 }},
		{"size", func(p *ParameterSet) { p.Size = 0 }},
		{"radius", func(p *ParameterSet) { p.Radius = -2 }},
		{"radius", func(p *ParameterSet) { p.Radius = math.Inf(1) }},
		{"branches", func(p *ParameterSet) { p.Branches = 1 }},
		{"branches", func(p *ParameterSet) { p.Branches = MaxBranches + 1 }},
		{"branches", func(p *ParameterSet) { p.Branches = 1 << 50 }},
		{"spin", func(p *ParameterSet) { p.Spin = math.NaN() }},
		{"randomness", func(p *ParameterSet) { p.Randomness = -0.1 }},
		{"branch_density", func(p *ParameterSet) { p.BranchDensity = 0.99 }},
		{"density_falloff", func(p *ParameterSet) { p.DensityFalloff = -1 }},
		{"inside_color", func(p *ParameterSet) { p.InsideColor.G = 1.5 }},
		{"outside_color", func(p *ParameterSet) { p.OutsideColor.B = -0.2 }},
	}
	for _, tc := range cases {
		p := DefaultParameters()
		tc.mutate(&p)
		err := p.Validate()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.field, err)
		}
		if verr.Field != tc.field {
			t.Fatalf("expected field %s, got %s (%v)", tc.field, verr.Field, err)
		}
		if p.Valid() {
			t.Fatalf("%s: Valid must agree with Validate", tc.field)
		}
		if Kind(err) != KindValidation {
			t.Fatalf("%s: Kind = %s", tc.field, Kind(err))
		}
	}
}

func TestValidateAcceptsBoundaries(t *testing.T) {
	p := DefaultParameters()
	p.Count = 0
	p.Branches = 2
	p.Spin = -5
	p.Randomness = 0
	p.BranchDensity = 1
	p.DensityFalloff = 0
	if err := p.Validate(); err != nil {
		t.Fatalf("boundary values must validate: %v", err)
	}
	p.Count = MaxCount
	p.Branches = MaxBranches
	if err := p.Validate(); err != nil {
		t.Fatalf("max count and branches must validate: %v", err)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff6030")
	if err != nil {
		t.Fatal(err)
	}
	if c.R != 1 || c.G != float64(0x60)/255 || c.B != float64(0x30)/255 {
		t.Fatalf("unexpected color %+v", c)
	}
	if bare, err := ParseColor("1b3984"); err != nil || bare.Hex() != "#1b3984" {
		t.Fatalf("bare hex: %+v %v", bare, err)
	}
	for _, bad := range []string{"", "#fff", "#gg0000", "#12345678"} {
		if _, err := ParseColor(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestColorRGBAIsOpaque(t *testing.T) {
	r, g, b, a := Color{R: 1, G: 0.5}.RGBA()
	if r != 0xffff || g != 0x8000 || b != 0 || a != 0xffff {
		t.Fatalf("unexpected RGBA %x %x %x %x", r, g, b, a)
	}
}

func TestSnapshotGroupsAndLookup(t *testing.T) {
	snap := DefaultParameters().Snapshot()
	if len(snap.Groups) != 4 {
		t.Fatalf("expected 4 groups, got %d", len(snap.Groups))
	}
	param, ok := snap.Lookup("inside_color")
	if !ok || param.Value != "#ff6030" {
		t.Fatalf("inside_color lookup: %+v %v", param, ok)
	}
	param, ok = snap.Lookup("density_falloff")
	if !ok || param.Value != "1" {
		t.Fatalf("density_falloff lookup: %+v %v", param, ok)
	}
	for _, ctrl := range Controls() {
		if _, ok := snap.Lookup(ctrl.Key); !ok {
			t.Fatalf("control %s has no snapshot entry", ctrl.Key)
		}
	}
}
