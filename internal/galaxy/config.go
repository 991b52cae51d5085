package galaxy

import (
	"strconv"
	"strings"
)

// Keys lists the parameter names accepted by FromMap and Overlay.
var Keys = []string{
	"count", "size", "radius", "branches", "spin", "randomness",
	"branch_density", "density_falloff", "inside_color", "outside_color",
}

// IsKey reports whether key names a parameter, ignoring case and
// surrounding space.
func IsKey(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// FromMap overlays flag-style key/value pairs on the default parameters.
// Keys are matched case-insensitively. An unknown key or a value that does
// not parse is reported as a *ValidationError. The result is not validated
// against the field domains; call Validate for that.
func FromMap(cfg map[string]string) (ParameterSet, error) {
	return Overlay(DefaultParameters(), cfg)
}

// Overlay applies cfg on top of base.
func Overlay(base ParameterSet, cfg map[string]string) (ParameterSet, error) {
	p := base
	for rawKey, v := range cfg {
		key := strings.ToLower(strings.TrimSpace(rawKey))
		v = strings.TrimSpace(v)
		switch key {
		case "count", "branches":
			parsed, err := strconv.Atoi(v)
			if err != nil {
				return base, invalid(key, v, "not an integer")
			}
			*intField(&p, key) = parsed
		case "size", "radius", "spin", "randomness", "branch_density", "density_falloff":
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return base, invalid(key, v, "not a number")
			}
			*floatField(&p, key) = parsed
		case "inside_color", "outside_color":
			parsed, err := ParseColor(v)
			if err != nil {
				return base, invalid(key, v, "want #rrggbb")
			}
			*colorField(&p, key) = parsed
		default:
			return base, invalid(key, v, "unknown parameter")
		}
	}
	return p, nil
}

// floatField maps a float key to its field in p, or nil.
func floatField(p *ParameterSet, key string) *float64 {
	switch key {
	case "size":
		return &p.Size
	case "radius":
		return &p.Radius
	case "spin":
		return &p.Spin
	case "randomness":
		return &p.Randomness
	case "branch_density":
		return &p.BranchDensity
	case "density_falloff":
		return &p.DensityFalloff
	}
	return nil
}

// intField maps an integer key to its field in p, or nil.
func intField(p *ParameterSet, key string) *int {
	switch key {
	case "count":
		return &p.Count
	case "branches":
		return &p.Branches
	}
	return nil
}

// colorField maps a colour key to its field in p, or nil.
func colorField(p *ParameterSet, key string) *Color {
	switch key {
	case "inside_color":
		return &p.InsideColor
	case "outside_color":
		return &p.OutsideColor
	}
	return nil
}

// SetInt stores value under key and reports whether key names an integer
// field.
func (p *ParameterSet) SetInt(key string, value int) bool {
	f := intField(p, key)
	if f == nil {
		return false
	}
	*f = value
	return true
}

// SetFloat stores value under key and reports whether key names a float
// field.
func (p *ParameterSet) SetFloat(key string, value float64) bool {
	f := floatField(p, key)
	if f == nil {
		return false
	}
	*f = value
	return true
}

// SetColor stores c under key and reports whether key names a colour field.
func (p *ParameterSet) SetColor(key string, c Color) bool {
	f := colorField(p, key)
	if f == nil {
		return false
	}
	*f = c
	return true
}
