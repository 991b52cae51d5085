package galaxy

import (
	"strconv"

	"spiral-gen/internal/core"
)

// Snapshot groups the parameters the way the editor panel presents them.
func (p ParameterSet) Snapshot() core.ParameterSnapshot {
	groups := []core.ParameterGroup{
		{
			Name: "Stars",
			Params: []core.Parameter{
				intParam("count", "Count", p.Count),
				floatParam("size", "Size", p.Size),
			},
		},
		{
			Name: "Galaxy",
			Params: []core.Parameter{
				floatParam("radius", "Radius", p.Radius),
				intParam("branches", "Branches", p.Branches),
				floatParam("spin", "Spin", p.Spin),
			},
		},
		{
			Name: "Star Arrangement",
			Params: []core.Parameter{
				floatParam("randomness", "Randomness", p.Randomness),
				floatParam("branch_density", "Branch density", p.BranchDensity),
				floatParam("density_falloff", "Density falloff", p.DensityFalloff),
			},
			Summary: "Density falloff also attenuates jitter towards the rim.",
		},
		{
			Name: "Colors",
			Params: []core.Parameter{
				colorParam("inside_color", "Inside color", p.InsideColor),
				colorParam("outside_color", "Outside color", p.OutsideColor),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// Controls lists the HUD-adjustable parameters with their interactive
// ranges. The count range is narrower than what Validate accepts.
func Controls() []core.ParameterControl {
	return []core.ParameterControl{
		intControl("count", "Count", 100, 100, MaxCount),
		floatControl("size", "Size", 0.001, 0.001, 0.1),
		floatControl("radius", "Radius", 0.01, 0.01, 20),
		intControl("branches", "Branches", 1, 2, 20),
		floatControl("spin", "Spin", 0.001, -5, 5),
		floatControl("randomness", "Randomness", 0.1, 0, 10),
		floatControl("branch_density", "Branch density", 0.1, 1, 10),
		floatControl("density_falloff", "Density falloff", 0.01, 0, 10),
	}
}

func intControl(key, label string, step, min, max float64) core.ParameterControl {
	return core.ParameterControl{
		Key: key, Label: label, Type: core.ParamTypeInt,
		Step: step, Min: min, Max: max, HasMin: true, HasMax: true,
	}
}

func floatControl(key, label string, step, min, max float64) core.ParameterControl {
	return core.ParameterControl{
		Key: key, Label: label, Type: core.ParamTypeFloat,
		Step: step, Min: min, Max: max, HasMin: true, HasMax: true,
	}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func colorParam(key, label string, value Color) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeColor,
		Value: value.Hex(),
	}
}
