package existon

import (
	"strconv"
	"strings"

	"existon-ca/internal/core"
)

// Parameters reports the current tunables for the HUD panel.
func (u *Universe) Parameters() core.ParameterSnapshot {
	rates := u.cfg.Rates
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				{Key: "dims", Label: "Dims", Type: core.ParamTypeInt, Value: dimsString(u.cfg.Dims)},
				intParam("p", "Algebra order", u.cfg.P),
				int64Param("seed", "Seed", u.cfg.Seed),
			},
		},
		{
			Name: "Rates",
			Params: []core.Parameter{
				floatParam("observation_rate", "Observation", rates.Observation),
				floatParam("decay_rate", "Decay", rates.Decay),
				floatParam("fluctuation_rate", "Fluctuation", rates.Fluctuation),
				floatParam("entanglement_fraction", "Entanglement", rates.Entanglement),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable rates.
func (u *Universe) ParameterControls() []core.ParameterControl {
	control := func(key, label string, step float64) core.ParameterControl {
		return core.ParameterControl{
			Key:   key,
			Label: label,
			Type:  core.ParamTypeFloat,
			Step:  step,
			Min:   0, Max: 1,
			HasMin: true, HasMax: true,
		}
	}
	return []core.ParameterControl{
		control("observation_rate", "Observation", 0.0005),
		control("decay_rate", "Decay", 0.005),
		control("fluctuation_rate", "Fluctuation", 0.001),
		control("entanglement_fraction", "Entanglement", 0.01),
	}
}

// SetFloatParameter updates a rate by key, clamped to [0, 1]. Changing the
// entanglement fraction rebuilds the pairing table.
func (u *Universe) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "observation_rate":
		u.SetRate(RateObservation, value)
	case "decay_rate":
		u.SetRate(RateDecay, value)
	case "fluctuation_rate":
		u.SetRate(RateFluctuation, value)
	case "entanglement_fraction":
		u.cfg.Rates.Entanglement = clampRate(value)
		u.rebuildPairs()
	default:
		return false
	}
	return true
}

func dimsString(dims []int) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, "x")
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
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
