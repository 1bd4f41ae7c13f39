package physics

import (
	"fmt"
	"math"
)

// Parameters is the full input record for one evaluation. The evaluator
// never mutates or retains it; callers pass it by value. Range limits are
// advisory here — clamping is the job of whatever surface feeds the
// engine (config layer, live view), never of the evaluator itself.
type Parameters struct {
	PlasmaDensity     float64 // m⁻³
	MagneticField     float64 // T
	RotationRate      float64 // rad/s
	SaltConcentration float64 // mol/L
	Temperature       float64 // K
	SystemRadius      float64 // m
	InputVoltage      float64 // V
	BioelectricField  float64 // V/m
	EarthTilt         float64 // degrees
	LunarDistance     float64 // km
	LunarPhase        float64 // [0,1) cyclic; alignment peaks at 0 and 1, trough at 0.5
	SolarActivity     float64 // [0,1]
}

// Range is a closed parameter interval used by input surfaces for clamping.
type Range struct {
	Min, Max float64
}

// Ranges lists the adjustable parameters and their documented intervals.
// Temperature, SystemRadius and InputVoltage are fixed at setup and not
// exposed as sliders, so they carry no range entry.
var Ranges = map[string]Range{
	"plasma_density":     {1e14, 1e16},
	"magnetic_field":     {0.001, 0.1},
	"rotation_rate":      {0, 1},
	"salt_concentration": {0, 1},
	"bioelectric_field":  {0, 100},
	"earth_tilt":         {0, 45},
	"lunar_distance":     {356500, 406700},
	"lunar_phase":        {0, 1},
	"solar_activity":     {0, 1},
}

// DefaultParameters returns the reference operating point.
func DefaultParameters() Parameters {
	return Parameters{
		PlasmaDensity:     1e15,
		MagneticField:     0.01,
		RotationRate:      0.1,
		SaltConcentration: 0.1,
		Temperature:       5000,
		SystemRadius:      0.1,
		InputVoltage:      48,
		BioelectricField:  0,
		EarthTilt:         23.5,
		LunarDistance:     LunarMeanDistance,
		LunarPhase:        0,
		SolarActivity:     0.5,
	}
}

// Params exposes the adjustable fields by name for generic tuning surfaces.
func (p Parameters) Params() map[string]float64 {
	return map[string]float64{
		"plasma_density":     p.PlasmaDensity,
		"magnetic_field":     p.MagneticField,
		"rotation_rate":      p.RotationRate,
		"salt_concentration": p.SaltConcentration,
		"bioelectric_field":  p.BioelectricField,
		"earth_tilt":         p.EarthTilt,
		"lunar_distance":     p.LunarDistance,
		"lunar_phase":        p.LunarPhase,
		"solar_activity":     p.SolarActivity,
	}
}

// SetParam sets one adjustable field by name. Unknown names are an error;
// values are taken as given, without clamping.
func (p *Parameters) SetParam(name string, v float64) error {
	switch name {
	case "plasma_density":
		p.PlasmaDensity = v
	case "magnetic_field":
		p.MagneticField = v
	case "rotation_rate":
		p.RotationRate = v
	case "salt_concentration":
		p.SaltConcentration = v
	case "bioelectric_field":
		p.BioelectricField = v
	case "earth_tilt":
		p.EarthTilt = v
	case "lunar_distance":
		p.LunarDistance = v
	case "lunar_phase":
		p.LunarPhase = WrapPhase(v)
	case "solar_activity":
		p.SolarActivity = v
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}

// Clamp returns a copy with every ranged field forced into its documented
// interval. Input surfaces call this before handing parameters to the
// engine; the evaluator itself accepts whatever it is given.
func (p Parameters) Clamp() Parameters {
	clamp := func(name string, v float64) float64 {
		r, ok := Ranges[name]
		if !ok {
			return v
		}
		return math.Min(math.Max(v, r.Min), r.Max)
	}
	p.PlasmaDensity = clamp("plasma_density", p.PlasmaDensity)
	p.MagneticField = clamp("magnetic_field", p.MagneticField)
	p.RotationRate = clamp("rotation_rate", p.RotationRate)
	p.SaltConcentration = clamp("salt_concentration", p.SaltConcentration)
	p.BioelectricField = clamp("bioelectric_field", p.BioelectricField)
	p.EarthTilt = clamp("earth_tilt", p.EarthTilt)
	p.LunarDistance = clamp("lunar_distance", p.LunarDistance)
	p.LunarPhase = WrapPhase(p.LunarPhase)
	p.SolarActivity = clamp("solar_activity", p.SolarActivity)
	return p
}

// WrapPhase folds a lunar phase into [0,1).
func WrapPhase(phase float64) float64 {
	phase = math.Mod(phase, 1)
	if phase < 0 {
		phase += 1
	}
	return phase
}

// IsValid reports whether every field is finite.
func (p Parameters) IsValid() bool {
	for _, v := range []float64{
		p.PlasmaDensity, p.MagneticField, p.RotationRate,
		p.SaltConcentration, p.Temperature, p.SystemRadius,
		p.InputVoltage, p.BioelectricField, p.EarthTilt,
		p.LunarDistance, p.LunarPhase, p.SolarActivity,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
