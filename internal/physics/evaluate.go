package physics

import "math"

// Results is one complete evaluation snapshot. Every field is derived;
// a new Results replaces the previous one wholesale on each recompute,
// never field by field. Internal math is SI throughout — only the fields
// noted below carry display scaling, and the validation thresholds are
// expressed against the scaled values.
type Results struct {
	OutputVoltage    float64 // V
	FieldCompression float64 // dimensionless multiplier
	Current          float64 // A
	PlasmaBeta       float64
	DebyeLength      float64 // µm
	PlasmaFrequency  float64 // GHz
	ZPinchForce      float64 // N
	EmergentGravity  float64 // multiples of G
	LorentzForce     float64 // N
	MagneticPressure float64 // Pa
	FieldEnergy      float64 // J
	SolarCoupling    float64
	LunarAlignment   float64
	EffectiveDensity float64 // ×10¹⁵ m⁻³
}

// Alignment maps a lunar phase in [0,1) to the cyclic coupling factor:
// 1 at new moon (phase 0), 0 at phase 0.5, back to 1 at phase 1.
func Alignment(phase float64) float64 {
	return 0.5 + 0.5*math.Cos(phase*2*math.Pi)
}

// Evaluate computes the full electromagnetic and astronomical coupling
// chain for one parameter set. Deterministic and total over finite
// inputs; out-of-domain values (zero density and the like) propagate as
// NaN/Inf rather than erroring — feeding the evaluator garbage is a
// caller contract violation, not a runtime condition it recovers from.
func Evaluate(p Parameters) Results {
	seasonal := math.Cos(p.EarthTilt * math.Pi / 180)
	solarCoupling := p.SolarActivity * seasonal

	distEffect := (LunarMeanDistance / p.LunarDistance) * (LunarMeanDistance / p.LunarDistance)
	alignment := Alignment(p.LunarPhase)
	lunarCoupling := LunarField * distEffect * alignment

	effDensity := p.PlasmaDensity * (1 + solarCoupling*0.3 + lunarCoupling*1e6)

	saltFactor := 1 + p.SaltConcentration*2
	rotationFactor := 1 + p.RotationRate*0.5
	bioFactor := 1 + p.BioelectricField*0.001
	lunarFactor := 1 + alignment*0.1
	solarFactor := 1 + solarCoupling*0.2
	outputVoltage := p.InputVoltage * saltFactor * rotationFactor * bioFactor * lunarFactor * solarFactor

	current := effDensity * ChargeE * p.RotationRate * p.SystemRadius
	compression := 1 + current*Mu0*p.SystemRadius + lunarCoupling*1e8
	compressedField := p.MagneticField * compression

	zpinch := (Mu0 * current * current * p.SystemRadius / (2 * math.Pi)) * (1 + alignment*0.05)
	lorentz := effDensity * ChargeE * compressedField * p.RotationRate * p.SystemRadius

	magPressure := compressedField * compressedField / (2 * Mu0)
	fieldEnergy := magPressure * math.Pi * p.SystemRadius * p.SystemRadius

	gravMod := solarCoupling + alignment*0.1
	emergentGravity := fieldEnergy / (LightC * LightC) * GravG /
		(p.SystemRadius * p.SystemRadius) * (1 + gravMod)

	plasma := Plasma(effDensity, p.Temperature, compressedField, p.SaltConcentration)

	return Results{
		OutputVoltage:    outputVoltage,
		FieldCompression: compression,
		Current:          current,
		PlasmaBeta:       plasma.Beta,
		DebyeLength:      plasma.DebyeLength * 1e6,
		PlasmaFrequency:  plasma.Frequency / 1e9,
		ZPinchForce:      zpinch,
		EmergentGravity:  emergentGravity / GravG,
		LorentzForce:     lorentz,
		MagneticPressure: magPressure,
		FieldEnergy:      fieldEnergy,
		SolarCoupling:    solarCoupling,
		LunarAlignment:   alignment,
		EffectiveDensity: effDensity * 1e-15,
	}
}

// IsValid reports whether every result field is finite.
func (r Results) IsValid() bool {
	for _, v := range []float64{
		r.OutputVoltage, r.FieldCompression, r.Current, r.PlasmaBeta,
		r.DebyeLength, r.PlasmaFrequency, r.ZPinchForce, r.EmergentGravity,
		r.LorentzForce, r.MagneticPressure, r.FieldEnergy, r.SolarCoupling,
		r.LunarAlignment, r.EffectiveDensity,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Fields returns the results keyed by the names used in exports and the
// live view, in no particular order.
func (r Results) Fields() map[string]float64 {
	return map[string]float64{
		"output_voltage":    r.OutputVoltage,
		"field_compression": r.FieldCompression,
		"current":           r.Current,
		"plasma_beta":       r.PlasmaBeta,
		"debye_length":      r.DebyeLength,
		"plasma_frequency":  r.PlasmaFrequency,
		"zpinch_force":      r.ZPinchForce,
		"emergent_gravity":  r.EmergentGravity,
		"lorentz_force":     r.LorentzForce,
		"magnetic_pressure": r.MagneticPressure,
		"field_energy":      r.FieldEnergy,
		"solar_coupling":    r.SolarCoupling,
		"lunar_alignment":   r.LunarAlignment,
		"effective_density": r.EffectiveDensity,
	}
}

// FieldNames lists the exportable result fields in a stable order.
var FieldNames = []string{
	"output_voltage",
	"field_compression",
	"current",
	"plasma_beta",
	"debye_length",
	"plasma_frequency",
	"zpinch_force",
	"emergent_gravity",
	"lorentz_force",
	"magnetic_pressure",
	"field_energy",
	"solar_coupling",
	"lunar_alignment",
	"effective_density",
}
