package physics

import "math"

// PlasmaState holds the plasma sub-calculation outputs, SI units.
type PlasmaState struct {
	Frequency        float64 // electron plasma frequency (rad/s)
	DebyeLength      float64 // screening length (m)
	Beta             float64 // thermal / magnetic pressure ratio
	Conductivity     float64 // S/m
	MagneticPressure float64 // Pa
}

// Plasma evaluates the plasma sub-model for a given density (m⁻³),
// temperature (K), magnetic field (T) and salt concentration (mol/L).
// Pure function, safe to call concurrently. Inputs are assumed
// pre-validated; degenerate values propagate through as NaN/Inf.
func Plasma(density, temperature, magneticField, saltConcentration float64) PlasmaState {
	var s PlasmaState

	s.Frequency = math.Sqrt(density * ChargeE * ChargeE / (Epsilon0 * MassE))
	s.DebyeLength = math.Sqrt(Epsilon0 * Boltzmann * temperature / (density * ChargeE * ChargeE))
	s.MagneticPressure = magneticField * magneticField / (2 * Mu0)

	// Zero-field beta is reported as 0 rather than +Inf. Compatibility
	// policy, not physics: callers treat beta<1 as "magnetically
	// confined" and a field-free plasma should not trip that check.
	if s.MagneticPressure > 0 {
		s.Beta = density * Boltzmann * temperature / s.MagneticPressure
	}

	s.Conductivity = (density * ChargeE * ChargeE / (MassE * 1e6)) *
		(1 + saltConcentration*SaltConductivity)

	return s
}
