package physics

import "math"

// Physical constants, SI base units.
const (
	Mu0       = 4 * math.Pi * 1e-7 // vacuum permeability (H/m)
	Epsilon0  = 8.854187817e-12    // vacuum permittivity (F/m)
	LightC    = 2.99792458e8       // speed of light (m/s)
	ChargeE   = 1.602176634e-19    // elementary charge (C)
	MassE     = 9.1093837015e-31   // electron mass (kg)
	MassP     = 1.67262192369e-27  // proton mass (kg)
	Boltzmann = 1.380649e-23       // Boltzmann constant (J/K)
	GravG     = 6.67430e-11        // gravitational constant (m³/kg/s²)

	// SaltConductivity scales the conductivity boost per mol/L of
	// dissolved salt. Seawater-order value, treated as a model constant.
	SaltConductivity = 5.0

	// LunarField is the fixed lunar magnetic field used for the
	// plasma-stream coupling term (T).
	LunarField = 50e-9

	// LunarMeanDistance is the reference Earth-Moon distance (km).
	LunarMeanDistance = 384400.0
)
