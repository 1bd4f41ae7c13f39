package config

import "sort"

// Presets are named operating points for the generator. Fixed fields
// left at zero fall back to the defaults in Parameters().
var Presets = map[string]*Config{
	"reference": DefaultConfig(),
	"brine": {
		Params: ParamsConfig{
			PlasmaDensity: 5e15, MagneticField: 0.02, RotationRate: 0.3,
			SaltConcentration: 0.8, EarthTilt: 23.5, SolarActivity: 0.5,
		},
		Ticks: DefaultTicks, SampleEvery: DefaultSampleEvery,
	},
	"solar_storm": {
		Params: ParamsConfig{
			PlasmaDensity: 2e15, MagneticField: 0.05, RotationRate: 0.2,
			SaltConcentration: 0.1, EarthTilt: 10, SolarActivity: 1.0,
		},
		Ticks: DefaultTicks, SampleEvery: DefaultSampleEvery,
	},
	"perigee": {
		Params: ParamsConfig{
			PlasmaDensity: 1e15, MagneticField: 0.01, RotationRate: 0.1,
			SaltConcentration: 0.1, EarthTilt: 23.5,
			LunarDistance: 356500, LunarPhase: 0, SolarActivity: 0.5,
		},
		Ticks: DefaultTicks, SampleEvery: DefaultSampleEvery,
	},
	"apogee_quiet": {
		Params: ParamsConfig{
			PlasmaDensity: 1e15, MagneticField: 0.01, RotationRate: 0.1,
			SaltConcentration: 0.1, EarthTilt: 23.5,
			LunarDistance: 406700, LunarPhase: 0.5, SolarActivity: 0.1,
		},
		Ticks: DefaultTicks, SampleEvery: DefaultSampleEvery,
	},
	"spin_up": {
		Params: ParamsConfig{
			PlasmaDensity: 1e16, MagneticField: 0.1, RotationRate: 1.0,
			SaltConcentration: 1.0, EarthTilt: 0, SolarActivity: 1.0,
		},
		Ticks: DefaultTicks, SampleEvery: DefaultSampleEvery,
	},
}

// GetPreset returns a copy of the named preset, or nil when unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// ListPresets names the available presets, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
