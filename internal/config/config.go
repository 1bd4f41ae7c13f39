package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/elverum/plasmalab/internal/physics"
)

const (
	DefaultTicks       = 600
	DefaultSampleEvery = 5
)

// Config is the file-level run description: the generator parameters
// plus run settings. The config layer stands in for the slider surface,
// so it is the place where parameter ranges get clamped before anything
// reaches the engine.
type Config struct {
	Params      ParamsConfig `yaml:"params"`
	Ticks       int          `yaml:"ticks"`
	SampleEvery int          `yaml:"sample_every"`
}

// ParamsConfig mirrors physics.Parameters for YAML. Zero-valued fixed
// fields (temperature, radius, input voltage) fall back to the defaults,
// so a config file only needs the knobs it cares about.
type ParamsConfig struct {
	PlasmaDensity     float64 `yaml:"plasma_density"`
	MagneticField     float64 `yaml:"magnetic_field"`
	RotationRate      float64 `yaml:"rotation_rate"`
	SaltConcentration float64 `yaml:"salt_concentration"`
	Temperature       float64 `yaml:"temperature"`
	SystemRadius      float64 `yaml:"system_radius"`
	InputVoltage      float64 `yaml:"input_voltage"`
	BioelectricField  float64 `yaml:"bioelectric_field"`
	EarthTilt         float64 `yaml:"earth_tilt"`
	LunarDistance     float64 `yaml:"lunar_distance"`
	LunarPhase        float64 `yaml:"lunar_phase"`
	SolarActivity     float64 `yaml:"solar_activity"`
}

// DefaultConfig returns the reference operating point with a short run.
func DefaultConfig() *Config {
	p := physics.DefaultParameters()
	return &Config{
		Params: ParamsConfig{
			PlasmaDensity:     p.PlasmaDensity,
			MagneticField:     p.MagneticField,
			RotationRate:      p.RotationRate,
			SaltConcentration: p.SaltConcentration,
			Temperature:       p.Temperature,
			SystemRadius:      p.SystemRadius,
			InputVoltage:      p.InputVoltage,
			BioelectricField:  p.BioelectricField,
			EarthTilt:         p.EarthTilt,
			LunarDistance:     p.LunarDistance,
			LunarPhase:        p.LunarPhase,
			SolarActivity:     p.SolarActivity,
		},
		Ticks:       DefaultTicks,
		SampleEvery: DefaultSampleEvery,
	}
}

// Load reads a YAML config, layered over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Parameters converts the config to an engine parameter record, filling
// unset fixed fields from the defaults and clamping everything else to
// its documented range.
func (c *Config) Parameters() physics.Parameters {
	def := physics.DefaultParameters()
	p := physics.Parameters{
		PlasmaDensity:     c.Params.PlasmaDensity,
		MagneticField:     c.Params.MagneticField,
		RotationRate:      c.Params.RotationRate,
		SaltConcentration: c.Params.SaltConcentration,
		Temperature:       c.Params.Temperature,
		SystemRadius:      c.Params.SystemRadius,
		InputVoltage:      c.Params.InputVoltage,
		BioelectricField:  c.Params.BioelectricField,
		EarthTilt:         c.Params.EarthTilt,
		LunarDistance:     c.Params.LunarDistance,
		LunarPhase:        c.Params.LunarPhase,
		SolarActivity:     c.Params.SolarActivity,
	}
	if p.Temperature == 0 {
		p.Temperature = def.Temperature
	}
	if p.SystemRadius == 0 {
		p.SystemRadius = def.SystemRadius
	}
	if p.InputVoltage == 0 {
		p.InputVoltage = def.InputVoltage
	}
	if p.LunarDistance == 0 {
		p.LunarDistance = def.LunarDistance
	}
	if p.PlasmaDensity == 0 {
		p.PlasmaDensity = def.PlasmaDensity
	}
	if p.MagneticField == 0 {
		p.MagneticField = def.MagneticField
	}
	return p.Clamp()
}

// Validate checks the run settings.
func (c *Config) Validate() error {
	if c.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", c.Ticks)
	}
	if c.SampleEvery <= 0 {
		return fmt.Errorf("sample_every must be positive, got %d", c.SampleEvery)
	}
	return nil
}
