package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Ticks <= 0 {
		t.Error("ticks should be positive")
	}
	if cfg.SampleEvery <= 0 {
		t.Error("sample_every should be positive")
	}
	p := cfg.Parameters()
	if p.PlasmaDensity != 1e15 {
		t.Errorf("expected reference density, got %g", p.PlasmaDensity)
	}
	if p.InputVoltage != 48 {
		t.Errorf("expected 48V input, got %g", p.InputVoltage)
	}
}

func TestParametersClampsAndFillsDefaults(t *testing.T) {
	cfg := &Config{
		Params: ParamsConfig{
			PlasmaDensity: 1e20, // above range
			SolarActivity: 3,    // above range
		},
		Ticks:       10,
		SampleEvery: 1,
	}
	p := cfg.Parameters()

	if p.PlasmaDensity != 1e16 {
		t.Errorf("density should clamp to 1e16, got %g", p.PlasmaDensity)
	}
	if p.SolarActivity != 1 {
		t.Errorf("solar activity should clamp to 1, got %g", p.SolarActivity)
	}
	if p.Temperature != 5000 {
		t.Errorf("unset temperature should default, got %g", p.Temperature)
	}
	if p.SystemRadius != 0.1 {
		t.Errorf("unset radius should default, got %g", p.SystemRadius)
	}
	if p.LunarDistance == 0 {
		t.Error("unset lunar distance should default")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")

	cfg := DefaultConfig()
	cfg.Params.SaltConcentration = 0.7
	cfg.Ticks = 42

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Params.SaltConcentration != 0.7 {
		t.Errorf("salt = %g, want 0.7", loaded.Params.SaltConcentration)
	}
	if loaded.Ticks != 42 {
		t.Errorf("ticks = %d, want 42", loaded.Ticks)
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")
	if err := os.WriteFile(path, []byte("params:\n  solar_activity: 0.9\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Params.SolarActivity != 0.9 {
		t.Errorf("solar = %g, want 0.9", cfg.Params.SolarActivity)
	}
	if cfg.Ticks != DefaultTicks {
		t.Errorf("ticks should keep default, got %d", cfg.Ticks)
	}
	if cfg.Params.Temperature != 5000 {
		t.Errorf("temperature should keep default, got %g", cfg.Params.Temperature)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/run.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("perigee")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Params.LunarDistance != 356500 {
		t.Errorf("perigee distance = %g", cfg.Params.LunarDistance)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	found := false
	for _, n := range names {
		if n == "reference" {
			found = true
		}
	}
	if !found {
		t.Error("reference preset missing")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	cfg.Ticks = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero ticks should fail validation")
	}
	cfg = DefaultConfig()
	cfg.SampleEvery = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative sample_every should fail validation")
	}
}
