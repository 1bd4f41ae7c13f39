package automation

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/elverum/plasmalab/internal/experiment"
	"github.com/elverum/plasmalab/internal/physics"
	"github.com/elverum/plasmalab/internal/sim"
)

func TestLoadScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	data := `name: tides
description: phase sensitivity
steps:
  - label: baseline
    preset: reference
    ticks: 20
  - label: spring tide
    params:
      lunar_distance: 356500
    ticks: 20
  - label: cycle
    lunar_cycle: true
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "tides" {
		t.Errorf("name = %s", sc.Name)
	}
	if len(sc.Steps) != 3 {
		t.Fatalf("steps = %d", len(sc.Steps))
	}
	if !sc.Steps[2].LunarCycle {
		t.Error("third step should be a lunar cycle")
	}
}

func TestLoadScenarioEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(path, []byte("name: x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScenario(path); err == nil {
		t.Error("expected error for scenario without steps")
	}
}

func TestRunScenarioCarriesParams(t *testing.T) {
	sc := &Scenario{
		Name: "carry",
		Steps: []Step{
			{Label: "salty", Params: map[string]float64{"salt_concentration": 0.9}, Ticks: 10},
			{Label: "still salty", Ticks: 10},
		},
	}
	out, err := RunScenario(context.Background(), sc, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 step results, got %d", len(out))
	}
	if out[1].Result.Params.SaltConcentration != 0.9 {
		t.Errorf("salt should carry over, got %g", out[1].Result.Params.SaltConcentration)
	}
}

func TestRunScenarioUnknownPreset(t *testing.T) {
	sc := &Scenario{Name: "bad", Steps: []Step{{Preset: "warp"}}}
	if _, err := RunScenario(context.Background(), sc, nil); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestRunScenarioLunarCycle(t *testing.T) {
	sc := &Scenario{
		Name:  "cycle",
		Steps: []Step{{Label: "sweep", LunarCycle: true}},
	}
	out, err := RunScenario(context.Background(), sc, nil)
	if err != nil {
		t.Fatal(err)
	}

	res := out[0].Result
	if res.Ticks != sim.SweepTicks {
		t.Errorf("ticks = %d, want %d", res.Ticks, sim.SweepTicks)
	}
	// One full cycle brings the phase back to its start.
	start := physics.DefaultParameters().LunarPhase
	if math.Abs(res.Params.LunarPhase-start) > 1e-9 {
		t.Errorf("phase = %g, want %g", res.Params.LunarPhase, start)
	}
	if res.Recomputes == 0 {
		t.Error("cadence should have recomputed during the sweep")
	}
}

type fakeSaver struct {
	labels []string
}

func (f *fakeSaver) SaveRun(label string, _ *experiment.Result) (string, error) {
	f.labels = append(f.labels, label)
	return label, nil
}

func TestRunScenarioSaves(t *testing.T) {
	sc := &Scenario{
		Name: "persist",
		Steps: []Step{
			{Label: "kept", Ticks: 10, Save: true},
			{Label: "dropped", Ticks: 10},
		},
	}
	saver := &fakeSaver{}
	if _, err := RunScenario(context.Background(), sc, saver); err != nil {
		t.Fatal(err)
	}
	if len(saver.labels) != 1 || saver.labels[0] != "kept" {
		t.Errorf("saved labels = %v", saver.labels)
	}
}
