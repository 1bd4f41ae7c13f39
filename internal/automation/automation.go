// Package automation executes scripted scenario files: ordered steps
// that pick presets, nudge parameters, run the cadence for a tick
// budget or walk a full lunar cycle, optionally persisting each step.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/elverum/plasmalab/internal/config"
	"github.com/elverum/plasmalab/internal/experiment"
	"github.com/elverum/plasmalab/internal/metrics"
	"github.com/elverum/plasmalab/internal/physics"
	"github.com/elverum/plasmalab/internal/sim"
)

// Scenario is a scripted simulation sequence.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one entry in a scenario. Parameters carry over between steps;
// a preset resets them wholesale, the params map then overrides
// individual fields. A lunar-cycle step ignores Ticks and runs the
// fixed sweep budget instead, with the main cadence advancing once per
// sweep tick.
type Step struct {
	Label      string             `yaml:"label"`
	Preset     string             `yaml:"preset"`
	Params     map[string]float64 `yaml:"params"`
	Ticks      int                `yaml:"ticks"`
	LunarCycle bool               `yaml:"lunar_cycle"`
	Save       bool               `yaml:"save"`
}

// StepResult pairs a step with its run outcome.
type StepResult struct {
	Step   Step
	Result *experiment.Result
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}
	return &sc, nil
}

// Saver persists step results; satisfied by storage.Store.
type Saver interface {
	SaveRun(label string, res *experiment.Result) (string, error)
}

// RunScenario executes every step in order. A nil saver skips
// persistence even for steps that request it.
func RunScenario(ctx context.Context, sc *Scenario, saver Saver) ([]StepResult, error) {
	params := physics.DefaultParameters()
	out := make([]StepResult, 0, len(sc.Steps))

	for i, step := range sc.Steps {
		slog.Info("scenario step", "scenario", sc.Name, "step", i+1, "of", len(sc.Steps), "label", step.Label)

		if step.Preset != "" {
			cfg := config.GetPreset(step.Preset)
			if cfg == nil {
				return out, fmt.Errorf("step %d: unknown preset %q", i+1, step.Preset)
			}
			params = cfg.Parameters()
		}
		for name, v := range step.Params {
			if err := params.SetParam(name, v); err != nil {
				return out, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		params = params.Clamp()

		var (
			res *experiment.Result
			err error
		)
		if step.LunarCycle {
			res, err = runLunarStep(ctx, params)
			if err == nil {
				// The sweep leaves the phase where it ended.
				params = res.Params
			}
		} else {
			ticks := step.Ticks
			if ticks <= 0 {
				ticks = config.DefaultTicks
			}
			e := experiment.New(experiment.Config{Params: params, Ticks: ticks})
			for _, m := range metrics.Default(params.InputVoltage) {
				e.AddMetric(m)
			}
			res, err = e.Run(ctx)
		}
		if err != nil {
			return out, fmt.Errorf("step %d: %w", i+1, err)
		}

		if step.Save && saver != nil {
			label := step.Label
			if label == "" {
				label = fmt.Sprintf("%s_step%d", sc.Name, i+1)
			}
			if _, err := saver.SaveRun(label, res); err != nil {
				return out, fmt.Errorf("step %d: save: %w", i+1, err)
			}
		}
		out = append(out, StepResult{Step: step, Result: res})
	}
	return out, nil
}

// runLunarStep replays the lunar sweep headless: the phase walks one
// full cycle over the sweep's tick budget while the main cadence
// advances in lockstep, one tick per sweep tick.
func runLunarStep(ctx context.Context, params physics.Parameters) (*experiment.Result, error) {
	start := params.LunarPhase
	clock := sim.Clock{}
	results := physics.Evaluate(params)

	res := &experiment.Result{Samples: make([]experiment.Sample, 0, sim.SweepTicks/sim.RecomputeEvery)}

	for i := 1; i <= sim.SweepTicks; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		params.LunarPhase = physics.WrapPhase(start + float64(i)/sim.SweepTicks)

		var recomputed bool
		clock, results, recomputed = sim.Step(clock, params, results)
		if recomputed {
			res.Recomputes++
			res.Samples = append(res.Samples, experiment.Sample{Tick: clock.Tick, Results: results})
		}
	}

	res.Params = params
	res.Final = results
	res.Ticks = clock.Tick
	res.Metrics = map[string]float64{}
	return res, nil
}
