// Package experiment runs the engine headless for a fixed tick budget,
// sampling results and folding them into metrics. It drives the pure
// sim.Step cadence directly, so runs are deterministic and need no
// timer harness.
package experiment

import (
	"context"

	"github.com/elverum/plasmalab/internal/metrics"
	"github.com/elverum/plasmalab/internal/physics"
	"github.com/elverum/plasmalab/internal/sim"
)

type Config struct {
	Params      physics.Parameters
	Ticks       int
	SampleEvery int
}

// Sample is one recorded point of a run's history.
type Sample struct {
	Tick    uint64
	Results physics.Results
}

type Result struct {
	Params     physics.Parameters
	Final      physics.Results
	Samples    []Sample
	Metrics    map[string]float64
	Recomputes uint64
	Ticks      uint64
}

type Experiment struct {
	cfg     Config
	metrics []metrics.Metric
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) AddMetric(m metrics.Metric) { e.metrics = append(e.metrics, m) }

// Run advances the clock for the configured tick budget and returns the
// collected history. Samples land on the sampling stride plus the final
// tick; metrics observe every recompute.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	sampleEvery := e.cfg.SampleEvery
	if sampleEvery <= 0 {
		sampleEvery = sim.RecomputeEvery
	}

	for _, m := range e.metrics {
		m.Reset()
	}

	clock := sim.Clock{}
	params := e.cfg.Params
	results := physics.Evaluate(params)

	res := &Result{
		Params:  params,
		Samples: make([]Sample, 0, e.cfg.Ticks/sampleEvery+1),
	}

	for i := 0; i < e.cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		var recomputed bool
		clock, results, recomputed = sim.Step(clock, params, results)
		if recomputed {
			res.Recomputes++
			for _, m := range e.metrics {
				m.Observe(results, clock.Tick)
			}
		}
		if clock.Tick%uint64(sampleEvery) == 0 || i == e.cfg.Ticks-1 {
			res.Samples = append(res.Samples, Sample{Tick: clock.Tick, Results: results})
		}
	}

	res.Final = results
	res.Ticks = clock.Tick
	res.Metrics = make(map[string]float64, len(e.metrics))
	for _, m := range e.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, nil
}
