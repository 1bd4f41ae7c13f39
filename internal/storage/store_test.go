package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/elverum/plasmalab/internal/experiment"
	"github.com/elverum/plasmalab/internal/metrics"
	"github.com/elverum/plasmalab/internal/physics"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func runExperiment(t *testing.T) *experiment.Result {
	t.Helper()
	p := physics.DefaultParameters()
	e := experiment.New(experiment.Config{Params: p, Ticks: 30, SampleEvery: 10})
	for _, m := range metrics.Default(p.InputVoltage) {
		e.AddMetric(m)
	}
	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestSaveAndLoadRun(t *testing.T) {
	s := openTestStore(t)
	res := runExperiment(t)

	id, err := s.SaveRun("reference", res)
	if err != nil {
		t.Fatal(err)
	}

	meta, err := s.LoadRun(id)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Label != "reference" {
		t.Errorf("label = %s", meta.Label)
	}
	if meta.Ticks != res.Ticks {
		t.Errorf("ticks = %d, want %d", meta.Ticks, res.Ticks)
	}
	if meta.Final != res.Final {
		t.Error("final results should round-trip exactly")
	}
	if meta.Params != res.Params {
		t.Error("parameters should round-trip exactly")
	}
	if meta.Metrics["recomputes"] != res.Metrics["recomputes"] {
		t.Error("metrics should round-trip")
	}
}

func TestLoadSamples(t *testing.T) {
	s := openTestStore(t)
	res := runExperiment(t)

	id, err := s.SaveRun("reference", res)
	if err != nil {
		t.Fatal(err)
	}

	samples, err := s.LoadSamples(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != len(res.Samples) {
		t.Fatalf("samples = %d, want %d", len(samples), len(res.Samples))
	}
	for i := range samples {
		if samples[i] != res.Samples[i] {
			t.Fatalf("sample %d differs", i)
		}
	}
}

func TestListRuns(t *testing.T) {
	s := openTestStore(t)
	res := runExperiment(t)

	if _, err := s.SaveRun("a", res); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveRun("b", res); err != nil {
		t.Fatal(err)
	}

	metas, err := s.ListRuns()
	if err != nil {
		t.Fatal(err)
	}
	if len(metas) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(metas))
	}
}

func TestLoadMissingRun(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.LoadRun("nope"); err == nil {
		t.Error("expected error for missing run")
	}
}
