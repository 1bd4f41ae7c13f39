package metrics

import (
	"math"
	"testing"

	"github.com/elverum/plasmalab/internal/physics"
)

func TestIndicatorsReference(t *testing.T) {
	p := physics.DefaultParameters()
	r := physics.Evaluate(p)
	ind := Check(r, p.InputVoltage)

	if !ind.Amplifying {
		t.Error("reference point should amplify past the 1.2x threshold")
	}
	if !ind.Compressed {
		t.Error("reference point should show field compression")
	}
	if !ind.Confined {
		t.Error("reference point should be magnetically confined")
	}
	if !ind.Pinching {
		t.Error("reference point should show a positive pinch force")
	}
	if !ind.Gravity {
		t.Error("reference point should show positive emergent gravity")
	}
}

func TestIndicatorThresholds(t *testing.T) {
	r := physics.Results{
		OutputVoltage:    48 * 1.2, // the exact threshold product, not above it
		FieldCompression: 1.1,
		PlasmaBeta:       1.0,
		ZPinchForce:      0,
		EmergentGravity:  0,
	}
	ind := Check(r, 48)
	if ind.Amplifying || ind.Compressed || ind.Pinching || ind.Gravity {
		t.Errorf("boundary values must not pass strict thresholds: %+v", ind)
	}
	if ind.Confined {
		t.Error("beta == 1 is not confined")
	}

	r.OutputVoltage = 60
	r.FieldCompression = 1.2
	r.PlasmaBeta = 0.5
	r.ZPinchForce = 1e-9
	r.EmergentGravity = 1e-12
	ind = Check(r, 48)
	if !ind.AllValid() {
		t.Errorf("all indicators should pass: %+v", ind)
	}
}

func TestPeakVoltage(t *testing.T) {
	m := NewPeakVoltage()
	for _, v := range []float64{10, 80, 40} {
		m.Observe(physics.Results{OutputVoltage: v}, 0)
	}
	if m.Value() != 80 {
		t.Errorf("peak = %g, want 80", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("reset should zero the peak")
	}
}

func TestMeanBeta(t *testing.T) {
	m := NewMeanBeta()
	if m.Value() != 0 {
		t.Error("empty mean should be 0")
	}
	m.Observe(physics.Results{PlasmaBeta: 0.2}, 0)
	m.Observe(physics.Results{PlasmaBeta: 0.4}, 1)
	if math.Abs(m.Value()-0.3) > 1e-12 {
		t.Errorf("mean = %g, want 0.3", m.Value())
	}
}

func TestValidRate(t *testing.T) {
	p := physics.DefaultParameters()
	good := physics.Evaluate(p)
	m := NewValidRate(p.InputVoltage)

	m.Observe(good, 0)
	m.Observe(physics.Results{}, 1) // zero record fails every check
	got := m.Value()

	want := 0.5
	if Check(good, p.InputVoltage).AllValid() {
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("valid rate = %g, want %g", got, want)
		}
	} else if got != 0 {
		t.Errorf("valid rate = %g, want 0", got)
	}
}

func TestRecomputes(t *testing.T) {
	m := NewRecomputes()
	for i := 0; i < 7; i++ {
		m.Observe(physics.Results{}, uint64(i))
	}
	if m.Value() != 7 {
		t.Errorf("count = %g, want 7", m.Value())
	}
}
