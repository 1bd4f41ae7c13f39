package metrics

import (
	"math"

	"github.com/elverum/plasmalab/internal/physics"
)

// Metric accumulates a scalar over a stream of recomputed results.
type Metric interface {
	Name() string
	Observe(r physics.Results, tick uint64)
	Value() float64
	Reset()
}

// PeakVoltage tracks the highest output voltage seen.
type PeakVoltage struct {
	peak float64
}

func NewPeakVoltage() *PeakVoltage { return &PeakVoltage{} }

func (p *PeakVoltage) Name() string { return "peak_voltage" }

func (p *PeakVoltage) Observe(r physics.Results, _ uint64) {
	p.peak = math.Max(p.peak, r.OutputVoltage)
}

func (p *PeakVoltage) Value() float64 { return p.peak }
func (p *PeakVoltage) Reset()         { p.peak = 0 }

// MeanBeta averages the plasma beta across recomputes.
type MeanBeta struct {
	total   float64
	samples int
}

func NewMeanBeta() *MeanBeta { return &MeanBeta{} }

func (m *MeanBeta) Name() string { return "mean_beta" }

func (m *MeanBeta) Observe(r physics.Results, _ uint64) {
	m.total += r.PlasmaBeta
	m.samples++
}

func (m *MeanBeta) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanBeta) Reset() {
	m.total = 0
	m.samples = 0
}

// ValidRate reports the fraction of recomputes whose indicator set was
// fully green.
type ValidRate struct {
	inputVoltage float64
	valid        int
	samples      int
}

func NewValidRate(inputVoltage float64) *ValidRate {
	return &ValidRate{inputVoltage: inputVoltage}
}

func (v *ValidRate) Name() string { return "valid_rate" }

func (v *ValidRate) Observe(r physics.Results, _ uint64) {
	if Check(r, v.inputVoltage).AllValid() {
		v.valid++
	}
	v.samples++
}

func (v *ValidRate) Value() float64 {
	if v.samples == 0 {
		return 0
	}
	return float64(v.valid) / float64(v.samples)
}

func (v *ValidRate) Reset() {
	v.valid = 0
	v.samples = 0
}

// Recomputes counts evaluation events.
type Recomputes struct {
	n int
}

func NewRecomputes() *Recomputes { return &Recomputes{} }

func (c *Recomputes) Name() string                    { return "recomputes" }
func (c *Recomputes) Observe(physics.Results, uint64) { c.n++ }
func (c *Recomputes) Value() float64                  { return float64(c.n) }
func (c *Recomputes) Reset()                          { c.n = 0 }

// Default returns the standard metric set for a run.
func Default(inputVoltage float64) []Metric {
	return []Metric{
		NewPeakVoltage(),
		NewMeanBeta(),
		NewValidRate(inputVoltage),
		NewRecomputes(),
	}
}
