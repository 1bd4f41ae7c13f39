package metrics

import "github.com/elverum/plasmalab/internal/physics"

// Indicators is the stateless validity mapping over a results record.
// Each flag is a fixed threshold check; the thresholds are part of the
// model contract and are expressed in the display units the results
// record reports.
type Indicators struct {
	Amplifying bool // outputVoltage > inputVoltage · 1.2
	Compressed bool // field compression > 1.1
	Confined   bool // plasma beta < 1
	Pinching   bool // z-pinch force > 0
	Gravity    bool // emergent gravity > 0
}

// Check evaluates the indicator set for one results record against the
// input voltage the record was produced with.
func Check(r physics.Results, inputVoltage float64) Indicators {
	return Indicators{
		Amplifying: r.OutputVoltage > inputVoltage*1.2,
		Compressed: r.FieldCompression > 1.1,
		Confined:   r.PlasmaBeta < 1,
		Pinching:   r.ZPinchForce > 0,
		Gravity:    r.EmergentGravity > 0,
	}
}

// AllValid reports whether every indicator passed.
func (i Indicators) AllValid() bool {
	return i.Amplifying && i.Compressed && i.Confined && i.Pinching && i.Gravity
}

// Flags returns the indicators keyed by name, for storage and display.
func (i Indicators) Flags() map[string]bool {
	return map[string]bool{
		"amplifying": i.Amplifying,
		"compressed": i.Compressed,
		"confined":   i.Confined,
		"pinching":   i.Pinching,
		"gravity":    i.Gravity,
	}
}
