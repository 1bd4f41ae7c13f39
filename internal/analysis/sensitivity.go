// Package analysis inspects how the model's outputs respond to a
// parameter swept across its range.
package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/elverum/plasmalab/internal/physics"
	"github.com/elverum/plasmalab/internal/sim"
)

// Sensitivity is the response of one result field to one swept
// parameter, with the swept values and summary statistics.
type Sensitivity struct {
	Param  string
	Field  string
	Values []float64
	Series []float64
	Min    float64
	Max    float64
	Mean   float64
	Spread float64 // max - min, the field's dynamic range over the sweep
}

// Sweep evaluates the model across an evenly spaced sweep of one
// parameter and records the chosen result field per point.
func Sweep(ctx context.Context, base physics.Parameters, param string, from, to float64, points int, field string) (*Sensitivity, error) {
	scan := sim.Scan{Param: param, From: from, To: to, Points: points}
	scanned, err := scan.Run(ctx, base)
	if err != nil {
		return nil, err
	}

	s := &Sensitivity{
		Param:  param,
		Field:  field,
		Values: make([]float64, 0, len(scanned)),
		Series: make([]float64, 0, len(scanned)),
		Min:    math.Inf(1),
		Max:    math.Inf(-1),
	}

	total := 0.0
	for _, pt := range scanned {
		v, ok := pt.Results.Fields()[field]
		if !ok {
			return nil, fmt.Errorf("unknown result field: %s", field)
		}
		s.Values = append(s.Values, pt.Value)
		s.Series = append(s.Series, v)
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		total += v
	}
	s.Mean = total / float64(len(s.Series))
	s.Spread = s.Max - s.Min
	return s, nil
}

// SweepRange sweeps a parameter across its full documented range.
func SweepRange(ctx context.Context, base physics.Parameters, param string, points int, field string) (*Sensitivity, error) {
	r, ok := physics.Ranges[param]
	if !ok {
		return nil, fmt.Errorf("parameter %s has no documented range", param)
	}
	return Sweep(ctx, base, param, r.Min, r.Max, points, field)
}
