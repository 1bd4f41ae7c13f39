package sim

import (
	"context"
	"sync"

	"github.com/elverum/plasmalab/internal/physics"
)

// Scan evaluates the model across a swept range of one named parameter,
// fanning the evaluations out over goroutines. The evaluator is pure,
// so points are independent; results come back in sweep order.
type Scan struct {
	Param  string
	From   float64
	To     float64
	Points int
}

// ScanPoint pairs a swept parameter value with its evaluation.
type ScanPoint struct {
	Value   float64
	Results physics.Results
}

// Run evaluates base at every scan point. The base record is copied per
// point; the caller's parameters are never mutated.
func (sc Scan) Run(ctx context.Context, base physics.Parameters) ([]ScanPoint, error) {
	if sc.Points < 2 {
		sc.Points = 2
	}
	points := make([]ScanPoint, sc.Points)
	errs := make([]error, sc.Points)

	var wg sync.WaitGroup
	for i := 0; i < sc.Points; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			if ctx.Err() != nil {
				errs[idx] = ctx.Err()
				return
			}
			v := sc.From + (sc.To-sc.From)*float64(idx)/float64(sc.Points-1)
			p := base
			if err := p.SetParam(sc.Param, v); err != nil {
				errs[idx] = err
				return
			}
			points[idx] = ScanPoint{Value: v, Results: physics.Evaluate(p)}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return points, nil
}
