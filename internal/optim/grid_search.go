// Package optim searches parameter grids for operating points that
// maximize an objective over the evaluator's output.
package optim

import (
	"context"
	"math"

	"github.com/elverum/plasmalab/internal/physics"
)

// Objective scores one evaluation. Return math.Inf(-1) to reject a
// point outright (constraint violation).
type Objective func(p physics.Parameters, r physics.Results) float64

// GridSearch exhaustively evaluates the cartesian product of the given
// per-parameter value lists. The evaluator is cheap and pure, so no
// run harness is needed — each grid point is a single Evaluate call.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Steps builds an evenly spaced value list for one grid axis.
func Steps(from, to float64, n int) []float64 {
	if n < 2 {
		return []float64{from}
	}
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = from + (to-from)*float64(i)/float64(n-1)
	}
	return vals
}

// Search returns the best-scoring parameter assignment and its score.
// The base record supplies every field not on the grid.
func (g *GridSearch) Search(ctx context.Context, base physics.Parameters, objective Objective) (map[string]float64, float64, error) {
	best := math.Inf(-1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, base, make(map[string]float64), objective, &best, &bestParams)
	return bestParams, best, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	params physics.Parameters,
	current map[string]float64,
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		score := objective(params, physics.Evaluate(params))
		if score > *best {
			*best = score
			*bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := params
		if err := next.SetParam(name, val); err != nil {
			return err
		}
		current[name] = val
		if err := g.searchRecursive(ctx, depth+1, next, current, objective, best, bestParams); err != nil {
			return err
		}
	}
	delete(current, name)
	return nil
}

// MaxVoltage is the standard objective: highest output voltage among
// points whose indicator set is fully green.
func MaxVoltage(valid func(p physics.Parameters, r physics.Results) bool) Objective {
	return func(p physics.Parameters, r physics.Results) float64 {
		if valid != nil && !valid(p, r) {
			return math.Inf(-1)
		}
		return r.OutputVoltage
	}
}
