package optim

import (
	"context"
	"math"
)

// Objective scores one candidate rate set. Lower is better. An error
// skips the candidate without aborting the search.
type Objective func(params map[string]float64) (float64, error)

// GridSearch sweeps the cartesian product of per-parameter value lists
// and keeps the lowest-scoring combination. Used to calibrate rate
// constants against a target survival rate.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Values builds an inclusive linear sweep for one parameter.
func Values(lo, hi float64, steps int) []float64 {
	if steps < 2 {
		return []float64{lo}
	}
	vs := make([]float64, steps)
	for i := range vs {
		vs[i] = lo + (hi-lo)*float64(i)/float64(steps-1)
	}
	return vs
}

func (g *GridSearch) Search(ctx context.Context, evaluate Objective) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), evaluate, &best, &bestParams)
	if err != nil {
		return bestParams, best, err
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	evaluate Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		val, err := evaluate(current)
		if err != nil {
			return nil
		}
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, next, evaluate, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}
