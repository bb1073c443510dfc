// Package analysis summarizes Monte Carlo batch outcomes.
//
// The entry point is [Analyze], which reduces a slice of run results
// to a [Summary]:
//
//	summary := analysis.Analyze(results)
//	fmt.Printf("survival: %.1f%%\n", summary.SurvivalRate*100)
//
// The summary carries survival counts, a collapse-day histogram, a
// collapse-cause histogram, and per-parameter survivor statistics for
// identifying which initial conditions favor long-lived bottles.
package analysis
