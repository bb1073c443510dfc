package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/terrasim/internal/eco"
	"github.com/san-kum/terrasim/internal/sim"
)

// ParameterStats compares one sampled input across the survivor subset
// and the whole batch. Lift above 1 marks a value that survivors tend
// to carry more of.
type ParameterStats struct {
	Name           string  `json:"name"`
	SurvivorMean   float64 `json:"survivor_mean"`
	SurvivorMedian float64 `json:"survivor_median"`
	OverallMean    float64 `json:"overall_mean"`
	OverallMedian  float64 `json:"overall_median"`
	Lift           float64 `json:"lift"`
}

// Summary aggregates a Monte Carlo batch. It is a pure function of the
// result set: recomputing it over the same results, in any order,
// yields identical numbers.
type Summary struct {
	TotalRuns    int     `json:"total_runs"`
	Survived     int     `json:"survived"`
	Collapsed    int     `json:"collapsed"`
	SurvivalRate float64 `json:"survival_rate"`

	// MeanDays averages the day reached across all runs, survivors
	// counted at the day cap.
	MeanDays float64 `json:"mean_days"`

	CollapseDayHist map[int]int       `json:"collapse_day_hist"`
	CauseHist       map[eco.Cause]int `json:"cause_hist"`

	Parameters []ParameterStats `json:"parameters"`
}

// parameterOrder fixes the report layout.
var parameterOrder = []string{
	"plants",
	"soil_kg",
	"window_proximity",
	"water_liters",
	"rocks",
	"microbes",
	"worms",
	"shrimp",
	"soil_nitrogen",
	"ph",
	"detritus",
	"temperature",
}

func parameterValue(name string, r *sim.RunResult) float64 {
	switch name {
	case "plants":
		return float64(r.Setup.Plants)
	case "soil_kg":
		return r.Setup.SoilKg
	case "window_proximity":
		return float64(r.Setup.WindowProximity)
	case "water_liters":
		return r.Setup.WaterLiters
	case "rocks":
		return float64(r.Setup.Rocks)
	case "microbes":
		return r.Initial.Microbes
	case "worms":
		return r.Initial.Worms
	case "shrimp":
		return r.Initial.Shrimp
	case "soil_nitrogen":
		return r.Initial.SoilNitrogen
	case "ph":
		return r.Initial.PH
	case "detritus":
		return r.Initial.Detritus
	case "temperature":
		return r.Initial.Temperature
	}
	return 0
}

// Analyze summarizes a batch. An empty batch yields a zero summary
// with allocated histograms; no rate or mean is fabricated from zero
// runs.
func Analyze(results []sim.RunResult) Summary {
	s := Summary{
		CollapseDayHist: make(map[int]int),
		CauseHist:       make(map[eco.Cause]int),
	}
	s.TotalRuns = len(results)
	if s.TotalRuns == 0 {
		return s
	}

	days := make([]float64, 0, len(results))
	for i := range results {
		r := &results[i]
		days = append(days, float64(r.DayReached))
		if r.Survived {
			s.Survived++
			continue
		}
		s.Collapsed++
		s.CollapseDayHist[r.DayReached]++
		s.CauseHist[r.Cause]++
	}

	s.SurvivalRate = float64(s.Survived) / float64(s.TotalRuns)
	s.MeanDays = stat.Mean(days, nil)
	s.Parameters = parameterStats(results)
	return s
}

func parameterStats(results []sim.RunResult) []ParameterStats {
	out := make([]ParameterStats, 0, len(parameterOrder))
	for _, name := range parameterOrder {
		all := make([]float64, 0, len(results))
		surv := make([]float64, 0, len(results))
		for i := range results {
			v := parameterValue(name, &results[i])
			all = append(all, v)
			if results[i].Survived {
				surv = append(surv, v)
			}
		}

		ps := ParameterStats{Name: name}
		ps.OverallMean = stat.Mean(all, nil)
		ps.OverallMedian = median(all)
		if len(surv) > 0 {
			ps.SurvivorMean = stat.Mean(surv, nil)
			ps.SurvivorMedian = median(surv)
			if ps.OverallMean != 0 {
				ps.Lift = ps.SurvivorMean / ps.OverallMean
			}
		}
		out = append(out, ps)
	}
	return out
}

// median computes the empirical median over a copy; the caller's slice
// order is preserved.
func median(vs []float64) float64 {
	sorted := make([]float64, len(vs))
	copy(sorted, vs)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}
