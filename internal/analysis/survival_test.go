package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/terrasim/internal/eco"
	"github.com/san-kum/terrasim/internal/sim"
)

func result(survived bool, day int, cause eco.Cause, plants int, microbes float64) sim.RunResult {
	setup := eco.Setup{
		PorousSoil: true, Plants: plants, SoilKg: 20,
		WindowProximity: 2, WaterLiters: 5, Rocks: 3,
	}
	return sim.RunResult{
		Survived:   survived,
		DayReached: day,
		Cause:      cause,
		Setup:      setup,
		Initial: eco.State{
			Setup:    setup,
			Microbes: microbes,
			PH:       7,
		},
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	s := Analyze(nil)
	if s.TotalRuns != 0 || s.Survived != 0 || s.Collapsed != 0 {
		t.Errorf("empty batch should zero out: %+v", s)
	}
	if s.SurvivalRate != 0 || s.MeanDays != 0 {
		t.Error("empty batch must not fabricate statistics")
	}
	if s.CollapseDayHist == nil || s.CauseHist == nil {
		t.Error("histograms should be allocated even when empty")
	}
}

func TestAnalyzeCounts(t *testing.T) {
	results := []sim.RunResult{
		result(true, 30, eco.CauseNone, 5, 1800),
		result(true, 30, eco.CauseNone, 4, 1500),
		result(false, 12, eco.CausePlantsDied, 2, 600),
		result(false, 12, eco.CauseOxygenCritical, 3, 700),
	}

	s := Analyze(results)
	if s.TotalRuns != 4 || s.Survived != 2 || s.Collapsed != 2 {
		t.Fatalf("counts wrong: %+v", s)
	}
	if s.SurvivalRate != 0.5 {
		t.Errorf("survival rate %g, want 0.5", s.SurvivalRate)
	}
	if s.MeanDays != 21 {
		t.Errorf("mean days %g, want 21", s.MeanDays)
	}
	if s.CollapseDayHist[12] != 2 {
		t.Errorf("both collapses fell on day 12: %v", s.CollapseDayHist)
	}
	if s.CauseHist[eco.CausePlantsDied] != 1 || s.CauseHist[eco.CauseOxygenCritical] != 1 {
		t.Errorf("cause histogram wrong: %v", s.CauseHist)
	}

	dayTotal, causeTotal := 0, 0
	for _, n := range s.CollapseDayHist {
		dayTotal += n
	}
	for _, n := range s.CauseHist {
		causeTotal += n
	}
	if dayTotal != s.Collapsed || causeTotal != s.Collapsed {
		t.Errorf("histograms must account for every collapse: days %d causes %d want %d",
			dayTotal, causeTotal, s.Collapsed)
	}
}

func TestAnalyzeOrderIndependent(t *testing.T) {
	results := []sim.RunResult{
		result(true, 50, eco.CauseNone, 5, 1800),
		result(false, 3, eco.CauseMicrobesDied, 2, 500),
		result(false, 20, eco.CausePlantsDied, 3, 900),
	}
	reversed := []sim.RunResult{results[2], results[1], results[0]}

	a, b := Analyze(results), Analyze(reversed)
	if a.SurvivalRate != b.SurvivalRate || a.MeanDays != b.MeanDays {
		t.Error("summary must not depend on result order")
	}
	for i := range a.Parameters {
		if a.Parameters[i] != b.Parameters[i] {
			t.Errorf("parameter stats differ for %s", a.Parameters[i].Name)
		}
	}
}

func TestParameterLift(t *testing.T) {
	// Survivors carry 5 plants, casualties 2; survivor mean should sit
	// above the overall mean.
	results := []sim.RunResult{
		result(true, 30, eco.CauseNone, 5, 2000),
		result(true, 30, eco.CauseNone, 5, 2000),
		result(false, 5, eco.CausePlantsDied, 2, 500),
		result(false, 8, eco.CausePlantsDied, 2, 500),
	}

	s := Analyze(results)
	var plants *ParameterStats
	for i := range s.Parameters {
		if s.Parameters[i].Name == "plants" {
			plants = &s.Parameters[i]
		}
	}
	if plants == nil {
		t.Fatal("plants parameter missing")
	}
	if plants.SurvivorMean != 5 {
		t.Errorf("survivor mean %g, want 5", plants.SurvivorMean)
	}
	if plants.OverallMean != 3.5 {
		t.Errorf("overall mean %g, want 3.5", plants.OverallMean)
	}
	if want := 5.0 / 3.5; math.Abs(plants.Lift-want) > 1e-12 {
		t.Errorf("lift %g, want %g", plants.Lift, want)
	}
}

func TestAllCollapsedHasNoSurvivorStats(t *testing.T) {
	results := []sim.RunResult{
		result(false, 2, eco.CauseMicrobesDied, 2, 500),
		result(false, 4, eco.CauseMicrobesDied, 3, 600),
	}

	s := Analyze(results)
	if s.SurvivalRate != 0 {
		t.Errorf("survival rate %g, want 0", s.SurvivalRate)
	}
	for _, p := range s.Parameters {
		if p.SurvivorMean != 0 || p.Lift != 0 {
			t.Errorf("%s: survivor stats should stay zero with no survivors", p.Name)
		}
	}
}
