package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/terrasim/internal/eco"
)

func testInitial(t *testing.T) eco.State {
	t.Helper()
	st, err := eco.NewState(eco.Setup{
		PorousSoil: true, Plants: 3, SoilKg: 20,
		WindowProximity: 2, WaterLiters: 5, Rocks: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestRunRejectsBadDayCap(t *testing.T) {
	r := New(eco.DefaultParams(), eco.DefaultThresholds())
	for _, dayCap := range []int{0, -1} {
		if _, err := r.Run(context.Background(), testInitial(t), dayCap); !errors.Is(err, eco.ErrDayCap) {
			t.Errorf("day cap %d: expected ErrDayCap, got %v", dayCap, err)
		}
	}
}

func TestRunRejectsInvalidSetup(t *testing.T) {
	st := testInitial(t)
	st.Setup.Plants = 0

	r := New(eco.DefaultParams(), eco.DefaultThresholds())
	if _, err := r.Run(context.Background(), st, 10); !errors.Is(err, eco.ErrSetup) {
		t.Errorf("expected ErrSetup, got %v", err)
	}
}

func TestRunSurvivesShortBudget(t *testing.T) {
	r := New(eco.DefaultParams(), eco.DefaultThresholds())
	result, err := r.Run(context.Background(), testInitial(t), 5)
	if err != nil {
		t.Fatal(err)
	}

	if !result.Survived {
		t.Fatalf("nominal bottle should survive 5 days, collapsed on day %d (%s)",
			result.DayReached, result.Cause)
	}
	if result.DayReached != 5 {
		t.Errorf("survivor should report the full budget, got %d", result.DayReached)
	}
	if result.Cause != eco.CauseNone {
		t.Errorf("survivor should have no cause, got %v", result.Cause)
	}
	if result.Final.Day != 6 {
		t.Errorf("final state should sit at day 6, got %d", result.Final.Day)
	}
}

func TestRunDeterministic(t *testing.T) {
	r1 := New(eco.DefaultParams(), eco.DefaultThresholds())
	r2 := New(eco.DefaultParams(), eco.DefaultThresholds())

	a, err := r1.Run(context.Background(), testInitial(t), 30)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r2.Run(context.Background(), testInitial(t), 30)
	if err != nil {
		t.Fatal(err)
	}

	if a.Final != b.Final {
		t.Errorf("identical runs diverged:\n%+v\n%+v", a.Final, b.Final)
	}
	if a.Survived != b.Survived || a.DayReached != b.DayReached {
		t.Error("outcomes diverged between identical runs")
	}
}

func TestRunForcedCollapse(t *testing.T) {
	r := New(eco.DefaultParams(), eco.DefaultThresholds())
	r.SetDayHook(func(day int, s *eco.State) {
		if day == 5 {
			s.Microbes = 0
		}
	})

	result, err := r.Run(context.Background(), testInitial(t), 30)
	if err != nil {
		t.Fatal(err)
	}

	if result.Survived {
		t.Fatal("expected collapse")
	}
	if result.DayReached != 5 {
		t.Errorf("collapse day should be 5, got %d", result.DayReached)
	}
	if result.Cause != eco.CauseMicrobesDied {
		t.Errorf("expected microbes_died, got %v", result.Cause)
	}
}

func TestRunContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(eco.DefaultParams(), eco.DefaultThresholds())
	if _, err := r.Run(ctx, testInitial(t), 10); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunMetricsAndObservers(t *testing.T) {
	steps := 0
	obs := observerFunc(func(s eco.State, v eco.Verdict) { steps++ })

	r := New(eco.DefaultParams(), eco.DefaultThresholds())
	r.AddObserver(obs)
	r.AddMetric(NewMinOxygen())
	r.AddMetric(NewPeakToxicity())

	result, err := r.Run(context.Background(), testInitial(t), 3)
	if err != nil {
		t.Fatal(err)
	}

	if steps != 3*eco.IntervalsPerDay {
		t.Errorf("observer should see every interval, got %d", steps)
	}
	minO2, ok := result.Metrics["min_o2"]
	if !ok {
		t.Fatal("min_o2 metric missing")
	}
	if minO2 <= 0 || minO2 > 1 {
		t.Errorf("min_o2 out of range: %g", minO2)
	}
	if _, ok := result.Metrics["peak_toxicity"]; !ok {
		t.Error("peak_toxicity metric missing")
	}
}

type observerFunc func(eco.State, eco.Verdict)

func (f observerFunc) OnStep(s eco.State, v eco.Verdict) { f(s, v) }
