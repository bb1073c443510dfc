package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/terrasim/internal/eco"
)

// Observer receives a read-only snapshot after every integrator step.
// Observation must never alter simulation outcomes.
type Observer interface {
	OnStep(s eco.State, verdict eco.Verdict)
}

// Metric is a named scalar accumulated across a run.
type Metric interface {
	Name() string
	Observe(s *eco.State)
	Value() float64
	Reset()
}

// DayHook runs at the start of each simulated day, before any interval
// of that day is integrated. The interactive mode applies keeper
// interventions through it; tests use it to force states.
type DayHook func(day int, s *eco.State)

// RunResult is the immutable outcome of one complete run.
type RunResult struct {
	Survived   bool
	DayReached int
	Cause      eco.Cause

	Setup   eco.Setup // structural inputs as configured
	Initial eco.State // state before the first step
	Final   eco.State // state when the run ended

	DomainViolations uint64
	Metrics          map[string]float64
}

// Runner drives the integrator and collapse evaluator across a day
// budget. A runner is single-use: Run may only be called once because
// the evaluator's collapsed verdict is absorbing.
type Runner struct {
	params    eco.Params
	thr       eco.Thresholds
	observers []Observer
	metrics   []Metric
	hook      DayHook
}

// New builds a runner for one calibration and threshold set.
func New(params eco.Params, thr eco.Thresholds) *Runner {
	return &Runner{params: params, thr: thr}
}

func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }
func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) SetDayHook(h DayHook)   { r.hook = h }

// Run executes a single pass from the initial state to the day cap or
// to collapse, whichever comes first. It is deterministic given the
// initial state and calibration. A non-positive day cap is a
// configuration error rejected before the first step.
func (r *Runner) Run(ctx context.Context, initial eco.State, dayCap int) (*RunResult, error) {
	if dayCap <= 0 {
		return nil, fmt.Errorf("%w: got %d", eco.ErrDayCap, dayCap)
	}
	if err := r.params.Validate(); err != nil {
		return nil, err
	}
	if err := initial.Setup.Validate(); err != nil {
		return nil, err
	}

	integ := eco.NewIntegrator(r.params)
	eval := eco.NewEvaluator(r.thr)

	for _, m := range r.metrics {
		m.Reset()
	}

	st := initial
	result := &RunResult{
		Setup:   initial.Setup,
		Initial: initial,
	}

	for st.Day <= dayCap {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		day := st.Day
		if r.hook != nil {
			r.hook(day, &st)
		}

		for i := 0; i < eco.IntervalsPerDay; i++ {
			integ.Step(&st)

			for _, m := range r.metrics {
				m.Observe(&st)
			}

			verdict := eval.Evaluate(&st)
			for _, o := range r.observers {
				o.OnStep(st, verdict)
			}

			if verdict.Status == eco.StatusCollapsed {
				result.Survived = false
				result.DayReached = day
				result.Cause = verdict.Cause
				r.finish(result, integ, st)
				return result, nil
			}
		}
	}

	result.Survived = true
	result.DayReached = dayCap
	result.Cause = eco.CauseNone
	r.finish(result, integ, st)
	return result, nil
}

func (r *Runner) finish(result *RunResult, integ *eco.Integrator, st eco.State) {
	result.Final = st
	result.DomainViolations = integ.DomainViolations()
	if len(r.metrics) > 0 {
		result.Metrics = make(map[string]float64, len(r.metrics))
		for _, m := range r.metrics {
			result.Metrics[m.Name()] = m.Value()
		}
	}
}
