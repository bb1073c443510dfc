package montecarlo

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/san-kum/terrasim/internal/eco"
	"github.com/san-kum/terrasim/internal/sim"
)

// Progress is invoked after each completed run. It is observational
// only and must not touch simulation state.
type Progress func(done, total int)

// Driver runs a batch of randomized simulations on a worker pool and
// collects their results. Runs share nothing mutable; aggregate output
// is invariant to completion order.
type Driver struct {
	Params     eco.Params
	Thresholds eco.Thresholds
	Ranges     Ranges
	Workers    int // <= 0 means GOMAXPROCS
	OnProgress Progress
}

// NewDriver builds a batch driver with the default ranges.
func NewDriver(params eco.Params, thr eco.Thresholds) *Driver {
	return &Driver{
		Params:     params,
		Thresholds: thr,
		Ranges:     DefaultRanges(),
	}
}

// Run samples numRuns configurations and simulates each to the day cap
// or collapse. All parameter draws happen up front from one seeded
// source, so results are deterministic for a seed regardless of worker
// count or scheduling. Cancelling the context stops dispatch between
// runs; results completed so far are returned alongside ctx.Err() and
// remain valid for analysis.
func (d *Driver) Run(ctx context.Context, numRuns, dayCap int, seed int64) ([]sim.RunResult, error) {
	if numRuns < 0 {
		return nil, fmt.Errorf("%w: run count %d is negative", eco.ErrSetup, numRuns)
	}
	if dayCap <= 0 {
		return nil, fmt.Errorf("%w: got %d", eco.ErrDayCap, dayCap)
	}
	if err := d.Params.Validate(); err != nil {
		return nil, err
	}
	if numRuns == 0 {
		return []sim.RunResult{}, nil
	}

	// Draw every configuration sequentially before any run starts:
	// run K's draws are the same no matter how many workers execute.
	sampler := NewSampler(seed, d.Ranges)
	initials := make([]eco.State, numRuns)
	for i := range initials {
		st, err := sampler.Sample()
		if err != nil {
			return nil, err
		}
		initials[i] = st
	}

	workers := d.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > numRuns {
		workers = numRuns
	}

	results := make([]*sim.RunResult, numRuns)
	errs := make([]error, numRuns)
	jobs := make(chan int)
	var done int64

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				runner := sim.New(d.Params, d.Thresholds)
				results[idx], errs[idx] = runner.Run(ctx, initials[idx], dayCap)

				n := int(atomic.AddInt64(&done, 1))
				if d.OnProgress != nil {
					d.OnProgress(n, numRuns)
				}
			}
		}()
	}

	var cancelled error
dispatch:
	for i := 0; i < numRuns; i++ {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	if cancelled == nil && ctx.Err() != nil {
		cancelled = ctx.Err()
	}

	out := make([]sim.RunResult, 0, numRuns)
	for i, r := range results {
		if r != nil {
			out = append(out, *r)
			continue
		}
		if errs[i] != nil && cancelled == nil && ctx.Err() == nil {
			// A per-run failure with a live context is a real error,
			// not an interrupted batch.
			return out, errs[i]
		}
	}
	return out, cancelled
}
