package solve

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/dshills/beltbalancer/pkg/model"
	"github.com/dshills/beltbalancer/pkg/problem"
)

// Solve builds the instance, searches for a placement, and classifies the
// result. With no MaxParallel set (or a deterministic request, from either
// Options.Deterministic or the instance's own DeterministicTime flag), it
// runs a single worker seeded 42 for bit-for-bit reproducible output;
// otherwise it races inst.MaxParallel independently seeded workers and
// keeps the best result any of them found, matching the deterministic vs.
// portfolio split spec.md documents for its own search stages.
//
// inst.DisableSolve stops at the Built state and returns without searching:
// the returned Result carries the pledge-posted, all-Empty assignment and
// Outcome Unknown, since none of Optimal/Feasible/Infeasible describe a
// layout that was never searched.
func Solve(ctx context.Context, inst *problem.Instance, opts Options) (*Result, error) {
	start := time.Now()

	a, hints, err := Build(inst)
	if err != nil {
		return nil, err
	}

	if inst.DisableSolve {
		return &Result{Outcome: Unknown, Assignment: a, Elapsed: time.Since(start)}, nil
	}

	if inst.TimeLimitSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(inst.TimeLimitSeconds)*time.Second)
		defer cancel()
	}

	feasibleOK := opts.FeasibleOK || inst.FeasibleOK

	// A hard seed fully pins the placement: there is nothing left to
	// search, only the flow values to derive and check.
	if inst.Solution != "" {
		candidate, obj, ok := evaluateAssignment(inst, a)
		if !ok {
			return &Result{Outcome: Infeasible, Elapsed: time.Since(start)}, nil
		}
		return &Result{Outcome: Optimal, Assignment: candidate, Objective: obj, Elapsed: time.Since(start)}, nil
	}

	workers := inst.MaxParallel
	if workers <= 0 {
		workers = 1
	}
	if opts.Deterministic || inst.DeterministicTime {
		workers = 1
	}

	if workers == 1 {
		rng := rand.New(rand.NewSource(int64(problem.DeriveSeed(42, "deterministic"))))
		best, obj, timedOut := search(ctx, inst, a, hints, feasibleOK, rng)
		return classify(best, obj, timedOut, start), nil
	}

	best, obj, timedOut := solvePortfolio(ctx, inst, a, hints, opts, workers, feasibleOK)
	return classify(best, obj, timedOut, start), nil
}

// solvePortfolio races workers independently seeded backtracking searches
// over clones of the starting assignment and returns the best feasible
// result any of them found. With FeasibleOK set, the first worker to find
// any feasible placement cancels the rest.
func solvePortfolio(ctx context.Context, inst *problem.Instance, a *model.Assignment, hints hintSet, opts Options, workers int, feasibleOK bool) (best *model.Assignment, objective int, timedOut bool) {
	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		a   *model.Assignment
		obj int
	}
	results := make(chan outcome, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			seed := problem.DeriveSeed(opts.MasterSeed, fmt.Sprintf("portfolio-%d", worker))
			rng := rand.New(rand.NewSource(int64(seed)))
			workerAssignment := a.Clone()
			found, obj, _ := search(workerCtx, inst, workerAssignment, hints, feasibleOK, rng)
			if found == nil {
				return
			}
			results <- outcome{found, obj}
			if feasibleOK {
				cancel()
			}
		}(i)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	haveBest := false
	for r := range results {
		if !haveBest || r.obj < objective {
			best, objective, haveBest = r.a, r.obj, true
		}
	}

	select {
	case <-ctx.Done():
		timedOut = true
	default:
	}
	return best, objective, timedOut
}

func classify(best *model.Assignment, objective int, timedOut bool, start time.Time) *Result {
	switch {
	case best == nil && timedOut:
		return &Result{Outcome: Unknown, Elapsed: time.Since(start)}
	case best == nil:
		return &Result{Outcome: Infeasible, Elapsed: time.Since(start)}
	case timedOut:
		return &Result{Outcome: Feasible, Assignment: best, Objective: objective, Elapsed: time.Since(start)}
	default:
		return &Result{Outcome: Optimal, Assignment: best, Objective: objective, Elapsed: time.Since(start)}
	}
}
