package solve

import (
	"fmt"
	"time"

	"github.com/dshills/beltbalancer/pkg/model"
)

// Outcome classifies the result of one solve, matching spec section 4.4's
// Build -> Solve -> Classify state machine.
type Outcome int

const (
	Unknown Outcome = iota
	Optimal
	Feasible
	Infeasible
)

func (o Outcome) String() string {
	switch o {
	case Unknown:
		return "Unknown"
	case Optimal:
		return "Optimal"
	case Feasible:
		return "Feasible"
	case Infeasible:
		return "Infeasible"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Options configures one Solve call. MasterSeed only affects which
// candidate among equally-good ones a portfolio-mode run settles on;
// deterministic mode ignores it and always seeds worker 0 with 42, matching
// the reference driver.
type Options struct {
	MasterSeed uint64

	// Deterministic forces the single-worker, seed-42 search path even when
	// the instance's MaxParallel allows more workers.
	Deterministic bool

	// FeasibleOK accepts the first feasible placement found instead of
	// exhausting the search for an objective-optimal one.
	FeasibleOK bool

	Verbose bool
}

// Result is the outcome of one Solve call.
type Result struct {
	Outcome    Outcome
	Assignment *model.Assignment
	Objective  int
	Elapsed    time.Duration
}
