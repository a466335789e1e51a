// Package solve drives the Build -> Solve -> Classify state machine over
// pkg/model: it searches for a component placement, derives the flow values
// that placement implies, and classifies the outcome as Optimal, Feasible,
// Infeasible, or Unknown.
//
// There is no constraint-satisfaction or ILP library anywhere in the
// reference corpus this package was grown from, so the search is hand
// rolled: backtracking over the placement choice per cell, in the style of
// a wave-function-collapse solver (try a value, check it, backtrack on
// contradiction), paired with a propagation pass that derives the flow
// values a placement implies rather than searching over them directly. The
// propagation exploits a property of the model: every flow equation this
// system poses (conservation, mixer balance, tunnel coupling, pass-through)
// is linear and homogeneous once pledges are subtracted out, so whatever
// remains undetermined after propagation reaches a fixpoint can always be
// left at zero, the trivial solution of a homogeneous linear system.
package solve
