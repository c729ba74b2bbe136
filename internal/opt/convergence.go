package opt

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// stallConverger implements optimize.Converger. It declares convergence once the
// best value has changed negligibly for patience consecutive major iterations.
type stallConverger struct {
	tol      Tolerances
	patience int

	prev    float64
	started bool
	stale   int
}

func newStallConverger(tol Tolerances, patience int) *stallConverger {
	if patience < 1 {
		patience = 1
	}
	return &stallConverger{tol: tol, patience: patience}
}

func (c *stallConverger) Init(int) {
	c.started = false
	c.stale = 0
}

func (c *stallConverger) Converged(loc *optimize.Location) optimize.Status {
	if !c.started {
		c.prev = loc.F
		c.started = true
		return optimize.NotTerminated
	}

	if negligible(c.prev, loc.F, c.tol) {
		c.stale++
	} else {
		c.stale = 0
	}
	c.prev = loc.F

	if c.stale >= c.patience {
		slog.Debug("Simplex converged", "value", loc.F, "stale_iterations", c.stale)
		return optimize.FunctionConvergence
	}
	return optimize.NotTerminated
}

func negligible(prev, cur float64, tol Tolerances) bool {
	size := math.Max(math.Abs(prev), math.Abs(cur))
	return math.Abs(prev-cur) <= math.Max(tol.Relative*size, tol.Absolute)
}
