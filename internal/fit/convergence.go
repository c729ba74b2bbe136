package fit

import (
	"log/slog"
	"math"
)

// ConvergenceConfig defines when a decreasing cost sequence counts as converged
type ConvergenceConfig struct {
	// Enabled controls whether cost-based convergence detection is active
	Enabled bool

	// Patience is the number of consecutive accepted steps without significant
	// improvement before stopping
	Patience int

	// Threshold is the minimum relative improvement required to count as progress.
	// Relative improvement = (oldCost - newCost) / oldCost
	Threshold float64
}

// DefaultConvergenceConfig returns the defaults used by the curve fitter
func DefaultConvergenceConfig() ConvergenceConfig {
	return ConvergenceConfig{
		Enabled:   true,
		Patience:  1,
		Threshold: 1e-10,
	}
}

// ConvergenceTracker tracks cost history and detects when the cost has stopped improving
type ConvergenceTracker struct {
	config          ConvergenceConfig
	costHistory     []float64
	lastSignificant float64 // Last cost that was a significant improvement
	staleCount      int
}

// NewConvergenceTracker creates a new convergence tracker with the given config
func NewConvergenceTracker(config ConvergenceConfig) *ConvergenceTracker {
	return &ConvergenceTracker{
		config:          config,
		costHistory:     []float64{},
		lastSignificant: math.Inf(1),
	}
}

// Update records a new cost value and returns true if convergence is detected
func (c *ConvergenceTracker) Update(cost float64) bool {
	c.costHistory = append(c.costHistory, cost)

	if !c.config.Enabled {
		return false
	}

	if len(c.costHistory) == 1 {
		c.lastSignificant = cost
		return false
	}

	// A zero cost cannot improve further
	if c.lastSignificant == 0 {
		return true
	}

	relativeImprovement := (c.lastSignificant - cost) / c.lastSignificant

	if relativeImprovement >= c.config.Threshold {
		c.lastSignificant = cost
		c.staleCount = 0
		return false
	}

	c.staleCount++
	slog.Debug("No significant cost improvement",
		"cost", cost,
		"last_significant", c.lastSignificant,
		"relative_improvement", relativeImprovement,
		"stale_count", c.staleCount,
		"patience", c.config.Patience,
	)

	return c.staleCount >= c.config.Patience
}

// History returns the full cost history
func (c *ConvergenceTracker) History() []float64 {
	return append([]float64{}, c.costHistory...)
}
