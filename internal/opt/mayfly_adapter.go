package opt

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/mayfly"
	"gonum.org/v1/gonum/floats"
)

// MinMayflyPopulation is the smallest population mayfly v0.1.0 accepts.
// Its female population defaults to this size and is indexed alongside the males.
const MinMayflyPopulation = 20

// MayflyConfig configures the population-based search
type MayflyConfig struct {
	MaxIters int
	PopSize  int // at least MinMayflyPopulation
	Seed     int64

	// Span is the half-width of the search box around the starting point
	Span float64
}

// DefaultMayflyConfig returns settings that solve small 2D problems reliably
func DefaultMayflyConfig() MayflyConfig {
	return MayflyConfig{
		MaxIters: 200,
		PopSize:  MinMayflyPopulation,
		Seed:     42,
		Span:     2,
	}
}

// MayflyAdapter wraps the external Mayfly library to conform to the Minimizer interface.
// It runs a fixed number of iterations and has no convergence criterion of its own.
type MayflyAdapter struct {
	config MayflyConfig
}

// NewMayfly creates a new Mayfly minimizer adapter
func NewMayfly(config MayflyConfig) Minimizer {
	return &MayflyAdapter{config: config}
}

// Minimize searches the box [min(x0)-Span, max(x0)+Span] on every axis
func (m *MayflyAdapter) Minimize(f ObjectiveFunction, x0 []float64) (*MinimizationResult, error) {
	dim := len(x0)
	if dim == 0 {
		return nil, fmt.Errorf("%w: empty starting point", ErrDimension)
	}
	if m.config.PopSize < MinMayflyPopulation {
		return nil, fmt.Errorf("%w: population %d is below %d", ErrInvalidConfig, m.config.PopSize, MinMayflyPopulation)
	}
	if m.config.MaxIters <= 0 {
		return nil, fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, m.config.MaxIters)
	}
	if m.config.Span <= 0 {
		return nil, fmt.Errorf("%w: span must be positive, got %g", ErrInvalidConfig, m.config.Span)
	}

	evals := 0
	counted := func(x []float64) float64 {
		evals++
		return f(x)
	}

	// External library uses scalar bounds shared by all dimensions
	lower, upper := searchBox(x0, m.config.Span)

	config := mayfly.NewDefaultConfig()
	config.ObjectiveFunc = counted
	config.ProblemSize = dim
	config.MaxIterations = m.config.MaxIters
	config.NPop = m.config.PopSize
	config.LowerBound = lower
	config.UpperBound = upper
	config.Rand = rand.New(rand.NewSource(m.config.Seed))

	result, err := mayfly.Optimize(config)
	if err != nil {
		return nil, fmt.Errorf("mayfly: %w", err)
	}

	return &MinimizationResult{
		Point:       append([]float64(nil), result.GlobalBest.Position...),
		Value:       result.GlobalBest.Cost,
		Evaluations: evals,
		Iterations:  m.config.MaxIters,
		Status:      "IterationLimit",
	}, nil
}

func searchBox(x0 []float64, span float64) (lower, upper float64) {
	return floats.Min(x0) - span, floats.Max(x0) + span
}
