package opt

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// DefaultStep is the initial simplex edge length used on every axis when no steps are configured
const DefaultStep = 0.2

// NelderMeadConfig configures the simplex search
type NelderMeadConfig struct {
	// Steps are per-axis offsets from the starting point used to build the
	// initial simplex. Nil means DefaultStep on every axis.
	Steps []float64

	// MaxEvaluations caps objective evaluations, including the initial simplex
	MaxEvaluations int

	Tolerances Tolerances

	// Patience is the number of consecutive negligible iterations required to converge
	Patience int
}

// DefaultNelderMeadConfig returns the settings used by the example run
func DefaultNelderMeadConfig() NelderMeadConfig {
	return NelderMeadConfig{
		MaxEvaluations: 10000,
		Tolerances:     Tolerances{Relative: 1e-5, Absolute: 1e-10},
		Patience:       50,
	}
}

// NelderMead adapts gonum's Nelder-Mead simplex method to the Minimizer interface
type NelderMead struct {
	config NelderMeadConfig
}

// NewNelderMead creates a new Nelder-Mead minimizer
func NewNelderMead(config NelderMeadConfig) Minimizer {
	return &NelderMead{config: config}
}

// Minimize runs the simplex search from x0
func (nm *NelderMead) Minimize(f ObjectiveFunction, x0 []float64) (*MinimizationResult, error) {
	vertices, err := nm.simplex(x0)
	if err != nil {
		return nil, err
	}

	// gonum only reports a location at the end of a major iteration, so the
	// best evaluated point is tracked here for budgets that stop mid-iteration
	evals := 0
	bestX := make([]float64, len(x0))
	bestF := math.Inf(1)
	counted := func(x []float64) float64 {
		evals++
		v := f(x)
		if v < bestF {
			bestF = v
			copy(bestX, x)
		}
		return v
	}

	values := make([]float64, len(vertices))
	for i, v := range vertices {
		values[i] = counted(v)
	}

	remaining := nm.config.MaxEvaluations - evals
	if remaining <= 0 {
		best := floats.MinIdx(values)
		result := &MinimizationResult{
			Point:       append([]float64(nil), vertices[best]...),
			Value:       values[best],
			Evaluations: evals,
			Status:      optimize.FunctionEvaluationLimit.String(),
		}
		return result, &MaxEvaluationsExceeded{Limit: nm.config.MaxEvaluations, Best: result}
	}

	method := &optimize.NelderMead{
		InitialVertices: vertices,
		InitialValues:   values,
	}
	settings := &optimize.Settings{
		FuncEvaluations: remaining,
		Converger:       newStallConverger(nm.config.Tolerances, nm.config.Patience),
	}

	slog.Debug("Starting Nelder-Mead", "dim", len(x0), "max_evaluations", nm.config.MaxEvaluations)

	res, err := optimize.Minimize(optimize.Problem{Func: counted}, x0, settings, method)
	if res == nil {
		return nil, fmt.Errorf("nelder-mead: %w", err)
	}

	result := &MinimizationResult{
		Point:       append([]float64(nil), res.X...),
		Value:       res.F,
		Evaluations: evals,
		Iterations:  res.Stats.MajorIterations,
		Status:      res.Status.String(),
	}
	if bestF < result.Value || math.IsNaN(result.Value) {
		result.Point = append([]float64(nil), bestX...)
		result.Value = bestF
	}

	if res.Status == optimize.FunctionEvaluationLimit {
		slog.Warn("Nelder-Mead exhausted evaluation budget",
			"evaluations", evals,
			"best_value", result.Value,
		)
		return result, &MaxEvaluationsExceeded{Limit: nm.config.MaxEvaluations, Best: result}
	}
	if err != nil {
		return result, fmt.Errorf("nelder-mead: %w", err)
	}

	slog.Info("Nelder-Mead complete",
		"evaluations", evals,
		"iterations", result.Iterations,
		"value", result.Value,
		"status", result.Status,
	)
	return result, nil
}

// simplex builds x0 plus one vertex per axis offset by that axis' step
func (nm *NelderMead) simplex(x0 []float64) ([][]float64, error) {
	dim := len(x0)
	if dim == 0 {
		return nil, fmt.Errorf("%w: empty starting point", ErrDimension)
	}

	steps := nm.config.Steps
	if steps == nil {
		steps = make([]float64, dim)
		for i := range steps {
			steps[i] = DefaultStep
		}
	}
	if len(steps) != dim {
		return nil, fmt.Errorf("%w: %d steps for %d dimensions", ErrDimension, len(steps), dim)
	}

	vertices := make([][]float64, dim+1)
	vertices[0] = append([]float64(nil), x0...)
	for i := 0; i < dim; i++ {
		if steps[i] == 0 {
			return nil, fmt.Errorf("%w: zero step on axis %d", ErrDimension, i)
		}
		v := append([]float64(nil), x0...)
		v[i] += steps[i]
		vertices[i+1] = v
	}
	return vertices, nil
}
