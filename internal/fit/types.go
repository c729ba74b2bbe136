package fit

import (
	"fmt"
	"math"
)

// Sample is a single observed (x, y) point
type Sample struct {
	X, Y float64
}

// NewSamples pairs parallel x and y slices into samples
func NewSamples(x, y []float64) ([]Sample, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("sample length mismatch: %d x values, %d y values", len(x), len(y))
	}

	samples := make([]Sample, len(x))
	for i := range x {
		samples[i] = Sample{X: x[i], Y: y[i]}
	}
	return samples, nil
}

// FitResult holds the output of a curve fit
type FitResult struct {
	Params      []float64 // Fitted parameters, in model order
	Cost        float64   // Sum of squared residuals at Params
	InitialCost float64   // Sum of squared residuals at the initial guess
	Iterations  int
	History     []float64 // Accepted costs, starting with InitialCost
}

// validateInput checks the constraints a fit needs before iterating
func validateInput(model ParametricModel, samples []Sample, guess []float64) error {
	if len(samples) == 0 {
		return &ConvergenceError{Reason: ErrNoSamples}
	}

	p := model.NumParams()
	if len(guess) != p {
		return &ConvergenceError{
			Reason: fmt.Errorf("%w: got %d initial values for %d parameters", ErrParamCount, len(guess), p),
		}
	}
	if len(samples) < p {
		return &ConvergenceError{
			Reason: fmt.Errorf("%w: %d samples for %d parameters", ErrUnderdetermined, len(samples), p),
		}
	}

	for i, s := range samples {
		if !isFinite(s.X) || !isFinite(s.Y) {
			return &ConvergenceError{Reason: fmt.Errorf("%w: sample %d", ErrNonFinite, i)}
		}
	}
	for i, v := range guess {
		if !isFinite(v) {
			return &ConvergenceError{Reason: fmt.Errorf("%w: initial parameter %d", ErrNonFinite, i)}
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
