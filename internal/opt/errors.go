package opt

import (
	"errors"
	"fmt"
)

var (
	// ErrDimension is returned for an empty starting point or mismatched step sizes
	ErrDimension = errors.New("invalid problem dimension")

	// ErrInvalidConfig is returned for minimizer settings the search cannot run with
	ErrInvalidConfig = errors.New("invalid minimizer config")

	// ErrMaxEvaluations is the sentinel wrapped by MaxEvaluationsExceeded
	ErrMaxEvaluations = errors.New("maximum evaluations exceeded")
)

// MaxEvaluationsExceeded reports a minimization that spent its evaluation budget
// without converging. Best is the best point found, which is not guaranteed optimal.
type MaxEvaluationsExceeded struct {
	Limit int
	Best  *MinimizationResult
}

func (e *MaxEvaluationsExceeded) Error() string {
	if e.Best == nil {
		return fmt.Sprintf("minimization did not converge within %d evaluations", e.Limit)
	}
	return fmt.Sprintf("minimization did not converge within %d evaluations (best value %g)", e.Limit, e.Best.Value)
}

func (e *MaxEvaluationsExceeded) Unwrap() error {
	return ErrMaxEvaluations
}
