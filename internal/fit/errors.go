package fit

import "errors"

var (
	// ErrNoSamples is returned when a fit is requested with no samples
	ErrNoSamples = errors.New("no samples")

	// ErrParamCount is returned when the initial guess does not match the model
	ErrParamCount = errors.New("initial guess does not match parameter count")

	// ErrUnderdetermined is returned when there are fewer samples than parameters
	ErrUnderdetermined = errors.New("underdetermined: fewer samples than parameters")

	// ErrNonFinite is returned when a sample or guess contains NaN or Inf
	ErrNonFinite = errors.New("non-finite input")

	// ErrSingular is returned when the damped normal equations cannot be solved
	ErrSingular = errors.New("singular gradient")

	// ErrMaxIterations is returned when the iteration cap is reached first
	ErrMaxIterations = errors.New("maximum iterations reached")
)

// ConvergenceError reports a fit that did not converge.
// Best and Cost hold the best parameters reached before stopping, if any.
type ConvergenceError struct {
	Reason     error
	Iterations int
	Best       []float64
	Cost       float64
}

func (e *ConvergenceError) Error() string {
	return "curve fit did not converge: " + e.Reason.Error()
}

func (e *ConvergenceError) Unwrap() error {
	return e.Reason
}
