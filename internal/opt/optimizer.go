package opt

// ObjectiveFunction maps a point to the scalar value being minimized
type ObjectiveFunction func(x []float64) float64

// Minimizer defines a minimization algorithm interface
type Minimizer interface {
	// Minimize searches for a point minimizing f, starting from x0.
	// When the evaluation budget runs out the best point found is returned
	// together with a *MaxEvaluationsExceeded error.
	Minimize(f ObjectiveFunction, x0 []float64) (*MinimizationResult, error)
}

// MinimizationResult holds the output of a minimization run
type MinimizationResult struct {
	Point       []float64
	Value       float64
	Evaluations int
	Iterations  int
	Status      string
}

// Tolerances bound the change in objective value that still counts as progress.
// A change is negligible when |prev-cur| <= max(Relative*max(|prev|,|cur|), Absolute).
type Tolerances struct {
	Relative float64
	Absolute float64
}
