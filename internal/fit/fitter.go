package fit

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// FitterConfig controls the Levenberg-Marquardt iteration
type FitterConfig struct {
	MaxIterations int

	// InitialLambda is the starting damping factor. It is divided by 10 after an
	// accepted step and multiplied by 10 after a rejected one.
	InitialLambda float64

	// MaxLambda bounds the damping factor; exceeding it means no step reduces the cost
	MaxLambda float64

	// StepTolerance stops the fit when |step| <= StepTolerance*(|params| + StepTolerance)
	StepTolerance float64

	// RankTolerance is the relative singular value of the Jacobian below which a
	// parameter direction counts as unidentifiable
	RankTolerance float64

	// GradientTolerance stops the fit when the largest component of J^T r falls below it
	GradientTolerance float64

	// Convergence configures cost-based stopping on accepted steps
	Convergence ConvergenceConfig
}

// DefaultFitterConfig returns sensible defaults for small least-squares problems
func DefaultFitterConfig() FitterConfig {
	return FitterConfig{
		MaxIterations:     1000,
		InitialLambda:     1e-3,
		MaxLambda:         1e16,
		StepTolerance:     1e-10,
		RankTolerance:     1e-12,
		GradientTolerance: 1e-10,
		Convergence:       DefaultConvergenceConfig(),
	}
}

// Fitter fits parametric models to samples with the Levenberg-Marquardt method
type Fitter struct {
	config FitterConfig
}

// NewFitter creates a fitter with the given config
func NewFitter(config FitterConfig) *Fitter {
	return &Fitter{config: config}
}

// Fit returns the parameters minimizing the sum of squared residuals of model over samples,
// starting from guess. On failure the error is a *ConvergenceError.
func (f *Fitter) Fit(model ParametricModel, samples []Sample, guess []float64) (*FitResult, error) {
	if err := validateInput(model, samples, guess); err != nil {
		return nil, err
	}

	n, p := len(samples), model.NumParams()

	params := append([]float64(nil), guess...)
	cost := SumSquaredResiduals(model, samples, params)
	initialCost := cost

	tracker := NewConvergenceTracker(f.config.Convergence)
	tracker.Update(cost)

	lambda := f.config.InitialLambda
	jac := mat.NewDense(n, p, nil)
	res := mat.NewVecDense(n, nil)
	damped := mat.NewSymDense(p, nil)
	trial := make([]float64, p)

	result := func(iter int) *FitResult {
		return &FitResult{
			Params:      params,
			Cost:        cost,
			InitialCost: initialCost,
			Iterations:  iter,
			History:     tracker.History(),
		}
	}
	fail := func(iter int, reason error) error {
		return &ConvergenceError{
			Reason:     reason,
			Iterations: iter,
			Best:       append([]float64(nil), params...),
			Cost:       cost,
		}
	}

	if i := nonFiniteSample(model, samples, params); i >= 0 {
		return nil, &ConvergenceError{
			Reason: fmt.Errorf("%w: model output at sample %d for the initial guess", ErrNonFinite, i),
		}
	}
	if cost == 0 {
		return result(0), nil
	}

	for iter := 1; iter <= f.config.MaxIterations; iter++ {
		if i := linearize(model, samples, params, jac, res); i >= 0 {
			return nil, fail(iter, fmt.Errorf("%w: gradient at sample %d", ErrNonFinite, i))
		}

		var svd mat.SVD
		if !svd.Factorize(jac, mat.SVDNone) || svd.Rank(f.config.RankTolerance) < p {
			slog.Debug("Rank-deficient Jacobian", "iteration", iter, "params", params)
			return nil, fail(iter, ErrSingular)
		}

		var jtj mat.SymDense
		jtj.SymOuterK(1, jac.T())

		var grad mat.VecDense
		grad.MulVec(jac.T(), res)

		if floats.Norm(grad.RawVector().Data, math.Inf(1)) <= f.config.GradientTolerance {
			slog.Debug("Gradient below tolerance", "iteration", iter, "cost", cost)
			return f.done(result(iter)), nil
		}

		nonFinite := -1
		for {
			damped.CopySym(&jtj)
			for i := 0; i < p; i++ {
				damped.SetSym(i, i, jtj.At(i, i)*(1+lambda))
			}

			var chol mat.Cholesky
			if ok := chol.Factorize(damped); !ok {
				return nil, fail(iter, ErrSingular)
			}

			var step mat.VecDense
			if err := chol.SolveVecTo(&step, &grad); err != nil {
				return nil, fail(iter, ErrSingular)
			}
			delta := step.RawVector().Data

			floats.AddTo(trial, params, delta)
			trialCost := SumSquaredResiduals(model, samples, trial)
			nonFinite = -1
			if !isFinite(trialCost) {
				nonFinite = nonFiniteSample(model, samples, trial)
			}
			stepSmall := floats.Norm(delta, 2) <= f.config.StepTolerance*(floats.Norm(params, 2)+f.config.StepTolerance)

			if trialCost < cost {
				copy(params, trial)
				cost = trialCost
				lambda /= 10

				slog.Debug("Accepted step", "iteration", iter, "cost", cost, "lambda", lambda)

				converged := tracker.Update(cost)
				if converged || stepSmall || cost == 0 {
					return f.done(result(iter)), nil
				}
				break
			}

			if stepSmall {
				// Rejected step that no longer moves the parameters
				return f.done(result(iter)), nil
			}

			lambda *= 10
			if lambda > f.config.MaxLambda {
				if nonFinite >= 0 {
					return nil, fail(iter, fmt.Errorf("%w: model output at sample %d", ErrNonFinite, nonFinite))
				}
				return nil, fail(iter, ErrSingular)
			}
		}
	}

	return nil, fail(f.config.MaxIterations, ErrMaxIterations)
}

func (f *Fitter) done(r *FitResult) *FitResult {
	slog.Info("Curve fit complete",
		"iterations", r.Iterations,
		"initial_cost", r.InitialCost,
		"final_cost", r.Cost,
	)
	return r
}

// linearize fills jac with model gradients and res with residuals y - f(x) at params.
// It returns the index of the first sample with a non-finite gradient, or -1.
func linearize(model ParametricModel, samples []Sample, params []float64, jac *mat.Dense, res *mat.VecDense) int {
	bad := -1
	for i, s := range samples {
		g := model.Gradient(s.X, params)
		if bad < 0 && !allFinite(g) {
			bad = i
		}
		jac.SetRow(i, g)
		res.SetVec(i, s.Y-model.Value(s.X, params))
	}
	return bad
}

// nonFiniteSample returns the index of the first sample whose residual is NaN or Inf, or -1
func nonFiniteSample(model ParametricModel, samples []Sample, params []float64) int {
	for i, s := range samples {
		if !isFinite(s.Y - model.Value(s.X, params)) {
			return i
		}
	}
	return -1
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if !isFinite(x) {
			return false
		}
	}
	return true
}
