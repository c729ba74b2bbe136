package fit

import "math"

// SumSquaredResiduals computes sum((y - f(x))^2) over all samples
func SumSquaredResiduals(model ParametricModel, samples []Sample, params []float64) float64 {
	var sum float64
	for _, s := range samples {
		r := s.Y - model.Value(s.X, params)
		sum += r * r
	}
	return sum
}

// RMSE computes the root of the mean squared residual
func RMSE(model ParametricModel, samples []Sample, params []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	return math.Sqrt(SumSquaredResiduals(model, samples, params) / float64(len(samples)))
}
