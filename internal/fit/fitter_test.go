package fit

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleSamples() []Sample {
	return []Sample{
		{X: 1.1, Y: 5.9},
		{X: 20.2, Y: 4.8},
		{X: 100.3, Y: 3.7},
	}
}

// olsLog solves y = a*ln(x) + b in closed form
func olsLog(samples []Sample) (a, b float64) {
	n := float64(len(samples))
	var mx, my float64
	for _, s := range samples {
		mx += math.Log(s.X)
		my += s.Y
	}
	mx /= n
	my /= n

	var sxx, sxy float64
	for _, s := range samples {
		dx := math.Log(s.X) - mx
		sxx += dx * dx
		sxy += dx * (s.Y - my)
	}
	a = sxy / sxx
	return a, my - a*mx
}

func TestFitLogModelExample(t *testing.T) {
	samples := exampleSamples()
	guess := []float64{1, 0}

	result, err := NewFitter(DefaultFitterConfig()).Fit(LogModel{}, samples, guess)
	require.NoError(t, err)
	require.Len(t, result.Params, 2)

	initial := SumSquaredResiduals(LogModel{}, samples, guess)
	assert.Less(t, result.Cost, initial, "fit must reduce squared error below the initial guess")
	assert.Equal(t, initial, result.InitialCost)

	wantA, wantB := olsLog(samples)
	assert.InDelta(t, wantA, result.Params[0], 1e-5)
	assert.InDelta(t, wantB, result.Params[1], 1e-5)

	require.NotEmpty(t, result.History)
	assert.Equal(t, initial, result.History[0])
	assert.Positive(t, result.Iterations)

	// Guess must not be modified
	assert.Equal(t, []float64{1, 0}, guess)
}

func TestFitDeterministic(t *testing.T) {
	fitter := NewFitter(DefaultFitterConfig())

	r1, err := fitter.Fit(LogModel{}, exampleSamples(), []float64{1, 0})
	require.NoError(t, err)
	r2, err := fitter.Fit(LogModel{}, exampleSamples(), []float64{1, 0})
	require.NoError(t, err)

	assert.Equal(t, r1.Params, r2.Params)
	assert.Equal(t, r1.Cost, r2.Cost)
	assert.Equal(t, r1.Iterations, r2.Iterations)
}

func expSamples() []Sample {
	samples := make([]Sample, 0, 6)
	for i := 0; i <= 5; i++ {
		x := float64(i)
		samples = append(samples, Sample{X: x, Y: 2 * math.Exp(0.3*x)})
	}
	return samples
}

func TestFitExpModelRecoversParameters(t *testing.T) {
	result, err := NewFitter(DefaultFitterConfig()).Fit(ExpModel{}, expSamples(), []float64{1, 0.2})
	require.NoError(t, err)

	assert.InDelta(t, 2.0, result.Params[0], 1e-4)
	assert.InDelta(t, 0.3, result.Params[1], 1e-4)
	assert.Less(t, result.Cost, 1e-8)
}

func TestFitExactGuess(t *testing.T) {
	samples := []Sample{{X: 0, Y: 1}, {X: 1, Y: 3}, {X: 2, Y: 5}}

	result, err := NewFitter(DefaultFitterConfig()).Fit(LinearModel{}, samples, []float64{2, 1})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Iterations)
	assert.Equal(t, 0.0, result.Cost)
	assert.Equal(t, []float64{2, 1}, result.Params)
}

func TestFitInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		samples []Sample
		guess   []float64
		want    error
	}{
		{
			name:    "no samples",
			samples: nil,
			guess:   []float64{1, 0},
			want:    ErrNoSamples,
		},
		{
			name:    "single sample is underdetermined",
			samples: []Sample{{X: 1.1, Y: 5.9}},
			guess:   []float64{1, 0},
			want:    ErrUnderdetermined,
		},
		{
			name:    "guess length mismatch",
			samples: exampleSamples(),
			guess:   []float64{1},
			want:    ErrParamCount,
		},
		{
			name:    "NaN sample",
			samples: []Sample{{X: 1, Y: 1}, {X: 2, Y: math.NaN()}},
			guess:   []float64{1, 0},
			want:    ErrNonFinite,
		},
		{
			name:    "infinite guess",
			samples: exampleSamples(),
			guess:   []float64{math.Inf(1), 0},
			want:    ErrNonFinite,
		},
	}

	fitter := NewFitter(DefaultFitterConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := fitter.Fit(LinearModel{}, tt.samples, tt.guess)
			assert.Nil(t, result)
			require.ErrorIs(t, err, tt.want)

			var convErr *ConvergenceError
			require.True(t, errors.As(err, &convErr))
		})
	}
}

// flatModel ignores its second parameter, so the normal matrix is singular
type flatModel struct{}

func (flatModel) Value(x float64, params []float64) float64 { return params[0] * x }
func (flatModel) Gradient(x float64, _ []float64) []float64  { return []float64{x, 0} }
func (flatModel) NumParams() int                             { return 2 }

func TestFitSingularGradient(t *testing.T) {
	samples := []Sample{{X: 1, Y: 2}, {X: 2, Y: 3}, {X: 3, Y: 7}}

	_, err := NewFitter(DefaultFitterConfig()).Fit(flatModel{}, samples, []float64{1, 1})
	require.ErrorIs(t, err, ErrSingular)

	var convErr *ConvergenceError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, []float64{1, 1}, convErr.Best)
	assert.Equal(t, 1, convErr.Iterations)
}

func TestFitDuplicateXIsSingular(t *testing.T) {
	// Both samples share x, so slope and intercept cannot be separated
	samples := []Sample{{X: 1, Y: 1}, {X: 1, Y: 2}}

	result, err := NewFitter(DefaultFitterConfig()).Fit(LinearModel{}, samples, []float64{1, 0})
	assert.Nil(t, result)
	require.ErrorIs(t, err, ErrSingular)

	var convErr *ConvergenceError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, []float64{1, 0}, convErr.Best)
	assert.Equal(t, 1, convErr.Iterations)
}

func TestFitNonFiniteModelOutput(t *testing.T) {
	tests := []struct {
		name    string
		samples []Sample
		sample  string
	}{
		{name: "log of zero", samples: []Sample{{X: 0, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 3}}, sample: "sample 0"},
		{name: "log of negative", samples: []Sample{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: -3, Y: 3}}, sample: "sample 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewFitter(DefaultFitterConfig()).Fit(LogModel{}, tt.samples, []float64{1, 0})
			assert.Nil(t, result)
			require.ErrorIs(t, err, ErrNonFinite)
			assert.NotErrorIs(t, err, ErrSingular)
			assert.Contains(t, err.Error(), tt.sample)
		})
	}
}

func TestFitMaxIterations(t *testing.T) {
	config := DefaultFitterConfig()
	config.MaxIterations = 1

	samples := expSamples()
	guess := []float64{1, 0.2}

	_, err := NewFitter(config).Fit(ExpModel{}, samples, guess)
	require.ErrorIs(t, err, ErrMaxIterations)

	var convErr *ConvergenceError
	require.ErrorAs(t, err, &convErr)
	require.Len(t, convErr.Best, 2)
	assert.Less(t, convErr.Cost, SumSquaredResiduals(ExpModel{}, samples, guess))
	assert.Contains(t, convErr.Error(), "did not converge")
}

func TestNewSamples(t *testing.T) {
	samples, err := NewSamples([]float64{1, 2}, []float64{3, 4})
	require.NoError(t, err)
	assert.Equal(t, []Sample{{X: 1, Y: 3}, {X: 2, Y: 4}}, samples)

	_, err = NewSamples([]float64{1, 2}, []float64{3})
	assert.Error(t, err)
}
