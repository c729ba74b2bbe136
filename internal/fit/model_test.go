package fit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
)

func TestModelGradientsMatchFiniteDifferences(t *testing.T) {
	tests := []struct {
		name   string
		model  ParametricModel
		x      float64
		params []float64
	}{
		{name: "log", model: LogModel{}, x: 20.2, params: []float64{-0.5, 6}},
		{name: "linear", model: LinearModel{}, x: 3.5, params: []float64{2, -1}},
		{name: "exp", model: ExpModel{}, x: 1.5, params: []float64{2, 0.3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			numeric := fd.Gradient(nil, func(p []float64) float64 {
				return tt.model.Value(tt.x, p)
			}, tt.params, &fd.Settings{Formula: fd.Central})

			analytic := tt.model.Gradient(tt.x, tt.params)
			require.Len(t, analytic, tt.model.NumParams())
			for i := range analytic {
				assert.InDelta(t, numeric[i], analytic[i], 1e-6, "parameter %d", i)
			}
		})
	}
}

func TestModelByName(t *testing.T) {
	m, err := ModelByName("LOG")
	require.NoError(t, err)
	assert.Equal(t, LogModel{}, m)

	_, err = ModelByName("cubic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exp, linear, log")
}

func TestRMSE(t *testing.T) {
	samples := []Sample{{X: 0, Y: 1}, {X: 1, Y: 1}}
	// f(x) = 0*x + 0 leaves residuals of 1 at both samples
	assert.Equal(t, 2.0, SumSquaredResiduals(LinearModel{}, samples, []float64{0, 0}))
	assert.Equal(t, 1.0, RMSE(LinearModel{}, samples, []float64{0, 0}))
	assert.Equal(t, 0.0, RMSE(LinearModel{}, nil, []float64{0, 0}))
}
