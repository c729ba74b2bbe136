package fit

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ParametricModel is a curve family f(x, params) that can be fitted.
// Gradient returns the partial derivatives of f with respect to each parameter at x.
type ParametricModel interface {
	Value(x float64, params []float64) float64
	Gradient(x float64, params []float64) []float64
	NumParams() int
}

// LogModel is f(x) = a*ln(x) + b
type LogModel struct{}

func (LogModel) Value(x float64, params []float64) float64 {
	return params[0]*math.Log(x) + params[1]
}

func (LogModel) Gradient(x float64, _ []float64) []float64 {
	return []float64{math.Log(x), 1}
}

func (LogModel) NumParams() int { return 2 }

// LinearModel is f(x) = a*x + b
type LinearModel struct{}

func (LinearModel) Value(x float64, params []float64) float64 {
	return params[0]*x + params[1]
}

func (LinearModel) Gradient(x float64, _ []float64) []float64 {
	return []float64{x, 1}
}

func (LinearModel) NumParams() int { return 2 }

// ExpModel is f(x) = a*exp(b*x)
type ExpModel struct{}

func (ExpModel) Value(x float64, params []float64) float64 {
	return params[0] * math.Exp(params[1]*x)
}

func (ExpModel) Gradient(x float64, params []float64) []float64 {
	e := math.Exp(params[1] * x)
	return []float64{e, params[0] * x * e}
}

func (ExpModel) NumParams() int { return 2 }

var models = map[string]ParametricModel{
	"log":    LogModel{},
	"linear": LinearModel{},
	"exp":    ExpModel{},
}

// ModelByName looks up a built-in model
func ModelByName(name string) (ParametricModel, error) {
	m, ok := models[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown model %q (available: %s)", name, strings.Join(ModelNames(), ", "))
	}
	return m, nil
}

// ModelNames returns the built-in model names in sorted order
func ModelNames() []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
