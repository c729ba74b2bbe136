package opt

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize/functions"
)

// Sphere is f(x) = sum(x_i^2), minimum 0 at the origin
func Sphere(x []float64) float64 {
	return floats.Dot(x, x)
}

// Rosenbrock is the extended Rosenbrock function. In two dimensions it is
// (1-x)^2 + 100*(y-x^2)^2 with minimum 0 at (1, 1).
func Rosenbrock(x []float64) float64 {
	return functions.ExtendedRosenbrock{}.Func(x)
}

type objective struct {
	f   ObjectiveFunction
	dim int // 0 means any dimension
}

var objectives = map[string]objective{
	"rosenbrock": {f: Rosenbrock},
	"beale":      {f: functions.Beale{}.Func, dim: 2},
	"sphere":     {f: Sphere},
}

// ObjectiveByName looks up a built-in objective function and checks that it
// accepts points of dimension dim
func ObjectiveByName(name string, dim int) (ObjectiveFunction, error) {
	obj, ok := objectives[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown function %q (available: %s)", name, strings.Join(ObjectiveNames(), ", "))
	}
	if obj.dim != 0 && obj.dim != dim {
		return nil, fmt.Errorf("%w: %s needs %d dimensions, got %d", ErrDimension, name, obj.dim, dim)
	}
	return obj.f, nil
}

// ObjectiveNames returns the built-in objective names in sorted order
func ObjectiveNames() []string {
	names := make([]string, 0, len(objectives))
	for name := range objectives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
