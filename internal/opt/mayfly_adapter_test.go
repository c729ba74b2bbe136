package opt

import (
	"errors"
	"math"
	"testing"
)

func TestMayflyAdapterOnSphere(t *testing.T) {
	minimizer := NewMayfly(MayflyConfig{MaxIters: 100, PopSize: 20, Seed: 42, Span: 10})

	x0 := []float64{0, 0, 0}
	result, err := minimizer.Minimize(Sphere, x0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(result.Point) != len(x0) {
		t.Fatalf("Expected %d parameters, got %d", len(x0), len(result.Point))
	}

	// Should converge close to zero
	if result.Value > 0.1 {
		t.Errorf("Expected cost near 0, got %f", result.Value)
	}

	for i, v := range result.Point {
		if math.Abs(v) > 1.0 {
			t.Errorf("Parameter %d = %f, expected near 0", i, v)
		}
	}

	if result.Evaluations == 0 {
		t.Error("Expected evaluations to be counted")
	}
}

func TestMayflyAdapterDeterministic(t *testing.T) {
	x0 := []float64{0.5, -0.5}

	// Same seed must give identical results (popSize must be >=20 for mayfly v0.1.0)
	r1, err := NewMayfly(MayflyConfig{MaxIters: 50, PopSize: 20, Seed: 123, Span: 5}).Minimize(Rosenbrock, x0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	r2, err := NewMayfly(MayflyConfig{MaxIters: 50, PopSize: 20, Seed: 123, Span: 5}).Minimize(Rosenbrock, x0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if r1.Value != r2.Value {
		t.Errorf("Non-deterministic: value1=%f, value2=%f", r1.Value, r2.Value)
	}
}

func TestMayflyAdapterImprovesOnStart(t *testing.T) {
	x0 := []float64{0, 0}
	result, err := NewMayfly(DefaultMayflyConfig()).Minimize(Rosenbrock, x0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Value >= Rosenbrock(x0) {
		t.Errorf("Expected improvement over starting value %f, got %f", Rosenbrock(x0), result.Value)
	}
}

func TestMayflyAdapterEmptyStart(t *testing.T) {
	_, err := NewMayfly(DefaultMayflyConfig()).Minimize(Sphere, nil)
	if err == nil {
		t.Fatal("Expected error for empty starting point")
	}
}

func TestSearchBox(t *testing.T) {
	lower, upper := searchBox([]float64{-1, 3}, 2)
	if lower != -3 || upper != 5 {
		t.Errorf("searchBox = [%f, %f], want [-3, 5]", lower, upper)
	}
}

func TestMayflyAdapterRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config MayflyConfig
	}{
		{name: "population below minimum", config: MayflyConfig{MaxIters: 5, PopSize: 5, Seed: 1, Span: 2}},
		{name: "zero iterations", config: MayflyConfig{MaxIters: 0, PopSize: 20, Seed: 1, Span: 2}},
		{name: "zero span", config: MayflyConfig{MaxIters: 5, PopSize: 20, Seed: 1, Span: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewMayfly(tt.config).Minimize(Sphere, []float64{0, 0})
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Expected ErrInvalidConfig, got %v", err)
			}
			if result != nil {
				t.Errorf("Expected no result, got %+v", result)
			}
		})
	}
}
