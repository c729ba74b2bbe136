package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cwbudde/optexample/internal/opt"
	"github.com/cwbudde/optexample/internal/report"
	"github.com/spf13/cobra"
)

var (
	minFunction string
	minMethod   string
	minStart    []float64
	minSteps    []float64
	minMaxEvals int
	minRelTol   float64
	minAbsTol   float64
	minPatience int
	mayflyIters int
	mayflyPop   int
	mayflySeed  int64
	mayflySpan  float64
)

var minimizeCmd = &cobra.Command{
	Use:   "minimize",
	Short: "Minimize a multivariate function",
	Long: `Minimizes a built-in function (rosenbrock, beale, sphere) from a starting point
with a derivative-free Nelder-Mead simplex or a mayfly population search.`,
	RunE: runMinimize,
}

func init() {
	minimizeCmd.Flags().StringVar(&minFunction, "function", "rosenbrock", "Function to minimize: "+strings.Join(opt.ObjectiveNames(), ", "))
	minimizeCmd.Flags().StringVar(&minMethod, "method", "nelder-mead", "Method: nelder-mead, mayfly")
	minimizeCmd.Flags().Float64SliceVar(&minStart, "start", []float64{0, 0}, "Starting point")
	minimizeCmd.Flags().Float64SliceVar(&minSteps, "step", nil, "Initial simplex step per axis (default 0.2 on every axis)")
	minimizeCmd.Flags().IntVar(&minMaxEvals, "max-evals", 10000, "Max function evaluations (nelder-mead)")
	minimizeCmd.Flags().Float64Var(&minRelTol, "rel-tol", 1e-5, "Relative convergence tolerance (nelder-mead)")
	minimizeCmd.Flags().Float64Var(&minAbsTol, "abs-tol", 1e-10, "Absolute convergence tolerance (nelder-mead)")
	minimizeCmd.Flags().IntVar(&minPatience, "patience", 50, "Negligible iterations before convergence (nelder-mead)")
	minimizeCmd.Flags().IntVar(&mayflyIters, "iters", 200, "Iterations (mayfly)")
	minimizeCmd.Flags().IntVar(&mayflyPop, "pop", 20, "Population size (mayfly, at least 20)")
	minimizeCmd.Flags().Int64Var(&mayflySeed, "seed", 42, "Random seed (mayfly)")
	minimizeCmd.Flags().Float64Var(&mayflySpan, "span", 2, "Search box half-width around the start (mayfly)")

	rootCmd.AddCommand(minimizeCmd)
}

func runMinimize(cmd *cobra.Command, args []string) error {
	applyMinimizeConfig(cmd, cfg)
	return minimization(cmd.OutOrStdout())
}

func buildMinimizer(method string) (opt.Minimizer, error) {
	switch strings.ToLower(method) {
	case "nelder-mead", "simplex":
		return opt.NewNelderMead(opt.NelderMeadConfig{
			Steps:          minSteps,
			MaxEvaluations: minMaxEvals,
			Tolerances:     opt.Tolerances{Relative: minRelTol, Absolute: minAbsTol},
			Patience:       minPatience,
		}), nil
	case "mayfly":
		return opt.NewMayfly(opt.MayflyConfig{
			MaxIters: mayflyIters,
			PopSize:  mayflyPop,
			Seed:     mayflySeed,
			Span:     mayflySpan,
		}), nil
	default:
		return nil, fmt.Errorf("unknown method: %s", method)
	}
}

func minimization(out io.Writer) error {
	objective, err := opt.ObjectiveByName(minFunction, len(minStart))
	if err != nil {
		return err
	}

	minimizer, err := buildMinimizer(minMethod)
	if err != nil {
		return err
	}

	slog.Info("Starting minimization", "function", minFunction, "method", minMethod, "start", minStart)

	reporter := report.NewReporter(out, digits, slog.Default())

	result, err := minimizer.Minimize(objective, minStart)
	if err != nil {
		var exceeded *opt.MaxEvaluationsExceeded
		if errors.As(err, &exceeded) {
			slog.Warn("Reporting best point found before budget ran out",
				"evaluations", exceeded.Best.Evaluations,
				"limit", exceeded.Limit,
			)
			if rerr := reporter.Minimization(minFunction, exceeded.Best.Point, exceeded.Best.Value); rerr != nil {
				return rerr
			}
		}
		return fmt.Errorf("minimization failed: %w", err)
	}

	slog.Debug("Minimization stats",
		"evaluations", result.Evaluations,
		"iterations", result.Iterations,
		"status", result.Status,
	)
	return reporter.Minimization(minFunction, result.Point, result.Value)
}
