package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/cwbudde/optexample/internal/fit"
	"github.com/cwbudde/optexample/internal/report"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

// curvePoints is the number of points drawn for the fitted curve
const curvePoints = 200

var (
	fitModel    string
	fitX        []float64
	fitY        []float64
	fitGuess    []float64
	fitMaxIters int
	fitCostTol  float64
	fitStepTol  float64
	plotPath    string
	plotMargin  float64
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit a parametric curve to observed points",
	Long: `Fits a model to (x, y) samples with Levenberg-Marquardt least squares and
reports the estimated parameters and the root mean squared error.`,
	RunE: runFit,
}

func init() {
	fitCmd.Flags().StringVar(&fitModel, "model", "log", "Model: log (a*ln(x)+b), linear (a*x+b), exp (a*exp(b*x))")
	fitCmd.Flags().Float64SliceVar(&fitX, "x", []float64{1.1, 20.2, 100.3}, "Sample x values")
	fitCmd.Flags().Float64SliceVar(&fitY, "y", []float64{5.9, 4.8, 3.7}, "Sample y values")
	fitCmd.Flags().Float64SliceVar(&fitGuess, "guess", []float64{1, 0}, "Initial parameter guess")
	fitCmd.Flags().IntVar(&fitMaxIters, "max-iters", 1000, "Max iterations")
	fitCmd.Flags().Float64Var(&fitCostTol, "cost-tol", 1e-10, "Relative cost improvement below which the fit has converged")
	fitCmd.Flags().Float64Var(&fitStepTol, "step-tol", 1e-10, "Relative step size below which the fit has converged")
	addPlotFlags(fitCmd)

	rootCmd.AddCommand(fitCmd)
}

func addPlotFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&plotPath, "plot", "", "Write a semi-log plot of the fit to this PNG path")
	cmd.Flags().Float64Var(&plotMargin, "plot-margin", report.DefaultMargin, "Axis margin as a fraction of the data range")
}

func runFit(cmd *cobra.Command, args []string) error {
	applyFitConfig(cmd, cfg)
	return curveFit(cmd.OutOrStdout())
}

func curveFit(out io.Writer) error {
	model, err := fit.ModelByName(fitModel)
	if err != nil {
		return err
	}

	samples, err := fit.NewSamples(fitX, fitY)
	if err != nil {
		return err
	}

	config := fit.DefaultFitterConfig()
	config.MaxIterations = fitMaxIters
	config.Convergence.Threshold = fitCostTol
	config.StepTolerance = fitStepTol

	slog.Info("Starting curve fit", "model", fitModel, "samples", len(samples), "guess", fitGuess)

	reporter := report.NewReporter(out, digits, slog.Default())

	result, err := fit.NewFitter(config).Fit(model, samples, fitGuess)
	if err != nil {
		var convErr *fit.ConvergenceError
		if errors.As(err, &convErr) && convErr.Best != nil {
			slog.Warn("Reporting degraded fit",
				"reason", convErr.Reason,
				"iterations", convErr.Iterations,
				"cost", convErr.Cost,
			)
			if rerr := reporter.CurveFit(convErr.Best, fit.RMSE(model, samples, convErr.Best)); rerr != nil {
				return rerr
			}
		}
		return fmt.Errorf("curve fit failed: %w", err)
	}

	if err := reporter.CurveFit(result.Params, fit.RMSE(model, samples, result.Params)); err != nil {
		return err
	}

	if plotPath == "" {
		return nil
	}
	return plotFit(model, result.Params)
}

func plotFit(model fit.ParametricModel, params []float64) error {
	curve := func(x float64) float64 { return model.Value(x, params) }

	figure, err := report.SemiLogFigure("Curve fit", fitX, fitY, curve, curvePoints)
	if err != nil {
		return fmt.Errorf("failed to build plot: %w", err)
	}
	figure.Margin = plotMargin

	if err := figure.Save(plotPath, 6*vg.Inch, 4*vg.Inch); err != nil {
		return err
	}

	slog.Info("Wrote plot", "path", plotPath)
	return nil
}
