package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the curve fitting and minimization examples",
	Long: `Fits a*ln(x)+b to three sample points, then minimizes the Rosenbrock function
from (0, 0) with a Nelder-Mead simplex. A failure in the first example stops the run.`,
	Args: cobra.NoArgs,
	RunE: runExamples,
}

func init() {
	addPlotFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func runExamples(cmd *cobra.Command, args []string) error {
	applyFitConfig(cmd, cfg)
	applyMinimizeConfig(cmd, cfg)

	out := cmd.OutOrStdout()
	if err := curveFit(out); err != nil {
		return err
	}
	if err := minimization(out); err != nil {
		return err
	}

	fmt.Fprintln(out)
	return nil
}
