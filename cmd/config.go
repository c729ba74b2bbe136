package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config represents the optexample configuration file.
// Pointer fields distinguish "not set" from zero values; a value only applies
// when the corresponding flag was not given on the command line.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	Fit      FitConfig      `yaml:"fit"`
	Minimize MinimizeConfig `yaml:"minimize"`
	Plot     PlotConfig     `yaml:"plot"`
}

type FitConfig struct {
	Model         *string  `yaml:"model"`
	MaxIterations *int     `yaml:"max_iterations"`
	CostTolerance *float64 `yaml:"cost_tolerance"`
	StepTolerance *float64 `yaml:"step_tolerance"`
}

type MinimizeConfig struct {
	Function          *string  `yaml:"function"`
	Method            *string  `yaml:"method"`
	MaxEvaluations    *int     `yaml:"max_evaluations"`
	RelativeTolerance *float64 `yaml:"relative_tolerance"`
	AbsoluteTolerance *float64 `yaml:"absolute_tolerance"`
	Patience          *int     `yaml:"patience"`
	Seed              *int64   `yaml:"seed"`
}

type PlotConfig struct {
	Margin *float64 `yaml:"margin"`
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "optexample", "config.yaml")
}

// loadConfig reads the config file at path, or the default location when path is empty.
// A missing file is only an error when it was requested explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	if path == "" {
		path = defaultConfigPath()
		if path == "" {
			return Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return c, nil
}

// applyFitConfig applies config file defaults to fit variables
func applyFitConfig(cmd *cobra.Command, c Config) {
	setIfUnset(cmd, "model", &fitModel, c.Fit.Model)
	setIfUnset(cmd, "max-iters", &fitMaxIters, c.Fit.MaxIterations)
	setIfUnset(cmd, "cost-tol", &fitCostTol, c.Fit.CostTolerance)
	setIfUnset(cmd, "step-tol", &fitStepTol, c.Fit.StepTolerance)
	setIfUnset(cmd, "plot-margin", &plotMargin, c.Plot.Margin)
}

// applyMinimizeConfig applies config file defaults to minimize variables
func applyMinimizeConfig(cmd *cobra.Command, c Config) {
	setIfUnset(cmd, "function", &minFunction, c.Minimize.Function)
	setIfUnset(cmd, "method", &minMethod, c.Minimize.Method)
	setIfUnset(cmd, "max-evals", &minMaxEvals, c.Minimize.MaxEvaluations)
	setIfUnset(cmd, "rel-tol", &minRelTol, c.Minimize.RelativeTolerance)
	setIfUnset(cmd, "abs-tol", &minAbsTol, c.Minimize.AbsoluteTolerance)
	setIfUnset(cmd, "patience", &minPatience, c.Minimize.Patience)
	setIfUnset(cmd, "seed", &mayflySeed, c.Minimize.Seed)
}

func setIfUnset[T any](cmd *cobra.Command, flag string, dst *T, v *T) {
	if v != nil && !cmd.Flags().Changed(flag) {
		*dst = *v
	}
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
