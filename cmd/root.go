package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	logLevel   string
	logFormat  string
	configPath string
	digits     int
	cfg        Config
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "optexample",
	Short: "Curve fitting and function minimization examples",
	Long: `optexample fits parametric curves to observed points with Levenberg-Marquardt
least squares and minimizes multivariate functions with a Nelder-Mead simplex
or mayfly population search, reporting results as text and optional plots.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(configPath, cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}
		cfg = loaded

		setIfUnset(cmd, "log-level", &logLevel, stringPtr(cfg.LogLevel))
		setIfUnset(cmd, "log-format", &logFormat, stringPtr(cfg.LogFormat))

		logger = newLogger(os.Stderr, logLevel, logFormat)
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "Log format (json, text)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/optexample/config.yaml)")
	rootCmd.PersistentFlags().IntVar(&digits, "digits", 5, "Decimal places in reported values")
}

func newLogger(w io.Writer, levelName, format string) *slog.Logger {
	var level slog.Level
	switch levelName {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
