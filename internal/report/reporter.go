package report

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Reporter writes human-readable results to a text sink and mirrors them to the structured log
type Reporter struct {
	out    io.Writer
	digits int
	logger *slog.Logger
}

// NewReporter creates a reporter writing to out with the given decimal precision.
// A nil logger falls back to slog.Default().
func NewReporter(out io.Writer, digits int, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{out: out, digits: digits, logger: logger}
}

// CurveFit reports fitted parameters and the root mean squared error of the fit
func (r *Reporter) CurveFit(params []float64, rmse float64) error {
	var b strings.Builder
	writeHeading(&b, "Curve fitting example")
	fmt.Fprintf(&b, "estimated %s = %s\n", ParamNames(len(params)), FormatTuple(params, r.digits))
	fmt.Fprintf(&b, "Mean root of squared error: %s\n", FormatFloat(rmse, r.digits))

	r.logger.Info("Curve fit result", "params", params, "rmse", rmse)
	return r.write(b.String())
}

// Minimization reports the minimum found for the named function
func (r *Reporter) Minimization(function string, point []float64, value float64) error {
	var b strings.Builder
	writeHeading(&b, fmt.Sprintf("Minimization (%s function)", capitalize(function)))
	fmt.Fprintf(&b, "Minimum found at %s\n", FormatTuple(point, r.digits))
	fmt.Fprintf(&b, "with value %s\n", FormatFloat(value, r.digits))

	r.logger.Info("Minimization result", "function", function, "point", point, "value", value)
	return r.write(b.String())
}

func (r *Reporter) write(s string) error {
	if _, err := io.WriteString(r.out, s); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func writeHeading(b *strings.Builder, title string) {
	b.WriteString("\n")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", len(title)))
	b.WriteString("\n\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
