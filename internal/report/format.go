package report

import (
	"strconv"
	"strings"
)

// DefaultDigits is the number of decimals used when none is configured
const DefaultDigits = 5

// FormatFloat formats v with a fixed number of decimal places
func FormatFloat(v float64, digits int) string {
	if digits < 0 {
		digits = 0
	}
	return strconv.FormatFloat(v, 'f', digits, 64)
}

// FormatTuple formats values as "(v1, v2, ...)" with fixed decimals
func FormatTuple(values []float64, digits int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = FormatFloat(v, digits)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ParamNames returns "(a, b, ...)" for n parameters
func ParamNames(n int) string {
	names := make([]string, n)
	for i := range names {
		if i < 26 {
			names[i] = string(rune('a' + i))
		} else {
			names[i] = "p" + strconv.Itoa(i)
		}
	}
	return "(" + strings.Join(names, ", ") + ")"
}
