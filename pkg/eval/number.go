package eval

import (
	"math"
	"strconv"
)

// Number of significant digits shown by FormatNumber.
const displayDigits = 15

// FormatNumber formats a result for display. The value is rounded to 15
// significant digits; integral values are shown without a fractional part,
// and values whose magnitude is at least 1E15 or below 1E-9 are shown in
// scientific notation with an uppercase E. The output can be parsed back as
// a number literal, except for infinities and NaN.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	case v == 0:
		return "0"
	}
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'g', displayDigits, 64), 64)
	if abs := math.Abs(rounded); abs >= 1e15 || abs < 1e-9 {
		return strconv.FormatFloat(rounded, 'E', -1, 64)
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
