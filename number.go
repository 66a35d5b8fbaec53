package flatten

import (
	"math"
	"strconv"

	"github.com/tdewolff/minify/v2"
)

// formatNumber writes f with prec significant digits, or with the shortest representation that round-trips when prec is zero. Values within Epsilon of zero, which are left by rotations such as rotate(90), are written as 0.
func formatNumber(f float64, prec int) string {
	if math.Abs(f) < Epsilon {
		return "0"
	}
	digits := -1
	if 0 < prec {
		digits = prec
	}
	b := strconv.AppendFloat(nil, f, 'g', digits, 64)
	return string(minify.Number(b, prec))
}

// parseNumber parses an SVG length or number attribute. A px unit is accepted.
func parseNumber(attr, s string) (float64, error) {
	b := []byte(s)
	i := skipWhitespace(b)
	f, n := parseNum(b[i:])
	if n == 0 || b[i] == ',' {
		return 0.0, &ParseError{Attr: attr, Value: s}
	}
	i += n
	if i+2 <= len(b) && b[i] == 'p' && b[i+1] == 'x' {
		i += 2
	}
	if i += skipWhitespace(b[i:]); i != len(b) {
		return 0.0, &ParseError{Attr: attr, Value: s}
	}
	return f, nil
}
