package economics

import (
	"strconv"
	"strings"
)

// ParseAmount maps a form field to a number under the blank-field policy:
// missing or non-numeric input contributes nothing rather than erroring.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseQty is ParseAmount for integer fields such as lot size.
func ParseQty(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}
