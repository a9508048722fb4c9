package domain

import (
	"strconv"
	"strings"
)

// ScanCodeRange is the inclusive numeric range a scan code must fall in.
type ScanCodeRange struct {
	Min int
	Max int
}

// Valid reports whether the candidate code parses as an integer within the
// range. Non-numeric and out-of-range input is invalid; Valid never panics
// or returns an error.
func (r ScanCodeRange) Valid(code string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil {
		return false
	}
	return n >= r.Min && n <= r.Max
}
