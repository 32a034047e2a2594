package common

import (
	"fmt"
	"strings"
)

// InRange reports whether lo <= v <= hi.
func InRange(v, lo, hi int) bool {
	return v >= lo && v <= hi
}

// IsValidCell checks if the given row and column are within a rows x cols grid
func IsValidCell(row, col, rows, cols int) bool {
	return row >= 0 && row < rows && col >= 0 && col < cols
}

// OneOf returns nil if v is one of allowed, or an error listing the allowed values.
func OneOf(v string, allowed ...string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("%q is not one of %s", v, strings.Join(allowed, ", "))
}
