package store

import (
	"fmt"
	"regexp"
	"strconv"
)

var idDigits = regexp.MustCompile(`\d+`)

// NextID allocates the next sequential identifier for a table: the given
// prefix plus a 4-digit zero-padded suffix one past the highest suffix among
// the existing ids. An empty table yields PFX0001.
//
// The maximum is taken over all rows, not the last one, so a deleted row or
// an out-of-order import can never cause the same id to be issued twice.
func NextID(prefix string, existing []string) string {
	max := 0
	for _, id := range existing {
		match := idDigits.FindString(id)
		if match == "" {
			continue
		}
		n, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%04d", prefix, max+1)
}
