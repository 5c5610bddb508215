// Package numutil provides small numeric helpers used alongside the store:
// human-readable number formatting and inclusive random integers.
package numutil

import (
	"fmt"
	"math/rand"
	"strconv"
)

// Comma formats n with thousands separators: 1234567 becomes "1,234,567".
func Comma(n int64) string {
	in := strconv.FormatInt(n, 10)
	sign := ""
	if in[0] == '-' {
		sign = "-"
		in = in[1:]
	}
	if len(in) <= 3 {
		return sign + in
	}

	out := make([]byte, 0, len(in)+(len(in)-1)/3)
	rem := len(in) % 3
	if rem > 0 {
		out = append(out, in[:rem]...)
	}
	for i := rem; i < len(in); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, in[i:i+3]...)
	}
	return sign + string(out)
}

// IntBetween returns a uniformly random integer in [min, max], inclusive
// on both ends.
func IntBetween(min, max int) (int, error) {
	if min > max {
		return 0, fmt.Errorf("min must not exceed max, got %d > %d", min, max)
	}
	return min + rand.Intn(max-min+1), nil
}
