package internal

import (
	"strconv"
	"strings"
)

// ParseNonNegativeInt parses s as a base-10 integer, returning 0 when s does
// not parse or parses negative. A legitimate "0" and a failed parse are
// indistinguishable on purpose: both mean "no count recorded".
func ParseNonNegativeInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// AllNonNegative reports whether every count in ns is zero or positive.
func AllNonNegative(ns []int) bool {
	for _, n := range ns {
		if n < 0 {
			return false
		}
	}
	return true
}
