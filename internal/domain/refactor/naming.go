package refactor

import (
	"fmt"
	"strconv"
	"strings"
)

// NamingPolicy returns the next candidate after current collided. attempt
// counts collisions starting at 1.
type NamingPolicy func(base, current string, attempt int) string

// Naming policy names accepted by ParseNamingPolicy.
const (
	NamingCumulative = "cumulative"
	NamingSequential = "sequential"
)

// CumulativeSuffix appends the attempt number to the current candidate, so
// repeated collisions compound: x, x1, x12, x123.
func CumulativeSuffix(_, current string, attempt int) string {
	return current + strconv.Itoa(attempt)
}

// SequentialSuffix appends the attempt number to the base name: x, x1, x2.
func SequentialSuffix(base, _ string, attempt int) string {
	return base + strconv.Itoa(attempt)
}

// ParseNamingPolicy maps a configuration value to a policy. Empty selects
// CumulativeSuffix.
func ParseNamingPolicy(name string) (NamingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NamingCumulative:
		return CumulativeSuffix, nil
	case NamingSequential:
		return SequentialSuffix, nil
	}

	return nil, fmt.Errorf("unknown naming policy %q", name)
}

// ResolveFieldName returns name, or the first candidate produced by policy
// that no member uses.
func ResolveFieldName(name string, members Members, policy NamingPolicy) string {
	if policy == nil {
		policy = CumulativeSuffix
	}

	candidate := name
	for attempt := 1; members.Contains(candidate); attempt++ {
		candidate = policy(name, candidate, attempt)
	}

	return candidate
}
