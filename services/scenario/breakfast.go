package scenario

import (
	"fmt"
	"sort"
	"strings"

	"reservodojo/models"
)

// BreakfastLabel prefixes the breakfast entry in a scenario's extras.
const BreakfastLabel = "Breakfast: "

// SampleBreakfast decides whether the booking includes breakfast and for how
// many guests, then draws a type per covered guest. It returns the formatted
// counts ("1x Continental, 2x Vegan") and true, or "" and false when there is
// no breakfast. A disabled policy, no types or no guests consume no draws.
func SampleBreakfast(rng Rand, policy models.BreakfastPolicy, types []string, guestCount int) (string, bool) {
	if !policy.Enabled || guestCount <= 0 {
		return "", false
	}
	types = nonBlank(types)
	if len(types) == 0 {
		return "", false
	}

	pAny := clamp01(policy.ProbabilityAnyBreakfast)
	pFull := clamp01(policy.ProbabilityFullGroupIfAny)

	if rng.Float64() > pAny {
		return "", false
	}

	covered := 1
	if guestCount > 1 {
		if rng.Float64() <= pFull {
			covered = guestCount
		} else {
			covered = intBetween(rng, 1, guestCount-1)
		}
	}

	chosen := make([]string, covered)
	for i := range chosen {
		chosen[i] = types[rng.Intn(len(types))]
	}
	return FormatBreakfastCounts(chosen), true
}

// FormatBreakfastCounts aggregates drawn types into "<n>x <type>" entries
// sorted by type name.
func FormatBreakfastCounts(selected []string) string {
	counts := make(map[string]int, len(selected))
	for _, t := range selected {
		counts[t]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%dx %s", counts[name], name)
	}
	return strings.Join(parts, ", ")
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
