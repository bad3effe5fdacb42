package scenario

import "strings"

// UniqueKeepOrder trims entries and drops blanks and repeats, keeping the
// first occurrence of each.
func UniqueKeepOrder(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		s := strings.TrimSpace(item)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// ExtrasPool is the global pool followed by the category's own extras,
// deduplicated.
func ExtrasPool(global, categoryExtras []string) []string {
	combined := make([]string, 0, len(global)+len(categoryExtras))
	combined = append(combined, global...)
	combined = append(combined, categoryExtras...)
	return UniqueKeepOrder(combined)
}

// SampleExtras draws k uniformly from [0, min(maxServices, pool size)] and
// then k distinct extras without replacement. The result is in draw order.
func SampleExtras(rng Rand, global, categoryExtras []string, maxServices int) []string {
	pool := ExtrasPool(global, categoryExtras)
	limit := min(maxServices, len(pool))
	if limit <= 0 {
		return []string{}
	}
	k := intBetween(rng, 0, limit)
	// Partial Fisher-Yates: the first k slots end up holding the sample.
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k:k]
}
