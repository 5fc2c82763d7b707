package schema

import (
	"maps"
	"slices"
)

// CountMap maps an author's canonical name to a count of lines or tests.
// Values are never zero in a map returned by this package: entries that
// cancel out are removed.
type CountMap map[string]int

// Add returns base + delta over the union of both key sets.
func (m CountMap) Add(delta CountMap) CountMap {
	return combineCounts(m, delta, 1)
}

// Subtract returns base - delta over the union of both key sets.
func (m CountMap) Subtract(delta CountMap) CountMap {
	return combineCounts(m, delta, -1)
}

// Total returns the sum of all values.
func (m CountMap) Total() int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

// Clone returns a normalized copy of the map.
func (m CountMap) Clone() CountMap {
	out := make(CountMap, len(m))
	for k, v := range m {
		if v != 0 {
			out[k] = v
		}
	}
	return out
}

// Keys returns the author names sorted by descending count, then by name.
func (m CountMap) Keys() []string {
	keys := slices.Collect(maps.Keys(m))
	slices.SortFunc(keys, func(a, b string) int {
		if m[a] != m[b] {
			return m[b] - m[a]
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})
	return keys
}

func combineCounts(base, delta CountMap, sign int) CountMap {
	out := make(CountMap, len(base)+len(delta))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range delta {
		out[k] += sign * v
	}
	for k, v := range out {
		if v == 0 {
			delete(out, k)
		}
	}
	return out
}
