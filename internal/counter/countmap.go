// Package counter provides a counting multiset keyed by string.
package counter

import "sort"

// CountMap tracks how many times each key has been observed.
// The zero value is not usable; create one with New.
type CountMap struct {
	counts map[string]int
}

// Count is a single key/count pair returned by Sorted.
type Count struct {
	Key   string
	Count int
}

// New creates an empty CountMap.
func New() *CountMap {
	return &CountMap{counts: make(map[string]int)}
}

// Count increments the count for the given key by one.
func (m *CountMap) Count(key string) {
	m.counts[key]++
}

// Add increments the count for the given key by n.
func (m *CountMap) Add(key string, n int) {
	m.counts[key] += n
}

// Get returns the current count for a key, zero if it was never counted.
func (m *CountMap) Get(key string) int {
	return m.counts[key]
}

// Accumulate merges all counts from another CountMap into this one.
func (m *CountMap) Accumulate(other *CountMap) {
	for key, n := range other.counts {
		m.counts[key] += n
	}
}

// Sum returns the total of all counts.
func (m *CountMap) Sum() int {
	total := 0
	for _, n := range m.counts {
		total += n
	}
	return total
}

// Len returns the number of distinct keys counted.
func (m *CountMap) Len() int {
	return len(m.counts)
}

// Sorted returns all entries ordered by descending count.
// Ties are broken by ascending key so the ordering is deterministic.
func (m *CountMap) Sorted() []Count {
	result := make([]Count, 0, len(m.counts))
	for key, n := range m.counts {
		result = append(result, Count{Key: key, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Key < result[j].Key
	})
	return result
}

// Best returns the entry with the highest count. The second return value
// is false when the map is empty.
func (m *CountMap) Best() (Count, bool) {
	if len(m.counts) == 0 {
		return Count{}, false
	}
	return m.Sorted()[0], true
}
