package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountMap_CountAndSum(t *testing.T) {
	m := New()
	m.Count("op1")
	m.Count("op1")
	m.Count("op2")
	m.Add("op3", 5)

	assert.Equal(t, 2, m.Get("op1"))
	assert.Equal(t, 1, m.Get("op2"))
	assert.Equal(t, 5, m.Get("op3"))
	assert.Equal(t, 0, m.Get("missing"))
	assert.Equal(t, 8, m.Sum())
	assert.Equal(t, 3, m.Len())
}

func TestCountMap_Sorted(t *testing.T) {
	m := New()
	m.Add("b", 3)
	m.Add("a", 3)
	m.Add("c", 7)
	m.Add("d", 1)

	sorted := m.Sorted()
	require.Len(t, sorted, 4)
	assert.Equal(t, Count{Key: "c", Count: 7}, sorted[0])
	// Equal counts sort by key.
	assert.Equal(t, Count{Key: "a", Count: 3}, sorted[1])
	assert.Equal(t, Count{Key: "b", Count: 3}, sorted[2])
	assert.Equal(t, Count{Key: "d", Count: 1}, sorted[3])
}

func TestCountMap_Best(t *testing.T) {
	m := New()
	_, ok := m.Best()
	assert.False(t, ok)

	m.Add("x", 2)
	m.Add("y", 9)
	best, ok := m.Best()
	require.True(t, ok)
	assert.Equal(t, "y", best.Key)
	assert.Equal(t, 9, best.Count)
}

func TestCountMap_Accumulate(t *testing.T) {
	m := New()
	m.Add("a", 1)
	m.Add("b", 2)

	other := New()
	other.Add("b", 3)
	other.Add("c", 4)

	m.Accumulate(other)
	assert.Equal(t, 1, m.Get("a"))
	assert.Equal(t, 5, m.Get("b"))
	assert.Equal(t, 4, m.Get("c"))
}
