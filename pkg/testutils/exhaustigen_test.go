package testutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGen_EnumeratesAllCombinations(t *testing.T) {
	t.Parallel()

	seen := make(map[[2]int]int)
	g := NewGen()
	for !g.Done() {
		b := 0
		if g.Bool() {
			b = 1
		}
		seen[[2]int{b, g.Range(1, 3)}]++
	}
	assert.Len(t, seen, 6)
	for combo, count := range seen {
		assert.Equal(t, 1, count, "combination %v", combo)
	}
}

func TestSubset(t *testing.T) {
	t.Parallel()

	var subsets [][]string
	g := NewGen()
	for !g.Done() {
		subsets = append(subsets, Subset(g, []string{"a", "b", "c"}))
	}
	assert.Len(t, subsets, 8)
	assert.Contains(t, subsets, []string{"a", "c"})
	assert.Contains(t, subsets, []string(nil))
}

func TestPick(t *testing.T) {
	t.Parallel()

	var got []string
	g := NewGen()
	for !g.Done() {
		got = append(got, Pick(g, []string{"x", "y", "z"}))
	}
	assert.Equal(t, []string{"x", "y", "z"}, got)
}
