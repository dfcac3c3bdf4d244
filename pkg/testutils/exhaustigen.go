package testutils

import "github.com/argus-labs/loggable/pkg/assert"

// maxChoices bounds the number of choices one iteration of a Gen can make.
const maxChoices = 32

// Gen enumerates every combination of the choices a test makes, one combination per iteration:
//
//	g := testutils.NewGen()
//	for !g.Done() {
//		n := g.Range(1, 3)
//		splat := g.Bool()
//		...
//	}
//
// Each iteration records its choices and their bounds. Done advances to the next combination by
// incrementing the rightmost choice still below its bound and resetting the choices after it.
// See https://matklad.github.io/2021/11/07/generate-all-the-things.html.
type Gen struct {
	started bool
	choices [maxChoices]choice
	pos     int // Choices made in the current iteration
	depth   int // Choices recorded by the previous iteration
}

type choice struct {
	value uint32
	bound uint32 // Inclusive
}

// NewGen creates a new exhaustive generator.
func NewGen() *Gen {
	return &Gen{}
}

// Done reports whether every combination has been produced.
func (g *Gen) Done() bool {
	if !g.started {
		g.started = true
		return false
	}
	for i := g.depth - 1; i >= 0; i-- {
		if g.choices[i].value < g.choices[i].bound {
			g.choices[i].value++
			g.depth = i + 1
			g.pos = 0
			return false
		}
	}
	return true
}

func (g *Gen) next(bound uint32) uint32 {
	assert.That(g.pos < maxChoices, "exhaustigen: more than %d choices", maxChoices)
	if g.pos == g.depth {
		g.choices[g.pos] = choice{}
		g.depth++
	}
	c := &g.choices[g.pos]
	c.bound = bound
	g.pos++
	return c.value
}

// Intn returns an int in [0, bound].
func (g *Gen) Intn(bound int) int {
	return int(g.next(uint32(bound))) //nolint:gosec // bounds are small in tests
}

// Range returns an int in [minVal, maxVal].
func (g *Gen) Range(minVal, maxVal int) int {
	assert.That(minVal <= maxVal, "exhaustigen: min %d > max %d", minVal, maxVal)
	return minVal + g.Intn(maxVal-minVal)
}

// Bool returns false, then true.
func (g *Gen) Bool() bool {
	return g.Intn(1) == 1
}

// Pick returns each element of slice in turn.
func Pick[T any](g *Gen, slice []T) T {
	assert.That(len(slice) > 0, "exhaustigen: empty slice")
	return slice[g.Intn(len(slice)-1)]
}

// Subset returns each subset of slice in turn, preserving element order.
func Subset[T any](g *Gen, slice []T) []T {
	var out []T
	for _, v := range slice {
		if g.Bool() {
			out = append(out, v)
		}
	}
	return out
}
