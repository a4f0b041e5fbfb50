package neat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrossoverProducesValidChild(t *testing.T) {
	parent1, parent2 := alignmentParents(t)
	parent1.Fitness = 1.0
	parent2.Fitness = 1.0
	rng := rand.New(rand.NewSource(11))

	child, err := Crossover(rng, parent1, parent2)
	require.NoError(t, err)
	assertValidGenome(t, child)

	// Gene selection yields the union of both parents; the mutations layered
	// on top only ever add genes.
	for innov := range parent1.Connections {
		assert.Contains(t, child.Connections, innov)
	}
	for innov := range parent2.Connections {
		assert.Contains(t, child.Connections, innov)
	}
	assert.LessOrEqual(t, len(child.Connections), 10+3)
}

func TestCrossoverLeavesParentsUntouched(t *testing.T) {
	parent1, parent2 := alignmentParents(t)
	parent1.Fitness = 3.0
	parent2.Fitness = 1.0
	rng := rand.New(rand.NewSource(12))

	before1 := len(parent1.Connections)
	before2 := len(parent2.Connections)
	for i := 0; i < 20; i++ {
		_, err := Crossover(rng, parent1, parent2)
		require.NoError(t, err)
	}
	assert.Len(t, parent1.Connections, before1)
	assert.Len(t, parent2.Connections, before2)
	assert.Equal(t, 5, parent1.TotalNodes())
	assert.Equal(t, 6, parent2.TotalNodes())
}

func TestCrossoverWithSharedCounter(t *testing.T) {
	parent1, parent2 := alignmentParents(t)
	parent1.Fitness = 1.0
	parent2.Fitness = 1.0
	rng := rand.New(rand.NewSource(13))
	counter := NewInnovationCounter(0)

	// Any structural novelty across repeated crossovers must draw strictly
	// increasing innovation numbers from the shared counter.
	seen := make(map[int]bool)
	for i := 0; i < 10; i++ {
		child, err := Crossover(rng, parent1, parent2, WithInnovationCounter(counter))
		require.NoError(t, err)
		for innov := range child.Connections {
			if innov <= 10 {
				continue // inherited from the parents
			}
			assert.False(t, seen[innov], "shared counter never reissues an innovation number")
			seen[innov] = true
		}
	}
	for innov := range seen {
		assert.Greater(t, innov, 10)
	}
}
