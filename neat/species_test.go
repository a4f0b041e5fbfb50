package neat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSpeciesSet() *SpeciesSet {
	cfg := DefaultConfig()
	return NewSpeciesSet(&cfg.SpeciesSet, &cfg.Genome)
}

func TestSpeciateGroupsSimilarGenomes(t *testing.T) {
	base := testGenome(t, 1,
		NewConnectionGene(1, 4, 0.5, true, 1),
		NewConnectionGene(2, 4, 0.5, true, 2),
		NewConnectionGene(3, 4, 0.5, true, 3),
	)

	// A drifted lineage: same ancestry, six extra structural genes, which
	// puts it past the compatibility threshold of 3.0.
	drifted := func(seed int64) *Genome {
		genes := []*ConnectionGene{
			NewConnectionGene(1, 4, 0.5, true, 1),
			NewConnectionGene(2, 4, 0.5, true, 2),
			NewConnectionGene(3, 4, 0.5, true, 3),
		}
		for i := 10; i <= 15; i++ {
			genes = append(genes, NewConnectionGene(i, 4, 0.5, true, i))
		}
		return testGenome(t, seed, genes...)
	}

	population := map[int]*Genome{
		1: base,
		2: base.Copy(),
		3: base.Copy(),
		4: drifted(4),
		5: drifted(5),
	}

	ss := newTestSpeciesSet()
	ss.Speciate(population, 1)

	require.Len(t, ss.Species, 2)
	sizes := make(map[int]int)
	for _, s := range ss.Species {
		sizes[len(s.Members)]++
	}
	assert.Equal(t, map[int]int{3: 1, 2: 1}, sizes)
}

func TestSpeciateSeparatesFullyDisjointGenomes(t *testing.T) {
	// Genomes with no shared lineage have no defined distance; they must end
	// up in different species rather than crashing the speciation pass.
	population := map[int]*Genome{
		1: testGenome(t, 1, NewConnectionGene(1, 4, 0.5, true, 1)),
		2: testGenome(t, 2, NewConnectionGene(2, 4, 0.5, true, 2)),
	}

	ss := newTestSpeciesSet()
	ss.Speciate(population, 1)
	assert.Len(t, ss.Species, 2)
}

func TestSpeciateDropsEmptySpecies(t *testing.T) {
	base := testGenome(t, 1,
		NewConnectionGene(1, 4, 0.5, true, 1),
	)
	other := testGenome(t, 2,
		NewConnectionGene(2, 4, 0.5, true, 2),
	)

	ss := newTestSpeciesSet()
	ss.Speciate(map[int]*Genome{1: base, 2: other}, 1)
	require.Len(t, ss.Species, 2)

	// The next generation only carries descendants of one lineage.
	ss.Speciate(map[int]*Genome{3: base.Copy(), 4: base.Copy()}, 2)
	assert.Len(t, ss.Species, 1)
}

func TestSpeciesMeanFitness(t *testing.T) {
	g1 := testGenome(t, 1, NewConnectionGene(1, 4, 0.5, true, 1))
	g2 := g1.Copy()
	g1.Fitness = 1.0
	g2.Fitness = 3.0

	s := NewSpecies(1, 0)
	s.Members = map[int]*Genome{1: g1, 2: g2}
	assert.Equal(t, 2.0, s.MeanFitness())
}
