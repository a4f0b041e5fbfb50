package neat

import "math/rand"

// Gene alignment between two genomes of different topology. Genes are
// classified by innovation number (see figure 4 of the NEAT paper):
//
//   - matching: present in both genomes
//   - disjoint: present in one genome only, within the range of innovation
//     numbers the other genome's lineage has reached
//   - excess: present only in the genome with the higher maximum innovation
//     number, beyond the other genome's reach
//
// Taken as innovation-number sets, the three classes partition the union of
// both genomes' innovation numbers. Classification is order-independent.

// MatchingConnections returns the genes whose innovation numbers are present
// in both genomes. Each gene is taken from either genome with equal
// probability, independently per gene.
func MatchingConnections(rng *rand.Rand, genome1, genome2 *Genome) map[int]*ConnectionGene {
	matching := make(map[int]*ConnectionGene)
	for innov, cg1 := range genome1.Connections {
		cg2, ok := genome2.Connections[innov]
		if !ok {
			continue
		}
		if rng.Float64() < 0.5 {
			matching[innov] = cg1
		} else {
			matching[innov] = cg2
		}
	}
	return matching
}

// DisjointConnections returns the genes present in only one of the two
// genomes but not beyond the other genome's highest innovation number.
func DisjointConnections(genome1, genome2 *Genome) map[int]*ConnectionGene {
	// Canonical order: genome1 carries the more advanced lineage.
	if genome2.LastInnovationNumber() > genome1.LastInnovationNumber() {
		genome1, genome2 = genome2, genome1
	}

	disjoint := make(map[int]*ConnectionGene)
	last2 := genome2.LastInnovationNumber()
	for innov, cg := range genome1.Connections {
		if _, ok := genome2.Connections[innov]; !ok && innov < last2 {
			disjoint[innov] = cg
		}
	}
	// Every gene unique to the shorter lineage is within the longer one's
	// reach by construction.
	for innov, cg := range genome2.Connections {
		if _, ok := genome1.Connections[innov]; !ok {
			disjoint[innov] = cg
		}
	}
	return disjoint
}

// ExcessConnections returns the genes of the more advanced lineage whose
// innovation numbers lie strictly beyond the other genome's maximum.
func ExcessConnections(genome1, genome2 *Genome) map[int]*ConnectionGene {
	// Canonical order: genome1 carries the more advanced lineage.
	if genome2.LastInnovationNumber() > genome1.LastInnovationNumber() {
		genome1, genome2 = genome2, genome1
	}

	excess := make(map[int]*ConnectionGene)
	last2 := genome2.LastInnovationNumber()
	for innov, cg := range genome1.Connections {
		if innov > last2 {
			excess[innov] = cg
		}
	}
	return excess
}

// ChildConnections builds the connection set a child inherits from two
// parents.
//
// If one parent is strictly fitter, the child inherits exactly the fitter
// parent's innovation numbers: matching genes are chosen uniformly at random
// between the parents' copies, genes unique to the fitter parent are inherited
// unconditionally, and genes unique to the weaker parent are dropped.
//
// If fitness is exactly equal, the child inherits the union of both parents'
// innovation numbers, with matching genes again chosen at random.
//
// The returned genes are copies; the child owns them outright.
func ChildConnections(rng *rand.Rand, parent1, parent2 *Genome) map[int]*ConnectionGene {
	// Canonical order: parent1 is the fitter parent.
	if parent2.Fitness > parent1.Fitness {
		parent1, parent2 = parent2, parent1
	}

	child := make(map[int]*ConnectionGene, len(parent1.Connections))
	for innov, cg1 := range parent1.Connections {
		if cg2, ok := parent2.Connections[innov]; ok && rng.Float64() < 0.5 {
			child[innov] = cg2.Copy()
		} else {
			child[innov] = cg1.Copy()
		}
	}

	if parent1.Fitness == parent2.Fitness {
		for innov, cg2 := range parent2.Connections {
			if _, ok := parent1.Connections[innov]; !ok {
				child[innov] = cg2.Copy()
			}
		}
	}
	return child
}
