package neat

import (
	"fmt"
	"math/rand"
)

// Crossover mates two fitness-measured parents and returns their child. The
// child's connection set follows ChildConnections; afterwards each of
// AddNodeMutation and AddConnectionMutation is applied to the child with an
// independent 50% probability, so the operator is stochastic both in gene
// selection and in the mutations layered on top.
//
// The child draws from the supplied random source. Options are forwarded to
// the child's construction, letting a population driver pass its shared
// innovation counter.
func Crossover(rng *rand.Rand, parent1, parent2 *Genome, opts ...GenomeOption) (*Genome, error) {
	childConnections := ChildConnections(rng, parent1, parent2)

	opts = append([]GenomeOption{WithRand(rng)}, opts...)
	child, err := NewGenome(childConnections, opts...)
	if err != nil {
		return nil, fmt.Errorf("crossover produced an invalid genome: %w", err)
	}

	if rng.Float64() < 0.5 {
		child.AddNodeMutation()
	}
	if rng.Float64() < 0.5 {
		child.AddConnectionMutation()
	}
	return child, nil
}
