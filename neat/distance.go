package neat

import (
	"errors"
	"math"
)

// ErrNoMatchingGenes is returned when a compatibility distance is requested
// for two genomes sharing no innovation numbers. The mean weight difference is
// undefined for such a pair; callers must special-case fully-disjoint genomes
// before asking for a distance.
var ErrNoMatchingGenes = errors.New("genomes share no matching genes")

// CompatibilityDistance measures how topologically and weight-wise dissimilar
// two genomes are, for use by a speciation component. Smaller means more
// similar; identical genomes are at distance 0. It uses the fixed coefficients
// of the encoding (c1=1.0, c2=1.0, c3=0.4); use GenomeConfig.Distance for
// configured coefficients.
func CompatibilityDistance(genome1, genome2 *Genome) (float64, error) {
	cfg := defaultGenomeConfig()
	return cfg.Distance(genome1, genome2)
}

// Distance computes the compatibility distance
//
//	d = (c1*E + c2*D)/N + c3*W
//
// where E is the excess gene count, D the disjoint gene count, W the mean
// absolute weight difference over matching genes, and N normalizes by the
// larger genome's size — unless both genomes are smaller than the
// normalization threshold, in which case N is 1.
func (gc *GenomeConfig) Distance(genome1, genome2 *Genome) (float64, error) {
	weightDiff, err := averageWeightDifference(genome1, genome2)
	if err != nil {
		return 0, err
	}

	excess := float64(len(ExcessConnections(genome1, genome2)))
	disjoint := float64(len(DisjointConnections(genome1, genome2)))

	n := 1.0
	size1, size2 := len(genome1.Connections), len(genome2.Connections)
	if size1 >= gc.NormalizationThreshold || size2 >= gc.NormalizationThreshold {
		n = float64(max(size1, size2))
	}

	return (gc.ExcessCoefficient*excess+gc.DisjointCoefficient*disjoint)/n +
		gc.WeightCoefficient*weightDiff, nil
}

// averageWeightDifference returns the mean absolute weight difference over the
// matching genes of two genomes.
func averageWeightDifference(genome1, genome2 *Genome) (float64, error) {
	matching := 0
	diff := 0.0
	for innov, cg1 := range genome1.Connections {
		if cg2, ok := genome2.Connections[innov]; ok {
			matching++
			diff += math.Abs(cg1.Weight - cg2.Weight)
		}
	}
	if matching == 0 {
		return 0, ErrNoMatchingGenes
	}
	return diff / float64(matching), nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
