package neat

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Species represents a group of genetically similar genomes.
type Species struct {
	Key            int             // Unique identifier for the species.
	Created        int             // Generation number when the species was created.
	Representative *Genome         // The genome new candidates are measured against.
	Members        map[int]*Genome // Maps genome key -> genome.
}

// NewSpecies creates a new species.
func NewSpecies(key, generation int) *Species {
	return &Species{
		Key:     key,
		Created: generation,
		Members: make(map[int]*Genome),
	}
}

// MeanFitness returns the mean fitness of the species' members.
func (s *Species) MeanFitness() float64 {
	if len(s.Members) == 0 {
		return math.Inf(-1)
	}
	fitnesses := make([]float64, 0, len(s.Members))
	for _, g := range s.Members {
		fitnesses = append(fitnesses, g.Fitness)
	}
	return stat.Mean(fitnesses, nil)
}

// --------------------------- distanceCache ---------------------------

// distanceCache stores computed distances between genome pairs so a speciation
// pass never measures the same pair twice.
type distanceCache struct {
	distances map[[2]int]float64
	config    *GenomeConfig
}

func newDistanceCache(config *GenomeConfig) *distanceCache {
	return &distanceCache{
		distances: make(map[[2]int]float64),
		config:    config,
	}
}

// distance returns the compatibility distance between two keyed genomes.
// A pair sharing no matching genes is reported as infinitely distant: such
// genomes have no common lineage and can never share a species.
func (dc *distanceCache) distance(key1 int, genome1 *Genome, key2 int, genome2 *Genome) float64 {
	cacheKey := [2]int{key1, key2}
	if key1 > key2 {
		cacheKey = [2]int{key2, key1}
	}
	if d, ok := dc.distances[cacheKey]; ok {
		return d
	}

	d, err := dc.config.Distance(genome1, genome2)
	if err != nil {
		d = math.Inf(1)
	}
	dc.distances[cacheKey] = d
	return d
}

// --------------------------- SpeciesSet ---------------------------

// SpeciesSet manages the collection of species within a population.
type SpeciesSet struct {
	Species      map[int]*Species // Maps species key -> Species.
	indexer      int
	config       *SpeciesSetConfig
	genomeConfig *GenomeConfig
}

// NewSpeciesSet creates a new species set manager.
func NewSpeciesSet(config *SpeciesSetConfig, genomeConfig *GenomeConfig) *SpeciesSet {
	return &SpeciesSet{
		Species:      make(map[int]*Species),
		indexer:      1,
		config:       config,
		genomeConfig: genomeConfig,
	}
}

// Speciate partitions the population into species by thresholded
// compatibility distance. Each genome joins the existing species whose
// representative it is closest to, provided the distance is under the
// threshold; otherwise it founds a new species. Representatives carry over
// between generations; species left without members are dropped.
func (ss *SpeciesSet) Speciate(population map[int]*Genome, generation int) {
	cache := newDistanceCache(ss.genomeConfig)

	for _, s := range ss.Species {
		s.Members = make(map[int]*Genome)
	}

	// Sorted keys keep assignment deterministic for a given population.
	keys := make([]int, 0, len(population))
	for key := range population {
		keys = append(keys, key)
	}
	sort.Ints(keys)

	for _, key := range keys {
		g := population[key]

		bestSpecies := -1
		minDist := math.Inf(1)
		for sid, s := range ss.Species {
			d := cache.distance(key, g, -s.Key, s.Representative)
			if d < ss.config.CompatibilityThreshold && d < minDist {
				minDist = d
				bestSpecies = sid
			}
		}

		if bestSpecies != -1 {
			ss.Species[bestSpecies].Members[key] = g
			continue
		}

		s := NewSpecies(ss.indexer, generation)
		ss.indexer++
		s.Representative = g
		s.Members[key] = g
		ss.Species[s.Key] = s
	}

	for sid, s := range ss.Species {
		if len(s.Members) == 0 {
			delete(ss.Species, sid)
			continue
		}
		// Refresh the representative from the surviving members so the
		// species tracks its population as lineages drift.
		memberKeys := make([]int, 0, len(s.Members))
		for key := range s.Members {
			memberKeys = append(memberKeys, key)
		}
		sort.Ints(memberKeys)
		s.Representative = s.Members[memberKeys[0]]
	}
}
