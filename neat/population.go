package neat

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FitnessFunc evaluates the current generation, setting the Fitness field of
// every genome in the map. The map maps genome key to genome.
type FitnessFunc func(genomes map[int]*Genome) error

// NewMinimalGenome creates the seed genome of the encoding: every input node
// connected to the output node with a random weight in [0,1). The seed
// topology is a constant of the encoding, so its genes always carry
// innovation numbers 1..NumInputs regardless of which genome draws them
// first; the shared counter is advanced past them.
func NewMinimalGenome(rng *rand.Rand, counter *InnovationCounter) (*Genome, error) {
	connections := make(map[int]*ConnectionGene, NumInputs)
	for i := 1; i <= NumInputs; i++ {
		connections[i] = NewConnectionGene(i, OutputNodeID, rng.Float64(), true, i)
	}
	counter.Observe(NumInputs)
	return NewGenome(connections, WithRand(rng), WithInnovationCounter(counter))
}

// Population holds the state of the NEAT evolutionary process. It owns the
// process-wide innovation counter shared by every genome it creates, so a
// number issued anywhere in the run is never reused.
type Population struct {
	Config     *Config
	Genomes    map[int]*Genome // Current generation (maps genome key -> genome).
	SpeciesSet *SpeciesSet
	Generation int
	BestGenome *Genome // Best genome found so far.

	counter       *InnovationCounter
	rng           *rand.Rand
	logger        *slog.Logger
	nextGenomeKey int
}

// NewPopulation creates a population of minimal genomes. A nil rng gets a
// time-seeded source; a nil logger gets slog.Default().
func NewPopulation(config *Config, rng *rand.Rand, logger *slog.Logger) (*Population, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &Population{
		Config:        config,
		Genomes:       make(map[int]*Genome, config.Neat.PopSize),
		SpeciesSet:    NewSpeciesSet(&config.SpeciesSet, &config.Genome),
		counter:       NewInnovationCounter(0),
		rng:           rng,
		logger:        logger,
		nextGenomeKey: 1,
	}
	for i := 0; i < config.Neat.PopSize; i++ {
		g, err := NewMinimalGenome(rng, p.counter)
		if err != nil {
			return nil, fmt.Errorf("failed to seed population: %w", err)
		}
		p.Genomes[p.getNextKey()] = g
	}
	return p, nil
}

// getNextKey returns the next available genome key.
func (p *Population) getNextKey() int {
	key := p.nextGenomeKey
	p.nextGenomeKey++
	return key
}

// RunGeneration executes a single generation: fitness evaluation, speciation,
// and reproduction. It returns the winning genome if the fitness threshold is
// met this generation, otherwise nil.
func (p *Population) RunGeneration(fitnessFunc FitnessFunc) (*Genome, error) {
	p.Generation++

	if err := fitnessFunc(p.Genomes); err != nil {
		return nil, fmt.Errorf("fitness evaluation failed in generation %d: %w", p.Generation, err)
	}

	currentBest := p.findBestGenome()
	if p.BestGenome == nil || (currentBest != nil && currentBest.Fitness > p.BestGenome.Fitness) {
		p.BestGenome = currentBest
	}

	fitnesses := make([]float64, 0, len(p.Genomes))
	for _, g := range p.Genomes {
		fitnesses = append(fitnesses, g.Fitness)
	}

	p.SpeciesSet.Speciate(p.Genomes, p.Generation)

	p.logger.Info("generation evaluated",
		"generation", p.Generation,
		"species", len(p.SpeciesSet.Species),
		"best_fitness", currentBest.Fitness,
		"mean_fitness", stat.Mean(fitnesses, nil),
		"stdev_fitness", stat.StdDev(fitnesses, nil),
	)

	if !p.Config.Neat.NoFitnessTermination && p.BestGenome != nil &&
		p.BestGenome.Fitness >= p.Config.Neat.FitnessThreshold {
		return p.BestGenome, nil
	}

	p.Genomes = p.reproduce()
	return nil, nil
}

// Run executes generations until the fitness threshold is met or the
// configured generation limit is reached. It returns the best genome found.
func (p *Population) Run(fitnessFunc FitnessFunc) (*Genome, error) {
	for p.Generation < p.Config.Neat.MaxGenerations {
		winner, err := p.RunGeneration(fitnessFunc)
		if err != nil {
			return p.BestGenome, err
		}
		if winner != nil {
			p.logger.Info("fitness threshold met",
				"generation", p.Generation, "fitness", winner.Fitness)
			return winner, nil
		}
	}
	p.logger.Info("generation limit reached",
		"generations", p.Generation)
	return p.BestGenome, nil
}

// findBestGenome finds the genome with the highest fitness in the current
// population.
func (p *Population) findBestGenome() *Genome {
	var best *Genome
	maxFitness := math.Inf(-1)
	for _, g := range p.Genomes {
		if g.Fitness > maxFitness {
			maxFitness = g.Fitness
			best = g
		}
	}
	return best
}

// reproduce creates the next generation. Each species receives offspring in
// proportion to its share of adjusted mean fitness; its fittest members
// transfer unchanged under elitism, and the remainder are children of parents
// crossed over within the survival cutoff.
func (p *Population) reproduce() map[int]*Genome {
	speciesKeys := make([]int, 0, len(p.SpeciesSet.Species))
	meanFitnesses := make([]float64, 0, len(p.SpeciesSet.Species))
	for sid := range p.SpeciesSet.Species {
		speciesKeys = append(speciesKeys, sid)
	}
	sort.Ints(speciesKeys)
	for _, sid := range speciesKeys {
		meanFitnesses = append(meanFitnesses, p.SpeciesSet.Species[sid].MeanFitness())
	}

	// Adjusted fitness shifts every species onto a non-negative scale so a
	// proportional share can be computed even with negative raw fitness.
	minFitness := floats.Min(meanFitnesses)
	maxFitness := floats.Max(meanFitnesses)
	fitnessRange := math.Max(1.0, maxFitness-minFitness)
	adjusted := make([]float64, len(meanFitnesses))
	adjustedSum := 0.0
	for i, mf := range meanFitnesses {
		adjusted[i] = (mf - minFitness) / fitnessRange
		adjustedSum += adjusted[i]
	}

	popSize := p.Config.Neat.PopSize
	spawnAmounts := make([]int, len(speciesKeys))
	total := 0
	for i := range speciesKeys {
		var share float64
		if adjustedSum > 0 {
			share = adjusted[i] / adjustedSum * float64(popSize)
		} else {
			share = float64(popSize) / float64(len(speciesKeys))
		}
		spawnAmounts[i] = int(math.Round(share))
		if spawnAmounts[i] < 1 {
			spawnAmounts[i] = 1
		}
		total += spawnAmounts[i]
	}
	// Spread rounding drift across species so the new generation lands
	// exactly on pop_size; no species drops below one offspring.
	for i := 0; total != popSize; i = (i + 1) % len(spawnAmounts) {
		if total < popSize {
			spawnAmounts[i]++
			total++
		} else if spawnAmounts[i] > 1 {
			spawnAmounts[i]--
			total--
		}
	}

	newPopulation := make(map[int]*Genome, popSize)
	for i, sid := range speciesKeys {
		s := p.SpeciesSet.Species[sid]
		spawn := spawnAmounts[i]

		members := make([]*Genome, 0, len(s.Members))
		for _, g := range s.Members {
			members = append(members, g)
		}
		sort.Slice(members, func(a, b int) bool {
			if members[a].Fitness != members[b].Fitness {
				return members[a].Fitness > members[b].Fitness
			}
			return members[a].LastInnovationNumber() < members[b].LastInnovationNumber()
		})

		for e := 0; e < p.Config.Reproduction.Elitism && e < len(members) && spawn > 0; e++ {
			newPopulation[p.getNextKey()] = members[e]
			spawn--
		}

		cutoff := int(math.Ceil(p.Config.Reproduction.SurvivalThreshold * float64(len(members))))
		if cutoff < 1 {
			cutoff = 1
		}
		parents := members[:cutoff]

		for ; spawn > 0; spawn-- {
			parent1 := parents[p.rng.Intn(len(parents))]
			parent2 := parents[p.rng.Intn(len(parents))]

			child, err := Crossover(p.rng, parent1, parent2, WithInnovationCounter(p.counter))
			if err != nil {
				// Parents always carry genes, so this indicates a programming
				// error rather than a recoverable state.
				p.logger.Error("crossover failed", "species", sid, "error", err)
				continue
			}
			newPopulation[p.getNextKey()] = child
		}
	}
	return newPopulation
}
