// Package neatgo provides a Go implementation of the genome encoding and
// genetic operators of NEAT (NeuroEvolution of Augmenting Topologies).
//
// NEAT is a genetic algorithm for the generation of evolving artificial neural
// networks. It alters both the weighting parameters and structures of networks,
// aligning genomes of different topology through historical markers (innovation
// numbers) rather than positional matching.
//
// The neat package holds the genome representation, the structural mutation
// operators, crossover, and the compatibility distance used for speciation.
// The neat/nn subpackage turns a genome into an evaluable feed-forward network.
//
// Basic usage:
//
//	config := neat.DefaultConfig()
//	pop, err := neat.NewPopulation(config, nil, nil)
//	if err != nil {
//		log.Fatalf("Error creating population: %v", err)
//	}
//
//	for {
//		winner, err := pop.RunGeneration(evalGenomes)
//		if err != nil {
//			log.Fatalf("Error running generation: %v", err)
//		}
//		if winner != nil {
//			fmt.Println("Solution found!")
//			break
//		}
//	}
package neatgo
