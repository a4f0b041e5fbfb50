// Package nn evaluates a NEAT genome as a feed-forward neural network.
package nn

import (
	"fmt"
	"sort"

	"github.com/evolvable/neat-go/neat"
)

// FeedForwardNetwork is the phenotype of a genome: the graph of its enabled
// connections, activated in topological order. Disabled connections do not
// participate in evaluation.
type FeedForwardNetwork struct {
	evalOrder  []int                          // Non-input node ids in activation order.
	incoming   map[int][]*neat.ConnectionGene // Node id -> enabled incoming connections.
	activation neat.ActivationType
}

// CreateFeedForwardNetwork builds a runnable network from a genome. The
// activation function is selected by name. Returns an error if the enabled
// connection graph contains a cycle, which a feed-forward phenotype cannot
// evaluate.
func CreateFeedForwardNetwork(g *neat.Genome, activationName string) (*FeedForwardNetwork, error) {
	activation, err := neat.GetActivation(activationName)
	if err != nil {
		return nil, fmt.Errorf("failed to build network: %w", err)
	}

	incoming := make(map[int][]*neat.ConnectionGene)
	inDegree := make(map[int]int, len(g.Nodes))
	graph := make(map[int][]int, len(g.Nodes))
	for id := range g.Nodes {
		inDegree[id] = 0
	}
	for _, cg := range g.Connections {
		if !cg.Enabled {
			continue
		}
		incoming[cg.OutNode] = append(incoming[cg.OutNode], cg)
		graph[cg.InNode] = append(graph[cg.InNode], cg.OutNode)
		inDegree[cg.OutNode]++
	}

	// Kahn's algorithm; the queue stays sorted so the order is deterministic.
	queue := make([]int, 0, len(inDegree))
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	sort.Ints(queue)

	evalOrder := make([]int, 0, len(inDegree))
	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		if id > neat.NumInputs {
			evalOrder = append(evalOrder, id)
		}

		neighbors := graph[id]
		sort.Ints(neighbors)
		for _, next := range neighbors {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
		sort.Ints(queue)
	}
	if visited != len(g.Nodes) {
		return nil, fmt.Errorf("failed to build network: enabled connection graph contains a cycle")
	}

	return &FeedForwardNetwork{
		evalOrder:  evalOrder,
		incoming:   incoming,
		activation: activation,
	}, nil
}

// Activate computes the network's output for the given input values, one per
// input node (ids 1..NumInputs). The return holds one value per output node.
func (net *FeedForwardNetwork) Activate(inputs []float64) ([]float64, error) {
	if len(inputs) != neat.NumInputs {
		return nil, fmt.Errorf("mismatch between input count (%d) and network input nodes (%d)",
			len(inputs), neat.NumInputs)
	}

	nodeValues := make(map[int]float64, len(net.evalOrder)+neat.NumInputs)
	for i, v := range inputs {
		nodeValues[i+1] = v
	}

	for _, id := range net.evalOrder {
		sum := 0.0
		for _, cg := range net.incoming[id] {
			sum += nodeValues[cg.InNode] * cg.Weight
		}
		nodeValues[id] = net.activation(sum)
	}

	return []float64{nodeValues[neat.OutputNodeID]}, nil
}
