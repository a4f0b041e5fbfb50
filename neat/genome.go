package neat

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/gosuri/uitable"
)

// ErrEmptyGenome is returned when a genome is constructed with no connection
// genes. The last-innovation-number lookup has no defined result for an empty
// connection map, so this is a precondition of the encoding.
var ErrEmptyGenome = errors.New("genome requires at least one connection gene")

// Genome represents an individual organism: a set of connection genes keyed by
// innovation number, plus the node set derived from them. The three input
// nodes (ids 1..3) and the output node (id 4) exist in every genome; hidden
// nodes are inferred from connection endpoints.
//
// A genome exclusively owns its two tables and its innovation counter; it must
// not be shared across concurrent callers.
type Genome struct {
	Nodes       map[int]*NodeGene       // Map node id -> NodeGene
	Connections map[int]*ConnectionGene // Map innovation number -> ConnectionGene
	Fitness     float64                 // Set externally by the fitness evaluator.

	counter *InnovationCounter
	rng     *rand.Rand
}

// GenomeOption adjusts genome construction.
type GenomeOption func(*Genome)

// WithRand injects the random number source used by the mutation operators,
// making evolutionary runs reproducible with a fixed seed.
func WithRand(rng *rand.Rand) GenomeOption {
	return func(g *Genome) { g.rng = rng }
}

// WithInnovationCounter injects a shared innovation counter. A population
// driver passes one counter to every genome it creates so that innovation
// numbers stay unique across the whole evolving population; without this
// option each genome seeds a private counter from its own gene set.
func WithInnovationCounter(counter *InnovationCounter) GenomeOption {
	return func(g *Genome) { g.counter = counter }
}

// NewGenome creates a genome from a mapping of innovation number to
// connection gene. The node table is derived from the connection endpoints.
// The connection map is owned by the genome after this call.
func NewGenome(connections map[int]*ConnectionGene, opts ...GenomeOption) (*Genome, error) {
	if len(connections) == 0 {
		return nil, ErrEmptyGenome
	}

	g := &Genome{
		Nodes:       deriveNodes(connections),
		Connections: connections,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.counter == nil {
		g.counter = NewInnovationCounter(g.LastInnovationNumber())
	} else {
		// A shared counter must never fall behind genes created before it
		// started tracking this genome.
		g.counter.Observe(g.LastInnovationNumber())
	}
	return g, nil
}

// deriveNodes builds the node table for a connection set: the fixed inputs and
// output, plus a hidden node for every endpoint id not covered by them.
func deriveNodes(connections map[int]*ConnectionGene) map[int]*NodeGene {
	nodes := make(map[int]*NodeGene, NumInputs+NumOutputs)
	for id := 1; id <= NumInputs; id++ {
		nodes[id] = NewNodeGene(id, Input)
	}
	nodes[OutputNodeID] = NewNodeGene(OutputNodeID, Output)

	for _, cg := range connections {
		if _, ok := nodes[cg.InNode]; !ok {
			nodes[cg.InNode] = NewNodeGene(cg.InNode, Hidden)
		}
		if _, ok := nodes[cg.OutNode]; !ok {
			nodes[cg.OutNode] = NewNodeGene(cg.OutNode, Hidden)
		}
	}
	return nodes
}

// TotalNodes returns the count of all nodes in this genome.
func (g *Genome) TotalNodes() int {
	return len(g.Nodes)
}

// LastInnovationNumber returns the highest innovation number present in this
// genome's connection genes.
func (g *Genome) LastInnovationNumber() int {
	last := 0
	for innov := range g.Connections {
		if innov > last {
			last = innov
		}
	}
	return last
}

// Copy creates a deep copy of the genome. The copy gets its own tables and a
// private counter; the random source is shared with the original.
func (g *Genome) Copy() *Genome {
	nodes := make(map[int]*NodeGene, len(g.Nodes))
	for id, ng := range g.Nodes {
		nodes[id] = ng.Copy()
	}
	connections := make(map[int]*ConnectionGene, len(g.Connections))
	for innov, cg := range g.Connections {
		connections[innov] = cg.Copy()
	}
	return &Genome{
		Nodes:       nodes,
		Connections: connections,
		Fitness:     g.Fitness,
		counter:     NewInnovationCounter(g.LastInnovationNumber()),
		rng:         g.rng,
	}
}

// sortedNodeIDs returns the node ids in ascending order, giving the mutation
// operators a deterministic draw under a seeded random source.
func (g *Genome) sortedNodeIDs() []int {
	ids := make([]int, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// sortedInnovationNumbers returns the innovation numbers in ascending order.
func (g *Genome) sortedInnovationNumbers() []int {
	innovs := make([]int, 0, len(g.Connections))
	for innov := range g.Connections {
		innovs = append(innovs, innov)
	}
	sort.Ints(innovs)
	return innovs
}

// AddConnectionMutation picks two distinct nodes at random and connects them
// with a new enabled gene carrying a random weight in [0,1) and the next
// innovation number. Directionality follows the layering rule: an OUTPUT node
// is never the source against a HIDDEN or INPUT peer, and an INPUT node is
// always the source against a HIDDEN peer. If the chosen pair is already
// connected in either direction the mutation is silently skipped.
func (g *Genome) AddConnectionMutation() {
	ids := g.sortedNodeIDs()
	node1 := g.Nodes[ids[g.rng.Intn(len(ids))]]
	node2 := node1
	for node2.ID == node1.ID {
		node2 = g.Nodes[ids[g.rng.Intn(len(ids))]]
	}

	reversed := false
	if node1.Type == Output && (node2.Type == Hidden || node2.Type == Input) {
		reversed = true
	}
	if node1.Type == Hidden && node2.Type == Input {
		reversed = true
	}

	for _, cg := range g.Connections {
		if cg.InNode == node1.ID && cg.OutNode == node2.ID {
			return
		}
		if cg.InNode == node2.ID && cg.OutNode == node1.ID {
			return
		}
	}

	inNode, outNode := node1.ID, node2.ID
	if reversed {
		inNode, outNode = outNode, inNode
	}
	innov := g.counter.Next()
	g.Connections[innov] = NewConnectionGene(inNode, outNode, g.rng.Float64(), true, innov)
}

// AddNodeMutation splits a randomly chosen connection with a new hidden node:
//
//	o =========== o    old connection (disabled, retained for lineage)
//	o ==== o ==== o    two new connections
//
// The first new connection runs into the new node with weight 1.0; the second
// runs out of it carrying the old connection's weight, preserving the split
// edge's contribution. The first connection drawn gets the lower innovation
// number.
func (g *Genome) AddNodeMutation() {
	innovs := g.sortedInnovationNumbers()
	oldConnection := g.Connections[innovs[g.rng.Intn(len(innovs))]]
	oldConnection.Enabled = false

	newNode := NewNodeGene(g.TotalNodes()+1, Hidden)
	g.Nodes[newNode.ID] = newNode

	innov1 := g.counter.Next()
	g.Connections[innov1] = NewConnectionGene(oldConnection.InNode, newNode.ID, 1.0, true, innov1)

	innov2 := g.counter.Next()
	g.Connections[innov2] = NewConnectionGene(newNode.ID, oldConnection.OutNode, oldConnection.Weight, true, innov2)
}

// String returns a short summary of the genome.
func (g *Genome) String() string {
	return fmt.Sprintf("Genome(Nodes: %d, Connections: %d, Fitness: %.4f)",
		len(g.Nodes), len(g.Connections), g.Fitness)
}

// Table renders a human-readable dump of the genome's nodes and connections
// for debugging. The format is not stable or machine-parseable.
func (g *Genome) Table() string {
	var sb strings.Builder

	nodeTable := uitable.New()
	nodeTable.AddRow("NODE", "TYPE")
	for _, id := range g.sortedNodeIDs() {
		nodeTable.AddRow(id, g.Nodes[id].Type.String())
	}
	sb.WriteString(nodeTable.String())
	sb.WriteString("\n\n")

	connTable := uitable.New()
	connTable.AddRow("INNOV", "IN", "OUT", "WEIGHT", "ENABLED")
	for _, innov := range g.sortedInnovationNumbers() {
		cg := g.Connections[innov]
		connTable.AddRow(cg.InnovationNumber, cg.InNode, cg.OutNode,
			fmt.Sprintf("%.4f", cg.Weight), cg.Enabled)
	}
	sb.WriteString(connTable.String())
	sb.WriteString("\n")

	return sb.String()
}
