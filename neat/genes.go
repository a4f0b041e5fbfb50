package neat

import "fmt"

// NodeType classifies a node within the conceptual input -> hidden -> output
// layering of the network.
type NodeType int

const (
	Input NodeType = iota
	Hidden
	Output
)

// String returns a human-readable name for the node type.
func (t NodeType) String() string {
	switch t {
	case Input:
		return "INPUT"
	case Hidden:
		return "HIDDEN"
	case Output:
		return "OUTPUT"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// Fixed node ids of the encoding. Input nodes always occupy ids
// 1..NumInputs and the single output node is OutputNodeID; these nodes exist
// in every genome regardless of its connection genes.
const (
	NumInputs    = 3
	NumOutputs   = 1
	OutputNodeID = NumInputs + 1
)

// --------------------------- NodeGene ---------------------------

// NodeGene represents a node (neuron) in the neural network genome.
// Both fields are fixed for the life of the gene.
type NodeGene struct {
	ID   int
	Type NodeType
}

// NewNodeGene creates a new NodeGene.
func NewNodeGene(id int, nodeType NodeType) *NodeGene {
	return &NodeGene{ID: id, Type: nodeType}
}

// String returns a string representation of the NodeGene.
func (ng *NodeGene) String() string {
	return fmt.Sprintf("NodeGene(ID: %d, Type: %s)", ng.ID, ng.Type)
}

// Copy creates a copy of the NodeGene.
func (ng *NodeGene) Copy() *NodeGene {
	return &NodeGene{ID: ng.ID, Type: ng.Type}
}

// --------------------------- ConnectionGene ---------------------------

// ConnectionGene represents a directed, weighted edge between two node ids.
// InNode, OutNode and InnovationNumber are fixed at creation; Weight and
// Enabled may be changed by the mutation operators. A disabled connection is
// retained for lineage but excluded from phenotype evaluation.
type ConnectionGene struct {
	InNode           int
	OutNode          int
	Weight           float64
	Enabled          bool
	InnovationNumber int
}

// NewConnectionGene creates a new ConnectionGene.
func NewConnectionGene(inNode, outNode int, weight float64, enabled bool, innovationNumber int) *ConnectionGene {
	return &ConnectionGene{
		InNode:           inNode,
		OutNode:          outNode,
		Weight:           weight,
		Enabled:          enabled,
		InnovationNumber: innovationNumber,
	}
}

// String returns a string representation of the ConnectionGene.
func (cg *ConnectionGene) String() string {
	return fmt.Sprintf("ConnGene(Innov: %d, %d->%d, Weight: %.3f, Enabled: %t)",
		cg.InnovationNumber, cg.InNode, cg.OutNode, cg.Weight, cg.Enabled)
}

// Copy creates a copy of the ConnectionGene.
func (cg *ConnectionGene) Copy() *ConnectionGene {
	return &ConnectionGene{
		InNode:           cg.InNode,
		OutNode:          cg.OutNode,
		Weight:           cg.Weight,
		Enabled:          cg.Enabled,
		InnovationNumber: cg.InnovationNumber,
	}
}
