package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evolvable/neat-go/neat"
)

func buildGenome(t *testing.T, genes ...*neat.ConnectionGene) *neat.Genome {
	t.Helper()
	connections := make(map[int]*neat.ConnectionGene, len(genes))
	for _, cg := range genes {
		connections[cg.InnovationNumber] = cg
	}
	g, err := neat.NewGenome(connections)
	require.NoError(t, err)
	return g
}

func TestActivateWeightedSum(t *testing.T) {
	g := buildGenome(t,
		neat.NewConnectionGene(1, 4, 0.5, true, 1),
		neat.NewConnectionGene(2, 4, -1.0, true, 2),
		neat.NewConnectionGene(3, 4, 2.0, true, 3),
	)

	net, err := CreateFeedForwardNetwork(g, "identity")
	require.NoError(t, err)

	// 0.5*1 + (-1.0)*2 + 2.0*3 = 4.5
	out, err := net.Activate([]float64{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, out, neat.NumOutputs)
	assert.InDelta(t, 4.5, out[0], 1e-12)
}

func TestActivateHiddenNode(t *testing.T) {
	// 1 -> 5 -> 4 with a direct 2 -> 4 path alongside.
	g := buildGenome(t,
		neat.NewConnectionGene(1, 5, 2.0, true, 1),
		neat.NewConnectionGene(5, 4, 3.0, true, 2),
		neat.NewConnectionGene(2, 4, 1.0, true, 3),
	)

	net, err := CreateFeedForwardNetwork(g, "identity")
	require.NoError(t, err)

	// hidden = 2.0*1 = 2; output = 3.0*2 + 1.0*5 = 11
	out, err := net.Activate([]float64{1, 5, 0})
	require.NoError(t, err)
	assert.InDelta(t, 11.0, out[0], 1e-12)
}

func TestActivateSkipsDisabledConnections(t *testing.T) {
	g := buildGenome(t,
		neat.NewConnectionGene(1, 4, 1.0, true, 1),
		neat.NewConnectionGene(2, 4, 100.0, false, 2),
	)

	net, err := CreateFeedForwardNetwork(g, "identity")
	require.NoError(t, err)

	out, err := net.Activate([]float64{3, 1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, out[0], 1e-12)
}

func TestCreateFeedForwardNetworkRejectsCycle(t *testing.T) {
	g := buildGenome(t,
		neat.NewConnectionGene(1, 4, 0.5, true, 1),
		neat.NewConnectionGene(5, 6, 0.5, true, 2),
		neat.NewConnectionGene(6, 5, 0.5, true, 3),
	)

	_, err := CreateFeedForwardNetwork(g, "sigmoid")
	assert.ErrorContains(t, err, "cycle")
}

func TestCreateFeedForwardNetworkRejectsUnknownActivation(t *testing.T) {
	g := buildGenome(t, neat.NewConnectionGene(1, 4, 0.5, true, 1))

	_, err := CreateFeedForwardNetwork(g, "softmax")
	assert.Error(t, err)
}

func TestActivateRejectsWrongInputCount(t *testing.T) {
	g := buildGenome(t, neat.NewConnectionGene(1, 4, 0.5, true, 1))
	net, err := CreateFeedForwardNetwork(g, "sigmoid")
	require.NoError(t, err)

	_, err = net.Activate([]float64{1, 2})
	assert.Error(t, err)
}
