package nn

import (
	"fmt"

	"github.com/born-ml/ffnet/internal/parallel"
	"gonum.org/v1/gonum/floats"
)

// Forward runs the forward pass for one example.
//
// The scratch buffers are reset, input is copied into the input-layer slots,
// and every following layer is computed from the one before it:
//
//	output[n] = ReLU(Σ_p output[p]*weight[p→n] + bias*biasWeight[n])
//
// Parameters:
//   - input: One value per input node
//
// Returns the node output vector, input layer first. The slice is owned by the
// network and overwritten by the next call. Returns ErrShapeMismatch, leaving
// the network untouched, if len(input) is not the input layer size.
func (n *Network) Forward(input []float64) ([]float64, error) {
	if len(input) != n.topo.InputSize() {
		return nil, fmt.Errorf("%w: input has %d values, topology %s expects %d",
			ErrShapeMismatch, len(input), n.topo, n.topo.InputSize())
	}

	n.Reset()
	copy(n.outputs, input)

	for layer := 1; layer < len(n.topo); layer++ {
		n.forwardLayer(layer)
	}

	n.phase = PhaseForwardDone
	return n.outputs, nil
}

func (n *Network) forwardLayer(layer int) {
	prevStart, prevEnd := n.layout.NodeRange(layer - 1)
	prev := n.outputs[prevStart:prevEnd]
	nodes := n.topo[layer]

	if n.cfg.Parallel.Sequential(nodes) {
		for node := 0; node < nodes; node++ {
			n.activate(layer, node, prev)
		}
		return
	}
	parallel.For(nodes, func(node int) {
		n.activate(layer, node, prev)
	}, n.cfg.Parallel)
}

// activate computes one node. It writes only the node's own output slot.
func (n *Network) activate(layer, node int, prev []float64) {
	slot := n.layout.NodeIndex(layer, node)
	wStart, wEnd := n.layout.WeightRow(layer, node)

	n.outputs[slot] += floats.Dot(prev, n.weights[wStart:wEnd])
	n.outputs[slot] += n.cfg.Bias * n.biases[n.layout.BiasIndex(layer, node)]
	n.outputs[slot] = ReLU(n.outputs[slot])
}
