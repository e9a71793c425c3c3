package nn

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Backward computes the node gradients for the example of the last Forward.
//
// Output layer:
//
//	gradient[v] = (target[v] - output[v]) * ReLU'(output[v])
//
// Hidden layers, from the last hidden layer back to the first:
//
//	gradient[h] = ReLU'(output[h]) * Σ_n gradient[n]*weight[h→n]
//
// Input-layer gradients stay zero. For the loss ½Σ(target-output)² each
// gradient is the negative derivative of the loss with respect to the node's
// pre-activation.
//
// Parameters:
//   - target: One value per output node
//
// Returns the node gradient vector, owned by the network. Returns
// ErrShapeMismatch for a wrongly sized target and ErrPreconditionViolated when
// no forward pass has been recorded since construction, Reset or a weight change.
func (n *Network) Backward(target []float64) ([]float64, error) {
	if len(target) != n.topo.OutputSize() {
		return nil, fmt.Errorf("%w: target has %d values, topology %s expects %d",
			ErrShapeMismatch, len(target), n.topo, n.topo.OutputSize())
	}
	if n.phase == PhaseIdle {
		return nil, ErrPreconditionViolated
	}

	copy(n.targets, target)
	clear(n.gradients)

	// A single-layer network has no units to assign a gradient to.
	if len(n.topo) > 1 {
		n.outputGradients()
		n.phase = PhaseOutputGradient
		n.hiddenGradients()
	}
	n.phase = PhaseHiddenGradients
	return n.gradients, nil
}

func (n *Network) outputGradients() {
	last := len(n.topo) - 1
	start := n.layout.NodeOffset(last)
	for v := range n.targets {
		out := n.outputs[start+v]
		n.gradients[start+v] = (n.targets[v] - out) * ReLUDerivative(out)
	}
}

// hiddenGradients propagates the output gradients one layer at a time, each
// layer reading only the already finished layer after it.
func (n *Network) hiddenGradients() {
	for layer := len(n.topo) - 2; layer >= 1; layer-- {
		// gradient(layer) = W(layer+1)ᵀ · gradient(layer+1)
		n.gradVecs[layer].MulVec(n.weightMats[layer+1].T(), n.gradVecs[layer+1])

		start := n.layout.NodeOffset(layer)
		for h := 0; h < n.topo[layer]; h++ {
			n.gradients[start+h] *= ReLUDerivative(n.outputs[start+h])
		}
	}
}

// EdgeGradients writes the error signal of every connection and bias weight
// for the last Backward:
//
//	dw[p→n] = gradient[n] * output[p]
//	db[n]   = gradient[n] * bias
//
// These equal the negative loss derivatives with respect to the weights. No
// weight is changed.
//
// Parameters:
//   - dw: Destination with one entry per connection weight
//   - db: Destination with one entry per bias weight
func (n *Network) EdgeGradients(dw, db []float64) error {
	if len(dw) != len(n.weights) || len(db) != len(n.biases) {
		return fmt.Errorf("%w: got %d/%d weight/bias slots, topology %s has %d/%d",
			ErrShapeMismatch, len(dw), len(db), n.topo, len(n.weights), len(n.biases))
	}
	if n.phase != PhaseHiddenGradients {
		return fmt.Errorf("edge gradients before backward pass: %w", ErrPreconditionViolated)
	}

	for layer := 1; layer < len(n.topo); layer++ {
		prev := n.LayerOutputs(layer - 1)
		for node := 0; node < n.topo[layer]; node++ {
			g := n.gradients[n.layout.NodeIndex(layer, node)]
			wStart, wEnd := n.layout.WeightRow(layer, node)
			floats.ScaleTo(dw[wStart:wEnd], g, prev)
			db[n.layout.BiasIndex(layer, node)] = g * n.cfg.Bias
		}
	}
	return nil
}
