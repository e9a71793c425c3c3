package topology

import "fmt"

// Layout is the layer-offset table that maps (layer, node) coordinates onto
// the flat node, weight and bias buffers of a network.
//
// Node buffers (outputs, gradients) hold every node of every layer, input
// layer first. The weight buffer holds, for each layer l >= 1 and each node n
// of that layer, the topology[l-1] incoming weights of n in a contiguous row:
//
//	weights: [ layer1 node0 | layer1 node1 | ... | layer2 node0 | ... ]
//	           p0 p1 ..       p0 p1 ..             p0 p1 ..
//
// The bias buffer holds one entry per non-input node in the same order.
type Layout struct {
	topo    Topology
	nodes   []int // nodes[l]: first node slot of layer l
	weights []int // weights[l]: first weight slot feeding layer l (l >= 1)
	biases  []int // biases[l]: first bias slot of layer l (l >= 1)
}

// NewLayout builds the offset table for t.
func NewLayout(t Topology) *Layout {
	l := &Layout{
		topo:    t.Clone(),
		nodes:   make([]int, len(t)+1),
		weights: make([]int, len(t)+1),
		biases:  make([]int, len(t)+1),
	}
	// The input layer owns no weights or biases, so layer 1 starts at slot 0.
	for i, n := range t {
		l.nodes[i+1] = l.nodes[i] + n
		if i == 0 {
			continue
		}
		l.weights[i+1] = l.weights[i] + t[i-1]*n
		l.biases[i+1] = l.biases[i] + n
	}
	return l
}

// Topology returns the topology the layout was built from.
func (l *Layout) Topology() Topology {
	return l.topo
}

// NodeOffset returns the first node slot of layer.
func (l *Layout) NodeOffset(layer int) int {
	l.checkLayer(layer, 0)
	return l.nodes[layer]
}

// NodeRange returns the half-open node slot range [start, end) of layer.
func (l *Layout) NodeRange(layer int) (start, end int) {
	l.checkLayer(layer, 0)
	return l.nodes[layer], l.nodes[layer+1]
}

// NodeIndex returns the node slot of node within layer.
func (l *Layout) NodeIndex(layer, node int) int {
	l.checkLayer(layer, 0)
	l.checkNode(layer, node)
	return l.nodes[layer] + node
}

// WeightOffset returns the first weight slot feeding layer. Layer must be >= 1.
func (l *Layout) WeightOffset(layer int) int {
	l.checkLayer(layer, 1)
	return l.weights[layer]
}

// WeightRow returns the weight slot range [start, end) holding the incoming
// weights of node within layer.
func (l *Layout) WeightRow(layer, node int) (start, end int) {
	start = l.EdgeIndex(layer, 0, node)
	return start, start + l.topo[layer-1]
}

// EdgeIndex returns the weight slot of the connection from node prev of
// layer-1 to node of layer.
func (l *Layout) EdgeIndex(layer, prev, node int) int {
	l.checkLayer(layer, 1)
	l.checkNode(layer, node)
	l.checkNode(layer-1, prev)
	return l.weights[layer] + node*l.topo[layer-1] + prev
}

// BiasOffset returns the first bias slot of layer. Layer must be >= 1.
func (l *Layout) BiasOffset(layer int) int {
	l.checkLayer(layer, 1)
	return l.biases[layer]
}

// BiasIndex returns the bias slot of node within layer.
func (l *Layout) BiasIndex(layer, node int) int {
	l.checkLayer(layer, 1)
	l.checkNode(layer, node)
	return l.biases[layer] + node
}

func (l *Layout) checkLayer(layer, lowest int) {
	if layer < lowest || layer >= len(l.topo) {
		panic(fmt.Sprintf("topology: layer %d out of range [%d, %d)", layer, lowest, len(l.topo)))
	}
}

func (l *Layout) checkNode(layer, node int) {
	if node < 0 || node >= l.topo[layer] {
		panic(fmt.Sprintf("topology: node %d out of range for layer %d with %d nodes", node, layer, l.topo[layer]))
	}
}
