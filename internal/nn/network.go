// Package nn implements a fully connected feed-forward ReLU network over flat
// buffers.
//
// A Network owns four kinds of buffers, all sized once from its topology:
//   - weights: one entry per connection, see topology.Layout for the order
//   - biases: one weight per non-input node, multiplied by Config.Bias
//   - outputs and gradients: one entry per node, input layer first
//   - targets: one entry per output node
//
// One training example runs Forward then Backward:
//
//	net, err := nn.New(topology.Topology{2, 3, 1}, nn.Config{})
//	outputs, err := net.Forward([]float64{0.5, 1})
//	gradients, err := net.Backward([]float64{1})
//
// Weight updates are left to the caller; EdgeGradients exposes the per-weight
// error signal. A Network is not safe for concurrent use.
package nn

import (
	"fmt"

	"github.com/born-ml/ffnet/internal/parallel"
	"github.com/born-ml/ffnet/internal/prng"
	"github.com/born-ml/ffnet/internal/topology"
	"gonum.org/v1/gonum/mat"
)

// Config holds network configuration.
type Config struct {
	Bias        float64         // Constant bias input (default: 1.0)
	DisableBias bool            // Force a bias input of 0
	Seed        uint64          // Generator seed (default: prng.BuildSeed())
	SkipDraws   int             // Leading draws discarded (default: DefaultSkipDraws, negative: none)
	Source      Source          // Overrides the seeded generator when set
	Parallel    parallel.Config // Intra-layer parallelism for Forward (default: sequential)
}

// Phase is the progress of the current training example.
type Phase int

// Phases of one example, in order.
const (
	PhaseIdle Phase = iota
	PhaseForwardDone
	PhaseOutputGradient
	PhaseHiddenGradients
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseForwardDone:
		return "forward done"
	case PhaseOutputGradient:
		return "output gradient computed"
	case PhaseHiddenGradients:
		return "hidden gradients propagated"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Network is a feed-forward network instance and its numeric state.
type Network struct {
	topo   topology.Topology
	layout *topology.Layout
	cfg    Config

	weights   []float64
	biases    []float64
	outputs   []float64
	gradients []float64
	targets   []float64

	// weightMats[l] is a topo[l] x topo[l-1] view over the weights feeding
	// layer l; gradVecs[l] views the gradients of layer l. Both alias the
	// buffers above.
	weightMats []*mat.Dense
	gradVecs   []*mat.VecDense

	phase Phase
}

// New creates a network for t and initializes its weights.
//
// Connection weights are drawn from the configured generator and normalized
// to sum to 1. Bias weights start at zero.
func New(t topology.Topology, cfg Config) (*Network, error) {
	topo, err := topology.New(t...)
	if err != nil {
		return nil, err
	}

	switch {
	case cfg.DisableBias:
		cfg.Bias = 0
	case cfg.Bias == 0:
		cfg.Bias = 1.0
	}
	if cfg.SkipDraws == 0 {
		cfg.SkipDraws = DefaultSkipDraws
	}
	if cfg.Seed == 0 {
		cfg.Seed = prng.BuildSeed()
	}
	src := cfg.Source
	if src == nil {
		src = prng.New(cfg.Seed)
	}

	n := &Network{
		topo:      topo,
		layout:    topology.NewLayout(topo),
		cfg:       cfg,
		weights:   make([]float64, topo.NumWeights()),
		biases:    make([]float64, topo.NumBiases()),
		outputs:   make([]float64, topo.NumNodes()),
		gradients: make([]float64, topo.NumNodes()),
		targets:   make([]float64, topo.OutputSize()),
	}
	if err := fillWeights(n.weights, src, cfg.SkipDraws); err != nil {
		return nil, fmt.Errorf("initialize %s: %w", topo, err)
	}
	n.buildViews()
	return n, nil
}

func (n *Network) buildViews() {
	n.weightMats = make([]*mat.Dense, len(n.topo))
	n.gradVecs = make([]*mat.VecDense, len(n.topo))
	for l := range n.topo {
		start, end := n.layout.NodeRange(l)
		n.gradVecs[l] = mat.NewVecDense(n.topo[l], n.gradients[start:end:end])
		if l == 0 {
			continue
		}
		wStart := n.layout.WeightOffset(l)
		wEnd := wStart + n.topo[l]*n.topo[l-1]
		n.weightMats[l] = mat.NewDense(n.topo[l], n.topo[l-1], n.weights[wStart:wEnd:wEnd])
	}
}

// Topology returns the network's topology.
func (n *Network) Topology() topology.Topology {
	return n.topo.Clone()
}

// Layout returns the layer-offset table used to index the buffers.
func (n *Network) Layout() *topology.Layout {
	return n.layout
}

// Config returns the effective configuration, defaults applied.
func (n *Network) Config() Config {
	return n.cfg
}

// Phase returns how far the current example has progressed.
func (n *Network) Phase() Phase {
	return n.phase
}

// Weights returns a copy of the connection weight vector. Use SetWeights to
// change it.
func (n *Network) Weights() []float64 {
	return append([]float64(nil), n.weights...)
}

// Biases returns a copy of the bias weight vector. Use SetBiases to change it.
func (n *Network) Biases() []float64 {
	return append([]float64(nil), n.biases...)
}

// Outputs returns the node output vector of the last forward pass.
func (n *Network) Outputs() []float64 {
	return n.outputs
}

// Gradients returns the node gradient vector of the last backward pass.
func (n *Network) Gradients() []float64 {
	return n.gradients
}

// Targets returns the target vector of the last backward pass.
func (n *Network) Targets() []float64 {
	return n.targets
}

// Output returns the output-layer slice of the node output vector.
func (n *Network) Output() []float64 {
	return n.LayerOutputs(len(n.topo) - 1)
}

// LayerOutputs returns the outputs of one layer.
func (n *Network) LayerOutputs(layer int) []float64 {
	start, end := n.layout.NodeRange(layer)
	return n.outputs[start:end]
}

// LayerGradients returns the gradients of one layer.
func (n *Network) LayerGradients(layer int) []float64 {
	start, end := n.layout.NodeRange(layer)
	return n.gradients[start:end]
}

// SetWeights copies w into the connection weight vector.
func (n *Network) SetWeights(w []float64) error {
	if len(w) != len(n.weights) {
		return fmt.Errorf("%w: got %d weights, topology %s has %d", ErrShapeMismatch, len(w), n.topo, len(n.weights))
	}
	copy(n.weights, w)
	n.phase = PhaseIdle
	return nil
}

// SetBiases copies b into the bias weight vector.
func (n *Network) SetBiases(b []float64) error {
	if len(b) != len(n.biases) {
		return fmt.Errorf("%w: got %d biases, topology %s has %d", ErrShapeMismatch, len(b), n.topo, len(n.biases))
	}
	copy(n.biases, b)
	n.phase = PhaseIdle
	return nil
}

// Fill sets every connection weight to weight and every bias weight to bias.
func (n *Network) Fill(weight, bias float64) {
	for i := range n.weights {
		n.weights[i] = weight
	}
	for i := range n.biases {
		n.biases[i] = bias
	}
	n.phase = PhaseIdle
}

// Reset zeroes the outputs, gradients and targets and forgets the recorded
// forward pass. Forward always resets before writing the input layer.
func (n *Network) Reset() {
	clear(n.outputs)
	clear(n.gradients)
	clear(n.targets)
	n.phase = PhaseIdle
}

// Clone returns an independent copy of the network, buffers included.
func (n *Network) Clone() *Network {
	c := &Network{
		topo:      n.topo.Clone(),
		layout:    n.layout,
		cfg:       n.cfg,
		weights:   append([]float64(nil), n.weights...),
		biases:    append([]float64(nil), n.biases...),
		outputs:   append([]float64(nil), n.outputs...),
		gradients: append([]float64(nil), n.gradients...),
		targets:   append([]float64(nil), n.targets...),
		phase:     n.phase,
	}
	c.buildViews()
	return c
}
