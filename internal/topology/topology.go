// Package topology describes the shape of a fully connected feed-forward
// network and the flat buffer layout derived from it.
//
// A Topology is an ordered list of layer sizes. The first entry is the input
// layer, the last entry the output layer:
//
//	t, _ := topology.New(2, 3, 1)
//	t.NumWeights() // 2*3 + 3*1 = 9
//	t.NumNodes()   // 2 + 3 + 1 = 6
package topology

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTopology is returned for topologies that cannot size a network.
var ErrInvalidTopology = errors.New("invalid topology")

// Topology is an ordered sequence of per-layer node counts.
type Topology []int

// New creates a topology from layer sizes.
//
// Only what is needed to size the buffers is checked: at least one layer and
// every layer with at least one node.
func New(sizes ...int) (Topology, error) {
	if len(sizes) == 0 {
		return nil, fmt.Errorf("%w: no layers", ErrInvalidTopology)
	}
	for i, n := range sizes {
		if n <= 0 {
			return nil, fmt.Errorf("%w: layer %d has %d nodes", ErrInvalidTopology, i, n)
		}
	}
	t := make(Topology, len(sizes))
	copy(t, sizes)
	return t, nil
}

// Parse parses a topology from a string such as "2 3 1" or "2,3,1".
func Parse(s string) (Topology, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	sizes := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: layer %d: %w", ErrInvalidTopology, i, err)
		}
		sizes[i] = n
	}
	return New(sizes...)
}

// NumLayers returns the number of layers, input layer included.
func (t Topology) NumLayers() int {
	return len(t)
}

// InputSize returns the number of input nodes.
func (t Topology) InputSize() int {
	return t[0]
}

// OutputSize returns the number of output nodes.
func (t Topology) OutputSize() int {
	return t[len(t)-1]
}

// NumNodes returns the total node count over all layers.
func (t Topology) NumNodes() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}

// NumWeights returns the number of connection weights between consecutive
// layers. Bias weights are not counted.
func (t Topology) NumWeights() int {
	total := 0
	for i := 1; i < len(t); i++ {
		total += t[i-1] * t[i]
	}
	return total
}

// NumBiases returns the number of bias weights, one per non-input node.
func (t Topology) NumBiases() int {
	return t.NumNodes() - t[0]
}

// Clone returns an independent copy of t.
func (t Topology) Clone() Topology {
	c := make(Topology, len(t))
	copy(c, t)
	return c
}

// Equal reports whether two topologies have the same layer sizes.
func (t Topology) Equal(other Topology) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the topology as "2-3-1".
func (t Topology) String() string {
	parts := make([]string, len(t))
	for i, n := range t {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "-")
}
