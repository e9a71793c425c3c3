// Package report prints network state to the console.
//
// Values use fixed notation with 9 decimals, one layer per line.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/born-ml/ffnet/internal/topology"
	"gonum.org/v1/gonum/floats"
)

// Precision is the number of decimals printed per value.
const Precision = 9

// State is the read-only view of a network the reports need.
type State interface {
	Topology() topology.Topology
	Layout() *topology.Layout
	Weights() []float64
	Biases() []float64
	Outputs() []float64
	Gradients() []float64
}

// Weights prints the incoming weights of every non-input layer, one line per
// layer in buffer order, then the bias weights and the weight total.
func Weights(w io.Writer, s State) error {
	topo := s.Topology()
	l := s.Layout()
	weights := s.Weights()
	biases := s.Biases()

	var b strings.Builder
	for layer := 1; layer < len(topo); layer++ {
		start := l.WeightOffset(layer)
		end := start + topo[layer-1]*topo[layer]
		fmt.Fprintf(&b, "layer %d weights: %s\n", layer, join(weights[start:end]))

		bStart := l.BiasOffset(layer)
		fmt.Fprintf(&b, "layer %d biases: %s\n", layer, join(biases[bStart:bStart+topo[layer]]))
	}
	fmt.Fprintf(&b, "total: %s\n", format(floats.Sum(weights)))

	_, err := io.WriteString(w, b.String())
	return err
}

// Outputs prints the node outputs, one line per layer, input layer first.
func Outputs(w io.Writer, s State) error {
	return perLayer(w, s.Layout(), s.Outputs())
}

// Gradients prints the node gradients, one line per layer, input layer first.
func Gradients(w io.Writer, s State) error {
	return perLayer(w, s.Layout(), s.Gradients())
}

func perLayer(w io.Writer, l *topology.Layout, values []float64) error {
	var b strings.Builder
	for layer := range l.Topology() {
		start, end := l.NodeRange(layer)
		b.WriteString(join(values[start:end]))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Example prints a one-line summary of a processed example.
func Example(w io.Writer, index int, input, target, output []float64, loss float64) error {
	_, err := fmt.Fprintf(w, "example %d: input [%s] target [%s] output [%s] loss %s\n",
		index, join(input), join(target), join(output), format(loss))
	return err
}

func join(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = format(v)
	}
	return strings.Join(parts, ",")
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'f', Precision, 64)
}
