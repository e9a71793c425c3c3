package nn

import (
	"testing"

	"github.com/born-ml/ffnet/internal/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
)

func TestBackward_BeforeForward(t *testing.T) {
	net := newTestNetwork(t, 2, 3, 1)

	_, err := net.Backward([]float64{1})
	require.ErrorIs(t, err, ErrPreconditionViolated)
	assert.Equal(t, PhaseIdle, net.Phase())
}

func TestBackward_StaleForward(t *testing.T) {
	tests := []struct {
		name       string
		invalidate func(*Network)
	}{
		{"reset", func(n *Network) { n.Reset() }},
		{"set weights", func(n *Network) { _ = n.SetWeights(make([]float64, 9)) }},
		{"set biases", func(n *Network) { _ = n.SetBiases(make([]float64, 4)) }},
		{"fill", func(n *Network) { n.Fill(0.1, 0.1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net := newTestNetwork(t, 2, 3, 1)
			_, err := net.Forward([]float64{1, 1})
			require.NoError(t, err)

			tt.invalidate(net)

			_, err = net.Backward([]float64{1})
			require.ErrorIs(t, err, ErrPreconditionViolated)
		})
	}
}

func TestBackward_ShapeMismatch(t *testing.T) {
	net := newTestNetwork(t, 2, 3, 2)
	_, err := net.Forward([]float64{1, 1})
	require.NoError(t, err)

	for _, target := range [][]float64{nil, {1}, {1, 2, 3}} {
		_, err := net.Backward(target)
		require.ErrorIs(t, err, ErrShapeMismatch, "target %v", target)
	}
	assert.Equal(t, PhaseForwardDone, net.Phase())
}

func TestBackward_ConstantWeights(t *testing.T) {
	net := newTestNetwork(t, 2, 3, 1)
	net.Fill(0.1, 0.1)
	_, err := net.Forward([]float64{1, 1})
	require.NoError(t, err)

	grads, err := net.Backward([]float64{1})
	require.NoError(t, err)

	// Output: (1 - 0.19) * 1
	assert.InDelta(t, 0.81, grads[5], 1e-12)
	// Hidden: 1 * 0.81 * 0.1
	for i, g := range net.LayerGradients(1) {
		assert.InDelta(t, 0.081, g, 1e-12, "hidden node %d", i)
	}
	assert.Equal(t, []float64{0, 0}, grads[:2])
	assert.Equal(t, []float64{1}, net.Targets())
	assert.Equal(t, PhaseHiddenGradients, net.Phase())
}

func TestBackward_InactiveOutput(t *testing.T) {
	net := newTestNetwork(t, 2, 3, 1)
	net.Fill(-0.1, 0)
	_, err := net.Forward([]float64{1, 1})
	require.NoError(t, err)
	require.Equal(t, 0.0, net.Output()[0])

	grads, err := net.Backward([]float64{5})
	require.NoError(t, err)

	// A unit ReLU switched off passes no error back.
	assert.Equal(t, make([]float64, 6), grads)
}

func TestBackward_ChainRule(t *testing.T) {
	net := newChainNetwork(t)
	_, err := net.Forward(chainInput)
	require.NoError(t, err)

	grads, err := net.Backward(chainTarget)
	require.NoError(t, err)

	// Output: (1 - 0.072) * 1 = 0.928
	// Layer 2: g = ReLU'(o) * 0.928 * w(out)
	//   node 0: 0.928 * 0.6  = 0.5568
	//   node 1: 0.928 * -0.4 = -0.3712
	// Layer 1: g = ReLU'(o) * Σ g(layer 2) * w
	//   node 0: 0.5568*0.4 + -0.3712*0.2 = 0.14848
	//   node 1: 0.5568*-0.3 + -0.3712*0.5 = -0.35264
	//   node 2: inactive, 0
	want := []float64{0, 0, 0.14848, -0.35264, 0, 0.5568, -0.3712, 0.928}
	require.Len(t, grads, len(want))
	for i := range want {
		assert.InDelta(t, want[i], grads[i], 1e-12, "node %d", i)
	}
}

// referenceGradients applies the chain rule with explicit loops over the
// layout table.
func referenceGradients(net *Network, target []float64) []float64 {
	topo := net.Topology()
	l := net.Layout()
	out := net.Outputs()
	w := net.Weights()
	g := make([]float64, topo.NumNodes())

	last := len(topo) - 1
	for v := 0; v < topo[last]; v++ {
		i := l.NodeIndex(last, v)
		g[i] = (target[v] - out[i]) * ReLUDerivative(out[i])
	}
	for layer := last - 1; layer >= 1; layer-- {
		for h := 0; h < topo[layer]; h++ {
			sum := 0.0
			for n := 0; n < topo[layer+1]; n++ {
				sum += g[l.NodeIndex(layer+1, n)] * w[l.EdgeIndex(layer+1, h, n)]
			}
			i := l.NodeIndex(layer, h)
			g[i] = ReLUDerivative(out[i]) * sum
		}
	}
	return g
}

func TestBackward_MatchesLoopReference(t *testing.T) {
	topos := []topology.Topology{
		{2, 3, 2, 1},
		{4, 6, 5, 3},
		{3, 9, 1, 7, 2},
	}
	for _, topo := range topos {
		t.Run(topo.String(), func(t *testing.T) {
			net := newTestNetwork(t, topo...)
			b := make([]float64, topo.NumBiases())
			for i := range b {
				b[i] = 0.05 * float64(i%3-1)
			}
			require.NoError(t, net.SetBiases(b))

			in := make([]float64, topo.InputSize())
			for i := range in {
				in[i] = float64(i+1) / 2
			}
			target := make([]float64, topo.OutputSize())
			for i := range target {
				target[i] = float64(i)
			}

			_, err := net.Forward(in)
			require.NoError(t, err)
			grads, err := net.Backward(target)
			require.NoError(t, err)

			want := referenceGradients(net, target)
			for i := range want {
				assert.InDelta(t, want[i], grads[i], 1e-12, "node %d", i)
			}
		})
	}
}

func TestBackward_Repeatable(t *testing.T) {
	net := newChainNetwork(t)
	_, err := net.Forward(chainInput)
	require.NoError(t, err)

	first, err := net.Backward(chainTarget)
	require.NoError(t, err)
	snapshot := append([]float64(nil), first...)

	second, err := net.Backward(chainTarget)
	require.NoError(t, err)
	assert.Equal(t, snapshot, second)
}

func TestBackward_SingleLayer(t *testing.T) {
	net := newTestNetwork(t, 2)
	_, err := net.Forward([]float64{1, 2})
	require.NoError(t, err)

	grads, err := net.Backward([]float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, grads)
	assert.Equal(t, PhaseHiddenGradients, net.Phase())
}

func TestEdgeGradients_Preconditions(t *testing.T) {
	net := newTestNetwork(t, 2, 3, 1)
	dw := make([]float64, 9)
	db := make([]float64, 4)

	require.ErrorIs(t, net.EdgeGradients(dw, db), ErrPreconditionViolated)

	_, err := net.Forward([]float64{1, 1})
	require.NoError(t, err)
	require.ErrorIs(t, net.EdgeGradients(dw, db), ErrPreconditionViolated)

	_, err = net.Backward([]float64{1})
	require.NoError(t, err)
	require.ErrorIs(t, net.EdgeGradients(dw[:8], db), ErrShapeMismatch)
	require.ErrorIs(t, net.EdgeGradients(dw, db[:3]), ErrShapeMismatch)
	require.NoError(t, net.EdgeGradients(dw, db))
}

func TestEdgeGradients_ChainNetwork(t *testing.T) {
	net := newChainNetwork(t)
	_, err := net.Forward(chainInput)
	require.NoError(t, err)
	_, err = net.Backward(chainTarget)
	require.NoError(t, err)

	dw := make([]float64, len(chainWeights))
	db := make([]float64, len(chainBiases))
	require.NoError(t, net.EdgeGradients(dw, db))

	// Output row: g(out) * layer-2 outputs.
	assert.InDelta(t, 0.928*0.02, dw[12], 1e-12)
	assert.InDelta(t, 0.928*0.6, dw[13], 1e-12)
	// Layer 1, node 0 from input 1: 0.14848 * 0.5
	assert.InDelta(t, 0.14848*0.5, dw[1], 1e-12)
	// Inactive node contributes nothing.
	assert.Equal(t, 0.0, dw[4])
	assert.Equal(t, 0.0, db[2])
	assert.InDelta(t, 0.928, db[5], 1e-12)
}

// TestEdgeGradients_FiniteDifferences checks the backward pass against a
// numerical derivative of ½Σ(target-output)² in a region where every unit is
// active, so the loss is smooth.
func TestEdgeGradients_FiniteDifferences(t *testing.T) {
	topo := topology.Topology{2, 3, 2, 1}
	net := newTestNetwork(t, topo...)
	biases := []float64{0.1, 0.2, 0.3, 0.1, 0.2, 0.1}
	require.NoError(t, net.SetBiases(biases))
	in := []float64{0.7, 1.3}
	target := []float64{2}

	_, err := net.Forward(in)
	require.NoError(t, err)
	_, err = net.Backward(target)
	require.NoError(t, err)
	for i, o := range net.Outputs()[topo.InputSize():] {
		require.Greater(t, o, 0.0, "node %d must be active", i)
	}

	dw := make([]float64, topo.NumWeights())
	db := make([]float64, topo.NumBiases())
	require.NoError(t, net.EdgeGradients(dw, db))

	shadow := net.Clone()
	settings := &fd.Settings{Formula: fd.Central, Step: 1e-6}

	lossWeights := func(w []float64) float64 {
		require.NoError(t, shadow.SetWeights(w))
		out, err := shadow.Forward(in)
		require.NoError(t, err)
		return SquaredError(target, out[len(out)-1:])
	}
	numeric := fd.Gradient(nil, lossWeights, net.Weights(), settings)
	for i := range numeric {
		assert.InDelta(t, -numeric[i], dw[i], 1e-6, "weight %d", i)
	}

	require.NoError(t, shadow.SetWeights(net.Weights()))
	lossBiases := func(b []float64) float64 {
		require.NoError(t, shadow.SetBiases(b))
		out, err := shadow.Forward(in)
		require.NoError(t, err)
		return SquaredError(target, out[len(out)-1:])
	}
	numeric = fd.Gradient(nil, lossBiases, biases, settings)
	for i := range numeric {
		assert.InDelta(t, -numeric[i], db[i], 1e-6, "bias %d", i)
	}
}

func TestLoss(t *testing.T) {
	net := newChainNetwork(t)

	_, err := net.Loss()
	require.ErrorIs(t, err, ErrPreconditionViolated)

	_, err = net.Forward(chainInput)
	require.NoError(t, err)
	_, err = net.Backward(chainTarget)
	require.NoError(t, err)

	loss, err := net.Loss()
	require.NoError(t, err)
	assert.InDelta(t, 0.5*0.928*0.928, loss, 1e-12)
}

func TestSquaredError(t *testing.T) {
	assert.Equal(t, 0.0, SquaredError([]float64{1, 2}, []float64{1, 2}))
	assert.InDelta(t, 0.5*(1+4), SquaredError([]float64{1, 2}, []float64{0, 0}), 1e-12)
}
