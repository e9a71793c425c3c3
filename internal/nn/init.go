package nn

import (
	"fmt"

	"github.com/born-ml/ffnet/internal/prng"
	"github.com/born-ml/ffnet/internal/topology"
	"gonum.org/v1/gonum/floats"
)

// DefaultSkipDraws is the number of leading generator draws discarded before
// the first weight. A fresh zero-state PCG32 always yields 0 first.
const DefaultSkipDraws = 2

// Source produces the raw 32-bit values weights are drawn from.
type Source interface {
	Uint32() uint32
}

// Initialize builds the initial weight vector for t from the build seed.
//
// Equivalent to InitWeights(t, prng.New(prng.BuildSeed()), DefaultSkipDraws).
func Initialize(t topology.Topology) ([]float64, error) {
	return InitWeights(t, prng.New(prng.BuildSeed()), DefaultSkipDraws)
}

// InitWeights draws one raw value per connection weight of t and normalizes
// the vector so that it sums to 1.
//
// Parameters:
//   - t: Network topology; the vector has t.NumWeights() entries
//   - src: Generator to draw from
//   - skip: Number of leading draws to discard
//
// Returns ErrDegenerateInitialization if every draw is zero. A topology without
// weights yields an empty vector.
func InitWeights(t topology.Topology, src Source, skip int) ([]float64, error) {
	weights := make([]float64, t.NumWeights())
	if err := fillWeights(weights, src, skip); err != nil {
		return nil, fmt.Errorf("initialize %s: %w", t, err)
	}
	return weights, nil
}

func fillWeights(dst []float64, src Source, skip int) error {
	for ; skip > 0; skip-- {
		src.Uint32()
	}
	for i := range dst {
		dst[i] = float64(src.Uint32())
	}
	return normalize(dst)
}

// normalize scales w in place so that its entries sum to 1.
func normalize(w []float64) error {
	if len(w) == 0 {
		return nil
	}
	sum := floats.Sum(w)
	if sum == 0 {
		return ErrDegenerateInitialization
	}
	floats.Scale(1/sum, w)
	return nil
}
