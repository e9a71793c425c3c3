package nn

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// SquaredError returns ½Σ(target-output)².
func SquaredError(target, output []float64) float64 {
	d := floats.Distance(target, output, 2)
	return 0.5 * d * d
}

// Loss returns the squared error of the example recorded by the last Backward.
func (n *Network) Loss() (float64, error) {
	if n.phase != PhaseHiddenGradients {
		return 0, fmt.Errorf("loss before backward pass: %w", ErrPreconditionViolated)
	}
	return SquaredError(n.targets, n.Output()), nil
}
