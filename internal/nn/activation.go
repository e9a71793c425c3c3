package nn

// ReLU is the rectified linear unit: f(x) = max(0, x).
func ReLU(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// ReLUDerivative returns 1 for x > 0 and 0 otherwise.
//
// The engine evaluates it on a node's output rather than its pre-activation;
// for ReLU both are positive in exactly the same cases.
func ReLUDerivative(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}
