// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides a minimal fully connected feed-forward network engine.
//
// # Overview
//
// This package contains:
//   - Topology: layer sizes, input layer first
//   - Network: weights, biases and per-example node buffers
//   - Forward: ReLU activations for one input example
//   - Backward: output and hidden-layer error gradients for one target
//
// # Basic Usage
//
//	import "github.com/born-ml/ffnet/nn"
//
//	func main() {
//	    topo, _ := nn.ParseTopology("2 3 1")
//	    net, err := nn.New(topo, nn.Config{})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    outputs, err := net.Forward([]float64{0.5, 1.0})
//	    gradients, err := net.Backward([]float64{1.0})
//	}
//
// # Initialization
//
// Connection weights are drawn from a PCG32 generator and normalized to sum
// to 1. The seed is fixed per build, so one binary always starts from the
// same weights:
//
//	weights, err := nn.Initialize(topo)
//
// Bias weights are stored separately, one per non-input node, and start at
// zero.
//
// # Errors
//
// Every failure wraps one of ErrShapeMismatch, ErrDegenerateInitialization or
// ErrPreconditionViolated:
//
//	if _, err := net.Backward(target); errors.Is(err, nn.ErrPreconditionViolated) {
//	    // run Forward first
//	}
//
// # Training
//
// Backward does not update weights. EdgeGradients exposes the per-weight
// error signal an optimizer would apply.
package nn
