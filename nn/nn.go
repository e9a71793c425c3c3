// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/ffnet/internal/nn"
	"github.com/born-ml/ffnet/internal/topology"
)

// Topology is an ordered list of layer sizes, input layer first.
type Topology = topology.Topology

// Layout maps layer and node coordinates onto the flat buffers.
type Layout = topology.Layout

// NewTopology creates a topology from layer sizes.
//
// Example:
//
//	topo, err := nn.NewTopology(2, 3, 1)  // 9 connection weights
func NewTopology(sizes ...int) (Topology, error) {
	return topology.New(sizes...)
}

// ParseTopology parses "2 3 1" or "2,3,1".
func ParseTopology(s string) (Topology, error) {
	return topology.Parse(s)
}

// Network is a feed-forward ReLU network.
type Network = nn.Network

// Config holds network configuration.
type Config = nn.Config

// Source produces raw values for weight initialization.
type Source = nn.Source

// Phase is the progress of the current training example.
type Phase = nn.Phase

// Phases of one training example.
const (
	PhaseIdle            = nn.PhaseIdle
	PhaseForwardDone     = nn.PhaseForwardDone
	PhaseOutputGradient  = nn.PhaseOutputGradient
	PhaseHiddenGradients = nn.PhaseHiddenGradients
)

// DefaultSkipDraws is the number of generator draws discarded before the first weight.
const DefaultSkipDraws = nn.DefaultSkipDraws

// Errors.
var (
	ErrInvalidTopology          = topology.ErrInvalidTopology
	ErrShapeMismatch            = nn.ErrShapeMismatch
	ErrDegenerateInitialization = nn.ErrDegenerateInitialization
	ErrPreconditionViolated     = nn.ErrPreconditionViolated
)

// New creates a network and initializes its weights.
//
// Example:
//
//	net, err := nn.New(topo, nn.Config{Seed: 42})
func New(t Topology, cfg Config) (*Network, error) {
	return nn.New(t, cfg)
}

// Initialize returns the initial weight vector for t using the build seed.
func Initialize(t Topology) ([]float64, error) {
	return nn.Initialize(t)
}

// InitWeights returns a normalized weight vector drawn from src after
// discarding skip draws.
func InitWeights(t Topology, src Source, skip int) ([]float64, error) {
	return nn.InitWeights(t, src, skip)
}

// ReLU returns max(0, x).
func ReLU(x float64) float64 {
	return nn.ReLU(x)
}

// SquaredError returns ½Σ(target-output)².
func SquaredError(target, output []float64) float64 {
	return nn.SquaredError(target, output)
}
