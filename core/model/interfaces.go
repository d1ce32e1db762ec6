// Package model defines the contract shared by every trainable model.
package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linbench/core/autograd"
)

// Module is a parametric function trained by gradient descent.
type Module interface {
	// Forward computes the model output for a (batch × in_dims) input.
	Forward(x *autograd.Var) (*autograd.Var, error)

	// Parameters returns the trainable leaves. Only optimizers mutate them.
	Parameters() []*autograd.Var

	// Train switches the module to training mode.
	Train()

	// Eval switches the module to evaluation mode.
	Eval()

	// Training reports whether the module is in training mode.
	Training() bool
}

// Predictor is implemented by models that can run inference on raw matrices.
type Predictor interface {
	// Predict runs Forward without recording a graph.
	Predict(X mat.Matrix) (*mat.Dense, error)
}

// NoGrad runs fn with gradient recording disabled on every parameter of m,
// restoring the previous flags afterwards.
func NoGrad(m Module, fn func() error) error {
	params := m.Parameters()
	prev := make([]bool, len(params))
	for i, p := range params {
		prev[i] = p.RequiresGrad()
		p.SetRequiresGrad(false)
	}
	defer func() {
		for i, p := range params {
			p.SetRequiresGrad(prev[i])
		}
	}()
	return fn()
}
