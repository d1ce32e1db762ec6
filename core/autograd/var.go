// Package autograd implements a small reverse-mode automatic differentiation
// tape over gonum dense matrices.
//
// Every operation returns a new *Var. When at least one input requires a
// gradient the result remembers its inputs and a backward closure, so
// Backward can walk the graph from a scalar loss down to the parameter
// leaves. When no input requires a gradient nothing is recorded, which is
// how evaluation passes avoid building a graph.
package autograd

import (
	"gonum.org/v1/gonum/mat"
)

// backwardFunc receives the gradient flowing into a node and returns the
// gradient for each parent, in parent order. A nil entry means the parent
// gets no contribution.
type backwardFunc func(g *mat.Dense) []*mat.Dense

// Var is a node of the computation graph.
type Var struct {
	value *mat.Dense

	// grad is only allocated for parameter leaves.
	grad         *mat.Dense
	leaf         bool
	requiresGrad bool

	parents  []*Var
	backward backwardFunc
}

// NewParam wraps m as a trainable leaf. The Var takes ownership of m;
// optimizers update it in place.
func NewParam(m *mat.Dense) *Var {
	r, c := m.Dims()
	return &Var{
		value:        m,
		grad:         mat.NewDense(r, c, nil),
		leaf:         true,
		requiresGrad: true,
	}
}

// NewConst wraps m as a leaf that never receives a gradient.
func NewConst(m *mat.Dense) *Var {
	return &Var{value: m, leaf: true}
}

// Value returns the underlying matrix.
func (v *Var) Value() *mat.Dense {
	return v.value
}

// Grad returns the accumulated gradient of a parameter leaf, or nil for
// constants and intermediate results.
func (v *Var) Grad() *mat.Dense {
	return v.grad
}

// Dims returns the shape of the value.
func (v *Var) Dims() (r, c int) {
	return v.value.Dims()
}

// Item returns the single element of a 1×1 value, typically a loss.
func (v *Var) Item() float64 {
	return v.value.At(0, 0)
}

// RequiresGrad reports whether gradients flow into v.
func (v *Var) RequiresGrad() bool {
	return v.requiresGrad
}

// SetRequiresGrad switches gradient recording for a parameter leaf. It has
// no effect on constants or intermediate results.
func (v *Var) SetRequiresGrad(on bool) {
	if v.leaf && v.grad != nil {
		v.requiresGrad = on
	}
}

// ZeroGrad clears the accumulated gradient.
func (v *Var) ZeroGrad() {
	if v.grad != nil {
		v.grad.Zero()
	}
}

// newResult builds an op output, recording parents and the backward closure
// only when one of the parents requires a gradient.
func newResult(value *mat.Dense, backward backwardFunc, parents ...*Var) *Var {
	out := &Var{value: value}
	for _, p := range parents {
		if p.requiresGrad {
			out.requiresGrad = true
			break
		}
	}
	if out.requiresGrad {
		out.parents = parents
		out.backward = backward
	}
	return out
}
