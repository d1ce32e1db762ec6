// Package optim provides step-based optimizers that update autograd
// parameters in place from their accumulated gradients.
//
// A training step is:
//
//	opt.ZeroGrad()
//	autograd.Backward(loss)
//	opt.Step()
package optim

import (
	"github.com/YuminosukeSato/linbench/core/autograd"
	"github.com/YuminosukeSato/linbench/pkg/errors"
)

// Optimizer updates a fixed set of parameters.
type Optimizer interface {
	// ZeroGrad clears the gradients of every parameter.
	ZeroGrad()

	// Step applies one update from the accumulated gradients.
	Step() error

	// LearningRate returns the current step size.
	LearningRate() float64
}

// base holds what every optimizer shares.
type base struct {
	name   string
	params []*autograd.Var
	lr     float64
	steps  int
}

func newBase(name string, params []*autograd.Var, lr float64) (base, error) {
	if lr <= 0 {
		return base{}, errors.NewValidationError("learning_rate", name+": must be positive", lr)
	}
	if len(params) == 0 {
		return base{}, errors.NewModelError(name, "no parameters to optimize", errors.ErrEmptyData)
	}
	return base{name: name, params: params, lr: lr}, nil
}

// ZeroGrad implements Optimizer.
func (b *base) ZeroGrad() {
	for _, p := range b.params {
		p.ZeroGrad()
	}
}

// LearningRate implements Optimizer.
func (b *base) LearningRate() float64 {
	return b.lr
}

// SetLearningRate changes the step size for subsequent steps.
func (b *base) SetLearningRate(lr float64) {
	b.lr = lr
}

// finishStep counts the step and rejects NaN/Inf parameters.
func (b *base) finishStep() error {
	b.steps++
	for _, p := range b.params {
		if err := errors.CheckMatrix(b.name+".Step", p.Value(), b.steps); err != nil {
			return err
		}
	}
	return nil
}
