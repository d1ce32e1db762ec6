package optim

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linbench/core/autograd"
	"github.com/YuminosukeSato/linbench/pkg/errors"
)

const (
	rmspropDefaultAlpha   = 0.99
	rmspropDefaultEpsilon = 1e-8
)

// RMSProp scales each step by a running average of squared gradients.
type RMSProp struct {
	base
	alpha   float64
	epsilon float64
	square  []*mat.Dense
}

// RMSPropOption configures an RMSProp optimizer.
type RMSPropOption func(*RMSProp)

// WithAlpha sets the smoothing constant of the squared-gradient average.
func WithAlpha(alpha float64) RMSPropOption {
	return func(r *RMSProp) {
		r.alpha = alpha
	}
}

// NewRMSProp creates an RMSProp optimizer over params.
func NewRMSProp(params []*autograd.Var, lr float64, opts ...RMSPropOption) (*RMSProp, error) {
	b, err := newBase("RMSProp", params, lr)
	if err != nil {
		return nil, err
	}
	r := &RMSProp{
		base:    b,
		alpha:   rmspropDefaultAlpha,
		epsilon: rmspropDefaultEpsilon,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.alpha < 0 || r.alpha >= 1 {
		return nil, errors.NewValidationError("alpha", "must be in [0, 1)", r.alpha)
	}
	r.square = zerosLike(params)
	return r, nil
}

// Step implements Optimizer.
func (r *RMSProp) Step() error {
	for i, p := range r.params {
		g, s, w := p.Grad(), r.square[i], p.Value()
		rows, cols := w.Dims()
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				gi := g.At(row, col)
				si := r.alpha*s.At(row, col) + (1-r.alpha)*gi*gi
				s.Set(row, col, si)
				w.Set(row, col, w.At(row, col)-r.lr*gi/(math.Sqrt(si)+r.epsilon))
			}
		}
	}
	return r.finishStep()
}
