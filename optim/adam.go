package optim

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linbench/core/autograd"
	"github.com/YuminosukeSato/linbench/pkg/errors"
)

const (
	adamDefaultBeta1   = 0.9
	adamDefaultBeta2   = 0.999
	adamDefaultEpsilon = 1e-8
)

// Adam implements the adaptive moments method of Kingma & Ba.
type Adam struct {
	base
	beta1, beta2 float64
	epsilon      float64

	first  []*mat.Dense
	second []*mat.Dense
}

// AdamOption configures an Adam optimizer.
type AdamOption func(*Adam)

// WithBetas sets the decay rates of the first and second moments.
func WithBetas(beta1, beta2 float64) AdamOption {
	return func(a *Adam) {
		a.beta1, a.beta2 = beta1, beta2
	}
}

// WithAdamEpsilon sets the damping term added to the denominator.
func WithAdamEpsilon(eps float64) AdamOption {
	return func(a *Adam) {
		a.epsilon = eps
	}
}

// NewAdam creates an Adam optimizer over params.
func NewAdam(params []*autograd.Var, lr float64, opts ...AdamOption) (*Adam, error) {
	b, err := newBase("Adam", params, lr)
	if err != nil {
		return nil, err
	}
	a := &Adam{
		base:    b,
		beta1:   adamDefaultBeta1,
		beta2:   adamDefaultBeta2,
		epsilon: adamDefaultEpsilon,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.beta1 < 0 || a.beta1 >= 1 {
		return nil, errors.NewValidationError("beta1", "must be in [0, 1)", a.beta1)
	}
	if a.beta2 < 0 || a.beta2 >= 1 {
		return nil, errors.NewValidationError("beta2", "must be in [0, 1)", a.beta2)
	}
	a.first = zerosLike(params)
	a.second = zerosLike(params)
	return a, nil
}

// Step implements Optimizer.
func (a *Adam) Step() error {
	t := float64(a.steps + 1)
	correction1 := 1 - math.Pow(a.beta1, t)
	correction2 := 1 - math.Pow(a.beta2, t)

	for i, p := range a.params {
		g := p.Grad()
		m, v, w := a.first[i], a.second[i], p.Value()
		r, c := w.Dims()
		for row := 0; row < r; row++ {
			for col := 0; col < c; col++ {
				gi := g.At(row, col)
				mi := a.beta1*m.At(row, col) + (1-a.beta1)*gi
				vi := a.beta2*v.At(row, col) + (1-a.beta2)*gi*gi
				m.Set(row, col, mi)
				v.Set(row, col, vi)

				mHat := mi / correction1
				vHat := vi / correction2
				w.Set(row, col, w.At(row, col)-a.lr*mHat/(math.Sqrt(vHat)+a.epsilon))
			}
		}
	}
	return a.finishStep()
}

func zerosLike(params []*autograd.Var) []*mat.Dense {
	out := make([]*mat.Dense, len(params))
	for i, p := range params {
		r, c := p.Dims()
		out[i] = mat.NewDense(r, c, nil)
	}
	return out
}
