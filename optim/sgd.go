package optim

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linbench/core/autograd"
	"github.com/YuminosukeSato/linbench/pkg/errors"
)

// SGD is stochastic gradient descent with optional momentum and L2 weight
// decay:
//
//	g := grad + weightDecay·w
//	v := momentum·v + g
//	w := w - lr·v
type SGD struct {
	base
	momentum    float64
	weightDecay float64
	velocity    []*mat.Dense
}

// SGDOption configures an SGD optimizer.
type SGDOption func(*SGD)

// WithMomentum sets the momentum coefficient (default 0).
func WithMomentum(m float64) SGDOption {
	return func(s *SGD) {
		s.momentum = m
	}
}

// WithWeightDecay sets the L2 penalty folded into the gradient (default 0).
func WithWeightDecay(wd float64) SGDOption {
	return func(s *SGD) {
		s.weightDecay = wd
	}
}

// NewSGD creates an SGD optimizer over params.
func NewSGD(params []*autograd.Var, lr float64, opts ...SGDOption) (*SGD, error) {
	b, err := newBase("SGD", params, lr)
	if err != nil {
		return nil, err
	}
	s := &SGD{base: b}
	for _, opt := range opts {
		opt(s)
	}
	if s.momentum < 0 {
		return nil, errors.NewValidationError("momentum", "must be non-negative", s.momentum)
	}
	if s.weightDecay < 0 {
		return nil, errors.NewValidationError("weight_decay", "must be non-negative", s.weightDecay)
	}
	return s, nil
}

// Step implements Optimizer.
func (s *SGD) Step() error {
	if s.momentum > 0 && s.velocity == nil {
		s.velocity = make([]*mat.Dense, len(s.params))
	}
	for i, p := range s.params {
		w := p.Value()
		g := effectiveGrad(p, s.weightDecay)

		if s.momentum > 0 {
			if s.velocity[i] == nil {
				s.velocity[i] = mat.DenseCopyOf(g)
			} else {
				s.velocity[i].Scale(s.momentum, s.velocity[i])
				s.velocity[i].Add(s.velocity[i], g)
			}
			g = s.velocity[i]
		}

		var step mat.Dense
		step.Scale(s.lr, g)
		w.Sub(w, &step)
	}
	return s.finishStep()
}

// effectiveGrad returns grad + wd·w without touching the stored gradient.
func effectiveGrad(p *autograd.Var, wd float64) *mat.Dense {
	if wd == 0 {
		return p.Grad()
	}
	var g mat.Dense
	g.Scale(wd, p.Value())
	g.Add(&g, p.Grad())
	return &g
}
