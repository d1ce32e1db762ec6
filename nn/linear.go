// Package nn provides linear models built from one affine scorer composed
// with an output head, plus the loss functions used to train them.
package nn

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linbench/core/autograd"
	"github.com/YuminosukeSato/linbench/core/model"
	"github.com/YuminosukeSato/linbench/pkg/errors"
)

// Linear computes y = X·W + b with W of shape (in × out) and b of shape (1 × out).
type Linear struct {
	model.ModeState

	inDims  int
	outDims int
	weight  *autograd.Var
	bias    *autograd.Var
}

// NewLinear creates an affine layer initialized according to opts.
func NewLinear(in, out int, opts ...Option) (*Linear, error) {
	cfg, err := buildConfig("Linear", false, opts)
	if err != nil {
		return nil, err
	}
	return newLinear("Linear", in, out, cfg)
}

func newLinear(op string, in, out int, cfg *config) (*Linear, error) {
	if in <= 0 {
		return nil, errors.NewValidationError("in_dims", op+": must be positive", in)
	}
	if out <= 0 {
		return nil, errors.NewValidationError("out_dims", op+": must be positive", out)
	}

	w := mat.NewDense(in, out, nil)
	b := mat.NewDense(1, out, nil)
	switch cfg.init {
	case InitZeros:
	case InitUniform:
		rng := cfg.rng()
		bound := 1 / math.Sqrt(float64(in))
		uniform := func(_, _ int, _ float64) float64 {
			return (2*rng.Float64() - 1) * bound
		}
		w.Apply(uniform, w)
		b.Apply(uniform, b)
	default:
		return nil, errors.NewValidationError("init", op+": unknown initializer", cfg.init)
	}

	return &Linear{
		inDims:  in,
		outDims: out,
		weight:  autograd.NewParam(w),
		bias:    autograd.NewParam(b),
	}, nil
}

// Forward implements model.Module.
func (l *Linear) Forward(x *autograd.Var) (*autograd.Var, error) {
	if _, c := x.Dims(); c != l.inDims {
		return nil, errors.NewDimensionError("Linear.Forward", l.inDims, c, 1)
	}
	xw, err := autograd.MatMul(x, l.weight)
	if err != nil {
		return nil, err
	}
	return autograd.AddRow(xw, l.bias)
}

// Parameters implements model.Module.
func (l *Linear) Parameters() []*autograd.Var {
	return []*autograd.Var{l.weight, l.bias}
}

// InDims returns the input dimensionality.
func (l *Linear) InDims() int { return l.inDims }

// OutDims returns the output dimensionality.
func (l *Linear) OutDims() int { return l.outDims }

// Weights returns a copy of W.
func (l *Linear) Weights() *mat.Dense {
	return mat.DenseCopyOf(l.weight.Value())
}

// Bias returns a copy of b.
func (l *Linear) Bias() *mat.Dense {
	return mat.DenseCopyOf(l.bias.Value())
}
