package nn

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linbench/core/autograd"
	"github.com/YuminosukeSato/linbench/core/model"
)

// Head post-processes the affine scores of a Scorer.
type Head interface {
	Apply(logits *autograd.Var) *autograd.Var
	Name() string
}

// IdentityHead leaves scores unchanged.
type IdentityHead struct{}

// Apply returns logits as is.
func (IdentityHead) Apply(logits *autograd.Var) *autograd.Var { return logits }

// Name returns "identity".
func (IdentityHead) Name() string { return "identity" }

// SigmoidHead squashes each score into (0, 1).
type SigmoidHead struct{}

// Apply maps every element through the logistic function. Saturated scores
// stay strictly inside (0, 1).
func (SigmoidHead) Apply(logits *autograd.Var) *autograd.Var { return autograd.Sigmoid(logits) }

// Name returns "sigmoid".
func (SigmoidHead) Name() string { return "sigmoid" }

// SoftmaxHead turns each row of scores into a probability simplex.
type SoftmaxHead struct{}

// Apply normalizes each row with a max-shifted softmax.
func (SoftmaxHead) Apply(logits *autograd.Var) *autograd.Var { return autograd.Softmax(logits) }

// Name returns "softmax".
func (SoftmaxHead) Name() string { return "softmax" }

// Scorer is an affine layer followed by a fixed head. The three linear
// models are Scorers that differ only in head and loss.
type Scorer struct {
	*Linear
	head Head
}

// Forward implements model.Module.
func (s *Scorer) Forward(x *autograd.Var) (*autograd.Var, error) {
	logits, err := s.Linear.Forward(x)
	if err != nil {
		return nil, err
	}
	return s.head.Apply(logits), nil
}

// Head returns the output head.
func (s *Scorer) Head() Head {
	return s.head
}

// Predict implements model.Predictor.
func (s *Scorer) Predict(X mat.Matrix) (*mat.Dense, error) {
	var out *mat.Dense
	err := model.NoGrad(s, func() error {
		res, err := s.Forward(autograd.NewConst(mat.DenseCopyOf(X)))
		if err != nil {
			return err
		}
		out = res.Value()
		return nil
	})
	return out, err
}

var (
	_ model.Module    = (*Scorer)(nil)
	_ model.Predictor = (*Scorer)(nil)
)
