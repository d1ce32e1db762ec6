package nn

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linbench/core/autograd"
	"github.com/YuminosukeSato/linbench/pkg/errors"
)

// LinearSVM scores samples with an unbounded affine margin and is trained
// with the hinge loss.
type LinearSVM struct {
	Scorer
	soft bool
	c    float64
}

// NewLinearSVM creates a linear SVM with one output unless WithOutDims is
// given. WithSoftMargin and WithC configure the regularized loss; C must not
// be negative.
func NewLinearSVM(in int, opts ...Option) (*LinearSVM, error) {
	cfg, err := buildConfig("LinearSVM", true, opts)
	if err != nil {
		return nil, err
	}
	if cfg.c < 0 {
		return nil, errors.NewValidationError("C", "must be non-negative", cfg.c)
	}
	lin, err := newLinear("LinearSVM", in, cfg.outDim, cfg)
	if err != nil {
		return nil, err
	}
	return &LinearSVM{
		Scorer: Scorer{Linear: lin, head: IdentityHead{}},
		soft:   cfg.soft,
		c:      cfg.c,
	}, nil
}

// SoftMargin reports whether the C·||W||² term is part of the loss.
func (s *LinearSVM) SoftMargin() bool { return s.soft }

// C returns the regularization strength.
func (s *LinearSVM) C() float64 { return s.c }

// HingeLoss computes mean(max(0, 1 − yTrue ⊙ yPred)) over the batch, plus
// C·||W||² when the model is soft-margin. Labels are expected in {-1, +1}
// and are not checked. HingeLoss satisfies Criterion.
func (s *LinearSVM) HingeLoss(yPred, yTrue *autograd.Var) (*autograd.Var, error) {
	hinge, err := autograd.HingeMean(yPred, yTrue)
	if err != nil {
		return nil, err
	}
	if !s.soft {
		return hinge, nil
	}
	return autograd.Add(hinge, autograd.Scale(s.c, autograd.SquaredNorm(s.weight)))
}

// PredictLabel returns sign(score) per element, mapping 0 to +1.
func (s *LinearSVM) PredictLabel(X mat.Matrix) (*mat.Dense, error) {
	scores, err := s.Predict(X)
	if err != nil {
		return nil, err
	}
	scores.Apply(func(_, _ int, v float64) float64 {
		if v < 0 {
			return -1
		}
		return 1
	}, scores)
	return scores, nil
}
