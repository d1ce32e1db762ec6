package nn

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linbench/pkg/errors"
)

// LinearRegression predicts unconstrained real values y = X·W + b.
// It has no loss of its own; train it with MSELoss or any other Criterion.
type LinearRegression struct {
	Scorer
}

// NewLinearRegression creates a linear regression model. The LinearSVM-only
// options WithOutDims, WithSoftMargin and WithC fail with a
// *errors.ValidationError.
//
// Example:
//
//	lr, err := nn.NewLinearRegression(3, 1, nn.WithSeed(42))
//	yPred, err := lr.Predict(X)
func NewLinearRegression(in, out int, opts ...Option) (*LinearRegression, error) {
	cfg, err := buildConfig("LinearRegression", false, opts)
	if err != nil {
		return nil, err
	}
	lin, err := newLinear("LinearRegression", in, out, cfg)
	if err != nil {
		return nil, err
	}
	return &LinearRegression{Scorer{Linear: lin, head: IdentityHead{}}}, nil
}

// LogisticRegression outputs class probabilities: a sigmoid over a single
// score for binary problems, or a softmax over out_dims ≥ 2 scores.
type LogisticRegression struct {
	Scorer
	multinomial bool
}

// NewLogisticRegression creates a logistic regression model. It fails with
// a *errors.ValidationError if multinomial is set with out < 2, unset
// with out != 1, or given a LinearSVM-only option.
func NewLogisticRegression(in, out int, multinomial bool, opts ...Option) (*LogisticRegression, error) {
	if multinomial && out < 2 {
		return nil, errors.NewValidationError("out_dims", "must be at least 2 for multinomial classification", out)
	}
	if !multinomial && out != 1 {
		return nil, errors.NewValidationError("out_dims", "must be 1 for binary classification", out)
	}

	cfg, err := buildConfig("LogisticRegression", false, opts)
	if err != nil {
		return nil, err
	}
	lin, err := newLinear("LogisticRegression", in, out, cfg)
	if err != nil {
		return nil, err
	}

	var head Head = SigmoidHead{}
	if multinomial {
		head = SoftmaxHead{}
	}
	return &LogisticRegression{
		Scorer:      Scorer{Linear: lin, head: head},
		multinomial: multinomial,
	}, nil
}

// Multinomial reports whether the model uses a softmax head.
func (lr *LogisticRegression) Multinomial() bool {
	return lr.multinomial
}

// PredictClass returns the most likely class index per row: the argmax for
// multinomial models, probability ≥ 0.5 for binary ones.
func (lr *LogisticRegression) PredictClass(X mat.Matrix) ([]int, error) {
	probs, err := lr.Predict(X)
	if err != nil {
		return nil, err
	}
	r, c := probs.Dims()
	classes := make([]int, r)
	for i := 0; i < r; i++ {
		if !lr.multinomial {
			if probs.At(i, 0) >= 0.5 {
				classes[i] = 1
			}
			continue
		}
		best := 0
		for j := 1; j < c; j++ {
			if probs.At(i, j) > probs.At(i, best) {
				best = j
			}
		}
		classes[i] = best
	}
	return classes, nil
}
