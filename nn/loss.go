package nn

import (
	"github.com/YuminosukeSato/linbench/core/autograd"
)

// Criterion maps a prediction and its target to a 1×1 loss.
type Criterion func(pred, target *autograd.Var) (*autograd.Var, error)

// MSELoss is the mean squared error, the usual loss for LinearRegression.
func MSELoss(pred, target *autograd.Var) (*autograd.Var, error) {
	return autograd.MeanSquaredError(pred, target)
}

// BCELoss is the binary cross-entropy on probabilities in (0, 1), for a
// binary LogisticRegression with 0/1 targets.
func BCELoss(pred, target *autograd.Var) (*autograd.Var, error) {
	return autograd.BinaryCrossEntropy(pred, target)
}

// CrossEntropyLoss is the categorical cross-entropy on row-wise class
// probabilities with one-hot targets, for a multinomial LogisticRegression.
func CrossEntropyLoss(pred, target *autograd.Var) (*autograd.Var, error) {
	return autograd.CrossEntropy(pred, target)
}

var (
	_ Criterion = MSELoss
	_ Criterion = BCELoss
	_ Criterion = CrossEntropyLoss
)
