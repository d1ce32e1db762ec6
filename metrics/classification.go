package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Accuracy returns the fraction of rows whose predicted class matches the
// target class. Multi-column inputs are compared by row argmax (one-hot
// targets against probabilities); single-column inputs are thresholded at 0.5.
func Accuracy(yTrue, yPred mat.Matrix) (float64, error) {
	if _, _, err := checkShapes("Accuracy", yTrue, yPred); err != nil {
		return 0, err
	}
	return agreement(yTrue, yPred, func(v float64) float64 {
		if v >= 0.5 {
			return 1
		}
		return 0
	}), nil
}

// SignAccuracy is Accuracy for ±1 labels and raw margins, as produced by a
// linear SVM.
func SignAccuracy(yTrue, yPred mat.Matrix) (float64, error) {
	if _, _, err := checkShapes("SignAccuracy", yTrue, yPred); err != nil {
		return 0, err
	}
	return agreement(yTrue, yPred, func(v float64) float64 {
		if v >= 0 {
			return 1
		}
		return -1
	}), nil
}

func agreement(yTrue, yPred mat.Matrix, binarize func(float64) float64) float64 {
	r, c := yTrue.Dims()
	rowTrue := make([]float64, c)
	rowPred := make([]float64, c)

	var correct int
	for i := 0; i < r; i++ {
		mat.Row(rowTrue, i, yTrue)
		mat.Row(rowPred, i, yPred)
		if c > 1 {
			if floats.MaxIdx(rowTrue) == floats.MaxIdx(rowPred) {
				correct++
			}
			continue
		}
		if binarize(rowTrue[0]) == binarize(rowPred[0]) {
			correct++
		}
	}
	return float64(correct) / float64(r)
}
