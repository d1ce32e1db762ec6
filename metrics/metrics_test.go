package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linbench/pkg/errors"
)

func col(v ...float64) *mat.Dense {
	return mat.NewDense(len(v), 1, v)
}

func TestRegressionMetrics(t *testing.T) {
	tests := []struct {
		name  string
		fn    Func
		yTrue *mat.Dense
		yPred *mat.Dense
		want  float64
	}{
		{"mse perfect", MSE, col(1, 2, 3), col(1, 2, 3), 0},
		{"mse simple", MSE, col(1, 2, 3, 4), col(1.5, 2.5, 2.5, 3.5), 0.25},
		{"mse larger", MSE, col(10, 20, 30), col(12, 18, 33), 17.0 / 3.0},
		{"rmse", RMSE, col(1, 2, 3, 4), col(1.5, 2.5, 2.5, 3.5), 0.5},
		{"mae", MAE, col(1, 2, 3), col(2, 2, 5), 1},
		{"r2 perfect", R2Score, col(1, 2, 3), col(1, 2, 3), 1},
		{"r2 mean predictor", R2Score, col(1, 2, 3), col(2, 2, 2), 0},
		{"mse multi-output", MSE, mat.NewDense(2, 2, []float64{0, 0, 0, 0}), mat.NewDense(2, 2, []float64{1, 1, 1, 1}), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.yTrue, tt.yPred)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-10)
		})
	}
}

func TestRegressionMetricErrors(t *testing.T) {
	var dimErr *errors.DimensionError
	_, err := MSE(col(1, 2, 3), col(1, 2))
	assert.True(t, errors.As(err, &dimErr))

	_, err = MAE(col(1, 2), mat.NewDense(2, 2, nil))
	assert.True(t, errors.As(err, &dimErr))

	_, err = R2Score(col(2, 2, 2), col(1, 2, 3))
	assert.Error(t, err)
}

func TestAccuracy(t *testing.T) {
	got, err := Accuracy(col(1, 0, 1, 0), col(0.9, 0.2, 0.4, 0.6))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-12)

	oneHot := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
	probs := mat.NewDense(3, 3, []float64{
		0.7, 0.2, 0.1,
		0.1, 0.3, 0.6,
		0.2, 0.2, 0.6,
	})
	got, err = Accuracy(oneHot, probs)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, got, 1e-12)
}

func TestSignAccuracy(t *testing.T) {
	got, err := SignAccuracy(col(1, -1, 1, -1), col(2.5, -0.1, -3, math.SmallestNonzeroFloat64))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-12)

	_, err = SignAccuracy(&mat.Dense{}, &mat.Dense{})
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}
