package linear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linbench/pkg/errors"
)

func TestLeastSquares_ExactFit(t *testing.T) {
	// y = 2·x1 - 3·x2 + 5
	X := mat.NewDense(5, 2, []float64{
		1, 2,
		2, 3,
		3, 1,
		4, 5,
		5, 0,
	})
	Y := mat.NewDense(5, 1, nil)
	for i := 0; i < 5; i++ {
		Y.Set(i, 0, 2*X.At(i, 0)-3*X.At(i, 1)+5)
	}

	sol, err := LeastSquares(X, Y)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, sol.Weights.At(0, 0), 1e-9)
	assert.InDelta(t, -3.0, sol.Weights.At(1, 0), 1e-9)
	assert.InDelta(t, 5.0, sol.Bias.At(0, 0), 1e-9)

	pred, err := sol.Predict(X)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(Y, pred, 1e-9))
}

func TestLeastSquares_MultiOutput(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{0, 1, 2, 3})
	Y := mat.NewDense(4, 2, []float64{
		1, 0,
		3, -1,
		5, -2,
		7, -3,
	})

	sol, err := LeastSquares(X, Y)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, -1}, sol.Weights.RawRowView(0), 1e-9)
	assert.InDeltaSlice(t, []float64{1, 0}, sol.Bias.RawRowView(0), 1e-9)
}

func TestLeastSquares_Errors(t *testing.T) {
	var dimErr *errors.DimensionError
	_, err := LeastSquares(mat.NewDense(3, 1, nil), mat.NewDense(2, 1, nil))
	assert.True(t, errors.As(err, &dimErr))

	var valErr *errors.ValidationError
	_, err = LeastSquares(mat.NewDense(2, 2, nil), mat.NewDense(2, 1, nil))
	assert.True(t, errors.As(err, &valErr))

	sol, err := LeastSquares(mat.NewDense(3, 1, []float64{0, 1, 2}), mat.NewDense(3, 1, []float64{1, 2, 3}))
	require.NoError(t, err)
	_, err = sol.Predict(mat.NewDense(1, 2, nil))
	assert.True(t, errors.As(err, &dimErr))
}
