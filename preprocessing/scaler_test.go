package preprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linbench/pkg/errors"
)

func TestStandardScaler(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 10,
		3, 10,
		4, 10,
	})

	s := NewStandardScaler(true, true)
	Xs, err := s.FitTransform(X)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{2.5, 10}, s.Mean(), 1e-12)
	// constant column keeps unit scale
	assert.InDelta(t, 1.0, s.Scale()[1], 1e-12)

	col := mat.Col(nil, 0, Xs)
	var sum, sq float64
	for _, v := range col {
		sum += v
		sq += v * v
	}
	assert.InDelta(t, 0.0, sum/4, 1e-12)
	assert.InDelta(t, 1.0, sq/4, 1e-12)
	assert.InDelta(t, 0.0, Xs.At(2, 1), 1e-12)

	back, err := s.InverseTransform(Xs)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(X, back, 1e-12))

	sample, err := s.TransformSample([]float64{3, 10})
	require.NoError(t, err)
	assert.InDelta(t, Xs.At(2, 0), sample[0], 1e-12)
	assert.InDelta(t, 0.0, sample[1], 1e-12)
}

func TestStandardScaler_Errors(t *testing.T) {
	s := NewStandardScaler(true, true)

	_, err := s.TransformSample([]float64{1})
	var modelErr *errors.ModelError
	assert.True(t, errors.As(err, &modelErr))

	require.NoError(t, s.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
	_, err = s.TransformSample([]float64{1, 2, 3})
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	assert.True(t, errors.Is(s.Fit(&mat.Dense{}), errors.ErrEmptyData))
}

func TestMinMaxScaler(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		0, -5,
		5, 0,
		10, 5,
	})

	m, err := NewMinMaxScaler([2]float64{-1, 1})
	require.NoError(t, err)
	require.NoError(t, m.Fit(X))

	Xs, err := m.Transform(X)
	require.NoError(t, err)
	want := mat.NewDense(3, 2, []float64{
		-1, -1,
		0, 0,
		1, 1,
	})
	assert.True(t, mat.EqualApprox(want, Xs, 1e-12))

	back, err := m.InverseTransform(Xs)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(X, back, 1e-12))

	sample, err := m.TransformSample([]float64{2.5, 2.5})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-0.5, 0.5}, sample, 1e-12)

	_, err = NewMinMaxScaler([2]float64{1, 1})
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))
}
