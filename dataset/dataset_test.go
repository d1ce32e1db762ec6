package dataset

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/linbench/pkg/errors"
)

func sampleData(n int) ([][]float64, []float64) {
	features := make([][]float64, n)
	labels := make([]float64, n)
	for i := range features {
		features[i] = []float64{float64(i), float64(i * 10)}
		labels[i] = float64(i % 2)
	}
	return features, labels
}

func TestDataset_Get(t *testing.T) {
	features, labels := sampleData(5)
	ds := New(features, labels)

	require.Equal(t, 5, ds.Len())
	assert.True(t, ds.Labeled())
	for i := 0; i < ds.Len(); i++ {
		item, err := ds.Get(i)
		require.NoError(t, err)
		assert.Equal(t, features[i], item.Feature)
		assert.Equal(t, labels[i], item.Label)
		assert.True(t, item.Labeled)
	}
}

func TestDataset_Transform(t *testing.T) {
	features, labels := sampleData(4)
	calls := 0
	double := func(x []float64) ([]float64, error) {
		calls++
		out := make([]float64, len(x))
		for i, v := range x {
			out[i] = 2 * v
		}
		return out, nil
	}

	ds := New(features, labels, WithTransform(double))
	assert.Equal(t, 0, calls, "transform must be lazy")

	for i := 0; i < ds.Len(); i++ {
		item, err := ds.Get(i)
		require.NoError(t, err)
		want, _ := double(features[i])
		assert.Equal(t, want, item.Feature)
		assert.Equal(t, labels[i], item.Label)
	}
	assert.Equal(t, []float64{1, 10}, features[1], "raw features untouched")

	failing := New(features, labels, WithTransform(func(x []float64) ([]float64, error) {
		return nil, fmt.Errorf("bad sample")
	}))
	_, err := failing.Get(2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transform sample 2")
}

func TestDataset_Unlabeled(t *testing.T) {
	ds := New[string, int]([]string{"a", "b"}, nil)
	assert.False(t, ds.Labeled())

	item, err := ds.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "b", item.Feature)
	assert.False(t, item.Labeled)
	assert.Zero(t, item.Label)
}

func TestDataset_IndexErrors(t *testing.T) {
	features, labels := sampleData(3)
	ds := New(features, labels)

	for _, idx := range []int{-1, 3, 100} {
		_, err := ds.Get(idx)
		var idxErr *errors.IndexError
		require.True(t, errors.As(err, &idxErr), "index %d", idx)
		assert.Equal(t, idx, idxErr.Index)
	}
}

func TestDataset_MismatchedLengths(t *testing.T) {
	features, labels := sampleData(4)
	ds := New(features, labels[:2])

	// construction succeeds and early indices work
	_, err := ds.Get(1)
	require.NoError(t, err)

	_, err = ds.Get(3)
	var idxErr *errors.IndexError
	assert.True(t, errors.As(err, &idxErr))

	var dimErr *errors.DimensionError
	assert.True(t, errors.As(ds.Validate(), &dimErr))
	assert.NoError(t, New(features, labels).Validate())
}

func TestLoader_CoversEverySampleOnce(t *testing.T) {
	features, labels := sampleData(10)
	loader, err := NewLoader(Float64Rows(New(features, labels)), WithBatchSize(3), WithShuffle(true), WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, 4, loader.Len())

	for pass := 0; pass < 2; pass++ {
		var seen []int
		var sizes []int
		for batch, err := range loader.Batches() {
			require.NoError(t, err)
			sizes = append(sizes, batch.Size())
			r, c := batch.Inputs.Dims()
			assert.Equal(t, batch.Size(), r)
			assert.Equal(t, 2, c)
			for i, idx := range batch.Indices {
				assert.Equal(t, float64(idx), batch.Inputs.At(i, 0))
				assert.Equal(t, labels[idx], batch.Targets.At(i, 0))
			}
			seen = append(seen, batch.Indices...)
		}
		sort.Ints(seen)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, seen)
		assert.Equal(t, []int{3, 3, 3, 1}, sizes)
	}
}

func TestLoader_InOrderAndDropLast(t *testing.T) {
	features, labels := sampleData(5)
	loader, err := NewLoader(Float64Rows(New(features, labels)), WithBatchSize(2), WithDropLast(true))
	require.NoError(t, err)
	assert.Equal(t, 2, loader.Len())

	var got [][]int
	for batch, err := range loader.Batches() {
		require.NoError(t, err)
		got = append(got, batch.Indices)
	}
	assert.Equal(t, [][]int{{0, 1}, {2, 3}}, got)
}

func TestLoader_PropagatesErrors(t *testing.T) {
	features, labels := sampleData(4)
	ds := New(features, labels[:3])
	loader, err := NewLoader(Float64Rows(ds), WithBatchSize(2))
	require.NoError(t, err)

	var batches int
	var iterErr error
	for _, err := range loader.Batches() {
		if err != nil {
			iterErr = err
			break
		}
		batches++
	}
	assert.Equal(t, 1, batches)
	var idxErr *errors.IndexError
	assert.True(t, errors.As(iterErr, &idxErr))
}

func TestLoader_VectorAndUnlabeled(t *testing.T) {
	ds := New([][]float64{{1}, {2}}, [][]float64{{1, 0}, {0, 1}})
	loader, err := NewLoader(VectorRows(ds), WithBatchSize(8))
	require.NoError(t, err)
	for batch, err := range loader.Batches() {
		require.NoError(t, err)
		r, c := batch.Targets.Dims()
		assert.Equal(t, 2, r)
		assert.Equal(t, 2, c)
	}

	unlabeled, err := NewLoader(VectorRows(New[[]float64, []float64]([][]float64{{1}, {2}}, nil)))
	require.NoError(t, err)
	for batch, err := range unlabeled.Batches() {
		require.NoError(t, err)
		assert.Nil(t, batch.Targets)
	}

	_, err = NewLoader(VectorRows(ds), WithBatchSize(0))
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestSplit(t *testing.T) {
	features, labels := sampleData(10)
	src := Float64Rows(New(features, labels))

	train, val, err := Split(src, 0.2, 42)
	require.NoError(t, err)
	assert.Equal(t, 8, train.Len())
	assert.Equal(t, 2, val.Len())

	seen := map[float64]bool{}
	for _, part := range []*Subset{train, val} {
		for i := 0; i < part.Len(); i++ {
			x, _, err := part.Row(i)
			require.NoError(t, err)
			assert.False(t, seen[x[0]], "row %v appears twice", x[0])
			seen[x[0]] = true
		}
	}
	assert.Len(t, seen, 10)

	train2, _, err := Split(src, 0.2, 42)
	require.NoError(t, err)
	assert.Equal(t, train.indices, train2.indices)

	_, _, err = Split(src, 1.5, 1)
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))

	_, _, err = Split(src, 0.01, 1)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	_, _, err = train.Row(8)
	var idxErr *errors.IndexError
	assert.True(t, errors.As(err, &idxErr))
}
