package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "Trainer.Train",
			kind:    "training phase failed",
			err:     fmt.Errorf("test error"),
			wantMsg: "linbench: Trainer.Train: training phase failed: test error",
		},
		{
			name:    "without original error",
			op:      "Trainer.Train",
			kind:    "empty loader",
			err:     nil,
			wantMsg: "linbench: Trainer.Train: empty loader",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			assert.Equal(t, tt.wantMsg, err.Error())

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", err)
			assert.Contains(t, formatted, "errors_test.go")

			var modelErr *ModelError
			assert.True(t, As(err, &modelErr))
		})
	}
}

func TestNewIndexError(t *testing.T) {
	err := NewIndexError("Dataset.Get", 5, 3)

	assert.Equal(t, "linbench: Dataset.Get: index 5 out of range [0, 3)", err.Error())

	var idxErr *IndexError
	require.True(t, As(err, &idxErr))
	assert.Equal(t, 5, idxErr.Index)
	assert.Equal(t, 3, idxErr.Len)
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("MatMul", 3, 2, 1)

	want := "linbench: MatMul: dimension mismatch on axis 1 (features). Expected 3, got 2"
	assert.Equal(t, want, err.Error())

	var dimErr *DimensionError
	assert.True(t, As(err, &dimErr))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("out_dims", "must be 1 for binary classification", 2)

	want := "linbench: validation failed for parameter 'out_dims': must be 1 for binary classification (got: 2)"
	assert.Equal(t, want, err.Error())

	var valErr *ValidationError
	require.True(t, As(err, &valErr))
	assert.Equal(t, "out_dims", valErr.ParamName)
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrap(ErrEmptyData, "in Trainer.Train")

	assert.True(t, Is(wrapped, ErrEmptyData))
	assert.Contains(t, wrapped.Error(), "in Trainer.Train")

	wrappedf := Wrapf(ErrEmptyData, "epoch %d", 3)
	assert.True(t, Is(wrappedf, ErrEmptyData))
	assert.Contains(t, wrappedf.Error(), "epoch 3")
}

func TestErrorChaining(t *testing.T) {
	err1 := fmt.Errorf("base error")
	err2 := Wrap(err1, "wrapped once")
	err3 := NewModelError("Operation", "failed", err2)

	assert.Contains(t, err3.Error(), "base error")

	formatted := fmt.Sprintf("%+v", err3)
	assert.Contains(t, formatted, "errors_test.go")
}

func TestCheckScalar(t *testing.T) {
	assert.NoError(t, CheckScalar("loss", 1.5, 0))

	err := CheckScalar("loss", math.NaN(), 7)
	require.Error(t, err)

	var numErr *NumericalInstabilityError
	require.True(t, As(err, &numErr))
	assert.Equal(t, 7, numErr.Iteration)
	assert.Equal(t, "loss", numErr.Operation)
}

func TestCheckMatrix(t *testing.T) {
	ok := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	assert.NoError(t, CheckMatrix("weights", ok, 0))

	bad := mat.NewDense(2, 2, []float64{1, math.Inf(1), 3, math.NaN()})
	err := CheckMatrix("weights", bad, 2)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "weights"))

	var numErr *NumericalInstabilityError
	require.True(t, As(err, &numErr))
	assert.Len(t, numErr.Values, 2)
}

func TestRecover(t *testing.T) {
	t.Run("with panic", func(t *testing.T) {
		fn := func() (err error) {
			defer Recover(&err, "TestOperation")
			panic("test panic message")
		}

		err := fn()
		require.Error(t, err)

		var panicErr *PanicError
		require.True(t, As(err, &panicErr))
		assert.Equal(t, "TestOperation", panicErr.Operation)
		assert.Equal(t, "panic in TestOperation: test panic message", panicErr.Error())
		assert.NotEmpty(t, panicErr.StackTrace)
	})

	t.Run("without panic", func(t *testing.T) {
		fn := func() (err error) {
			defer Recover(&err, "TestOperation")
			return nil
		}
		assert.NoError(t, fn())
	})

	t.Run("panic with error value unwraps", func(t *testing.T) {
		err := SafeExecute("matmul", func() error {
			panic(mat.ErrShape)
		})
		require.Error(t, err)
		assert.True(t, Is(err, mat.ErrShape))
	})

	t.Run("existing error is kept", func(t *testing.T) {
		original := fmt.Errorf("original error")
		fn := func() (err error) {
			defer Recover(&err, "TestOperation")
			err = original
			panic("panic after error")
		}

		err := fn()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "panic in TestOperation")
		assert.True(t, Is(err, original))
	})
}
