// Package linear は線形回帰の閉形式解を提供する。
//
// 勾配法で学習した nn.LinearRegression の比較基準として使う。
package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linbench/pkg/errors"
)

// Solution は最小二乗解 Y ≈ X·Weights + Bias
type Solution struct {
	// Weights は in × out の係数行列
	Weights *mat.Dense
	// Bias は 1 × out の切片
	Bias *mat.Dense
}

// LeastSquares は Y を X の affine 関数で近似する最小二乗解を求める。
// 切片列を追加した計画行列を QR 分解で解く。
func LeastSquares(X, Y mat.Matrix) (*Solution, error) {
	r, c := X.Dims()
	ry, out := Y.Dims()
	if r == 0 || c == 0 || out == 0 {
		return nil, errors.NewModelError("LeastSquares", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return nil, errors.NewDimensionError("LeastSquares", r, ry, 0)
	}
	if r < c+1 {
		return nil, errors.NewValidationError("samples", "need at least n_features+1 rows", r)
	}

	// [1, X]
	design := mat.NewDense(r, c+1, nil)
	for i := 0; i < r; i++ {
		design.Set(i, 0, 1)
		for j := 0; j < c; j++ {
			design.Set(i, j+1, X.At(i, j))
		}
	}

	var qr mat.QR
	qr.Factorize(design)
	var coef mat.Dense
	if err := qr.SolveTo(&coef, false, Y); err != nil {
		return nil, errors.NewModelError("LeastSquares", "rank deficient design matrix", err)
	}

	sol := &Solution{
		Weights: mat.DenseCopyOf(coef.Slice(1, c+1, 0, out)),
		Bias:    mat.DenseCopyOf(coef.Slice(0, 1, 0, out)),
	}
	if err := errors.CheckMatrix("LeastSquares", sol.Weights, 0); err != nil {
		return nil, err
	}
	return sol, nil
}

// Predict は X·Weights + Bias を返す
func (s *Solution) Predict(X mat.Matrix) (*mat.Dense, error) {
	r, c := X.Dims()
	in, out := s.Weights.Dims()
	if c != in {
		return nil, errors.NewDimensionError("Solution.Predict", in, c, 1)
	}

	pred := mat.NewDense(r, out, nil)
	pred.Mul(X, s.Weights)
	pred.Apply(func(_, j int, v float64) float64 {
		return v + s.Bias.At(0, j)
	}, pred)
	return pred, nil
}
