// Package metrics evaluates predictions against targets. Every metric takes
// matrices of identical shape, one row per sample.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linbench/pkg/errors"
)

// Func is the signature shared by all metrics in this package.
type Func func(yTrue, yPred mat.Matrix) (float64, error)

// checkShapes は入力の形状を検証し、要素をフラットなスライスで返す
func checkShapes(op string, yTrue, yPred mat.Matrix) (t, p []float64, err error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()
	if rTrue == 0 || cTrue == 0 {
		return nil, nil, errors.NewModelError(op, "empty input", errors.ErrEmptyData)
	}
	if rTrue != rPred {
		return nil, nil, errors.NewDimensionError(op, rTrue, rPred, 0)
	}
	if cTrue != cPred {
		return nil, nil, errors.NewDimensionError(op, cTrue, cPred, 1)
	}
	return flatten(yTrue), flatten(yPred), nil
}

func flatten(m mat.Matrix) []float64 {
	r, c := m.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out = append(out, m.At(i, j))
		}
	}
	return out
}

// MSE は平均二乗誤差を計算する
func MSE(yTrue, yPred mat.Matrix) (float64, error) {
	t, p, err := checkShapes("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	d := floats.Distance(t, p, 2)
	return d * d / float64(len(t)), nil
}

// RMSE は平方根平均二乗誤差を計算する
func RMSE(yTrue, yPred mat.Matrix) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差を計算する
func MAE(yTrue, yPred mat.Matrix) (float64, error) {
	t, p, err := checkShapes("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return floats.Distance(t, p, 1) / float64(len(t)), nil
}

// R2Score は決定係数を計算する。yTrue に分散がない場合はエラー。
func R2Score(yTrue, yPred mat.Matrix) (float64, error) {
	t, p, err := checkShapes("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	mean := floats.Sum(t) / float64(len(t))
	var tss, rss float64
	for i := range t {
		tss += (t[i] - mean) * (t[i] - mean)
		rss += (t[i] - p[i]) * (t[i] - p[i])
	}
	if tss == 0 {
		return 0, errors.Newf("R2Score: total sum of squares is zero (no variance in yTrue)")
	}
	return 1 - rss/tss, nil
}
