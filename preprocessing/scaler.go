// Package preprocessing は特徴量のスケーリングを提供する。
//
// スケーラーは行列全体 (Transform) と1サンプル (TransformSample) の両方を
// 変換できるため、dataset.WithTransform にそのまま渡せる。
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/linbench/pkg/errors"
)

// 分散がこれ未満の特徴量はスケール1として扱う
const minScale = 1e-8

// columnMap は学習済みの列ごとの affine 変換 (x - shift) / scale を保持する
type columnMap struct {
	shift  []float64
	scale  []float64
	fitted bool
}

func (c *columnMap) check(op string, nFeatures int) error {
	if !c.fitted {
		return errors.NewModelError(op, "scaler is not fitted", errors.New("call Fit first"))
	}
	if nFeatures != len(c.shift) {
		return errors.NewDimensionError(op, len(c.shift), nFeatures, 1)
	}
	return nil
}

func (c *columnMap) apply(X mat.Matrix, inverse bool) *mat.Dense {
	r, cols := X.Dims()
	out := mat.NewDense(r, cols, nil)
	out.Apply(func(_, j int, v float64) float64 {
		if inverse {
			return v*c.scale[j] + c.shift[j]
		}
		return (v - c.shift[j]) / c.scale[j]
	}, X)
	return out
}

func (c *columnMap) sample(x []float64) []float64 {
	out := make([]float64, len(x))
	for j, v := range x {
		out[j] = (v - c.shift[j]) / c.scale[j]
	}
	return out
}

func checkFitInput(op string, X mat.Matrix) (int, int, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return 0, 0, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if err := errors.CheckMatrix(op, X, 0); err != nil {
		return 0, 0, err
	}
	return r, c, nil
}

// StandardScaler はデータを平均0、標準偏差1に変換する
type StandardScaler struct {
	cols columnMap

	// WithMean は平均を引くかどうか
	WithMean bool
	// WithStd は標準偏差で割るかどうか
	WithStd bool
}

// NewStandardScaler は新しいStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	err := scaler.Fit(X)
//	ds := dataset.New(features, labels, dataset.WithTransform(scaler.TransformSample))
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{WithMean: withMean, WithStd: withStd}
}

// Fit は各列の平均と母標準偏差を計算する
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c, err := checkFitInput("StandardScaler.Fit", X)
	if err != nil {
		return err
	}

	s.cols.shift = make([]float64, c)
	s.cols.scale = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		mean, std := stat.PopMeanStdDev(col, nil)
		if s.WithMean {
			s.cols.shift[j] = mean
		}
		s.cols.scale[j] = 1
		if s.WithStd && std >= minScale {
			s.cols.scale[j] = std
		}
	}
	s.cols.fitted = true
	return nil
}

// Transform は学習済みの統計量でデータを標準化する
func (s *StandardScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	_, c := X.Dims()
	if err := s.cols.check("StandardScaler.Transform", c); err != nil {
		return nil, err
	}
	return s.cols.apply(X, false), nil
}

// FitTransform は Fit と Transform を続けて行う
func (s *StandardScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (s *StandardScaler) InverseTransform(X mat.Matrix) (*mat.Dense, error) {
	_, c := X.Dims()
	if err := s.cols.check("StandardScaler.InverseTransform", c); err != nil {
		return nil, err
	}
	return s.cols.apply(X, true), nil
}

// TransformSample は1サンプルを標準化する。dataset.Transform として使える。
func (s *StandardScaler) TransformSample(x []float64) ([]float64, error) {
	if err := s.cols.check("StandardScaler.TransformSample", len(x)); err != nil {
		return nil, err
	}
	return s.cols.sample(x), nil
}

// Mean は学習済みの平均を返す (WithMean が false の場合は0)
func (s *StandardScaler) Mean() []float64 {
	return append([]float64(nil), s.cols.shift...)
}

// Scale は学習済みのスケールを返す
func (s *StandardScaler) Scale() []float64 {
	return append([]float64(nil), s.cols.scale...)
}

func (s *StandardScaler) String() string {
	if !s.cols.fitted {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
	}
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)",
		s.WithMean, s.WithStd, len(s.cols.shift))
}

// MinMaxScaler はデータを FeatureRange の範囲に線形変換する
type MinMaxScaler struct {
	cols columnMap

	// FeatureRange は変換後の範囲 [min, max]
	FeatureRange [2]float64
}

// NewMinMaxScaler は新しいMinMaxScalerを作成する
func NewMinMaxScaler(featureRange [2]float64) (*MinMaxScaler, error) {
	if featureRange[0] >= featureRange[1] {
		return nil, errors.NewValidationError("feature_range", "min must be less than max", featureRange)
	}
	return &MinMaxScaler{FeatureRange: featureRange}, nil
}

// Fit は各列の最小値と最大値を記録する
func (m *MinMaxScaler) Fit(X mat.Matrix) error {
	r, c, err := checkFitInput("MinMaxScaler.Fit", X)
	if err != nil {
		return err
	}

	width := m.FeatureRange[1] - m.FeatureRange[0]
	m.cols.shift = make([]float64, c)
	m.cols.scale = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		lo, hi := floats.Min(col), floats.Max(col)
		dataRange := hi - lo
		if math.Abs(dataRange) < minScale {
			dataRange = 1
		}
		// (x - lo)/range*width + fmin == (x - shift)/scale
		m.cols.scale[j] = dataRange / width
		m.cols.shift[j] = lo - m.FeatureRange[0]*m.cols.scale[j]
	}
	m.cols.fitted = true
	return nil
}

// Transform は学習済みの範囲でデータをスケーリングする
func (m *MinMaxScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	_, c := X.Dims()
	if err := m.cols.check("MinMaxScaler.Transform", c); err != nil {
		return nil, err
	}
	return m.cols.apply(X, false), nil
}

// InverseTransform はスケーリングされたデータを元の範囲に戻す
func (m *MinMaxScaler) InverseTransform(X mat.Matrix) (*mat.Dense, error) {
	_, c := X.Dims()
	if err := m.cols.check("MinMaxScaler.InverseTransform", c); err != nil {
		return nil, err
	}
	return m.cols.apply(X, true), nil
}

// TransformSample は1サンプルをスケーリングする
func (m *MinMaxScaler) TransformSample(x []float64) ([]float64, error) {
	if err := m.cols.check("MinMaxScaler.TransformSample", len(x)); err != nil {
		return nil, err
	}
	return m.cols.sample(x), nil
}
