package autograd

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linbench/pkg/errors"
)

// probEps bounds probabilities away from 0 and 1 inside log terms.
const probEps = 1e-12

// MeanSquaredError returns mean((pred - target)²) over every element.
func MeanSquaredError(pred, target *Var) (*Var, error) {
	if err := sameShape("autograd.MeanSquaredError", pred, target); err != nil {
		return nil, err
	}
	r, c := pred.Dims()
	n := float64(r * c)

	diff := mat.NewDense(r, c, nil)
	diff.Sub(pred.value, target.value)
	var sum float64
	for i := 0; i < r; i++ {
		for _, d := range diff.RawRowView(i) {
			sum += d * d
		}
	}

	return newResult(scalar(sum/n), func(g *mat.Dense) []*mat.Dense {
		k := 2 * g.At(0, 0) / n
		gp := mat.NewDense(r, c, nil)
		gp.Scale(k, diff)
		gt := mat.NewDense(r, c, nil)
		gt.Scale(-k, diff)
		return []*mat.Dense{gp, gt}
	}, pred, target), nil
}

// HingeMean returns mean(max(0, 1 - target ⊙ pred)) over every element.
// Targets are expected in {-1, +1} but are not checked.
func HingeMean(pred, target *Var) (*Var, error) {
	if err := sameShape("autograd.HingeMean", pred, target); err != nil {
		return nil, err
	}
	r, c := pred.Dims()
	n := float64(r * c)

	var sum float64
	active := make([]bool, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			margin := 1 - target.value.At(i, j)*pred.value.At(i, j)
			if margin > 0 {
				sum += margin
				active[i*c+j] = true
			}
		}
	}

	return newResult(scalar(sum/n), func(g *mat.Dense) []*mat.Dense {
		k := g.At(0, 0) / n
		gp := mat.NewDense(r, c, nil)
		gt := mat.NewDense(r, c, nil)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				if active[i*c+j] {
					gp.Set(i, j, -k*target.value.At(i, j))
					gt.Set(i, j, -k*pred.value.At(i, j))
				}
			}
		}
		return []*mat.Dense{gp, gt}
	}, pred, target), nil
}

// BinaryCrossEntropy returns -mean(t·log p + (1-t)·log(1-p)) for
// probabilities p, clamped into [eps, 1-eps].
func BinaryCrossEntropy(prob, target *Var) (*Var, error) {
	if err := sameShape("autograd.BinaryCrossEntropy", prob, target); err != nil {
		return nil, err
	}
	r, c := prob.Dims()
	n := float64(r * c)

	clamped := mat.NewDense(r, c, nil)
	clamped.Apply(func(_, _ int, p float64) float64 {
		return math.Min(math.Max(p, probEps), 1-probEps)
	}, prob.value)

	var sum float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			p, t := clamped.At(i, j), target.value.At(i, j)
			sum -= t*math.Log(p) + (1-t)*math.Log(1-p)
		}
	}

	return newResult(scalar(sum/n), func(g *mat.Dense) []*mat.Dense {
		k := g.At(0, 0) / n
		gp := mat.NewDense(r, c, nil)
		gt := mat.NewDense(r, c, nil)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				p, t := clamped.At(i, j), target.value.At(i, j)
				gp.Set(i, j, k*(p-t)/(p*(1-p)))
				gt.Set(i, j, -k*(math.Log(p)-math.Log(1-p)))
			}
		}
		return []*mat.Dense{gp, gt}
	}, prob, target), nil
}

// CrossEntropy returns -Σ t·log p / rows for row-wise class probabilities p
// and one-hot (or soft) targets t.
func CrossEntropy(prob, target *Var) (*Var, error) {
	if err := sameShape("autograd.CrossEntropy", prob, target); err != nil {
		return nil, err
	}
	r, c := prob.Dims()
	n := float64(r)

	var sum float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if t := target.value.At(i, j); t != 0 {
				sum -= t * errors.StabilizeLog(prob.value.At(i, j))
			}
		}
	}

	return newResult(scalar(sum/n), func(g *mat.Dense) []*mat.Dense {
		k := g.At(0, 0) / n
		gp := mat.NewDense(r, c, nil)
		gt := mat.NewDense(r, c, nil)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				p := math.Max(prob.value.At(i, j), probEps)
				gp.Set(i, j, -k*target.value.At(i, j)/p)
				gt.Set(i, j, -k*errors.StabilizeLog(p))
			}
		}
		return []*mat.Dense{gp, gt}
	}, prob, target), nil
}
