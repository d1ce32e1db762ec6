package autograd

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linbench/pkg/errors"
)

// MatMul returns a·b.
func MatMul(a, b *Var) (*Var, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br {
		return nil, errors.NewDimensionError("autograd.MatMul", ac, br, 0)
	}

	out := mat.NewDense(ar, bc, nil)
	out.Mul(a.value, b.value)

	return newResult(out, func(g *mat.Dense) []*mat.Dense {
		var ga, gb *mat.Dense
		if a.requiresGrad {
			ga = mat.NewDense(ar, ac, nil)
			ga.Mul(g, b.value.T())
		}
		if b.requiresGrad {
			gb = mat.NewDense(br, bc, nil)
			gb.Mul(a.value.T(), g)
		}
		return []*mat.Dense{ga, gb}
	}, a, b), nil
}

// AddRow adds the 1×n row vector row to every row of a.
func AddRow(a, row *Var) (*Var, error) {
	ar, ac := a.Dims()
	rr, rc := row.Dims()
	if rr != 1 {
		return nil, errors.NewDimensionError("autograd.AddRow", 1, rr, 0)
	}
	if rc != ac {
		return nil, errors.NewDimensionError("autograd.AddRow", ac, rc, 1)
	}

	out := mat.NewDense(ar, ac, nil)
	bias := row.value.RawRowView(0)
	for i := 0; i < ar; i++ {
		dst := out.RawRowView(i)
		copy(dst, a.value.RawRowView(i))
		floats.Add(dst, bias)
	}

	return newResult(out, func(g *mat.Dense) []*mat.Dense {
		var grow *mat.Dense
		if row.requiresGrad {
			grow = mat.NewDense(1, ac, nil)
			sums := grow.RawRowView(0)
			for i := 0; i < ar; i++ {
				floats.Add(sums, g.RawRowView(i))
			}
		}
		return []*mat.Dense{g, grow}
	}, a, row), nil
}

// Add returns a+b for equally shaped operands.
func Add(a, b *Var) (*Var, error) {
	if err := sameShape("autograd.Add", a, b); err != nil {
		return nil, err
	}
	r, c := a.Dims()
	out := mat.NewDense(r, c, nil)
	out.Add(a.value, b.value)

	return newResult(out, func(g *mat.Dense) []*mat.Dense {
		return []*mat.Dense{g, g}
	}, a, b), nil
}

// Scale returns s·a.
func Scale(s float64, a *Var) *Var {
	r, c := a.Dims()
	out := mat.NewDense(r, c, nil)
	out.Scale(s, a.value)

	return newResult(out, func(g *mat.Dense) []*mat.Dense {
		ga := mat.NewDense(r, c, nil)
		ga.Scale(s, g)
		return []*mat.Dense{ga}
	}, a)
}

// Sigmoid applies the logistic function elementwise.
func Sigmoid(a *Var) *Var {
	r, c := a.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(_, _ int, v float64) float64 {
		return sigmoid(v)
	}, a.value)

	return newResult(out, func(g *mat.Dense) []*mat.Dense {
		ga := mat.NewDense(r, c, nil)
		ga.Apply(func(i, j int, s float64) float64 {
			return g.At(i, j) * s * (1 - s)
		}, out)
		return []*mat.Dense{ga}
	}, a)
}

// Bounds of the sigmoid output; it stays strictly inside (0, 1) even where
// the exact value rounds to 0 or 1.
var (
	sigmoidLo = math.Nextafter(0, 1)
	sigmoidHi = math.Nextafter(1, 0)
)

// sigmoid avoids overflowing exp for large negative inputs.
func sigmoid(x float64) float64 {
	var s float64
	if x >= 0 {
		s = 1 / (1 + math.Exp(-x))
	} else {
		e := math.Exp(x)
		s = e / (1 + e)
	}
	return math.Min(math.Max(s, sigmoidLo), sigmoidHi)
}

// Softmax normalizes every row of a into a probability distribution.
func Softmax(a *Var) *Var {
	r, c := a.Dims()
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		src := a.value.RawRowView(i)
		dst := out.RawRowView(i)
		shift := floats.Max(src)
		for j, v := range src {
			dst[j] = math.Exp(v - shift)
		}
		floats.Scale(1/floats.Sum(dst), dst)
	}

	return newResult(out, func(g *mat.Dense) []*mat.Dense {
		ga := mat.NewDense(r, c, nil)
		for i := 0; i < r; i++ {
			s := out.RawRowView(i)
			gi := g.RawRowView(i)
			dot := floats.Dot(gi, s)
			dst := ga.RawRowView(i)
			for j := range dst {
				dst[j] = s[j] * (gi[j] - dot)
			}
		}
		return []*mat.Dense{ga}
	}, a)
}

// SquaredNorm returns the 1×1 sum of squares of every element of a.
func SquaredNorm(a *Var) *Var {
	r, c := a.Dims()
	var sum float64
	for i := 0; i < r; i++ {
		row := a.value.RawRowView(i)
		sum += floats.Dot(row, row)
	}

	return newResult(scalar(sum), func(g *mat.Dense) []*mat.Dense {
		ga := mat.NewDense(r, c, nil)
		ga.Scale(2*g.At(0, 0), a.value)
		return []*mat.Dense{ga}
	}, a)
}

// Mean returns the 1×1 mean of every element of a.
func Mean(a *Var) *Var {
	r, c := a.Dims()
	n := float64(r * c)
	out := scalar(mat.Sum(a.value) / n)

	return newResult(out, func(g *mat.Dense) []*mat.Dense {
		ga := mat.NewDense(r, c, nil)
		fill(ga, g.At(0, 0)/n)
		return []*mat.Dense{ga}
	}, a)
}

func scalar(v float64) *mat.Dense {
	return mat.NewDense(1, 1, []float64{v})
}

func fill(m *mat.Dense, v float64) {
	r, _ := m.Dims()
	for i := 0; i < r; i++ {
		row := m.RawRowView(i)
		for j := range row {
			row[j] = v
		}
	}
}

func sameShape(op string, a, b *Var) error {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br {
		return errors.NewDimensionError(op, ar, br, 0)
	}
	if ac != bc {
		return errors.NewDimensionError(op, ac, bc, 1)
	}
	return nil
}
