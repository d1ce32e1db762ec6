package dataset

import (
	"math"
	"math/rand"

	"github.com/YuminosukeSato/linbench/pkg/errors"
)

// Subset exposes selected rows of a Source.
type Subset struct {
	src     Source
	indices []int
}

// NewSubset creates a view of src restricted to indices.
func NewSubset(src Source, indices []int) *Subset {
	return &Subset{src: src, indices: indices}
}

// Len implements Source.
func (s *Subset) Len() int { return len(s.indices) }

// Row implements Source.
func (s *Subset) Row(i int) ([]float64, []float64, error) {
	if i < 0 || i >= len(s.indices) {
		return nil, nil, errors.NewIndexError("Subset.Row", i, len(s.indices))
	}
	return s.src.Row(s.indices[i])
}

// Split shuffles the rows of src with seed and returns a training part and
// a validation part holding round(valFraction·n) rows. Both parts must end
// up non-empty.
func Split(src Source, valFraction float64, seed int64) (train, val *Subset, err error) {
	if valFraction <= 0 || valFraction >= 1 {
		return nil, nil, errors.NewValidationError("val_fraction", "must be in (0, 1)", valFraction)
	}
	n := src.Len()
	nVal := int(math.Round(float64(n) * valFraction))
	if nVal == 0 || nVal == n {
		return nil, nil, errors.NewModelError("Split", "too few samples for both parts", errors.ErrEmptyData)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return NewSubset(src, perm[nVal:]), NewSubset(src, perm[:nVal]), nil
}
