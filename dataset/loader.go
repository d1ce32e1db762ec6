package dataset

import (
	"iter"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linbench/pkg/errors"
)

// Source is an indexable collection of numeric rows.
type Source interface {
	// Len returns the number of rows.
	Len() int
	// Row returns the feature vector and target vector at i. The target is
	// nil for unlabeled sources.
	Row(i int) (x, y []float64, err error)
}

type rowSource[F, L any] struct {
	ds *Dataset[F, L]
	fx func(F) []float64
	fy func(L) []float64
}

func (s *rowSource[F, L]) Len() int { return s.ds.Len() }

func (s *rowSource[F, L]) Row(i int) ([]float64, []float64, error) {
	item, err := s.ds.Get(i)
	if err != nil {
		return nil, nil, err
	}
	x := s.fx(item.Feature)
	if !item.Labeled {
		return x, nil, nil
	}
	return x, s.fy(item.Label), nil
}

// Rows adapts a Dataset of arbitrary types into a Source using the given
// encoders for features and labels.
func Rows[F, L any](ds *Dataset[F, L], fx func(F) []float64, fy func(L) []float64) Source {
	return &rowSource[F, L]{ds: ds, fx: fx, fy: fy}
}

// Float64Rows adapts a dataset of feature vectors with scalar labels.
func Float64Rows(ds *Dataset[[]float64, float64]) Source {
	return Rows(ds, identity, func(l float64) []float64 { return []float64{l} })
}

// VectorRows adapts a dataset of feature vectors with vector labels.
func VectorRows(ds *Dataset[[]float64, []float64]) Source {
	return Rows(ds, identity, identity)
}

func identity(v []float64) []float64 { return v }

// Batch is one mini-batch. Targets is nil for unlabeled sources.
type Batch struct {
	Inputs  *mat.Dense
	Targets *mat.Dense
	// Indices are the source rows, in batch order.
	Indices []int
}

// Size returns the number of samples in the batch.
func (b Batch) Size() int {
	return len(b.Indices)
}

// Loader yields mini-batches from a Source.
type Loader struct {
	src       Source
	batchSize int
	shuffle   bool
	dropLast  bool
	rng       *rand.Rand
}

type loaderConfig struct {
	batchSize int
	shuffle   bool
	dropLast  bool
	seed      int64
}

// LoaderOption configures a Loader.
type LoaderOption func(*loaderConfig)

// WithBatchSize sets the number of samples per batch (default 32).
func WithBatchSize(n int) LoaderOption {
	return func(c *loaderConfig) {
		c.batchSize = n
	}
}

// WithShuffle reshuffles the sample order at the start of every pass.
func WithShuffle(shuffle bool) LoaderOption {
	return func(c *loaderConfig) {
		c.shuffle = shuffle
	}
}

// WithSeed fixes the shuffling seed. A negative seed draws a fresh one.
func WithSeed(seed int64) LoaderOption {
	return func(c *loaderConfig) {
		c.seed = seed
	}
}

// WithDropLast skips the final batch when it is smaller than the batch size.
func WithDropLast(drop bool) LoaderOption {
	return func(c *loaderConfig) {
		c.dropLast = drop
	}
}

// NewLoader creates a Loader over src.
func NewLoader(src Source, opts ...LoaderOption) (*Loader, error) {
	cfg := loaderConfig{batchSize: 32, seed: -1}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.batchSize <= 0 {
		return nil, errors.NewValidationError("batch_size", "must be positive", cfg.batchSize)
	}

	seed := cfg.seed
	if seed < 0 {
		seed = rand.Int63()
	}
	return &Loader{
		src:       src,
		batchSize: cfg.batchSize,
		shuffle:   cfg.shuffle,
		dropLast:  cfg.dropLast,
		rng:       rand.New(rand.NewSource(seed)),
	}, nil
}

// Len returns the number of batches in one pass.
func (l *Loader) Len() int {
	n := l.src.Len()
	if l.dropLast {
		return n / l.batchSize
	}
	return (n + l.batchSize - 1) / l.batchSize
}

// BatchSize returns the configured batch size.
func (l *Loader) BatchSize() int {
	return l.batchSize
}

// Batches returns a fresh pass over the source. Iteration stops after the
// first error, which is yielded with a zero Batch.
func (l *Loader) Batches() iter.Seq2[Batch, error] {
	n := l.src.Len()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if l.shuffle {
		l.rng.Shuffle(n, func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	return func(yield func(Batch, error) bool) {
		for start := 0; start < n; start += l.batchSize {
			end := min(start+l.batchSize, n)
			if l.dropLast && end-start < l.batchSize {
				return
			}
			batch, err := l.fetch(order[start:end])
			if !yield(batch, err) || err != nil {
				return
			}
		}
	}
}

func (l *Loader) fetch(indices []int) (Batch, error) {
	var xs, ys [][]float64
	for _, idx := range indices {
		x, y, err := l.src.Row(idx)
		if err != nil {
			return Batch{}, err
		}
		if len(xs) > 0 {
			if len(x) != len(xs[0]) {
				return Batch{}, errors.NewDimensionError("Loader.fetch", len(xs[0]), len(x), 1)
			}
			if len(y) != len(ys[0]) {
				return Batch{}, errors.NewDimensionError("Loader.fetch(target)", len(ys[0]), len(y), 1)
			}
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	if len(xs[0]) == 0 {
		return Batch{}, errors.NewModelError("Loader.fetch", "empty feature vector", errors.ErrEmptyData)
	}

	batch := Batch{
		Inputs:  stack(xs),
		Indices: append([]int(nil), indices...),
	}
	if len(ys[0]) > 0 {
		batch.Targets = stack(ys)
	}
	return batch, nil
}

func stack(rows [][]float64) *mat.Dense {
	out := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		out.SetRow(i, row)
	}
	return out
}
