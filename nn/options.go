package nn

import (
	"math/rand"

	"github.com/YuminosukeSato/linbench/pkg/errors"
)

// Init selects how weights and biases are initialized.
type Init int

const (
	// InitUniform draws from U(-1/√in, 1/√in), the usual default for dense layers.
	InitUniform Init = iota
	// InitZeros sets every parameter to zero.
	InitZeros
)

// String returns the name of the initializer.
func (i Init) String() string {
	switch i {
	case InitUniform:
		return "uniform"
	case InitZeros:
		return "zeros"
	default:
		return "unknown"
	}
}

type config struct {
	seed   int64
	init   Init
	outDim int

	// LinearSVM only.
	soft    bool
	c       float64
	svmOpts []string
}

func defaultConfig() *config {
	return &config{
		seed:   -1,
		init:   InitUniform,
		outDim: 1,
		c:      0.01,
	}
}

// buildConfig applies opts over the defaults. Options that only a LinearSVM
// understands are rejected for every other model instead of being ignored.
func buildConfig(model string, svm bool, opts []Option) (*config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if !svm && len(cfg.svmOpts) > 0 {
		return nil, errors.NewValidationError(cfg.svmOpts[0], model+": option applies to LinearSVM only", cfg.svmOpts)
	}
	return cfg, nil
}

func (c *config) rng() *rand.Rand {
	if c.seed >= 0 {
		return rand.New(rand.NewSource(c.seed))
	}
	return rand.New(rand.NewSource(rand.Int63()))
}

// Option configures a model at construction.
type Option func(*config)

// WithSeed fixes the random seed used for weight initialization.
// A negative seed draws a fresh one.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithInit selects the parameter initializer.
func WithInit(init Init) Option {
	return func(c *config) {
		c.init = init
	}
}

// WithOutDims sets the output dimensionality of a LinearSVM (default 1).
// Other models take their output size as a constructor argument and reject
// this option.
func WithOutDims(out int) Option {
	return func(c *config) {
		c.outDim = out
		c.svmOpts = append(c.svmOpts, "out_dims")
	}
}

// WithSoftMargin adds the C·||W||² term to the LinearSVM hinge loss.
// Only NewLinearSVM accepts it.
func WithSoftMargin(soft bool) Option {
	return func(c *config) {
		c.soft = soft
		c.svmOpts = append(c.svmOpts, "soft_margin")
	}
}

// WithC sets the LinearSVM regularization strength (default 0.01).
// Only NewLinearSVM accepts it.
func WithC(strength float64) Option {
	return func(c *config) {
		c.c = strength
		c.svmOpts = append(c.svmOpts, "C")
	}
}
