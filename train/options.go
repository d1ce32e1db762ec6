package train

import (
	"github.com/YuminosukeSato/linbench/metrics"
	"github.com/YuminosukeSato/linbench/pkg/log"
)

type namedMetric struct {
	name string
	fn   metrics.Func
}

type config struct {
	device    Device
	logger    log.Logger
	callbacks []Callback
	metrics   []namedMetric
}

// Option configures a Trainer.
type Option func(*config)

// WithDevice sets where batches are placed before the forward pass.
func WithDevice(d Device) Option {
	return func(c *config) {
		c.device = d
	}
}

// WithLogger replaces the default "trainer" logger.
func WithLogger(l log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithCallbacks appends epoch-end callbacks, run in order.
func WithCallbacks(cbs ...Callback) Option {
	return func(c *config) {
		c.callbacks = append(c.callbacks, cbs...)
	}
}

// WithMetric evaluates fn on every validation batch; the per-epoch mean is
// recorded under name in History.Metrics.
func WithMetric(name string, fn metrics.Func) Option {
	return func(c *config) {
		c.metrics = append(c.metrics, namedMetric{name: name, fn: fn})
	}
}
