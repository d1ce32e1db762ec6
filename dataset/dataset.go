// Package dataset wraps in-memory samples and labels and turns them into
// mini-batches of gonum matrices.
package dataset

import (
	"github.com/YuminosukeSato/linbench/pkg/errors"
)

// Transform is applied to a feature each time it is retrieved.
type Transform[F any] func(F) (F, error)

// Item is one retrieved sample. Labeled is false when the dataset was
// built without labels, in which case Label is the zero value.
type Item[F, L any] struct {
	Feature F
	Label   L
	Labeled bool
}

// Dataset pairs features with labels by position.
//
// Lengths are not checked at construction: a missing label surfaces as an
// *errors.IndexError when its index is accessed. Call Validate for an eager
// check.
type Dataset[F, L any] struct {
	features  []F
	labels    []L
	transform Transform[F]
}

// Option configures a Dataset.
type Option[F any] func(*options[F])

type options[F any] struct {
	transform Transform[F]
}

// WithTransform sets a transform applied lazily in Get.
func WithTransform[F any](fn Transform[F]) Option[F] {
	return func(o *options[F]) {
		o.transform = fn
	}
}

// New creates a dataset. Pass nil labels for an unlabeled dataset.
//
// Example:
//
//	ds := dataset.New(features, labels, dataset.WithTransform(scaler.TransformSample))
//	item, err := ds.Get(0)
func New[F, L any](features []F, labels []L, opts ...Option[F]) *Dataset[F, L] {
	var o options[F]
	for _, opt := range opts {
		opt(&o)
	}
	return &Dataset[F, L]{
		features:  features,
		labels:    labels,
		transform: o.transform,
	}
}

// Len returns the number of samples.
func (d *Dataset[F, L]) Len() int {
	return len(d.features)
}

// Labeled reports whether labels were supplied.
func (d *Dataset[F, L]) Labeled() bool {
	return len(d.labels) > 0
}

// Get returns the (transformed) feature at idx paired with its label.
func (d *Dataset[F, L]) Get(idx int) (Item[F, L], error) {
	var item Item[F, L]
	if idx < 0 || idx >= len(d.features) {
		return item, errors.NewIndexError("Dataset.Get", idx, len(d.features))
	}

	if d.Labeled() {
		if idx >= len(d.labels) {
			return item, errors.NewIndexError("Dataset.Get(label)", idx, len(d.labels))
		}
		item.Label = d.labels[idx]
		item.Labeled = true
	}

	item.Feature = d.features[idx]
	if d.transform != nil {
		f, err := d.transform(item.Feature)
		if err != nil {
			return Item[F, L]{}, errors.Wrapf(err, "transform sample %d", idx)
		}
		item.Feature = f
	}
	return item, nil
}

// Validate checks that every feature has a label.
func (d *Dataset[F, L]) Validate() error {
	if d.Labeled() && len(d.labels) != len(d.features) {
		return errors.NewDimensionError("Dataset.Validate", len(d.features), len(d.labels), 0)
	}
	return nil
}
