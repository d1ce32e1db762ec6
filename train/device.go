package train

import (
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linbench/pkg/errors"
)

// Device places batch tensors where the model computes.
type Device interface {
	Name() string
	Place(m *mat.Dense) (*mat.Dense, error)
}

// CPU computes in process memory. Place is the identity.
type CPU struct{}

func (CPU) Name() string { return "cpu" }

func (CPU) Place(m *mat.Dense) (*mat.Dense, error) { return m, nil }

// ParseDevice resolves a device name. Only "cpu" is available.
func ParseDevice(name string) (Device, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "cpu":
		return CPU{}, nil
	default:
		return nil, errors.NewValidationError("device", "unsupported device", name)
	}
}
