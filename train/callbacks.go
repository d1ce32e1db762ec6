package train

import (
	"math"
	"time"

	"github.com/YuminosukeSato/linbench/pkg/log"
)

// EpochEnv describes a finished epoch. It is passed to every callback before
// the epoch is committed to the History.
type EpochEnv struct {
	Epoch     int
	TrainLoss float64
	ValLoss   float64
	Metrics   map[string]float64
	Duration  time.Duration
	// Stop ends training after this epoch is recorded.
	Stop bool
}

// Callback runs after each epoch. A non-nil error aborts training and the
// epoch is not recorded.
type Callback func(env *EpochEnv) error

// LogEvery logs the epoch summary at info level every period epochs.
func LogEvery(logger log.Logger, period int) Callback {
	if period < 1 {
		period = 1
	}
	return func(env *EpochEnv) error {
		if env.Epoch%period != 0 {
			return nil
		}
		logger.Info("Epoch summary",
			log.EpochKey, env.Epoch,
			log.TrainLossKey, env.TrainLoss,
			log.ValLossKey, env.ValLoss,
		)
		return nil
	}
}

// EarlyStopping stops training once the validation loss has not improved
// by more than minDelta for patience consecutive epochs.
func EarlyStopping(patience int, minDelta float64) Callback {
	best := math.Inf(1)
	stale := 0

	return func(env *EpochEnv) error {
		if env.ValLoss < best-minDelta {
			best = env.ValLoss
			stale = 0
			return nil
		}
		stale++
		if stale >= patience {
			env.Stop = true
		}
		return nil
	}
}
