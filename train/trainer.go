// Package train runs epochs of mini-batch training and validation for any
// model.Module and records the mean loss of every epoch.
package train

import (
	"iter"
	"time"

	"github.com/YuminosukeSato/linbench/core/autograd"
	"github.com/YuminosukeSato/linbench/core/model"
	"github.com/YuminosukeSato/linbench/dataset"
	"github.com/YuminosukeSato/linbench/nn"
	"github.com/YuminosukeSato/linbench/optim"
	"github.com/YuminosukeSato/linbench/pkg/errors"
	"github.com/YuminosukeSato/linbench/pkg/log"
)

// Loader is the batch source consumed by a Trainer. *dataset.Loader
// satisfies it.
type Loader interface {
	Len() int
	Batches() iter.Seq2[dataset.Batch, error]
}

// Trainer couples a model with its data, optimizer and loss.
type Trainer struct {
	model     model.Module
	train     Loader
	val       Loader
	optimizer optim.Optimizer
	criterion nn.Criterion

	device    Device
	logger    log.Logger
	callbacks []Callback
	metrics   []namedMetric

	history History
}

// NewTrainer creates a Trainer. The criterion receives (prediction, target)
// and must return a 1×1 loss.
//
// Example:
//
//	tr, err := train.NewTrainer(m, trainLoader, valLoader, opt, nn.MSELoss,
//		train.WithMetric("r2", metrics.R2Score))
//	history, err := tr.Train(20)
func NewTrainer(m model.Module, trainLoader, valLoader Loader, opt optim.Optimizer, criterion nn.Criterion, opts ...Option) (*Trainer, error) {
	switch {
	case m == nil:
		return nil, errors.NewValidationError("model", "must not be nil", nil)
	case trainLoader == nil:
		return nil, errors.NewValidationError("train_loader", "must not be nil", nil)
	case valLoader == nil:
		return nil, errors.NewValidationError("val_loader", "must not be nil", nil)
	case opt == nil:
		return nil, errors.NewValidationError("optimizer", "must not be nil", nil)
	case criterion == nil:
		return nil, errors.NewValidationError("criterion", "must not be nil", nil)
	}

	cfg := config{device: CPU{}}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.device == nil {
		return nil, errors.NewValidationError("device", "must not be nil", nil)
	}
	seen := make(map[string]bool, len(cfg.metrics))
	for _, nm := range cfg.metrics {
		switch {
		case nm.fn == nil:
			return nil, errors.NewValidationError("metric", "function must not be nil", nm.name)
		case seen[nm.name]:
			return nil, errors.NewValidationError("metric", "duplicate name", nm.name)
		}
		seen[nm.name] = true
	}
	if cfg.logger == nil {
		cfg.logger = log.GetLoggerWithName("trainer")
	}

	t := &Trainer{
		model:     m,
		train:     trainLoader,
		val:       valLoader,
		optimizer: opt,
		criterion: criterion,
		device:    cfg.device,
		logger:    cfg.logger.With(log.DeviceKey, cfg.device.Name()),
		callbacks: cfg.callbacks,
		metrics:   cfg.metrics,
	}
	if len(t.metrics) > 0 {
		t.history.Metrics = make(map[string]LossRecord, len(t.metrics))
	}
	return t, nil
}

// History returns a copy of everything recorded so far.
func (t *Trainer) History() History {
	return t.history.clone()
}

// Train runs numEpochs epochs. Epoch numbers continue from previous calls.
//
// Any error aborts the run. The returned History then holds only the
// epochs completed before the failure.
func (t *Trainer) Train(numEpochs int) (History, error) {
	if numEpochs < 0 {
		return t.History(), errors.NewValidationError("num_epochs", "must be non-negative", numEpochs)
	}

	t.logger.Info("Training started",
		log.EpochsKey, numEpochs,
		log.BatchesKey, t.train.Len(),
		log.LearningRateKey, t.optimizer.LearningRate(),
	)

	for i := 0; i < numEpochs; i++ {
		epoch := t.history.Train.Len() + 1
		start := time.Now()

		trainLoss, err := t.trainEpoch(epoch)
		if err != nil {
			return t.History(), t.fail(err, epoch, log.PhaseTraining)
		}
		valLoss, scores, err := t.validateEpoch(epoch)
		if err != nil {
			return t.History(), t.fail(err, epoch, log.PhaseValidation)
		}

		env := &EpochEnv{
			Epoch:     epoch,
			TrainLoss: trainLoss,
			ValLoss:   valLoss,
			Metrics:   scores,
			Duration:  time.Since(start),
		}
		for _, cb := range t.callbacks {
			if err := errors.SafeExecute("Trainer.callback", func() error { return cb(env) }); err != nil {
				return t.History(), t.fail(err, epoch, "callback")
			}
		}

		t.history.Train.append(trainLoss)
		t.history.Validation.append(valLoss)
		for name, v := range scores {
			rec := t.history.Metrics[name]
			rec.append(v)
			t.history.Metrics[name] = rec
		}

		t.logger.Info("Epoch completed",
			log.EpochKey, epoch,
			log.TrainLossKey, trainLoss,
			log.ValLossKey, valLoss,
			log.DurationMsKey, env.Duration.Milliseconds(),
		)
		for name, v := range scores {
			t.logger.Debug("Validation metric", log.EpochKey, epoch, log.MetricNameKey, name, log.MetricKey, v)
		}
		if env.Stop {
			t.logger.Info("Training stopped by callback", log.EpochKey, epoch)
			break
		}
	}

	t.logger.Info("Training finished", log.EpochsKey, t.history.Train.Len())
	return t.History(), nil
}

func (t *Trainer) fail(err error, epoch int, phase string) error {
	err = errors.Wrapf(err, "epoch %d (%s)", epoch, phase)
	t.logger.Error("Training aborted", err, log.EpochKey, epoch, log.PhaseKey, phase)
	return err
}

func (t *Trainer) trainEpoch(epoch int) (float64, error) {
	t.model.Train()

	var sum float64
	var n int
	for batch, err := range t.train.Batches() {
		if err != nil {
			return 0, err
		}
		loss, _, err := t.evaluate(batch)
		if err != nil {
			return 0, err
		}
		value := loss.Item()
		if err := errors.CheckScalar("Trainer.loss", value, epoch); err != nil {
			return 0, err
		}

		t.optimizer.ZeroGrad()
		if err := autograd.Backward(loss); err != nil {
			return 0, err
		}
		if err := t.optimizer.Step(); err != nil {
			return 0, err
		}
		sum += value
		n++
	}
	if n == 0 {
		return 0, errors.NewModelError("Trainer.train", "training loader yielded no batches", errors.ErrEmptyData)
	}
	return sum / float64(n), nil
}

func (t *Trainer) validateEpoch(epoch int) (float64, map[string]float64, error) {
	t.model.Eval()

	var sum float64
	var n int
	var scores map[string]float64
	if len(t.metrics) > 0 {
		scores = make(map[string]float64, len(t.metrics))
	}

	err := model.NoGrad(t.model, func() error {
		for batch, err := range t.val.Batches() {
			if err != nil {
				return err
			}
			loss, pred, err := t.evaluate(batch)
			if err != nil {
				return err
			}
			if err := errors.CheckScalar("Trainer.val_loss", loss.Item(), epoch); err != nil {
				return err
			}
			for _, m := range t.metrics {
				score, err := m.fn(batch.Targets, pred.Value())
				if err != nil {
					return errors.Wrapf(err, "metric %s", m.name)
				}
				scores[m.name] += score
			}
			sum += loss.Item()
			n++
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	if n == 0 {
		return 0, nil, errors.NewModelError("Trainer.validate", "validation loader yielded no batches", errors.ErrEmptyData)
	}
	for name := range scores {
		scores[name] /= float64(n)
	}
	return sum / float64(n), scores, nil
}

// evaluate runs the forward pass and criterion on one batch.
func (t *Trainer) evaluate(batch dataset.Batch) (loss, pred *autograd.Var, err error) {
	if batch.Targets == nil {
		return nil, nil, errors.NewModelError("Trainer.evaluate", "batch has no targets", errors.ErrEmptyData)
	}
	x, err := t.device.Place(batch.Inputs)
	if err != nil {
		return nil, nil, err
	}
	y, err := t.device.Place(batch.Targets)
	if err != nil {
		return nil, nil, err
	}

	pred, err = t.model.Forward(autograd.NewConst(x))
	if err != nil {
		return nil, nil, err
	}
	loss, err = t.criterion(pred, autograd.NewConst(y))
	if err != nil {
		return nil, nil, err
	}
	if r, c := loss.Dims(); r != 1 || c != 1 {
		return nil, nil, errors.NewDimensionError("Trainer.criterion", 1, r*c, 0)
	}
	return loss, pred, nil
}
