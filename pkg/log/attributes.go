package log

// Model and operation context.
const (
	// ModelNameKey identifies the type of model.
	// Examples: "LinearRegression", "LogisticRegression", "LinearSVM"
	ModelNameKey = "model.name"

	// ComponentKey identifies which package is emitting the record.
	// Examples: "train", "optim", "dataset"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of a training epoch.
	PhaseKey = "ml.phase"

	// DeviceKey names the compute device batches are placed on.
	DeviceKey = "ml.device"
)

// Data shape.
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns).
	FeaturesKey = "data.features"

	// BatchesKey indicates the number of batches in one pass of a loader.
	BatchesKey = "data.batches"

	// BatchSizeKey indicates the size of mini-batches.
	BatchSizeKey = "data.batch_size"
)

// Training progress and metrics.
const (
	// EpochKey records the current epoch number (1-based).
	EpochKey = "training.epoch"

	// EpochsKey records the total number of epochs requested.
	EpochsKey = "training.epochs"

	// TrainLossKey records the mean training loss of an epoch.
	TrainLossKey = "metrics.train_loss"

	// ValLossKey records the mean validation loss of an epoch.
	ValLossKey = "metrics.val_loss"

	// MetricKey records an additional validation metric value.
	MetricKey = "metrics.value"

	// MetricNameKey names the additional validation metric.
	MetricNameKey = "metrics.name"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// LearningRateKey records the learning rate of the optimizer.
	LearningRateKey = "hyperparams.learning_rate"
)

// Standard phase values.
const (
	PhaseTraining   = "training"
	PhaseValidation = "validation"
)
