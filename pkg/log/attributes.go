// Standard attribute keys for model fitting and tuning logs. Using these
// keys keeps records filterable across packages.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type.
	// Examples: "boost.Regressor", "neural.Classifier"
	ModelNameKey = "model.name"

	// OperationKey names the operation being performed.
	// Standard values: "fit", "predict", "bake", "search"
	OperationKey = "ml.operation"

	// ComponentKey identifies the package or component emitting the record.
	ComponentKey = "ml.component"
)

// Data shape.
const (
	// SamplesKey is the number of rows being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of predictor columns.
	FeaturesKey = "data.features"
)

// Tuning context.
const (
	// FoldKey is the cross-validation fold index.
	FoldKey = "tune.fold"

	// FoldsKey is the total number of cross-validation folds.
	FoldsKey = "tune.folds"

	// CandidateKey is the index of a hyperparameter candidate.
	CandidateKey = "tune.candidate"

	// CandidatesKey is the total number of grid candidates.
	CandidatesKey = "tune.candidates"

	// WorkersKey is the size of the tuning worker pool.
	WorkersKey = "tune.workers"

	// MetricKey names the metric a search optimizes.
	MetricKey = "tune.metric"
)

// Performance and results.
const (
	// DurationMsKey is the wall-clock duration of an operation.
	DurationMsKey = "perf.duration_ms"

	// LossKey is a training or validation loss value.
	LossKey = "metrics.loss"

	// ScoreKey is an evaluation score (RMSE, accuracy and so on).
	ScoreKey = "metrics.score"

	// IterationKey is the current boosting round or training epoch.
	IterationKey = "training.iteration"

	// SeedKey is the random seed of a run.
	SeedKey = "config.random_seed"
)
