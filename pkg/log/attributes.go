package log

// Standard attribute keys for machine learning log records. Using these
// keys keeps training and validation logs queryable with a consistent
// vocabulary across components.
const (
	// ModelNameKey identifies the estimator type or registry name.
	ModelNameKey = "model.name"

	// OperationKey specifies the ML operation: "fit", "predict",
	// "transform", "score".
	OperationKey = "ml.operation"

	// PhaseKey indicates the lifecycle phase: "training", "validation",
	// "preprocessing".
	PhaseKey = "ml.phase"

	// SamplesKey is the number of samples (rows) being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of features (columns) being processed.
	FeaturesKey = "data.features"

	// AccuracyKey is the accuracy obtained by a scoring operation.
	AccuracyKey = "metric.accuracy"

	// DurationKey is the wall-clock duration of an operation.
	DurationKey = "op.duration"
)
