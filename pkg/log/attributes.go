// Package log defines standard attribute keys for forecasting operations.
//
// Using these keys consistently enables filtering and analysis of training
// and prediction logs across the library. Keys follow a hierarchical naming
// convention (e.g. "model.name", "data.samples").
package log

// Model and operation context.
const (
	// ModelNameKey identifies the type of model.
	// Examples: "LGBMRegressor", "HoltWinters"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "load"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "lightgbm.trainer", "forecast.mlforecast", "dataset"
	ComponentKey = "ml.component"
)

// Data shape and characteristics.
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// SeriesKey indicates the number of distinct time series being processed.
	SeriesKey = "data.series"

	// FrequencyKey holds the series frequency code, e.g. "M" or "D".
	FrequencyKey = "data.frequency"
)

// Forecasting context.
const (
	// HorizonKey indicates the number of future steps being predicted.
	HorizonKey = "forecast.horizon"

	// MetricKey names an evaluation metric attached to a record.
	MetricKey = "eval.metric"
)

// Performance.
const (
	// DurationKey holds the elapsed time of an operation.
	DurationKey = "perf.duration"

	// IterationKey holds the boosting or optimization iteration number.
	IterationKey = "perf.iteration"
)
