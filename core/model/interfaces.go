// Package model provides the shared estimator interfaces and state tracking
// used by every model in the library.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Estimator is the interface for models that learn from a feature matrix.
type Estimator interface {
	// Fit trains the model on the given feature matrix X and target y
	// (an n×1 matrix).
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for models that produce point predictions.
type Predictor interface {
	// Predict returns an n×1 matrix of predictions for the rows of X.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Regressor combines the interfaces required of a forecasting model. Any
// regressor with a fit/predict contract on matrices can be plugged into
// the forecaster.
type Regressor interface {
	Estimator
	Predictor
}

// Scorer is the interface for models that can compute a goodness-of-fit score.
type Scorer interface {
	// Score returns the coefficient of determination R^2 of the prediction.
	Score(X, y mat.Matrix) (float64, error)
}
