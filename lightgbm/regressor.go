package lightgbm

import (
	"github.com/Naren8520/mlforecast/core/model"
	"github.com/Naren8520/mlforecast/metrics"
	mlferrors "github.com/Naren8520/mlforecast/pkg/errors"
	"github.com/Naren8520/mlforecast/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// LGBMRegressor implements a LightGBM-style regressor with a scikit-learn
// compatible API.
type LGBMRegressor struct {
	model.BaseEstimator

	// Model
	Model *Model

	// Hyperparameters (matching Python LightGBM)
	NumLeaves       int     // Number of leaves in one tree
	MaxDepth        int     // Maximum tree depth (-1 for no limit)
	LearningRate    float64 // Boosting learning rate
	NumIterations   int     // Number of boosting iterations
	MinChildSamples int     // Minimum number of data in one leaf
	RegLambda       float64 // L2 regularization
	RandomState     int     // Random seed
	Objective       string  // Objective function (regression, regression_l1)
	Deterministic   bool    // Deterministic mode for reproducibility
	Verbosity       int     // Verbosity level

	// Internal state
	nFeatures int // Number of features seen during fit
	nSamples  int // Number of training samples
}

// NewLGBMRegressor creates a new regressor with LightGBM's default parameters.
func NewLGBMRegressor() *LGBMRegressor {
	return &LGBMRegressor{
		NumLeaves:       31,
		MaxDepth:        -1, // No limit
		LearningRate:    0.1,
		NumIterations:   100,
		MinChildSamples: 20,
		RegLambda:       0.0,
		RandomState:     42,
		Objective:       "regression", // L2 regression by default
		Deterministic:   false,
		Verbosity:       -1,
	}
}

// WithNumLeaves sets the number of leaves.
func (lgb *LGBMRegressor) WithNumLeaves(n int) *LGBMRegressor {
	lgb.NumLeaves = n
	return lgb
}

// WithMaxDepth sets the maximum depth.
func (lgb *LGBMRegressor) WithMaxDepth(d int) *LGBMRegressor {
	lgb.MaxDepth = d
	return lgb
}

// WithLearningRate sets the learning rate.
func (lgb *LGBMRegressor) WithLearningRate(lr float64) *LGBMRegressor {
	lgb.LearningRate = lr
	return lgb
}

// WithNumIterations sets the number of boosting iterations.
func (lgb *LGBMRegressor) WithNumIterations(n int) *LGBMRegressor {
	lgb.NumIterations = n
	return lgb
}

// WithMinChildSamples sets the minimum number of samples per leaf.
func (lgb *LGBMRegressor) WithMinChildSamples(n int) *LGBMRegressor {
	lgb.MinChildSamples = n
	return lgb
}

// WithRegLambda sets the L2 regularization strength.
func (lgb *LGBMRegressor) WithRegLambda(l float64) *LGBMRegressor {
	lgb.RegLambda = l
	return lgb
}

// WithRandomState sets the random seed.
func (lgb *LGBMRegressor) WithRandomState(seed int) *LGBMRegressor {
	lgb.RandomState = seed
	return lgb
}

// WithDeterministic enables deterministic mode.
func (lgb *LGBMRegressor) WithDeterministic(det bool) *LGBMRegressor {
	lgb.Deterministic = det
	return lgb
}

// WithObjective sets the objective function.
func (lgb *LGBMRegressor) WithObjective(obj string) *LGBMRegressor {
	lgb.Objective = obj
	return lgb
}

// Fit trains the regressor on X and the n×1 target matrix y.
func (lgb *LGBMRegressor) Fit(X, y mat.Matrix) (err error) {
	defer mlferrors.Recover(&err, "LGBMRegressor.Fit")

	rows, cols := X.Dims()
	yRows, yCols := y.Dims()

	if rows != yRows {
		return mlferrors.NewDimensionError("Fit", rows, yRows, 0)
	}
	if yCols != 1 {
		return mlferrors.NewDimensionError("Fit", 1, yCols, 1)
	}

	lgb.nFeatures = cols
	lgb.nSamples = rows

	if lgb.Verbosity > 0 {
		logger := log.GetLoggerWithName("lightgbm.regressor")
		logger.Info("Training LGBMRegressor",
			log.OperationKey, "fit",
			log.SamplesKey, rows,
			log.FeaturesKey, cols,
			"objective", lgb.Objective)
	}

	params := TrainingParams{
		NumIterations:  lgb.NumIterations,
		LearningRate:   lgb.LearningRate,
		NumLeaves:      lgb.NumLeaves,
		MaxDepth:       lgb.MaxDepth,
		MinDataInLeaf:  lgb.MinChildSamples,
		Lambda:         lgb.RegLambda,
		MinGainToSplit: 1e-7,
		Objective:      lgb.Objective,
		Seed:           lgb.RandomState,
		Deterministic:  lgb.Deterministic,
		Verbosity:      lgb.Verbosity,
	}

	trainer := NewTrainer(params)
	if err := trainer.Fit(X, y); err != nil {
		return mlferrors.Wrap(err, "training failed")
	}

	lgb.Model = trainer.GetModel()
	lgb.SetFitted()

	return nil
}

// Predict makes predictions for the rows of X.
func (lgb *LGBMRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !lgb.IsFitted() {
		return nil, mlferrors.NewNotFittedError("LGBMRegressor", "Predict")
	}

	_, cols := X.Dims()
	if cols != lgb.nFeatures {
		return nil, mlferrors.NewDimensionError("Predict", lgb.nFeatures, cols, 1)
	}

	return lgb.Model.Predict(X), nil
}

// Score returns the coefficient of determination R^2 of the prediction.
func (lgb *LGBMRegressor) Score(X, y mat.Matrix) (float64, error) {
	if !lgb.IsFitted() {
		return 0, mlferrors.NewNotFittedError("LGBMRegressor", "Score")
	}

	predictions, err := lgb.Predict(X)
	if err != nil {
		return 0, err
	}

	rows, _ := y.Dims()
	yVec := mat.NewVecDense(rows, nil)
	predVec := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		yVec.SetVec(i, y.At(i, 0))
		predVec.SetVec(i, predictions.At(i, 0))
	}
	return metrics.R2Score(yVec, predVec)
}

// NumFeatures returns the number of features seen during fit.
func (lgb *LGBMRegressor) NumFeatures() int {
	return lgb.nFeatures
}
