package lightgbm

import (
	"math"
	"sort"

	"github.com/Naren8520/mlforecast/pkg/errors"
)

// ObjectiveFunction defines the interface for regression objectives.
type ObjectiveFunction interface {
	// CalculateGradient calculates the gradient for a single sample.
	CalculateGradient(prediction, target float64) float64

	// CalculateHessian calculates the hessian for a single sample.
	CalculateHessian(prediction, target float64) float64

	// CalculateLoss calculates the loss for a single sample.
	CalculateLoss(prediction, target float64) float64

	// GetInitScore returns the initial score for this objective.
	GetInitScore(targets []float64) float64

	// Name returns the name of the objective.
	Name() string
}

// L2Objective implements L2 (Mean Squared Error) loss.
type L2Objective struct{}

// NewL2Objective returns the default regression objective.
func NewL2Objective() *L2Objective {
	return &L2Objective{}
}

func (o *L2Objective) CalculateGradient(prediction, target float64) float64 {
	return prediction - target
}

func (o *L2Objective) CalculateHessian(prediction, target float64) float64 {
	return 1.0
}

func (o *L2Objective) CalculateLoss(prediction, target float64) float64 {
	diff := prediction - target
	return 0.5 * diff * diff
}

func (o *L2Objective) GetInitScore(targets []float64) float64 {
	if len(targets) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, t := range targets {
		sum += t
	}
	return sum / float64(len(targets))
}

func (o *L2Objective) Name() string {
	return "regression"
}

// L1Objective implements L1 (Mean Absolute Error) loss.
type L1Objective struct {
	epsilon float64 // Small value to approximate the non-differentiable point
}

// NewL1Objective returns the L1 regression objective.
func NewL1Objective() *L1Objective {
	return &L1Objective{
		epsilon: 1e-7,
	}
}

func (o *L1Objective) CalculateGradient(prediction, target float64) float64 {
	diff := prediction - target
	if math.Abs(diff) < o.epsilon {
		return 0.0
	}
	if diff > 0 {
		return 1.0
	}
	return -1.0
}

func (o *L1Objective) CalculateHessian(prediction, target float64) float64 {
	// L1 has zero second derivative except at the non-differentiable point.
	// LightGBM uses 1.0 as the default hessian for L1.
	return 1.0
}

func (o *L1Objective) CalculateLoss(prediction, target float64) float64 {
	return math.Abs(prediction - target)
}

func (o *L1Objective) GetInitScore(targets []float64) float64 {
	if len(targets) == 0 {
		return 0.0
	}
	// For L1, the median minimizes the loss.
	return calculateMedian(targets)
}

func (o *L1Objective) Name() string {
	return "regression_l1"
}

// CreateObjectiveFunction creates an objective function by name.
func CreateObjectiveFunction(name string) (ObjectiveFunction, error) {
	switch name {
	case "", "regression", "regression_l2", "l2", "mse":
		return NewL2Objective(), nil
	case "regression_l1", "l1", "mae":
		return NewL1Objective(), nil
	default:
		return nil, errors.NewValidationError("objective", "unknown objective", name)
	}
}

func calculateMedian(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
