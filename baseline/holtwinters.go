// Package baseline implements classical reference forecasters used to sanity
// check machine-learning forecasts: additive Holt-Winters exponential
// smoothing and the seasonal naive method. Both follow the same
// fit-then-forecast call shape as the regressor-based forecaster.
package baseline

import (
	"math"

	"github.com/Naren8520/mlforecast/pkg/errors"
)

// HoltWinters is additive triple exponential smoothing (ETS(A,A,A)): level,
// trend and a seasonal component of the given period, each updated with its
// own smoothing weight.
type HoltWinters struct {
	// Period is the seasonal cycle length, e.g. 12 for monthly data with
	// yearly seasonality.
	Period int

	// Alpha, Beta and Gamma are the level, trend and seasonal smoothing
	// weights. When zero they are selected by grid search on the training
	// sum of squared one-step errors.
	Alpha float64
	Beta  float64
	Gamma float64

	level    float64
	trend    float64
	seasonal []float64
	fitted   bool
}

// NewHoltWinters creates an additive Holt-Winters model for the given
// seasonal period with grid-searched smoothing weights.
func NewHoltWinters(period int) *HoltWinters {
	return &HoltWinters{Period: period}
}

// Fit estimates the smoothing state from the series values.
func (hw *HoltWinters) Fit(values []float64) error {
	if hw.Period < 1 {
		return errors.NewValidationError("period", "seasonal period must be positive", hw.Period)
	}
	if len(values) < 2*hw.Period {
		return errors.Wrapf(errors.ErrShortSeries,
			"mlforecast: HoltWinters: need at least %d observations, got %d", 2*hw.Period, len(values))
	}

	alpha, beta, gamma := hw.Alpha, hw.Beta, hw.Gamma
	if alpha == 0 && beta == 0 && gamma == 0 {
		alpha, beta, gamma = hw.gridSearch(values)
	}

	level, trend, seasonal := hw.run(values, alpha, beta, gamma)
	hw.Alpha, hw.Beta, hw.Gamma = alpha, beta, gamma
	hw.level, hw.trend, hw.seasonal = level, trend, seasonal
	hw.fitted = true
	return nil
}

// Forecast returns the next h values.
func (hw *HoltWinters) Forecast(h int) ([]float64, error) {
	if !hw.fitted {
		return nil, errors.NewNotFittedError("HoltWinters", "Forecast")
	}
	if h < 1 {
		return nil, errors.NewValueError("HoltWinters.Forecast", "horizon must be positive")
	}

	out := make([]float64, h)
	for i := 0; i < h; i++ {
		season := hw.seasonal[(i)%hw.Period]
		out[i] = hw.level + float64(i+1)*hw.trend + season
	}
	return out, nil
}

// run performs one smoothing pass and returns the final state.
func (hw *HoltWinters) run(values []float64, alpha, beta, gamma float64) (level, trend float64, seasonal []float64) {
	p := hw.Period

	// Initial level and trend from the first two seasons.
	var first, second float64
	for i := 0; i < p; i++ {
		first += values[i]
		second += values[p+i]
	}
	first /= float64(p)
	second /= float64(p)

	level = first
	trend = (second - first) / float64(p)
	seasonal = make([]float64, p)
	for i := 0; i < p; i++ {
		seasonal[i] = values[i] - first
	}

	for i := p; i < len(values); i++ {
		season := seasonal[i%p]
		prevLevel := level
		level = alpha*(values[i]-season) + (1-alpha)*(level+trend)
		trend = beta*(level-prevLevel) + (1-beta)*trend
		seasonal[i%p] = gamma*(values[i]-level) + (1-gamma)*season
	}

	// Rotate so seasonal[0] matches the first forecast step.
	rotated := make([]float64, p)
	for i := 0; i < p; i++ {
		rotated[i] = seasonal[(len(values)+i)%p]
	}
	return level, trend, rotated
}

// sse returns the sum of squared one-step-ahead errors of a smoothing pass.
func (hw *HoltWinters) sse(values []float64, alpha, beta, gamma float64) float64 {
	p := hw.Period

	var first, second float64
	for i := 0; i < p; i++ {
		first += values[i]
		second += values[p+i]
	}
	first /= float64(p)
	second /= float64(p)

	level := first
	trend := (second - first) / float64(p)
	seasonal := make([]float64, p)
	for i := 0; i < p; i++ {
		seasonal[i] = values[i] - first
	}

	sum := 0.0
	for i := p; i < len(values); i++ {
		season := seasonal[i%p]
		pred := level + trend + season
		err := values[i] - pred
		sum += err * err

		prevLevel := level
		level = alpha*(values[i]-season) + (1-alpha)*(level+trend)
		trend = beta*(level-prevLevel) + (1-beta)*trend
		seasonal[i%p] = gamma*(values[i]-level) + (1-gamma)*season
	}
	return sum
}

// gridSearch selects smoothing weights minimizing the training SSE on a
// coarse grid, the same selection idea autoarima applies to (p, d, q).
func (hw *HoltWinters) gridSearch(values []float64) (alpha, beta, gamma float64) {
	best := math.MaxFloat64
	alpha, beta, gamma = 0.3, 0.1, 0.1

	grid := []float64{0.05, 0.1, 0.2, 0.3, 0.5, 0.7, 0.9}
	for _, a := range grid {
		for _, b := range grid {
			for _, g := range grid {
				s := hw.sse(values, a, b, g)
				if s < best {
					best = s
					alpha, beta, gamma = a, b, g
				}
			}
		}
	}
	return alpha, beta, gamma
}
