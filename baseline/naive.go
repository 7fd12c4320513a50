package baseline

import (
	"github.com/Naren8520/mlforecast/pkg/errors"
)

// SeasonalNaive forecasts each step with the observation one seasonal period
// earlier. It is the standard lower bar for seasonal series.
type SeasonalNaive struct {
	// Period is the seasonal cycle length.
	Period int

	lastSeason []float64
}

// NewSeasonalNaive creates the model.
func NewSeasonalNaive(period int) *SeasonalNaive {
	return &SeasonalNaive{Period: period}
}

// Fit stores the last full season of the series.
func (sn *SeasonalNaive) Fit(values []float64) error {
	if sn.Period < 1 {
		return errors.NewValidationError("period", "seasonal period must be positive", sn.Period)
	}
	if len(values) < sn.Period {
		return errors.Wrapf(errors.ErrShortSeries,
			"mlforecast: SeasonalNaive: need at least %d observations, got %d", sn.Period, len(values))
	}
	sn.lastSeason = make([]float64, sn.Period)
	copy(sn.lastSeason, values[len(values)-sn.Period:])
	return nil
}

// Forecast returns the next h values by repeating the last season.
func (sn *SeasonalNaive) Forecast(h int) ([]float64, error) {
	if sn.lastSeason == nil {
		return nil, errors.NewNotFittedError("SeasonalNaive", "Forecast")
	}
	if h < 1 {
		return nil, errors.NewValueError("SeasonalNaive.Forecast", "horizon must be positive")
	}
	out := make([]float64, h)
	for i := 0; i < h; i++ {
		out[i] = sn.lastSeason[i%sn.Period]
	}
	return out, nil
}
