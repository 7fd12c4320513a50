package forecast

import (
	"fmt"
	"math"

	"github.com/Naren8520/mlforecast/pkg/errors"
)

// TargetTransform rewrites the target values of every series before feature
// computation and restores model predictions to the original scale
// afterwards. Transforms are applied in order during fit and inverted in
// reverse order after predict.
type TargetTransform interface {
	// Name identifies the transform in logs and errors.
	Name() string

	// Clone returns an unfitted copy carrying only the configuration, so a
	// trained forecaster can refit the transform on unseen series.
	Clone() TargetTransform

	// FitTransform rewrites ga.Data in place and stores whatever per-series
	// state the inverse needs. Positions with no defined transformed value
	// (warm-up regions) become NaN.
	FitTransform(ga *GroupedArray) error

	// InverseTransform restores predictions in place. Each group of preds
	// holds the consecutive horizon forecasts of one series, in the same
	// series order the transform was fitted on.
	InverseTransform(preds *GroupedArray) error
}

// Differences applies sequential differencing at the given lags:
// Differences(1, 12) first removes the trend with a lag-1 difference, then
// the yearly seasonality of monthly data with a lag-12 difference. The
// per-series tails needed to restore forecast levels are stored during fit.
type Differences struct {
	lags []int

	// tails[level][series] holds the last lags[level] values of each series
	// in the space the level was fitted on.
	tails [][][]float64
}

// NewDifferences creates the transform. Lags must be positive.
func NewDifferences(lags ...int) *Differences {
	return &Differences{lags: lags}
}

// Name implements TargetTransform.
func (d *Differences) Name() string {
	return fmt.Sprintf("Differences(%v)", d.lags)
}

// Clone implements TargetTransform.
func (d *Differences) Clone() TargetTransform {
	lags := make([]int, len(d.lags))
	copy(lags, d.lags)
	return NewDifferences(lags...)
}

// FitTransform implements TargetTransform.
func (d *Differences) FitTransform(ga *GroupedArray) error {
	if len(d.lags) == 0 {
		return errors.NewValidationError("Differences", "at least one lag is required", d.lags)
	}
	for _, lag := range d.lags {
		if lag < 1 {
			return errors.NewValidationError("Differences", "lags must be positive", lag)
		}
	}

	d.tails = make([][][]float64, len(d.lags))
	for level, lag := range d.lags {
		tails := ga.Tails(lag)
		for g, tail := range tails {
			if tail == nil {
				return errors.Wrapf(errors.ErrShortSeries,
					"mlforecast: %s: series %d has fewer than %d observations", d.Name(), g, lag)
			}
		}
		d.tails[level] = tails

		// Difference from the end so earlier values are still raw when read.
		for g := 0; g < ga.NGroups(); g++ {
			lo, hi := ga.Indptr[g], ga.Indptr[g+1]
			for i := hi - 1; i >= lo+lag; i-- {
				ga.Data[i] -= ga.Data[i-lag]
			}
			for i := lo; i < lo+lag && i < hi; i++ {
				ga.Data[i] = math.NaN()
			}
		}
	}
	return nil
}

// InverseTransform implements TargetTransform.
func (d *Differences) InverseTransform(preds *GroupedArray) error {
	if len(d.tails) == 0 {
		return errors.NewNotFittedError("Differences", "InverseTransform")
	}
	if preds.NGroups() != len(d.tails[0]) {
		return errors.NewDimensionError("Differences.InverseTransform",
			len(d.tails[0]), preds.NGroups(), 0)
	}

	for level := len(d.lags) - 1; level >= 0; level-- {
		lag := d.lags[level]
		for g := 0; g < preds.NGroups(); g++ {
			// Ring of the last `lag` known values; forecast j references the
			// value `lag` steps behind it, which after j >= lag is a value
			// restored earlier in this loop.
			ring := make([]float64, lag)
			copy(ring, d.tails[level][g])

			group := preds.Group(g)
			for j := range group {
				restored := group[j] + ring[j%lag]
				ring[j%lag] = restored
				group[j] = restored
			}
		}
	}
	return nil
}

// LocalStandardScaler standardizes every series with its own mean and
// standard deviation, mirroring mlforecast's transform of the same name.
type LocalStandardScaler struct {
	means  []float64
	scales []float64
}

// NewLocalStandardScaler creates the transform.
func NewLocalStandardScaler() *LocalStandardScaler {
	return &LocalStandardScaler{}
}

// Name implements TargetTransform.
func (s *LocalStandardScaler) Name() string {
	return "LocalStandardScaler"
}

// Clone implements TargetTransform.
func (s *LocalStandardScaler) Clone() TargetTransform {
	return NewLocalStandardScaler()
}

// FitTransform implements TargetTransform.
func (s *LocalStandardScaler) FitTransform(ga *GroupedArray) error {
	s.means = make([]float64, ga.NGroups())
	s.scales = make([]float64, ga.NGroups())

	for g := 0; g < ga.NGroups(); g++ {
		group := ga.Group(g)
		n := 0
		sum := 0.0
		for _, v := range group {
			if !math.IsNaN(v) {
				sum += v
				n++
			}
		}
		if n == 0 {
			return errors.Wrapf(errors.ErrShortSeries,
				"mlforecast: LocalStandardScaler: series %d has no observations", g)
		}
		mean := sum / float64(n)

		var ss float64
		for _, v := range group {
			if !math.IsNaN(v) {
				diff := v - mean
				ss += diff * diff
			}
		}
		scale := math.Sqrt(ss / float64(n))
		if scale == 0 {
			// Constant series scale to zero around the mean.
			scale = 1
		}

		s.means[g] = mean
		s.scales[g] = scale
		for i := range group {
			group[i] = (group[i] - mean) / scale
		}
	}
	return nil
}

// InverseTransform implements TargetTransform.
func (s *LocalStandardScaler) InverseTransform(preds *GroupedArray) error {
	if s.means == nil {
		return errors.NewNotFittedError("LocalStandardScaler", "InverseTransform")
	}
	if preds.NGroups() != len(s.means) {
		return errors.NewDimensionError("LocalStandardScaler.InverseTransform",
			len(s.means), preds.NGroups(), 0)
	}
	for g := 0; g < preds.NGroups(); g++ {
		group := preds.Group(g)
		for i := range group {
			group[i] = group[i]*s.scales[g] + s.means[g]
		}
	}
	return nil
}
