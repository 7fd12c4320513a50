package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/Naren8520/mlforecast/core/model"
	"github.com/Naren8520/mlforecast/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// TimeSeries stores the series values and the fitted feature configuration.
// It builds the training matrix from lag features over the (transformed)
// targets and drives the recursive prediction loop: compute the features of
// the next step from the latest values, predict one step per model, append
// the prediction and advance the dates.
type TimeSeries struct {
	freq       Frequency
	lags       []int
	transforms []TargetTransform

	// Fitted state
	uids      []string
	lastDates []time.Time
	ga        *GroupedArray // transformed target values
}

func newTimeSeries(freq Frequency, lags []int, transforms []TargetTransform) *TimeSeries {
	return &TimeSeries{
		freq:       freq,
		lags:       lags,
		transforms: transforms,
	}
}

// Features returns the feature column names in matrix order.
func (ts *TimeSeries) Features() []string {
	names := make([]string, len(ts.lags))
	for i, lag := range ts.lags {
		names[i] = fmt.Sprintf("lag%d", lag)
	}
	return names
}

// UIDs returns the fitted series identifiers.
func (ts *TimeSeries) UIDs() []string {
	return ts.uids
}

// Fit stores the series values, ids and last dates from tbl, applying the
// target transforms in order.
func (ts *TimeSeries) Fit(tbl *Table) error {
	sorted := tbl.Sorted()
	if err := sorted.Validate(); err != nil {
		return err
	}
	for i, v := range sorted.Y {
		if math.IsNaN(v) {
			return errors.NewValueError("TimeSeries.Fit",
				fmt.Sprintf("target column contains null values (series %s)", sorted.ID[i]))
		}
	}

	uids, indptr, lastDates := sorted.groups()

	data := make([]float64, len(sorted.Y))
	copy(data, sorted.Y)
	ga, err := NewGroupedArray(data, indptr)
	if err != nil {
		return err
	}

	for _, tfm := range ts.transforms {
		if err := tfm.FitTransform(ga); err != nil {
			return errors.Wrapf(err, "target transform %s failed", tfm.Name())
		}
	}

	ts.uids = uids
	ts.lastDates = lastDates
	ts.ga = ga
	return nil
}

// TrainingMatrix builds the lag feature matrix and target vector over all
// fitted series. Rows whose features or target are NaN (the warm-up region
// of lags and differences) are dropped.
func (ts *TimeSeries) TrainingMatrix() (X, y *mat.Dense, err error) {
	if ts.ga == nil {
		return nil, nil, errors.NewNotFittedError("TimeSeries", "TrainingMatrix")
	}
	if len(ts.lags) == 0 {
		return nil, nil, errors.NewValueError("TimeSeries.TrainingMatrix", "no lag features configured")
	}

	nRows := ts.ga.Len()
	features := make([][]float64, len(ts.lags))
	for j, lag := range ts.lags {
		features[j] = ts.ga.Lag(lag)
	}

	keep := make([]bool, nRows)
	kept := 0
	for i := 0; i < nRows; i++ {
		ok := !math.IsNaN(ts.ga.Data[i])
		for j := range features {
			if math.IsNaN(features[j][i]) {
				ok = false
				break
			}
		}
		keep[i] = ok
		if ok {
			kept++
		}
	}
	if kept == 0 {
		return nil, nil, errors.NewModelError("TimeSeries.TrainingMatrix",
			"no rows left after dropping warm-up values", errors.ErrShortSeries)
	}

	X = mat.NewDense(kept, len(ts.lags), nil)
	y = mat.NewDense(kept, 1, nil)
	row := 0
	for i := 0; i < nRows; i++ {
		if !keep[i] {
			continue
		}
		for j := range features {
			X.Set(row, j, features[j][i])
		}
		y.Set(row, 0, ts.ga.Data[i])
		row++
	}
	return X, y, nil
}

// PredictRecursive forecasts horizon steps for every fitted series with each
// model and returns the inverse-transformed predictions. Rows are ordered by
// series, then time.
func (ts *TimeSeries) PredictRecursive(models []NamedModel, horizon int) (*Predictions, error) {
	if ts.ga == nil {
		return nil, errors.NewNotFittedError("TimeSeries", "PredictRecursive")
	}
	if horizon < 1 {
		return nil, errors.NewValueError("TimeSeries.PredictRecursive", "horizon must be positive")
	}

	nSeries := ts.ga.NGroups()
	preds := &Predictions{
		Values: make(map[string][]float64, len(models)),
	}
	for _, nm := range models {
		preds.Models = append(preds.Models, nm.Name)
	}

	// Shared id/time columns: horizon consecutive rows per series.
	for g := 0; g < nSeries; g++ {
		for step := 1; step <= horizon; step++ {
			preds.ID = append(preds.ID, ts.uids[g])
			preds.Time = append(preds.Time, ts.freq.Next(ts.lastDates[g], step))
		}
	}

	for _, nm := range models {
		ga := ts.ga.Clone()
		raw := make([][]float64, nSeries) // per series, horizon values

		for step := 0; step < horizon; step++ {
			X := mat.NewDense(nSeries, len(ts.lags), nil)
			nulls := 0
			for j, lag := range ts.lags {
				col := ga.LagUpdate(lag)
				for g := 0; g < nSeries; g++ {
					if math.IsNaN(col[g]) {
						nulls++
					}
					X.Set(g, j, col[g])
				}
			}
			if nulls > 0 {
				errors.Warn(errors.NewMissingValueWarning("features", nulls, "predict"))
			}

			out, err := nm.Model.Predict(X)
			if err != nil {
				return nil, errors.Wrapf(err, "model %s failed at step %d", nm.Name, step+1)
			}
			stepPreds := make([]float64, nSeries)
			for g := 0; g < nSeries; g++ {
				stepPreds[g] = out.At(g, 0)
				raw[g] = append(raw[g], stepPreds[g])
			}
			ga, err = ga.Append(stepPreds)
			if err != nil {
				return nil, err
			}
		}

		// Flatten to a GroupedArray of horizon values per series and undo
		// the target transforms in reverse order.
		data := make([]float64, 0, nSeries*horizon)
		indptr := make([]int, 1, nSeries+1)
		for g := 0; g < nSeries; g++ {
			data = append(data, raw[g]...)
			indptr = append(indptr, len(data))
		}
		predGA := &GroupedArray{Data: data, Indptr: indptr}

		for i := len(ts.transforms) - 1; i >= 0; i-- {
			if err := ts.transforms[i].InverseTransform(predGA); err != nil {
				return nil, errors.Wrapf(err, "inverse transform %s failed", ts.transforms[i].Name())
			}
		}

		preds.Values[nm.Name] = predGA.Data
	}

	return preds, nil
}

// NamedModel pairs a regressor with its forecast column name.
type NamedModel struct {
	Name  string
	Model model.Regressor
}
