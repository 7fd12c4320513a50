package forecast

import (
	"fmt"
	"reflect"
	"time"

	"github.com/Naren8520/mlforecast/core/model"
	"github.com/Naren8520/mlforecast/pkg/errors"
	"github.com/Naren8520/mlforecast/pkg/log"
)

// MLForecast trains regressors on lag features of (transformed) series and
// produces multi-step forecasts by recursive prediction. A fitted forecaster
// can also be applied to series it never saw during training: PredictOn
// refits only the target transforms on the new data and reuses the trained
// models (transfer learning).
type MLForecast struct {
	models     []NamedModel
	freq       Frequency
	lags       []int
	transforms []TargetTransform

	ts     *TimeSeries
	fitted bool
}

// New creates a forecaster. Model forecast columns are named after the
// regressor types, with a numeric suffix on duplicates.
func New(freq Frequency, models ...model.Regressor) *MLForecast {
	named := make([]NamedModel, len(models))
	names := make([]string, len(models))
	for i, m := range models {
		names[i] = modelName(m)
	}
	names = dedupeNames(names)
	for i, m := range models {
		named[i] = NamedModel{Name: names[i], Model: m}
	}
	return &MLForecast{models: named, freq: freq}
}

// NewNamed creates a forecaster with explicit model names.
func NewNamed(freq Frequency, models ...NamedModel) *MLForecast {
	return &MLForecast{models: models, freq: freq}
}

// WithLags sets the lag orders used as features.
func (f *MLForecast) WithLags(lags ...int) *MLForecast {
	f.lags = lags
	return f
}

// WithTargetTransforms sets the target transforms, applied in order before
// feature computation and inverted in reverse order after prediction.
func (f *MLForecast) WithTargetTransforms(tfms ...TargetTransform) *MLForecast {
	f.transforms = tfms
	return f
}

// Models returns the forecast column names in order.
func (f *MLForecast) Models() []string {
	names := make([]string, len(f.models))
	for i, nm := range f.models {
		names[i] = nm.Name
	}
	return names
}

// Fit builds the feature matrix from history and trains every model on it.
func (f *MLForecast) Fit(history *Table) (err error) {
	defer errors.Recover(&err, "MLForecast.Fit")

	if len(f.models) == 0 {
		return errors.NewValueError("MLForecast.Fit", "no models configured")
	}
	if len(f.lags) == 0 {
		return errors.NewValueError("MLForecast.Fit", "no lag features configured")
	}
	for _, lag := range f.lags {
		if lag < 1 {
			return errors.NewValidationError("lags", "lags must be positive", lag)
		}
	}

	ts := newTimeSeries(f.freq, f.lags, f.cloneTransforms())
	if err := ts.Fit(history); err != nil {
		return err
	}

	X, y, err := ts.TrainingMatrix()
	if err != nil {
		return err
	}

	logger := log.GetLoggerWithName("forecast.mlforecast")
	rows, cols := X.Dims()
	logger.Info("Fitting forecaster",
		log.OperationKey, "fit",
		log.SeriesKey, len(ts.UIDs()),
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.FrequencyKey, f.freq.String())

	start := time.Now()
	for _, nm := range f.models {
		if err := nm.Model.Fit(X, y); err != nil {
			return errors.Wrapf(err, "fitting model %s", nm.Name)
		}
	}
	logger.Info("Forecaster fitted",
		log.OperationKey, "fit",
		log.DurationKey, time.Since(start))

	f.ts = ts
	f.fitted = true
	return nil
}

// Predict forecasts the next horizon steps of every training series.
func (f *MLForecast) Predict(horizon int) (*Predictions, error) {
	if !f.fitted {
		return nil, errors.NewNotFittedError("MLForecast", "Predict")
	}
	return f.ts.PredictRecursive(f.models, horizon)
}

// PredictOn forecasts horizon steps for the series in newData using the
// already-trained models. The target transforms are refit on newData so the
// lag features land on the scale the models were trained on; the models
// themselves are not retrained. newData must cover enough history for the
// configured lags and transforms.
func (f *MLForecast) PredictOn(horizon int, newData *Table) (*Predictions, error) {
	if !f.fitted {
		return nil, errors.NewNotFittedError("MLForecast", "PredictOn")
	}

	ts := newTimeSeries(f.freq, f.lags, f.cloneTransforms())
	if err := ts.Fit(newData); err != nil {
		return nil, err
	}

	logger := log.GetLoggerWithName("forecast.mlforecast")
	logger.Info("Forecasting new series",
		log.OperationKey, "predict",
		log.SeriesKey, len(ts.UIDs()),
		log.HorizonKey, horizon)

	return ts.PredictRecursive(f.models, horizon)
}

func (f *MLForecast) cloneTransforms() []TargetTransform {
	tfms := make([]TargetTransform, len(f.transforms))
	for i, tfm := range f.transforms {
		tfms[i] = tfm.Clone()
	}
	return tfms
}

// LagRange returns the inclusive range of lags [from, to].
func LagRange(from, to int) []int {
	if to < from {
		return nil
	}
	lags := make([]int, 0, to-from+1)
	for l := from; l <= to; l++ {
		lags = append(lags, l)
	}
	return lags
}

// modelName derives a forecast column name from the regressor's type.
func modelName(m model.Regressor) string {
	t := reflect.TypeOf(m)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return "model"
	}
	return t.Name()
}

// dedupeNames suffixes duplicated names with a decreasing counter, walking
// from the back so the first occurrence stays bare, mirroring mlforecast's
// naming: ["x", "x"] becomes ["x", "x2"].
func dedupeNames(names []string) []string {
	remaining := make(map[string]int, len(names))
	for _, n := range names {
		remaining[n]++
	}

	out := make([]string, len(names))
	for i := len(names) - 1; i >= 0; i-- {
		n := names[i]
		if remaining[n] > 1 {
			out[i] = fmt.Sprintf("%s%d", n, remaining[n])
		} else {
			out[i] = n
		}
		remaining[n]--
	}
	return out
}
