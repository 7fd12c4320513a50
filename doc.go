// Package mlforecast provides scalable machine learning based time-series
// forecasting for Go, built on gradient boosted trees over lag features.
//
// The library follows a scikit-learn-like workflow: construct a forecaster
// with models, lag orders and target transforms, fit it on a table of
// historical series, and predict any horizon. Because the models learn from
// lag features rather than series identities, a fitted forecaster can also
// be applied to series it has never seen (transfer learning).
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/Naren8520/mlforecast/forecast"
//	    "github.com/Naren8520/mlforecast/lightgbm"
//	)
//
//	func main() {
//	    history := loadHistory() // *forecast.Table with (id, ds, y) rows
//
//	    fcst := forecast.New(forecast.Monthly, lightgbm.NewLGBMRegressor()).
//	        WithLags(forecast.LagRange(1, 12)...).
//	        WithTargetTransforms(forecast.NewDifferences(1, 12))
//
//	    if err := fcst.Fit(history); err != nil {
//	        log.Fatal(err)
//	    }
//	    preds, err := fcst.Predict(12)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(preds.Len(), "forecast rows")
//	}
//
// # Packages
//
//   - forecast: core tables, frequencies, lag features, target transforms
//     and the MLForecast facade
//   - lightgbm: gradient boosted tree regressor with a sklearn-style API
//   - metrics: evaluation metrics (MAE, MSE, RMSE, MAPE, R²)
//   - dataset: M4 benchmark loader and CSV helpers
//   - baseline: classical reference forecasters (Holt-Winters,
//     seasonal naive)
//   - plotting: series and forecast plots via gonum/plot
//   - core/model: estimator interfaces and fitted-state plumbing
//
// # Transfer Learning
//
// PredictOn forecasts new series with an already-fitted forecaster:
//
//	preds, err := fcst.PredictOn(12, newSeries)
//
// The target transforms are refit on the new data while the trained models
// are reused unchanged.
//
// # License
//
// mlforecast is released under the MIT License.
package mlforecast
