package forecast

import (
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/Naren8520/mlforecast/lightgbm"
)

// constReg predicts a fixed value for every row. It records the training
// dimensions so tests can check the rows the warm-up filter kept.
type constReg struct {
	value     float64
	fitRows   int
	fitCols   int
	fitCalled bool
}

func (c *constReg) Fit(X, y mat.Matrix) error {
	c.fitRows, c.fitCols = X.Dims()
	c.fitCalled = true
	return nil
}

func (c *constReg) Predict(X mat.Matrix) (mat.Matrix, error) {
	rows, _ := X.Dims()
	out := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		out.Set(i, 0, c.value)
	}
	return out, nil
}

// monthlyTable builds one series of n monthly values from gen(i).
func monthlyTable(id string, n int, gen func(i int) float64) *Table {
	tbl := &Table{}
	for i := 0; i < n; i++ {
		tbl.Append(id, date(2019, time.January).AddDate(0, i, 0), gen(i))
	}
	return tbl
}

func TestMLForecastFitPredict(t *testing.T) {
	// y_t = 3t. A model that predicts the constant 3 in difference space
	// forecasts the line exactly after the inverse transform.
	history := monthlyTable("a", 24, func(i int) float64 { return 3 * float64(i) })

	reg := &constReg{value: 3}
	fcst := New(Monthly, reg).
		WithLags(1, 2).
		WithTargetTransforms(NewDifferences(1))

	if err := fcst.Fit(history); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if !reg.fitCalled {
		t.Fatal("Fit() did not train the model")
	}
	// Rows 0 (NaN target), 1 (NaN lag1) and 2 (NaN lag2) are warm-up.
	if reg.fitRows != 21 {
		t.Errorf("training rows = %d, want 21", reg.fitRows)
	}
	if reg.fitCols != 2 {
		t.Errorf("training features = %d, want 2", reg.fitCols)
	}

	horizon := 4
	preds, err := fcst.Predict(horizon)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if preds.Len() != horizon {
		t.Fatalf("Predict() rows = %d, want %d", preds.Len(), horizon)
	}

	col := preds.Values[fcst.Models()[0]]
	last := 3.0 * 23
	for i := 0; i < horizon; i++ {
		want := last + 3*float64(i+1)
		if math.Abs(col[i]-want) > 1e-9 {
			t.Errorf("forecast[%d] = %v, want %v", i, col[i], want)
		}
		wantTime := date(2019, time.January).AddDate(0, 24+i, 0)
		if !preds.Time[i].Equal(wantTime) {
			t.Errorf("forecast time[%d] = %v, want %v", i, preds.Time[i], wantTime)
		}
		if preds.ID[i] != "a" {
			t.Errorf("forecast id[%d] = %q, want a", i, preds.ID[i])
		}
	}
}

func TestMLForecastPredictOn(t *testing.T) {
	history := monthlyTable("train", 24, func(i int) float64 { return 3 * float64(i) })

	reg := &constReg{value: 3}
	fcst := New(Monthly, reg).
		WithLags(1).
		WithTargetTransforms(NewDifferences(1))
	if err := fcst.Fit(history); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	// An unseen series at a completely different level. The transforms are
	// refit on it, so the forecasts continue from its own last value.
	unseen := monthlyTable("new", 10, func(i int) float64 { return 1000 + 3*float64(i) })
	preds, err := fcst.PredictOn(3, unseen)
	if err != nil {
		t.Fatalf("PredictOn() error = %v", err)
	}

	col := preds.Values[fcst.Models()[0]]
	last := 1000.0 + 3*9
	for i := 0; i < 3; i++ {
		want := last + 3*float64(i+1)
		if math.Abs(col[i]-want) > 1e-9 {
			t.Errorf("PredictOn forecast[%d] = %v, want %v", i, col[i], want)
		}
		if preds.ID[i] != "new" {
			t.Errorf("PredictOn id[%d] = %q, want new", i, preds.ID[i])
		}
	}
}

func TestMLForecastMultiSeries(t *testing.T) {
	tbl := monthlyTable("a", 12, func(i int) float64 { return float64(i) })
	b := monthlyTable("b", 12, func(i int) float64 { return 100 + float64(i) })
	for i := 0; i < b.Len(); i++ {
		tbl.Append(b.ID[i], b.Time[i], b.Y[i])
	}

	reg := &constReg{value: 1}
	fcst := New(Monthly, reg).
		WithLags(1).
		WithTargetTransforms(NewDifferences(1))
	if err := fcst.Fit(tbl); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	preds, err := fcst.Predict(2)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if preds.Len() != 4 {
		t.Fatalf("Predict() rows = %d, want 4", preds.Len())
	}

	col := preds.Values[fcst.Models()[0]]
	wants := []struct {
		id  string
		val float64
	}{
		{"a", 12}, {"a", 13}, {"b", 112}, {"b", 113},
	}
	for i, w := range wants {
		if preds.ID[i] != w.id {
			t.Errorf("row %d id = %q, want %q", i, preds.ID[i], w.id)
		}
		if math.Abs(col[i]-w.val) > 1e-9 {
			t.Errorf("row %d forecast = %v, want %v", i, col[i], w.val)
		}
	}
}

func TestMLForecastValidation(t *testing.T) {
	history := monthlyTable("a", 12, func(i int) float64 { return float64(i) })

	if err := New(Monthly).WithLags(1).Fit(history); err == nil {
		t.Error("Fit() with no models succeeded, want error")
	}
	if err := New(Monthly, &constReg{}).Fit(history); err == nil {
		t.Error("Fit() with no lags succeeded, want error")
	}
	if err := New(Monthly, &constReg{}).WithLags(0).Fit(history); err == nil {
		t.Error("Fit() with lag 0 succeeded, want error")
	}

	fcst := New(Monthly, &constReg{}).WithLags(1)
	if _, err := fcst.Predict(3); err == nil {
		t.Error("Predict() before Fit succeeded, want error")
	}
	if _, err := fcst.PredictOn(3, history); err == nil {
		t.Error("PredictOn() before Fit succeeded, want error")
	}

	if err := fcst.Fit(history); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, err := fcst.Predict(0); err == nil {
		t.Error("Predict(0) succeeded, want error")
	}
}

func TestMLForecastEmptyDifferences(t *testing.T) {
	history := monthlyTable("a", 24, func(i int) float64 { return float64(i) })

	fcst := New(Monthly, &constReg{value: 1}).
		WithLags(1).
		WithTargetTransforms(NewDifferences())
	if err := fcst.Fit(history); err == nil {
		t.Fatal("Fit() with an empty Differences succeeded, want error")
	}
	if _, err := fcst.Predict(3); err == nil {
		t.Error("Predict() after failed Fit succeeded, want error")
	}
}

// Two full pipeline runs with the same configuration must reproduce the same
// forecasts exactly, including through the transform fit and inverse steps.
func TestMLForecastDeterministicForecasts(t *testing.T) {
	tbl := monthlyTable("a", 48, func(i int) float64 {
		return 10 + 0.5*float64(i) + 3*math.Sin(float64(i))
	})
	b := monthlyTable("b", 48, func(i int) float64 {
		return 100 + 0.8*float64(i) + 2*math.Cos(float64(i))
	})
	for i := 0; i < b.Len(); i++ {
		tbl.Append(b.ID[i], b.Time[i], b.Y[i])
	}

	horizon := 6
	run := func() []float64 {
		reg := lightgbm.NewLGBMRegressor().
			WithNumIterations(15).
			WithNumLeaves(8).
			WithMinChildSamples(2).
			WithRandomState(0).
			WithDeterministic(true)
		fcst := New(Monthly, reg).
			WithLags(LagRange(1, 6)...).
			WithTargetTransforms(NewDifferences(1))
		if err := fcst.Fit(tbl); err != nil {
			t.Fatalf("Fit() error = %v", err)
		}
		preds, err := fcst.Predict(horizon)
		if err != nil {
			t.Fatalf("Predict() error = %v", err)
		}
		return preds.Values[fcst.Models()[0]]
	}

	first := run()
	second := run()
	if len(first) != 2*horizon || len(second) != len(first) {
		t.Fatalf("forecast rows = %d and %d, want %d", len(first), len(second), 2*horizon)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("forecast[%d] = %v on rerun %v, want identical", i, first[i], second[i])
		}
	}
}

func TestModelNaming(t *testing.T) {
	// The first duplicate keeps the bare name; later ones get a counter.
	fcst := New(Monthly, &constReg{}, &constReg{})
	names := fcst.Models()
	if names[0] != "constReg" || names[1] != "constReg2" {
		t.Errorf("Models() = %v, want [constReg constReg2]", names)
	}

	triple := New(Monthly, &constReg{}, &constReg{}, &constReg{})
	names = triple.Models()
	want := []string{"constReg", "constReg2", "constReg3"}
	for i, w := range want {
		if names[i] != w {
			t.Errorf("Models()[%d] = %q, want %q", i, names[i], w)
		}
	}

	single := New(Monthly, &constReg{})
	if got := single.Models()[0]; got != "constReg" {
		t.Errorf("Models()[0] = %q, want constReg", got)
	}
}

func TestLagRange(t *testing.T) {
	got := LagRange(1, 4)
	want := []int{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("LagRange(1, 4) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LagRange(1, 4)[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if LagRange(4, 1) != nil {
		t.Error("LagRange(4, 1) != nil")
	}
}

func TestTimeSeriesTrainingMatrixWarmup(t *testing.T) {
	tbl := monthlyTable("a", 10, func(i int) float64 { return float64(i * i) })

	ts := newTimeSeries(Monthly, []int{1, 2}, []TargetTransform{NewDifferences(1)})
	if err := ts.Fit(tbl); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	X, y, err := ts.TrainingMatrix()
	if err != nil {
		t.Fatalf("TrainingMatrix() error = %v", err)
	}

	rows, cols := X.Dims()
	if rows != 7 || cols != 2 {
		t.Fatalf("TrainingMatrix() dims = %dx%d, want 7x2", rows, cols)
	}
	yRows, _ := y.Dims()
	if yRows != rows {
		t.Fatalf("target rows = %d, want %d", yRows, rows)
	}

	// First kept row is position 3: target diff[3] with lag features
	// diff[2], diff[1]. diff[i] = i^2 - (i-1)^2 = 2i - 1.
	if got := y.At(0, 0); got != 7 {
		t.Errorf("y[0] = %v, want 7", got)
	}
	if got := X.At(0, 0); got != 5 {
		t.Errorf("X[0,0] = %v, want 5", got)
	}
	if got := X.At(0, 1); got != 3 {
		t.Errorf("X[0,1] = %v, want 3", got)
	}
}

func TestTimeSeriesFitRejectsNaN(t *testing.T) {
	tbl := monthlyTable("a", 5, func(i int) float64 { return float64(i) })
	tbl.Y[2] = math.NaN()

	ts := newTimeSeries(Monthly, []int{1}, nil)
	if err := ts.Fit(tbl); err == nil {
		t.Error("Fit() with NaN target succeeded, want error")
	}
}
