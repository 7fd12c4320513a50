// Package forecast implements scalable machine-learning forecasting on lag
// features: it stores grouped time series, builds differenced lag feature
// matrices, trains arbitrary regressors on them and produces multi-step
// forecasts by recursive prediction. The feature engineering mirrors the
// mlforecast library: lags as features, target transforms applied before
// fitting and inverted after predicting.
package forecast

import (
	"sort"
	"time"

	"github.com/Naren8520/mlforecast/pkg/errors"
)

// Table holds flat time-series records in parallel columns: a series
// identifier, a timestamp and an observed value per row. Within a series,
// timestamps must be strictly increasing at a fixed frequency and
// (id, timestamp) pairs must be unique.
type Table struct {
	ID   []string
	Time []time.Time
	Y    []float64
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Y)
}

// Append adds one row.
func (t *Table) Append(id string, ts time.Time, y float64) {
	t.ID = append(t.ID, id)
	t.Time = append(t.Time, ts)
	t.Y = append(t.Y, y)
}

// Validate checks column lengths and the per-series ordering invariants.
// The table must already be sorted by (id, time).
func (t *Table) Validate() error {
	if len(t.ID) != len(t.Y) || len(t.Time) != len(t.Y) {
		return errors.NewDimensionError("Table.Validate", len(t.Y), len(t.ID), 0)
	}
	if t.Len() == 0 {
		return errors.NewModelError("Table.Validate", "empty table", errors.ErrEmptyData)
	}
	for i := 1; i < t.Len(); i++ {
		if t.ID[i] == t.ID[i-1] && !t.Time[i].After(t.Time[i-1]) {
			return errors.NewValueError("Table.Validate",
				"timestamps must be strictly increasing within a series")
		}
	}
	return nil
}

// Sorted returns a copy of the table stably sorted by (id, time).
func (t *Table) Sorted() *Table {
	idx := make([]int, t.Len())
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ia, ib := idx[a], idx[b]
		if t.ID[ia] != t.ID[ib] {
			return t.ID[ia] < t.ID[ib]
		}
		return t.Time[ia].Before(t.Time[ib])
	})

	out := &Table{
		ID:   make([]string, t.Len()),
		Time: make([]time.Time, t.Len()),
		Y:    make([]float64, t.Len()),
	}
	for i, j := range idx {
		out.ID[i] = t.ID[j]
		out.Time[i] = t.Time[j]
		out.Y[i] = t.Y[j]
	}
	return out
}

// Filter returns the rows whose id is in ids, preserving order.
func (t *Table) Filter(ids ...string) *Table {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	out := &Table{}
	for i := 0; i < t.Len(); i++ {
		if keep[t.ID[i]] {
			out.Append(t.ID[i], t.Time[i], t.Y[i])
		}
	}
	return out
}

// groups returns the distinct series ids, the CSR-style group boundaries and
// the last timestamp of every series. The table must be sorted by (id, time).
func (t *Table) groups() (uids []string, indptr []int, lastDates []time.Time) {
	indptr = append(indptr, 0)
	for i := 0; i < t.Len(); i++ {
		if i == 0 || t.ID[i] != t.ID[i-1] {
			uids = append(uids, t.ID[i])
			if i > 0 {
				indptr = append(indptr, i)
				lastDates = append(lastDates, t.Time[i-1])
			}
		}
	}
	if t.Len() > 0 {
		indptr = append(indptr, t.Len())
		lastDates = append(lastDates, t.Time[t.Len()-1])
	}
	return uids, indptr, lastDates
}

// Predictions holds forecast rows: a series id, a timestamp and one forecast
// column per model. Rows are ordered by series, then time.
type Predictions struct {
	ID     []string
	Time   []time.Time
	Models []string             // column order
	Values map[string][]float64 // per-model forecast column
}

// Len returns the number of forecast rows.
func (p *Predictions) Len() int {
	return len(p.ID)
}

// Align left-joins the forecast rows of one model with ground-truth rows on
// (id, timestamp) and returns the aligned pair of value slices for
// evaluation. A forecast row with no matching truth row is an error.
func (p *Predictions) Align(truth *Table, modelName string) (yTrue, yPred []float64, err error) {
	col, ok := p.Values[modelName]
	if !ok {
		return nil, nil, errors.NewValueError("Predictions.Align",
			"unknown model column: "+modelName)
	}

	type key struct {
		id string
		ts int64
	}
	lookup := make(map[key]float64, truth.Len())
	for i := 0; i < truth.Len(); i++ {
		lookup[key{truth.ID[i], truth.Time[i].Unix()}] = truth.Y[i]
	}

	yTrue = make([]float64, 0, p.Len())
	yPred = make([]float64, 0, p.Len())
	for i := 0; i < p.Len(); i++ {
		actual, ok := lookup[key{p.ID[i], p.Time[i].Unix()}]
		if !ok {
			return nil, nil, errors.NewAlignmentError("Predictions.Align", p.ID[i], p.Time[i])
		}
		yTrue = append(yTrue, actual)
		yPred = append(yPred, col[i])
	}
	return yTrue, yPred, nil
}
