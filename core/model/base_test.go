package model

import "testing"

func TestBaseEstimatorState(t *testing.T) {
	var e BaseEstimator

	if e.IsFitted() {
		t.Error("new estimator reports fitted")
	}

	e.SetFitted()
	if !e.IsFitted() {
		t.Error("estimator not fitted after SetFitted")
	}

	e.Reset()
	if e.IsFitted() {
		t.Error("estimator still fitted after Reset")
	}
}
