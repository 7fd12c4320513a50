package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMAE(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			yPred:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			want:      0.0,
			tolerance: 1e-10,
			wantErr:   false,
		},
		{
			name:      "simple case",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5}),
			want:      0.5, // (0.5 + 0.5 + 0.5 + 0.5) / 4
			tolerance: 1e-10,
			wantErr:   false,
		},
		{
			name:      "mixed signs",
			yTrue:     mat.NewVecDense(3, []float64{10.0, 20.0, 30.0}),
			yPred:     mat.NewVecDense(3, []float64{12.0, 18.0, 33.0}),
			want:      7.0 / 3.0, // (2 + 2 + 3) / 3
			tolerance: 1e-10,
			wantErr:   false,
		},
		{
			name:      "dimension mismatch",
			yTrue:     mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:     mat.NewVecDense(2, []float64{1.0, 2.0}),
			want:      0.0,
			tolerance: 1e-10,
			wantErr:   true,
		},
		{
			name:      "empty vectors",
			yTrue:     &mat.VecDense{},
			yPred:     &mat.VecDense{},
			want:      0.0,
			tolerance: 1e-10,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MAE(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Errorf("MAE() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("MAE() = %v, want %v", got, tt.want)
			}
		})
	}
}

// MAE is symmetric in its arguments: mae(a, b) == mae(b, a).
func TestMAESymmetry(t *testing.T) {
	a := []float64{1.2, -3.4, 5.6, 0.0, 42.0}
	b := []float64{0.8, 3.4, -5.6, 1.0, 40.5}

	ab, err := MAESlice(a, b)
	if err != nil {
		t.Fatalf("MAESlice(a, b) error = %v", err)
	}
	ba, err := MAESlice(b, a)
	if err != nil {
		t.Fatalf("MAESlice(b, a) error = %v", err)
	}
	if math.Abs(ab-ba) > 1e-12 {
		t.Errorf("MAE not symmetric: mae(a,b) = %v, mae(b,a) = %v", ab, ba)
	}
}

// MAE of a sequence against itself is zero.
func TestMAEIdentity(t *testing.T) {
	a := []float64{3.0, -1.0, 0.5, 100.0}
	got, err := MAESlice(a, a)
	if err != nil {
		t.Fatalf("MAESlice(a, a) error = %v", err)
	}
	if got != 0.0 {
		t.Errorf("MAESlice(a, a) = %v, want 0", got)
	}
}

// MAE is non-negative and scales linearly: mae(k*a, k*b) == |k| * mae(a, b).
func TestMAEScaling(t *testing.T) {
	a := []float64{1.0, 2.0, -3.0, 4.5}
	b := []float64{0.5, 2.5, -2.0, 5.0}
	base, err := MAESlice(a, b)
	if err != nil {
		t.Fatalf("MAESlice(a, b) error = %v", err)
	}
	if base < 0 {
		t.Fatalf("MAE is negative: %v", base)
	}

	for _, k := range []float64{2.0, -3.0, 0.0, 0.25} {
		ka := make([]float64, len(a))
		kb := make([]float64, len(b))
		for i := range a {
			ka[i] = k * a[i]
			kb[i] = k * b[i]
		}
		got, err := MAESlice(ka, kb)
		if err != nil {
			t.Fatalf("MAESlice(k*a, k*b) error = %v (k=%v)", err, k)
		}
		want := math.Abs(k) * base
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("mae(%v*a, %v*b) = %v, want %v", k, k, got, want)
		}
		if got < 0 {
			t.Errorf("MAE is negative for k=%v: %v", k, got)
		}
	}
}

func TestRMSE(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:     mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			want:      0.0,
			tolerance: 1e-10,
			wantErr:   false,
		},
		{
			name:      "constant offset",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{2.0, 3.0, 4.0, 5.0}),
			want:      1.0,
			tolerance: 1e-10,
			wantErr:   false,
		},
		{
			name:      "dimension mismatch",
			yTrue:     mat.NewVecDense(2, []float64{1.0, 2.0}),
			yPred:     mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			wantErr:   true,
			tolerance: 1e-10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RMSE(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Errorf("RMSE() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("RMSE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestR2Score(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			want:      1.0,
			tolerance: 1e-10,
			wantErr:   false,
		},
		{
			name:      "mean prediction",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{2.5, 2.5, 2.5, 2.5}),
			want:      0.0,
			tolerance: 1e-10,
			wantErr:   false,
		},
		{
			name:      "dimension mismatch",
			yTrue:     mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:     mat.NewVecDense(2, []float64{1.0, 2.0}),
			wantErr:   true,
			tolerance: 1e-10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := R2Score(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Errorf("R2Score() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("R2Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMAPE(t *testing.T) {
	yTrue := mat.NewVecDense(3, []float64{100.0, 200.0, 400.0})
	yPred := mat.NewVecDense(3, []float64{110.0, 180.0, 400.0})
	// (10/100 + 20/200 + 0/400) / 3 * 100 = (0.1 + 0.1 + 0) / 3 * 100
	want := 20.0 / 3.0

	got, err := MAPE(yTrue, yPred)
	if err != nil {
		t.Fatalf("MAPE() error = %v", err)
	}
	if math.Abs(got-want) > 1e-10 {
		t.Errorf("MAPE() = %v, want %v", got, want)
	}
}
