package forecast

import (
	"math"
	"testing"
)

func testGA(t *testing.T) *GroupedArray {
	t.Helper()
	// Two series: [1, 2, 3, 4] and [10, 20, 30].
	ga, err := NewGroupedArray([]float64{1, 2, 3, 4, 10, 20, 30}, []int{0, 4, 7})
	if err != nil {
		t.Fatalf("NewGroupedArray() error = %v", err)
	}
	return ga
}

func TestNewGroupedArrayValidation(t *testing.T) {
	tests := []struct {
		name    string
		data    []float64
		indptr  []int
		wantErr bool
	}{
		{
			name:   "valid",
			data:   []float64{1, 2, 3},
			indptr: []int{0, 2, 3},
		},
		{
			name:    "indptr too short",
			data:    []float64{1},
			indptr:  []int{0},
			wantErr: true,
		},
		{
			name:    "indptr not starting at zero",
			data:    []float64{1, 2},
			indptr:  []int{1, 2},
			wantErr: true,
		},
		{
			name:    "decreasing indptr",
			data:    []float64{1, 2, 3},
			indptr:  []int{0, 2, 1},
			wantErr: true,
		},
		{
			name:    "indptr end not matching data length",
			data:    []float64{1, 2, 3},
			indptr:  []int{0, 2},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGroupedArray(tt.data, tt.indptr)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewGroupedArray() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGroupedArrayGroup(t *testing.T) {
	ga := testGA(t)

	if got := ga.NGroups(); got != 2 {
		t.Errorf("NGroups() = %d, want 2", got)
	}
	if got := ga.Len(); got != 7 {
		t.Errorf("Len() = %d, want 7", got)
	}

	g1 := ga.Group(1)
	want := []float64{10, 20, 30}
	if len(g1) != len(want) {
		t.Fatalf("Group(1) length = %d, want %d", len(g1), len(want))
	}
	for i := range want {
		if g1[i] != want[i] {
			t.Errorf("Group(1)[%d] = %v, want %v", i, g1[i], want[i])
		}
	}
}

func TestGroupedArrayAppend(t *testing.T) {
	ga := testGA(t)

	out, err := ga.Append([]float64{5, 40})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	wantData := []float64{1, 2, 3, 4, 5, 10, 20, 30, 40}
	if len(out.Data) != len(wantData) {
		t.Fatalf("Append() data length = %d, want %d", len(out.Data), len(wantData))
	}
	for i := range wantData {
		if out.Data[i] != wantData[i] {
			t.Errorf("Append() data[%d] = %v, want %v", i, out.Data[i], wantData[i])
		}
	}
	if out.Indptr[1] != 5 || out.Indptr[2] != 9 {
		t.Errorf("Append() indptr = %v, want [0 5 9]", out.Indptr)
	}

	// The source array is not mutated.
	if ga.Len() != 7 {
		t.Errorf("source length changed to %d after Append", ga.Len())
	}

	if _, err := ga.Append([]float64{1}); err == nil {
		t.Error("Append() with wrong length succeeded, want error")
	}
}

func TestGroupedArrayLag(t *testing.T) {
	ga := testGA(t)

	lag2 := ga.Lag(2)
	// Series 1: NaN NaN 1 2; series 2: NaN NaN 10.
	wantNaN := []bool{true, true, false, false, true, true, false}
	wantVal := []float64{0, 0, 1, 2, 0, 0, 10}
	for i := range lag2 {
		if math.IsNaN(lag2[i]) != wantNaN[i] {
			t.Errorf("Lag(2)[%d] NaN = %v, want %v", i, math.IsNaN(lag2[i]), wantNaN[i])
			continue
		}
		if !wantNaN[i] && lag2[i] != wantVal[i] {
			t.Errorf("Lag(2)[%d] = %v, want %v", i, lag2[i], wantVal[i])
		}
	}
}

func TestGroupedArrayLagUpdate(t *testing.T) {
	ga := testGA(t)

	// Next-step lag-1 features are the series ends.
	got := ga.LagUpdate(1)
	if got[0] != 4 || got[1] != 30 {
		t.Errorf("LagUpdate(1) = %v, want [4 30]", got)
	}

	got = ga.LagUpdate(3)
	if got[0] != 2 || got[1] != 10 {
		t.Errorf("LagUpdate(3) = %v, want [2 10]", got)
	}

	// Series 2 has only three values.
	got = ga.LagUpdate(4)
	if got[0] != 1 {
		t.Errorf("LagUpdate(4)[0] = %v, want 1", got[0])
	}
	if !math.IsNaN(got[1]) {
		t.Errorf("LagUpdate(4)[1] = %v, want NaN", got[1])
	}
}

func TestGroupedArrayTakeFromGroups(t *testing.T) {
	ga := testGA(t)

	out := ga.TakeFromGroups(2)
	wantData := []float64{3, 4, 20, 30}
	if len(out.Data) != len(wantData) {
		t.Fatalf("TakeFromGroups(2) data length = %d, want %d", len(out.Data), len(wantData))
	}
	for i := range wantData {
		if out.Data[i] != wantData[i] {
			t.Errorf("TakeFromGroups(2) data[%d] = %v, want %v", i, out.Data[i], wantData[i])
		}
	}
}

func TestGroupedArrayTails(t *testing.T) {
	ga := testGA(t)

	tails := ga.Tails(3)
	if tails[0][0] != 2 || tails[0][1] != 3 || tails[0][2] != 4 {
		t.Errorf("Tails(3)[0] = %v, want [2 3 4]", tails[0])
	}
	if tails[1][0] != 10 || tails[1][2] != 30 {
		t.Errorf("Tails(3)[1] = %v, want [10 20 30]", tails[1])
	}

	tails = ga.Tails(4)
	if tails[1] != nil {
		t.Errorf("Tails(4)[1] = %v, want nil for short series", tails[1])
	}
}

func TestGroupedArrayClone(t *testing.T) {
	ga := testGA(t)
	cl := ga.Clone()
	cl.Data[0] = -1
	if ga.Data[0] != 1 {
		t.Error("Clone() shares backing data with source")
	}
}
