package forecast

import (
	"math"

	"github.com/Naren8520/mlforecast/pkg/errors"
)

// GroupedArray stores the values of many series in a single flat slice with
// CSR-style group boundaries: series g occupies Data[Indptr[g]:Indptr[g+1]].
// All per-series feature computation and the recursive-prediction appends
// run against this structure.
type GroupedArray struct {
	Data   []float64
	Indptr []int
}

// NewGroupedArray validates the boundaries and wraps the slices.
func NewGroupedArray(data []float64, indptr []int) (*GroupedArray, error) {
	if len(indptr) < 2 {
		return nil, errors.NewValueError("NewGroupedArray", "indptr needs at least two entries")
	}
	if indptr[0] != 0 {
		return nil, errors.NewValueError("NewGroupedArray", "indptr must start at zero")
	}
	for i := 1; i < len(indptr); i++ {
		if indptr[i] < indptr[i-1] {
			return nil, errors.NewValueError("NewGroupedArray", "indptr must be non-decreasing")
		}
	}
	if indptr[len(indptr)-1] != len(data) {
		return nil, errors.NewDimensionError("NewGroupedArray", indptr[len(indptr)-1], len(data), 0)
	}
	return &GroupedArray{Data: data, Indptr: indptr}, nil
}

// NGroups returns the number of series.
func (ga *GroupedArray) NGroups() int {
	return len(ga.Indptr) - 1
}

// Len returns the total number of stored values.
func (ga *GroupedArray) Len() int {
	return len(ga.Data)
}

// Group returns the values of series g. The slice aliases the backing array.
func (ga *GroupedArray) Group(g int) []float64 {
	return ga.Data[ga.Indptr[g]:ga.Indptr[g+1]]
}

// Clone returns a deep copy.
func (ga *GroupedArray) Clone() *GroupedArray {
	data := make([]float64, len(ga.Data))
	copy(data, ga.Data)
	indptr := make([]int, len(ga.Indptr))
	copy(indptr, ga.Indptr)
	return &GroupedArray{Data: data, Indptr: indptr}
}

// Append adds one new value to every series and returns the result. vals
// must have one entry per group.
func (ga *GroupedArray) Append(vals []float64) (*GroupedArray, error) {
	if len(vals) != ga.NGroups() {
		return nil, errors.NewDimensionError("GroupedArray.Append", ga.NGroups(), len(vals), 0)
	}
	data := make([]float64, 0, len(ga.Data)+len(vals))
	indptr := make([]int, 1, len(ga.Indptr))
	for g := 0; g < ga.NGroups(); g++ {
		data = append(data, ga.Group(g)...)
		data = append(data, vals[g])
		indptr = append(indptr, len(data))
	}
	return &GroupedArray{Data: data, Indptr: indptr}, nil
}

// TakeFromGroups keeps only the last n values of every series.
func (ga *GroupedArray) TakeFromGroups(n int) *GroupedArray {
	data := make([]float64, 0, n*ga.NGroups())
	indptr := make([]int, 1, len(ga.Indptr))
	for g := 0; g < ga.NGroups(); g++ {
		group := ga.Group(g)
		if len(group) > n {
			group = group[len(group)-n:]
		}
		data = append(data, group...)
		indptr = append(indptr, len(data))
	}
	return &GroupedArray{Data: data, Indptr: indptr}
}

// Lag computes the lag-k feature for every stored position. The first k
// positions of each series have no lagged value and hold NaN.
func (ga *GroupedArray) Lag(k int) []float64 {
	out := make([]float64, len(ga.Data))
	for g := 0; g < ga.NGroups(); g++ {
		lo, hi := ga.Indptr[g], ga.Indptr[g+1]
		for i := lo; i < hi; i++ {
			if i-lo < k {
				out[i] = math.NaN()
			} else {
				out[i] = ga.Data[i-k]
			}
		}
	}
	return out
}

// LagUpdate computes the lag-k feature of the next (not yet observed)
// position of every series: the k-th value from each series' end. Series
// shorter than k yield NaN.
func (ga *GroupedArray) LagUpdate(k int) []float64 {
	out := make([]float64, ga.NGroups())
	for g := 0; g < ga.NGroups(); g++ {
		lo, hi := ga.Indptr[g], ga.Indptr[g+1]
		if hi-lo < k {
			out[g] = math.NaN()
		} else {
			out[g] = ga.Data[hi-k]
		}
	}
	return out
}

// Tails returns the last n values of every series as copies.
func (ga *GroupedArray) Tails(n int) [][]float64 {
	out := make([][]float64, ga.NGroups())
	for g := 0; g < ga.NGroups(); g++ {
		group := ga.Group(g)
		if len(group) < n {
			out[g] = nil
			continue
		}
		tail := make([]float64, n)
		copy(tail, group[len(group)-n:])
		out[g] = tail
	}
	return out
}
