package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSummarize_KnownSample(t *testing.T) {
	s := summarize([]float64{4, 1, 3, 2, 5})
	assert.InDelta(t, 3.0, s.Mean, 1e-9)
	assert.InDelta(t, 1.41421356, s.StdDev, 1e-6)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 5.0, s.Max)
	assert.InDelta(t, 3.0, s.P50, 1e-9)
	assert.InDelta(t, 4.6, s.P90, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, summarize(nil))
}

func TestSummarize_SingleValue(t *testing.T) {
	s := summarize([]float64{42})
	assert.Equal(t, Summary{Mean: 42, Min: 42, Max: 42, P50: 42, P90: 42, P99: 42}, s)
}

func TestProperty_SummarizeOrdered(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		xs := rapid.SliceOfN(rapid.Float64Range(0, 1000), 1, 200).Draw(rt, "xs")
		s := summarize(xs)
		if !(s.Min <= s.P50 && s.P50 <= s.P90 && s.P90 <= s.P99 && s.P99 <= s.Max) {
			rt.Fatalf("percentiles out of order: %+v", s)
		}
		if s.Mean < s.Min-1e-9 || s.Mean > s.Max+1e-9 {
			rt.Fatalf("mean %v outside [%v, %v]", s.Mean, s.Min, s.Max)
		}
		if s.StdDev < 0 {
			rt.Fatalf("negative stddev %v", s.StdDev)
		}
	})
}
