package telemetry

import (
	"math"
	"slices"
)

// Summary describes a sample of measurements, typically solve times.
type Summary struct {
	Count         int
	Sum           float64
	Mean          float64
	Median        float64
	StdDev        float64 // population standard deviation
	FirstQuartile float64
	ThirdQuartile float64
}

// Summarize computes a Summary of vals. vals is not modified. Quartiles
// and the median are taken at indexes n/4, n/2 and n/4+n/2 of the sorted
// sample.
func Summarize(vals []float64) Summary {
	s := Summary{Count: len(vals)}
	if len(vals) == 0 {
		return s
	}
	sorted := slices.Clone(vals)
	slices.Sort(sorted)

	for _, v := range sorted {
		s.Sum += v
	}
	n := len(sorted)
	s.Mean = s.Sum / float64(n)

	var sq float64
	for _, v := range sorted {
		d := v - s.Mean
		sq += d * d
	}
	s.StdDev = math.Sqrt(sq / float64(n))

	first := n >> 2
	s.FirstQuartile = sorted[first]
	s.Median = sorted[n/2]
	s.ThirdQuartile = sorted[first+n>>1]
	return s
}
