package raymarch

import (
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the distribution of a sample of march step counts.
type Summary struct {
	N        int
	Mean     float64
	StdDev   float64
	Median   float64
	P95      float64
	Min, Max float64
}

// Summarize computes summary statistics of steps. steps is not modified.
func Summarize(steps []float64) Summary {
	if len(steps) == 0 {
		return Summary{}
	}
	sorted := slices.Clone(steps)
	slices.Sort(sorted)
	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		std = 0
	}
	return Summary{
		N:      len(sorted),
		Mean:   mean,
		StdDev: std,
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P95:    stat.Quantile(0.95, stat.Empirical, sorted, nil),
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
	}
}

// StepCounts appends the step count of each result to dst and returns the
// count of results that hit a surface.
func StepCounts(dst []float64, results []Result) (_ []float64, hits int) {
	for _, r := range results {
		dst = append(dst, float64(r.Steps))
		if r.State == Hit {
			hits++
		}
	}
	return dst, hits
}
