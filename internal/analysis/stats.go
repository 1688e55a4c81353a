package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// referenceStats are the global rate statistics shared by every row of a
// source. Rows with invalid durations are excluded from the samples.
type referenceStats struct {
	median float64
	iqr    float64
}

// minIQRDivisor replaces a zero inter-quartile range so the generic
// statistical-distance tier never divides by zero.
const minIQRDivisor = 1e-6

func computeReferenceStats(samples []float64) referenceStats {
	if len(samples) == 0 {
		return referenceStats{iqr: minIQRDivisor}
	}
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	median := stat.Quantile(0.5, stat.LinInterp, sorted, nil)
	q1 := stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	q3 := stat.Quantile(0.75, stat.LinInterp, sorted, nil)
	iqr := q3 - q1
	if iqr <= 0 {
		iqr = minIQRDivisor
	}
	return referenceStats{median: median, iqr: iqr}
}

// rollingMean computes a centered rolling mean matching the original
// windowing: for window w the row at i averages indexes [i-w/2, i+(w-1)/2],
// clipped at the sequence boundaries.
func rollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window < 1 {
		window = 1
	}
	for i := range values {
		lo := i - window/2
		hi := i + (window-1)/2
		if lo < 0 {
			lo = 0
		}
		if hi > len(values)-1 {
			hi = len(values) - 1
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}

// percentileRanks mirrors fractional ranking with averaged ties: each value
// receives the mean ordinal rank of its tie group divided by the sample
// size.
func percentileRanks(values []float64) []float64 {
	n := len(values)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	for start := 0; start < n; {
		end := start
		for end+1 < n && values[order[end+1]] == values[order[start]] {
			end++
		}
		// Average of 1-based ranks start+1 .. end+1.
		avgRank := float64(start+end+2) / 2.0
		pct := avgRank / float64(n)
		for k := start; k <= end; k++ {
			out[order[k]] = pct
		}
		start = end + 1
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}
