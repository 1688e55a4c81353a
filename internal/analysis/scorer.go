package analysis

import (
	"sort"

	"github.com/cerdastangkas/transcription-checker/internal/segment"
)

const (
	// rollingWindowSize is the centered window used for the local rate mean.
	rollingWindowSize = 10
	// shortSegmentSeconds marks rate-noisy utterances that get a relaxed
	// expected-rate denominator.
	shortSegmentSeconds = 3.0
	// silence detection bounds.
	silenceMaxWPS      = 0.3
	silenceMinDuration = 2.0
)

// Score computes every derived column for the given segments and returns
// the table ranked by unusual score, highest first, with the original input
// order as tie-break. The input slice is not mutated.
func Score(segments []segment.Segment) []segment.Segment {
	scored := segment.Clone(segments)
	if len(scored) == 0 {
		return scored
	}

	// Per-row rates. Rows with non-positive durations degrade to zero and
	// are excluded from every global denominator below.
	wps := make([]float64, len(scored))
	var (
		validWPS      []float64
		wordCountSum  float64
		durationSum   float64
		validRowCount int
	)
	for i := range scored {
		m := &scored[i].Metrics
		m.WordCount = segment.WordCount(scored[i].Text)
		if scored[i].HasValidDuration() {
			m.WordsPerSecond = float64(m.WordCount) / scored[i].Duration
			validWPS = append(validWPS, m.WordsPerSecond)
			wordCountSum += float64(m.WordCount)
			durationSum += scored[i].Duration
			validRowCount++
		} else {
			m.WordsPerSecond = 0
		}
		wps[i] = m.WordsPerSecond
	}

	ref := computeReferenceStats(validWPS)

	avgWPS := 0.0
	if validRowCount > 0 && durationSum > 0 {
		avgWPS = (wordCountSum / float64(validRowCount)) / (durationSum / float64(validRowCount))
	}

	local := rollingMean(wps, rollingWindowSize)

	for i := range scored {
		seg := &scored[i]
		m := &seg.Metrics

		m.LocalAvgWPS = local[i]
		if m.LocalAvgWPS > 0 {
			m.WordDensityRatio = m.WordsPerSecond / m.LocalAvgWPS
		}

		m.ExpectedWords = seg.Duration * avgWPS
		if m.ExpectedWords > 0 {
			m.WordDeviation = abs(float64(m.WordCount)-m.ExpectedWords) / m.ExpectedWords
		}

		m.IsShort = seg.Duration < shortSegmentSeconds
		switch {
		case m.IsShort && seg.Duration > 0:
			m.ShortSegmentRatio = float64(m.WordCount) / (seg.Duration * shortSegmentSeconds)
		case m.IsShort:
			m.ShortSegmentRatio = 0
		default:
			m.ShortSegmentRatio = 1.0
		}

		if m.WordsPerSecond < silenceMaxWPS && seg.Duration > silenceMinDuration {
			m.SilenceScore = 1.0
		}

		m.DeviationScore = deviationScore(*m, seg.Duration, ref)
		m.IsUnusual = isUnusual(*m, seg.Duration)
		m.UnusualScore = unusualScore(*m)
	}

	// Auxiliary percentile columns, retained for reporting only.
	fillRanks(scored)

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Metrics.UnusualScore > scored[b].Metrics.UnusualScore
	})
	return scored
}

func fillRanks(scored []segment.Segment) {
	n := len(scored)
	wpsVals := make([]float64, n)
	density := make([]float64, n)
	deviation := make([]float64, n)
	short := make([]float64, n)
	for i := range scored {
		m := scored[i].Metrics
		wpsVals[i] = m.WordsPerSecond
		density[i] = m.WordDensityRatio
		deviation[i] = m.WordDeviation
		short[i] = m.ShortSegmentRatio
	}
	wpsRank := percentileRanks(wpsVals)
	densityRank := percentileRanks(density)
	deviationRank := percentileRanks(deviation)
	shortRank := percentileRanks(short)
	for i := range scored {
		m := &scored[i].Metrics
		m.WPSPercentile = wpsRank[i]
		m.DensityRank = densityRank[i]
		m.DeviationRank = deviationRank[i]
		m.ShortRank = shortRank[i]
	}
}

// Unusual filters the flagged subset out of a scored table, preserving
// order.
func Unusual(scored []segment.Segment) []segment.Segment {
	var out []segment.Segment
	for _, seg := range scored {
		if seg.Metrics.IsUnusual {
			out = append(out, seg)
		}
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
