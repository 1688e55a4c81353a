package analysis

import (
	"math"

	"github.com/cerdastangkas/transcription-checker/internal/segment"
)

// Deviation score tiers. Evaluated top-down per row; the first matching tier
// wins and tiers are never summed.
const (
	scoreRepeatedWords = 20.0
	scoreVerySlow      = 10.0
	scoreFewWords      = 8.0
	scoreNormalSpeech  = 0.5
)

// Unusual gate thresholds. These were tuned independently of the deviation
// tiers above and are intentionally not derived from them.
const (
	gateExtremeWPSHigh   = 15.0
	gateExtremeWPSLow    = 0.85
	gateExtremeDuration  = 3.0
	gateMinWordDensity   = 1.4
	gateExtremeDeviation = 7.0
)

// deviationRule is one predicate -> value entry of the score ladder.
type deviationRule struct {
	name  string
	match func(m segment.Metrics, duration float64) bool
	score float64
}

var deviationLadder = []deviationRule{
	{
		name: "repeated words",
		match: func(m segment.Metrics, _ float64) bool {
			return m.WordsPerSecond > 15.0
		},
		score: scoreRepeatedWords,
	},
	{
		name: "very slow speech",
		match: func(m segment.Metrics, duration float64) bool {
			return m.WordsPerSecond < 0.85 && duration > 4.0
		},
		score: scoreVerySlow,
	},
	{
		name: "few words for duration",
		match: func(m segment.Metrics, duration float64) bool {
			return m.WordCount <= 6 && duration > 3.0 && m.WordsPerSecond < 1.4
		},
		score: scoreFewWords,
	},
	{
		name: "normal speech",
		match: func(m segment.Metrics, duration float64) bool {
			return m.WordsPerSecond >= 1.5 && m.WordsPerSecond <= 4.5 &&
				duration < 6.0 && m.WordCount > 6
		},
		score: scoreNormalSpeech,
	},
}

// deviationScore walks the ladder and falls back to the generic statistical
// distance when no tier matches.
func deviationScore(m segment.Metrics, duration float64, ref referenceStats) float64 {
	for _, rule := range deviationLadder {
		if rule.match(m, duration) {
			return rule.score
		}
	}
	return math.Abs(m.WordsPerSecond-ref.median) / ref.iqr * 2.0
}

// isUnusual is the boolean gate. A separate rule set from the deviation
// ladder: clauses overlap but use their own constants.
func isUnusual(m segment.Metrics, duration float64) bool {
	switch {
	case m.WordsPerSecond > gateExtremeWPSHigh:
		return true
	case m.WordsPerSecond < gateExtremeWPSLow && duration > gateExtremeDuration:
		return true
	case m.WordCount <= 6 && duration > 3.0 && m.WordsPerSecond < gateMinWordDensity:
		return true
	case duration > 4.5 && m.WordCount < 8 && m.WordsPerSecond < 1.2:
		return true
	case m.DeviationScore > gateExtremeDeviation:
		return true
	default:
		return false
	}
}

// unusualScore is the continuous ranking key. Used only for sort order,
// never for the gate.
func unusualScore(m segment.Metrics) float64 {
	short := 0.0
	if m.IsShort {
		short = m.ShortSegmentRatio
	}
	return 3.0*m.WordDeviation +
		2.0*math.Abs(m.WordDensityRatio-1.0) +
		1.5*m.SilenceScore +
		1.0*short
}
