package analysis_test

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/cerdastangkas/transcription-checker/internal/analysis"
	"github.com/cerdastangkas/transcription-checker/internal/segment"
)

func normalRow(index int, text string, duration float64) segment.Segment {
	return segment.Segment{Index: index, Text: text, Duration: duration}
}

// background produces enough canonical speech rows that the global stats are
// dominated by normal rates.
func background(n int) []segment.Segment {
	rows := make([]segment.Segment, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, normalRow(i, "ini adalah kalimat percakapan yang normal sekali", 3.0))
	}
	return rows
}

func findByIndex(scored []segment.Segment, index int) segment.Segment {
	for _, seg := range scored {
		if seg.Index == index {
			return seg
		}
	}
	return segment.Segment{Index: -1}
}

func TestRepeatedWordsTriggersTierOne(t *testing.T) {
	rows := background(12)
	rows = append(rows, normalRow(12, strings.Repeat("yes ", 16), 1.0))

	scored := analysis.Score(rows)
	got := findByIndex(scored, 12)

	if got.Metrics.WordsPerSecond != 16.0 {
		t.Fatalf("words per second = %v, want 16", got.Metrics.WordsPerSecond)
	}
	if got.Metrics.DeviationScore != 20.0 {
		t.Fatalf("deviation score = %v, want tier-1 value 20", got.Metrics.DeviationScore)
	}
	if !got.Metrics.IsUnusual {
		t.Fatal("repeated-word artifact must be flagged unusual")
	}
}

func TestEmptySegmentFlaggedAsSilence(t *testing.T) {
	rows := background(12)
	rows = append(rows, normalRow(12, "", 5.0))

	scored := analysis.Score(rows)
	got := findByIndex(scored, 12)

	if got.Metrics.WordCount != 0 || got.Metrics.WordsPerSecond != 0 {
		t.Fatalf("empty text should produce zero rates, got %+v", got.Metrics)
	}
	if got.Metrics.SilenceScore != 1.0 {
		t.Fatalf("silence score = %v, want 1", got.Metrics.SilenceScore)
	}
	if !got.Metrics.IsUnusual {
		t.Fatal("silent long segment must be flagged unusual")
	}
}

func TestNormalSpeechDiscounted(t *testing.T) {
	rows := background(12)
	rows = append(rows, normalRow(12, "this is a normal sentence being spoken", 2.0))

	scored := analysis.Score(rows)
	got := findByIndex(scored, 12)

	// 7 words over 2 seconds: canonical speech tier.
	if got.Metrics.WordsPerSecond != 3.5 {
		t.Fatalf("words per second = %v, want 3.5", got.Metrics.WordsPerSecond)
	}
	if got.Metrics.DeviationScore != 0.5 {
		t.Fatalf("deviation score = %v, want tier-4 value 0.5", got.Metrics.DeviationScore)
	}
	if got.Metrics.IsUnusual {
		t.Fatal("canonical speech should not be flagged")
	}
}

func TestSlowLongSegmentGate(t *testing.T) {
	rows := background(12)
	// 7 words over 6 seconds: 1.17 wps, gated by the long-duration clause.
	rows = append(rows, normalRow(12, "tujuh kata dalam enam detik pelan sekali", 6.0))

	scored := analysis.Score(rows)
	got := findByIndex(scored, 12)
	if !got.Metrics.IsUnusual {
		t.Fatalf("slow long segment should be flagged, metrics %+v", got.Metrics)
	}
}

func TestScoringIsDeterministic(t *testing.T) {
	rows := background(8)
	rows = append(rows,
		normalRow(8, "", 5.0),
		normalRow(9, strings.Repeat("ya ", 20), 1.0),
		normalRow(10, "kalimat pendek", 1.2),
	)

	first := analysis.Score(rows)
	second := analysis.Score(rows)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("scoring the same input twice must produce identical output")
	}
}

func TestStableTieBreakPreservesInputOrder(t *testing.T) {
	// Two identical rows necessarily share an unusual score.
	rows := []segment.Segment{
		normalRow(0, "kata kata sama persis", 2.0),
		normalRow(1, "kata kata sama persis", 2.0),
		normalRow(2, "baris lain yang berbeda jauh lebih panjang dari lainnya", 2.0),
	}
	scored := analysis.Score(rows)

	posFirst, posSecond := -1, -1
	for i, seg := range scored {
		switch seg.Index {
		case 0:
			posFirst = i
		case 1:
			posSecond = i
		}
	}
	if posFirst == -1 || posSecond == -1 {
		t.Fatal("rows missing from scored output")
	}
	if posFirst > posSecond {
		t.Fatalf("tie-break lost input order: index 0 at %d, index 1 at %d", posFirst, posSecond)
	}
}

func TestInvalidDurationDegradesSafely(t *testing.T) {
	rows := background(6)
	rows = append(rows, normalRow(6, "kata tanpa durasi", 0))

	scored := analysis.Score(rows)
	got := findByIndex(scored, 6)
	if got.Index != 6 {
		t.Fatal("zero-duration row dropped from output")
	}
	if got.Metrics.WordsPerSecond != 0 {
		t.Fatalf("zero-duration row should degrade to wps 0, got %v", got.Metrics.WordsPerSecond)
	}
	if math.IsNaN(got.Metrics.UnusualScore) || math.IsInf(got.Metrics.UnusualScore, 0) {
		t.Fatalf("unusual score must stay finite, got %v", got.Metrics.UnusualScore)
	}
}

func TestEmptySourceProducesEmptyResult(t *testing.T) {
	if scored := analysis.Score(nil); len(scored) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(scored))
	}
	summary := analysis.Summarize(nil)
	if summary.TotalSegments != 0 || summary.UnusualCount != 0 {
		t.Fatalf("unexpected summary for empty source: %+v", summary)
	}
}

func TestOutputSortedByUnusualScore(t *testing.T) {
	rows := background(10)
	rows = append(rows,
		normalRow(10, "", 5.0),
		normalRow(11, strings.Repeat("ya ", 20), 1.0),
	)
	scored := analysis.Score(rows)
	for i := 1; i < len(scored); i++ {
		if scored[i-1].Metrics.UnusualScore < scored[i].Metrics.UnusualScore {
			t.Fatalf("rows not sorted descending at %d: %v < %v",
				i, scored[i-1].Metrics.UnusualScore, scored[i].Metrics.UnusualScore)
		}
	}
}

func TestSummarizeCountsFlagged(t *testing.T) {
	rows := background(10)
	rows = append(rows, normalRow(10, strings.Repeat("ya ", 20), 1.0))
	scored := analysis.Score(rows)
	summary := analysis.Summarize(scored)
	if summary.TotalSegments != 11 {
		t.Fatalf("total = %d, want 11", summary.TotalSegments)
	}
	if summary.UnusualCount < 1 {
		t.Fatal("expected at least one flagged segment")
	}
	if summary.UnusualCount != len(summary.Unusual) {
		t.Fatalf("count %d does not match list %d", summary.UnusualCount, len(summary.Unusual))
	}
	if summary.AverageWPS <= 0 {
		t.Fatalf("average wps should be positive, got %v", summary.AverageWPS)
	}
}
