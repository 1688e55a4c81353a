package analysis

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cerdastangkas/transcription-checker/internal/segment"
)

// Summary aggregates a scored source for reporting.
type Summary struct {
	TotalSegments int
	AverageWPS    float64
	StdDevWPS     float64
	UnusualCount  int
	Unusual       []segment.Segment
}

// Summarize computes the aggregate view of a scored table.
func Summarize(scored []segment.Segment) Summary {
	wps := make([]float64, len(scored))
	for i, seg := range scored {
		wps[i] = seg.Metrics.WordsPerSecond
	}
	unusual := Unusual(scored)
	return Summary{
		TotalSegments: len(scored),
		AverageWPS:    mean(wps),
		StdDevWPS:     sampleStdDev(wps),
		UnusualCount:  len(unusual),
		Unusual:       unusual,
	}
}

// caseRecord is the JSON shape of one flagged segment in the summary file.
type caseRecord struct {
	AudioFile      string  `json:"audio_file"`
	Text           string  `json:"text"`
	Duration       float64 `json:"duration_seconds"`
	WordCount      int     `json:"word_count"`
	WordsPerSecond float64 `json:"words_per_second"`
	DeviationScore float64 `json:"deviation_score"`
	UnusualScore   float64 `json:"unusual_score"`
	CheckAction    string  `json:"check_action,omitempty"`
}

type summaryPayload struct {
	TotalSegmentsAnalyzed int          `json:"total_segments_analyzed"`
	AverageWordsPerSecond float64      `json:"average_words_per_second"`
	StandardDeviation     float64      `json:"standard_deviation"`
	UnusualCasesCount     int          `json:"unusual_cases_count"`
	UnusualCases          []caseRecord `json:"unusual_cases"`
}

// WriteSummaryJSON persists the aggregate report for a source.
func WriteSummaryJSON(path string, summary Summary) error {
	payload := summaryPayload{
		TotalSegmentsAnalyzed: summary.TotalSegments,
		AverageWordsPerSecond: summary.AverageWPS,
		StandardDeviation:     summary.StdDevWPS,
		UnusualCasesCount:     summary.UnusualCount,
		UnusualCases:          make([]caseRecord, 0, len(summary.Unusual)),
	}
	for _, seg := range summary.Unusual {
		payload.UnusualCases = append(payload.UnusualCases, caseRecord{
			AudioFile:      seg.AudioFile,
			Text:           seg.Text,
			Duration:       seg.Duration,
			WordCount:      seg.Metrics.WordCount,
			WordsPerSecond: seg.Metrics.WordsPerSecond,
			DeviationScore: seg.Metrics.DeviationScore,
			UnusualScore:   seg.Metrics.UnusualScore,
			CheckAction:    seg.Action.String(),
		})
	}

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	if err := os.WriteFile(path, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
