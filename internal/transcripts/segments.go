package transcripts

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cerdastangkas/transcription-checker/internal/segment"
	"github.com/cerdastangkas/transcription-checker/internal/services"
)

// Column names shared by every segment table.
const (
	colText        = "text"
	colDuration    = "duration_seconds"
	colAudioFile   = "audio_file"
	colCheckAction = "check_action"
)

// scoredColumns is the full column set written for analysis tables, in
// output order.
var scoredColumns = []string{
	colAudioFile,
	colText,
	colDuration,
	"word_count",
	"words_per_second",
	"local_avg_wps",
	"word_density_ratio",
	"expected_words",
	"word_deviation",
	"is_short",
	"short_segment_ratio",
	"silence_score",
	"wps_percentile",
	"density_rank",
	"deviation_rank",
	"short_rank",
	"deviation_score",
	"unusual_score",
	"is_unusual",
	colCheckAction,
}

// ReadSegments loads a segment table. The text and duration_seconds columns
// are required; audio_file and check_action are defaulted when absent.
// Rows with malformed durations degrade to zero duration instead of failing
// the source.
func ReadSegments(path, sourceID string) ([]segment.Segment, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, sourceID, "read segments", "open table", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, services.Wrap(services.ErrData, sourceID, "read segments", "parse csv", err)
	}
	if len(records) == 0 {
		return nil, services.Wrap(services.ErrData, sourceID, "read segments", "empty table", nil)
	}

	cols := indexColumns(records[0])
	textIdx, ok := cols[colText]
	if !ok {
		return nil, services.Wrap(services.ErrData, sourceID, "read segments", "missing required column text", nil)
	}
	durationIdx, ok := cols[colDuration]
	if !ok {
		return nil, services.Wrap(services.ErrData, sourceID, "read segments", "missing required column duration_seconds", nil)
	}
	audioIdx, hasAudio := cols[colAudioFile]
	actionIdx, hasAction := cols[colCheckAction]

	segments := make([]segment.Segment, 0, len(records)-1)
	for i, record := range records[1:] {
		seg := segment.Segment{Index: i}
		seg.Text = cell(record, textIdx)
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(cell(record, durationIdx)), 64); err == nil {
			seg.Duration = parsed
		}
		if hasAudio {
			seg.AudioFile = strings.TrimSpace(cell(record, audioIdx))
		}
		if seg.AudioFile == "" {
			seg.AudioFile = segment.SyntheticAudioFile(sourceID, i)
		}
		if hasAction {
			if action, ok := segment.ParseCheckAction(cell(record, actionIdx)); ok {
				seg.Action = action
			}
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

// WriteSegments persists a scored table with the full analysis column set.
// Used for both the full analysis file and the unusual-cases subset.
func WriteSegments(path string, segments []segment.Segment) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create segment table: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(scoredColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, seg := range segments {
		m := seg.Metrics
		row := []string{
			seg.AudioFile,
			seg.Text,
			formatFloat(seg.Duration),
			strconv.Itoa(m.WordCount),
			formatFloat(m.WordsPerSecond),
			formatFloat(m.LocalAvgWPS),
			formatFloat(m.WordDensityRatio),
			formatFloat(m.ExpectedWords),
			formatFloat(m.WordDeviation),
			formatBool(m.IsShort),
			formatFloat(m.ShortSegmentRatio),
			formatFloat(m.SilenceScore),
			formatFloat(m.WPSPercentile),
			formatFloat(m.DensityRank),
			formatFloat(m.DeviationRank),
			formatFloat(m.ShortRank),
			formatFloat(m.DeviationScore),
			formatFloat(m.UnusualScore),
			formatBool(m.IsUnusual),
			seg.Action.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush segment table: %w", err)
	}
	return file.Close()
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
