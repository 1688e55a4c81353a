package segment

import (
	"fmt"
	"strings"
)

// CheckAction is the reviewer disposition recorded against a segment.
type CheckAction string

const (
	// ActionUnset marks a segment that has not been reviewed yet. Downstream
	// consumers must treat it as pending, never as an implicit keep.
	ActionUnset  CheckAction = ""
	ActionKeep   CheckAction = "keep"
	ActionDelete CheckAction = "delete"
)

// ParseCheckAction normalizes a raw column value into a known action.
// Blank and textual null markers map to ActionUnset.
func ParseCheckAction(value string) (CheckAction, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "none", "null", "nan":
		return ActionUnset, true
	case "keep":
		return ActionKeep, true
	case "delete":
		return ActionDelete, true
	default:
		return ActionUnset, false
	}
}

// Reviewed reports whether a human or the worker has recorded a decision.
func (a CheckAction) Reviewed() bool {
	return a == ActionKeep || a == ActionDelete
}

// String renders the action the way it is persisted in review tables.
func (a CheckAction) String() string {
	return string(a)
}

// Metrics holds the derived scoring columns. The analyzer recomputes every
// field from scratch on each run; persistence readers only carry them for
// reporting.
type Metrics struct {
	WordCount         int
	WordsPerSecond    float64
	WPSPercentile     float64
	LocalAvgWPS       float64
	WordDensityRatio  float64
	ExpectedWords     float64
	WordDeviation     float64
	IsShort           bool
	ShortSegmentRatio float64
	SilenceScore      float64
	DensityRank       float64
	DeviationRank     float64
	ShortRank         float64
	DeviationScore    float64
	UnusualScore      float64
	IsUnusual         bool
}

// Segment is one timed transcript unit belonging to a source.
type Segment struct {
	// Index is the ordinal position within the source table. It is stable
	// across rewrites and backs the synthesized audio reference.
	Index     int
	Text      string
	Duration  float64
	AudioFile string
	Action    CheckAction

	Metrics Metrics
}

// WordCount counts whitespace-delimited tokens; empty text yields zero.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// SyntheticAudioFile builds the deterministic audio reference used when a
// source table carries no audio_file column.
func SyntheticAudioFile(sourceID string, index int) string {
	return fmt.Sprintf("%s_segment_%03d", sourceID, index)
}

// Eligible reports whether the segment should be sent to the transcription
// service. Segments already kept are skipped so approved audio is never
// re-billed.
func (s Segment) Eligible() bool {
	return s.Action != ActionKeep
}

// HasValidDuration reports whether the segment participates in rate-based
// denominators.
func (s Segment) HasValidDuration() bool {
	return s.Duration > 0
}

// Clone returns a copy of the slice so scoring never mutates caller data.
func Clone(segments []Segment) []Segment {
	out := make([]Segment, len(segments))
	copy(out, segments)
	return out
}
