package transcripts_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/cerdastangkas/transcription-checker/internal/segment"
	"github.com/cerdastangkas/transcription-checker/internal/services"
	"github.com/cerdastangkas/transcription-checker/internal/testsupport"
	"github.com/cerdastangkas/transcription-checker/internal/transcripts"
)

func TestReadSegmentsDefaultsOptionalColumns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abc_transcripts.csv")
	testsupport.WriteFile(t, path, []byte(
		"text,duration_seconds\n"+
			"kalimat pertama,2.5\n"+
			"kalimat kedua,1.0\n"))

	segments, err := transcripts.ReadSegments(path, "abc")
	if err != nil {
		t.Fatalf("ReadSegments: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("segments = %d", len(segments))
	}
	if segments[0].AudioFile != "abc_segment_000" {
		t.Fatalf("synthesized audio file = %q", segments[0].AudioFile)
	}
	if segments[1].AudioFile != "abc_segment_001" {
		t.Fatalf("synthesized audio file = %q", segments[1].AudioFile)
	}
	if segments[0].Action != segment.ActionUnset {
		t.Fatalf("action = %q", segments[0].Action)
	}
}

func TestReadSegmentsParsesActions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abc_transcripts.csv")
	testsupport.WriteFile(t, path, []byte(
		"audio_file,text,duration_seconds,check_action\n"+
			"a.wav,satu,1.0,keep\n"+
			"b.wav,dua,1.0,delete\n"+
			"c.wav,tiga,1.0,nan\n"+
			"d.wav,empat,1.0,\n"))

	segments, err := transcripts.ReadSegments(path, "abc")
	if err != nil {
		t.Fatalf("ReadSegments: %v", err)
	}
	want := []segment.CheckAction{
		segment.ActionKeep,
		segment.ActionDelete,
		segment.ActionUnset,
		segment.ActionUnset,
	}
	for i, action := range want {
		if segments[i].Action != action {
			t.Fatalf("segment %d action = %q, want %q", i, segments[i].Action, action)
		}
	}
}

func TestReadSegmentsMalformedDurationDegradesToZero(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abc_transcripts.csv")
	testsupport.WriteFile(t, path, []byte(
		"text,duration_seconds\n"+
			"baik,not-a-number\n"))

	segments, err := transcripts.ReadSegments(path, "abc")
	if err != nil {
		t.Fatalf("ReadSegments: %v", err)
	}
	if segments[0].Duration != 0 {
		t.Fatalf("duration = %v", segments[0].Duration)
	}
}

func TestReadSegmentsMissingRequiredColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abc_transcripts.csv")
	testsupport.WriteFile(t, path, []byte("audio_file,text\na.wav,tanpa durasi\n"))

	_, err := transcripts.ReadSegments(path, "abc")
	if !errors.Is(err, services.ErrData) {
		t.Fatalf("expected data error, got %v", err)
	}
}

func TestReadSegmentsMissingFile(t *testing.T) {
	_, err := transcripts.ReadSegments(filepath.Join(t.TempDir(), "absent.csv"), "abc")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestWriteSegmentsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scored.csv")

	in := []segment.Segment{
		{
			AudioFile: "a.wav",
			Text:      "kalimat yang dinilai",
			Duration:  2.5,
			Action:    segment.ActionDelete,
			Metrics: segment.Metrics{
				WordCount:      3,
				WordsPerSecond: 1.2,
				UnusualScore:   4.5,
				IsUnusual:      true,
			},
		},
	}
	if err := transcripts.WriteSegments(path, in); err != nil {
		t.Fatalf("WriteSegments: %v", err)
	}

	out, err := transcripts.ReadSegments(path, "abc")
	if err != nil {
		t.Fatalf("ReadSegments: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("segments = %d", len(out))
	}
	if out[0].AudioFile != "a.wav" || out[0].Text != "kalimat yang dinilai" {
		t.Fatalf("row = %+v", out[0])
	}
	if out[0].Duration != 2.5 || out[0].Action != segment.ActionDelete {
		t.Fatalf("row = %+v", out[0])
	}

	table, err := transcripts.ReadTable(path)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	scoreCol, ok := table.Column("unusual_score")
	if !ok {
		t.Fatal("unusual_score column missing")
	}
	if table.Cell(0, scoreCol) != "4.5" {
		t.Fatalf("unusual_score cell = %q", table.Cell(0, scoreCol))
	}
}

func TestTablePreservesShortRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ragged.csv")
	testsupport.WriteFile(t, path, []byte(
		"audio_file,text,duration_seconds\n"+
			"a.wav,pendek\n"))

	table, err := transcripts.ReadTable(path)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	durationCol, _ := table.Column("duration_seconds")
	if got := table.Cell(0, durationCol); got != "" {
		t.Fatalf("missing cell = %q", got)
	}
	table.SetCell(0, durationCol, "1.5")
	if table.Cell(0, durationCol) != "1.5" {
		t.Fatal("SetCell failed to grow row")
	}
}
