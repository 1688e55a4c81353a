package testsupport

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// TranscriptRow is one CSV row for fixture transcripts.
type TranscriptRow struct {
	AudioFile string
	Text      string
	Duration  float64
	Action    string
}

// WriteTranscriptCSV creates a source folder under dataDir and writes a
// {sourceID}_transcripts.csv with the given rows. Returns the CSV path.
func WriteTranscriptCSV(t testing.TB, dataDir, sourceID string, rows []TranscriptRow) string {
	t.Helper()

	sourceDir := filepath.Join(dataDir, sourceID)
	if err := os.MkdirAll(sourceDir, 0o755); err != nil {
		t.Fatalf("mkdir source dir: %v", err)
	}
	path := filepath.Join(sourceDir, sourceID+"_transcripts.csv")

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create transcript csv: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"audio_file", "text", "duration_seconds", "check_action"}); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for _, row := range rows {
		record := []string{
			row.AudioFile,
			row.Text,
			fmt.Sprintf("%g", row.Duration),
			row.Action,
		}
		if err := writer.Write(record); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		t.Fatalf("flush csv: %v", err)
	}
	return path
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
