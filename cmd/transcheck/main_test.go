package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cerdastangkas/transcription-checker/internal/testsupport"
	"github.com/cerdastangkas/transcription-checker/internal/transcripts"
)

func writeTestConfig(t *testing.T) (string, string, string) {
	t.Helper()
	base := t.TempDir()
	dataDir := filepath.Join(base, "data")
	archiveDir := filepath.Join(base, "archive")
	content := "[paths]\n" +
		"data_dir = \"" + dataDir + "\"\n" +
		"reports_dir = \"" + filepath.Join(base, "reports") + "\"\n" +
		"archive_dir = \"" + archiveDir + "\"\n" +
		"log_dir = \"" + filepath.Join(base, "logs") + "\"\n"
	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path, dataDir, filepath.Join(base, "reports")
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func seedSource(t *testing.T, dataDir, sourceID string) {
	t.Helper()
	rows := make([]testsupport.TranscriptRow, 0, 13)
	for i := 0; i < 12; i++ {
		rows = append(rows, testsupport.TranscriptRow{
			AudioFile: sourceID + "_segment_norm.wav",
			Text:      "kalimat percakapan biasa yang wajar saja",
			Duration:  3.0,
		})
	}
	rows = append(rows, testsupport.TranscriptRow{
		AudioFile: sourceID + "_segment_silent.wav",
		Text:      "",
		Duration:  5.0,
	})
	testsupport.WriteTranscriptCSV(t, dataDir, sourceID, rows)
}

func TestAnalyzeCommandEndToEnd(t *testing.T) {
	configPath, dataDir, reportsDir := writeTestConfig(t)
	seedSource(t, dataDir, "abc")

	out, err := runCommand(t, "--config", configPath, "analyze", "abc")
	if err != nil {
		t.Fatalf("analyze: %v\n%s", err, out)
	}
	if !strings.Contains(out, "abc") || !strings.Contains(out, "analyzed") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	reportDir := filepath.Join(reportsDir, "abc")
	matches, _ := filepath.Glob(filepath.Join(reportDir, "unusual_cases_*.csv"))
	if len(matches) != 1 {
		t.Fatalf("unusual cases csv missing: %v", matches)
	}
	if full, _ := filepath.Glob(filepath.Join(reportDir, "full_analysis_*.csv")); len(full) != 1 {
		t.Fatalf("full analysis csv missing: %v", full)
	}
	if summaries, _ := filepath.Glob(filepath.Join(reportDir, "summary_*.json")); len(summaries) != 1 {
		t.Fatalf("summary json missing: %v", summaries)
	}

	// The source folder must have moved into the archive.
	if _, err := os.Stat(filepath.Join(dataDir, "abc")); !os.IsNotExist(err) {
		t.Fatal("source folder was not archived")
	}

	segments, err := transcripts.ReadSegments(matches[0], "abc")
	if err != nil {
		t.Fatalf("read unusual cases: %v", err)
	}
	if len(segments) == 0 {
		t.Fatal("silent segment was not flagged")
	}
}

func TestAnalyzeKeepSourceLeavesFolder(t *testing.T) {
	configPath, dataDir, _ := writeTestConfig(t)
	seedSource(t, dataDir, "xyz")

	out, err := runCommand(t, "--config", configPath, "analyze", "--keep-source", "xyz")
	if err != nil {
		t.Fatalf("analyze: %v\n%s", err, out)
	}
	if _, err := os.Stat(filepath.Join(dataDir, "xyz")); err != nil {
		t.Fatalf("source folder missing after --keep-source: %v", err)
	}
}

func TestReviewMarkAndFill(t *testing.T) {
	configPath, dataDir, _ := writeTestConfig(t)
	seedSource(t, dataDir, "abc")

	if out, err := runCommand(t, "--config", configPath, "analyze", "abc"); err != nil {
		t.Fatalf("analyze: %v\n%s", err, out)
	}

	out, err := runCommand(t, "--config", configPath, "review", "mark", "abc",
		"abc_segment_silent.wav", "--action", "delete")
	if err != nil {
		t.Fatalf("review mark: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Marked 1 segments delete") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	out, err = runCommand(t, "--config", configPath, "review", "list", "abc")
	if err != nil {
		t.Fatalf("review list: %v\n%s", err, out)
	}
	if !strings.Contains(out, "delete") {
		t.Fatalf("marked action not listed:\n%s", out)
	}

	if out, err = runCommand(t, "--config", configPath, "review", "fill", "abc"); err != nil {
		t.Fatalf("review fill: %v\n%s", err, out)
	}
}

func TestReviewMarkRejectsBadAction(t *testing.T) {
	configPath, dataDir, _ := writeTestConfig(t)
	seedSource(t, dataDir, "abc")
	if out, err := runCommand(t, "--config", configPath, "analyze", "abc"); err != nil {
		t.Fatalf("analyze: %v\n%s", err, out)
	}

	if _, err := runCommand(t, "--config", configPath, "review", "mark", "abc",
		"abc_segment_silent.wav", "--action", "maybe"); err == nil {
		t.Fatal("expected error for unknown action")
	}
}

func TestReconcileCommandEndToEnd(t *testing.T) {
	configPath, dataDir, _ := writeTestConfig(t)
	seedSource(t, dataDir, "abc")

	if out, err := runCommand(t, "--config", configPath, "analyze", "abc"); err != nil {
		t.Fatalf("analyze: %v\n%s", err, out)
	}
	if out, err := runCommand(t, "--config", configPath, "review", "mark", "abc",
		"abc_segment_silent.wav", "--action", "delete"); err != nil {
		t.Fatalf("review mark: %v\n%s", err, out)
	}

	out, err := runCommand(t, "--config", configPath, "reconcile", "abc")
	if err != nil {
		t.Fatalf("reconcile: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1 rows deleted") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	archived := filepath.Join(filepath.Dir(dataDir), "archive", "abc", "abc_transcripts.csv")
	table, err := transcripts.ReadTable(archived)
	if err != nil {
		t.Fatalf("read archived transcript: %v", err)
	}
	audioCol, _ := table.Column("audio_file")
	for i := 0; i < table.Len(); i++ {
		if table.Cell(i, audioCol) == "abc_segment_silent.wav" {
			t.Fatal("deleted row still in archived transcript")
		}
	}
}

func TestStatusCommandRendersCatalog(t *testing.T) {
	configPath, dataDir, _ := writeTestConfig(t)
	seedSource(t, dataDir, "abc")
	if out, err := runCommand(t, "--config", configPath, "analyze", "abc"); err != nil {
		t.Fatalf("analyze: %v\n%s", err, out)
	}

	out, err := runCommand(t, "--config", configPath, "status")
	if err != nil {
		t.Fatalf("status: %v\n%s", err, out)
	}
	if !strings.Contains(out, "abc") || !strings.Contains(out, "analyzed") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestConfigInitAndPath(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v\n%s", err, out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config missing: %v", err)
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error without --overwrite")
	}
	if out, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v\n%s", err, out)
	}
}

func TestRetranscribeRequiresAPIKey(t *testing.T) {
	configPath, dataDir, _ := writeTestConfig(t)
	seedSource(t, dataDir, "abc")
	if out, err := runCommand(t, "--config", configPath, "analyze", "abc"); err != nil {
		t.Fatalf("analyze: %v\n%s", err, out)
	}

	_, err := runCommand(t, "--config", configPath, "retranscribe", "abc")
	if err == nil || !strings.Contains(err.Error(), "api_key") {
		t.Fatalf("expected api key error, got %v", err)
	}
}
