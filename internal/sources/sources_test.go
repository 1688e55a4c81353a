package sources_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cerdastangkas/transcription-checker/internal/fileutil"
	"github.com/cerdastangkas/transcription-checker/internal/sources"
	"github.com/cerdastangkas/transcription-checker/internal/testsupport"
)

func TestDiscoverOnlyFoldersWithTranscripts(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	layout := sources.NewLayout(cfg)

	testsupport.WriteTranscriptCSV(t, cfg.Paths.DataDir, "beta", nil)
	testsupport.WriteTranscriptCSV(t, cfg.Paths.DataDir, "alpha", nil)
	if err := os.MkdirAll(filepath.Join(cfg.Paths.DataDir, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.DataDir, "stray.csv"), []byte("x"))

	ids, err := layout.Discover()
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(ids) != 2 || ids[0] != "alpha" || ids[1] != "beta" {
		t.Fatalf("Discover = %v", ids)
	}
}

func TestDiscoverMissingDataDir(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.RemoveAll(cfg.Paths.DataDir); err != nil {
		t.Fatal(err)
	}
	ids, err := sources.NewLayout(cfg).Discover()
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no sources, got %v", ids)
	}
}

func TestPathDerivation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	layout := sources.NewLayout(cfg)

	if got := layout.TranscriptPath("abc"); got != filepath.Join(cfg.Paths.DataDir, "abc", "abc_transcripts.csv") {
		t.Fatalf("TranscriptPath = %q", got)
	}
	if got := layout.ArchivedTranscriptPath("abc"); got != filepath.Join(cfg.Paths.ArchiveDir, "abc", "abc_transcripts.csv") {
		t.Fatalf("ArchivedTranscriptPath = %q", got)
	}
	if got := layout.ReportDir("abc"); got != filepath.Join(cfg.Paths.ReportsDir, "abc") {
		t.Fatalf("ReportDir = %q", got)
	}
}

func TestLatestUnusualCSV(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	layout := sources.NewLayout(cfg)

	got, err := layout.LatestUnusualCSV("abc")
	if err != nil {
		t.Fatalf("LatestUnusualCSV: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty for no reports, got %q", got)
	}

	older := layout.UnusualCSVPath("abc", "run1")
	newer := layout.UnusualCSVPath("abc", "run2")
	testsupport.WriteFile(t, older, []byte("old"))
	testsupport.WriteFile(t, newer, []byte("new"))
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatal(err)
	}

	got, err = layout.LatestUnusualCSV("abc")
	if err != nil {
		t.Fatalf("LatestUnusualCSV: %v", err)
	}
	if got != newer {
		t.Fatalf("latest = %q, want %q", got, newer)
	}
}

func TestArchiveMovesFolderAndAvoidsCollisions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	layout := sources.NewLayout(cfg)

	testsupport.WriteTranscriptCSV(t, cfg.Paths.DataDir, "abc", []testsupport.TranscriptRow{
		{AudioFile: "abc_segment_000.wav", Text: "halo", Duration: 1.0},
	})

	dst, err := layout.Archive("abc")
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if dst != layout.ArchiveDir("abc") {
		t.Fatalf("archive dst = %q", dst)
	}
	if fileutil.Exists(layout.SourceDir("abc")) {
		t.Fatal("source folder still present")
	}
	if !fileutil.Exists(layout.ArchivedTranscriptPath("abc")) {
		t.Fatal("archived transcript missing")
	}

	// Second archive of the same id must not clobber the first.
	testsupport.WriteTranscriptCSV(t, cfg.Paths.DataDir, "abc", nil)
	dst2, err := layout.Archive("abc")
	if err != nil {
		t.Fatalf("second Archive: %v", err)
	}
	if dst2 == dst {
		t.Fatalf("collision not avoided: %q", dst2)
	}
}

func TestResolveAudioPath(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "seg_001.wav"), []byte("audio"))

	if got := sources.ResolveAudioPath(dir, "seg_001.wav"); got != filepath.Join(dir, "seg_001.wav") {
		t.Fatalf("exact name = %q", got)
	}
	if got := sources.ResolveAudioPath(dir, "seg_001"); got != filepath.Join(dir, "seg_001.wav") {
		t.Fatalf("extension probe = %q", got)
	}
	if got := sources.ResolveAudioPath(dir, "../evil/seg_001.wav"); got != filepath.Join(dir, "seg_001.wav") {
		t.Fatalf("path stripped to basename = %q", got)
	}
	if got := sources.ResolveAudioPath(dir, ""); got != "" {
		t.Fatalf("empty name = %q", got)
	}
}

func TestCopyUnusualAudioSkipsMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	layout := sources.NewLayout(cfg)

	testsupport.WriteTranscriptCSV(t, cfg.Paths.DataDir, "abc", nil)
	testsupport.WriteFile(t, filepath.Join(layout.SplitDir("abc"), "abc_segment_000.wav"), []byte("audio"))

	copied, err := layout.CopyUnusualAudio("abc", []string{"abc_segment_000.wav", "abc_segment_001.wav"})
	if err != nil {
		t.Fatalf("CopyUnusualAudio: %v", err)
	}
	if copied != 1 {
		t.Fatalf("copied = %d", copied)
	}
	if !fileutil.Exists(filepath.Join(layout.ReportDir("abc"), "audio", "abc_segment_000.wav")) {
		t.Fatal("copied audio missing")
	}
}

func TestAcquireLockExcludesSecondHolder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	layout := sources.NewLayout(cfg)

	lock, err := layout.AcquireLock("abc")
	if err != nil {
		t.Fatalf("AcquireLock: %v", err)
	}
	defer lock.Release()

	if _, err := layout.AcquireLock("abc"); err == nil {
		t.Fatal("expected second acquire to fail")
	}

	other, err := layout.AcquireLock("different")
	if err != nil {
		t.Fatalf("different source must lock independently: %v", err)
	}
	_ = other.Release()

	if err := lock.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	again, err := layout.AcquireLock("abc")
	if err != nil {
		t.Fatalf("relock after release: %v", err)
	}
	_ = again.Release()
}
