package sources

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cerdastangkas/transcription-checker/internal/config"
	"github.com/cerdastangkas/transcription-checker/internal/fileutil"
)

const transcriptSuffix = "_transcripts.csv"

// Layout resolves source paths from configuration.
type Layout struct {
	cfg *config.Config
}

// NewLayout builds a Layout over the configured directories.
func NewLayout(cfg *config.Config) *Layout {
	return &Layout{cfg: cfg}
}

// Discover lists source identifiers under the data directory. A folder
// qualifies when it contains its {id}_transcripts.csv.
func (l *Layout) Discover() ([]string, error) {
	entries, err := os.ReadDir(l.cfg.Paths.DataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read data directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id := entry.Name()
		if fileutil.Exists(l.TranscriptPath(id)) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// SourceDir returns the folder holding a source's transcript and audio.
func (l *Layout) SourceDir(sourceID string) string {
	return filepath.Join(l.cfg.Paths.DataDir, sourceID)
}

// TranscriptPath returns the incoming transcript CSV for a source.
func (l *Layout) TranscriptPath(sourceID string) string {
	return filepath.Join(l.SourceDir(sourceID), sourceID+transcriptSuffix)
}

// SplitDir returns the directory holding a source's split audio files.
// Audio lives next to the transcript CSV.
func (l *Layout) SplitDir(sourceID string) string {
	return l.SourceDir(sourceID)
}

// ReportDir returns the per-source analysis report directory.
func (l *Layout) ReportDir(sourceID string) string {
	return filepath.Join(l.cfg.Paths.ReportsDir, sourceID)
}

// ArchiveDir returns the archived folder for a source.
func (l *Layout) ArchiveDir(sourceID string) string {
	return filepath.Join(l.cfg.Paths.ArchiveDir, sourceID)
}

// ArchivedTranscriptPath returns the authoritative transcript CSV after a
// source has been archived.
func (l *Layout) ArchivedTranscriptPath(sourceID string) string {
	return filepath.Join(l.ArchiveDir(sourceID), sourceID+transcriptSuffix)
}

// ArchivedSplitDir returns where a source's audio files live after archiving.
func (l *Layout) ArchivedSplitDir(sourceID string) string {
	return l.ArchiveDir(sourceID)
}

// UnusualCSVPath returns the report CSV holding a run's unusual cases.
func (l *Layout) UnusualCSVPath(sourceID, runID string) string {
	return filepath.Join(l.ReportDir(sourceID), fmt.Sprintf("unusual_cases_%s.csv", runID))
}

// FullAnalysisPath returns the report CSV holding every scored segment.
func (l *Layout) FullAnalysisPath(sourceID, runID string) string {
	return filepath.Join(l.ReportDir(sourceID), fmt.Sprintf("full_analysis_%s.csv", runID))
}

// SummaryJSONPath returns the report JSON with a run's aggregate stats.
func (l *Layout) SummaryJSONPath(sourceID, runID string) string {
	return filepath.Join(l.ReportDir(sourceID), fmt.Sprintf("summary_%s.json", runID))
}

// HTMLReportPath returns the run's HTML report.
func (l *Layout) HTMLReportPath(sourceID, runID string) string {
	return filepath.Join(l.ReportDir(sourceID), fmt.Sprintf("report_%s.html", runID))
}

// LatestUnusualCSV returns the most recently written unusual-cases CSV for a
// source, or empty when none exists.
func (l *Layout) LatestUnusualCSV(sourceID string) (string, error) {
	pattern := filepath.Join(l.ReportDir(sourceID), "unusual_cases_*.csv")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("glob unusual cases: %w", err)
	}
	if len(matches) == 0 {
		return "", nil
	}

	latest := ""
	var latestMod time.Time
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest = match
			latestMod = info.ModTime()
		}
	}
	return latest, nil
}

// Archive moves a source folder from the data directory into the archive.
// An existing archive entry for the same source gets a timestamp suffix so
// nothing is overwritten.
func (l *Layout) Archive(sourceID string) (string, error) {
	src := l.SourceDir(sourceID)
	if !fileutil.Exists(src) {
		return "", fmt.Errorf("source folder %q not found", src)
	}
	dst := l.ArchiveDir(sourceID)
	if fileutil.Exists(dst) {
		dst = dst + "_" + time.Now().UTC().Format("20060102T150405")
	}
	if err := fileutil.MoveDir(src, dst); err != nil {
		return "", fmt.Errorf("archive source %s: %w", sourceID, err)
	}
	return dst, nil
}

// ResolveAudioPath finds a segment's audio file under dir. The transcript
// references files by basename, sometimes without an extension.
func ResolveAudioPath(dir, audioFile string) string {
	name := filepath.Base(strings.TrimSpace(audioFile))
	if name == "" || name == "." {
		return ""
	}
	direct := filepath.Join(dir, name)
	if fileutil.Exists(direct) {
		return direct
	}
	if filepath.Ext(name) == "" {
		for _, ext := range []string{".wav", ".mp3", ".flac", ".ogg"} {
			candidate := filepath.Join(dir, name+ext)
			if fileutil.Exists(candidate) {
				return candidate
			}
		}
	}
	return direct
}

// CopyUnusualAudio copies the audio files behind unusual segments into the
// report directory for manual listening. Missing audio is skipped; the
// returned count is the number of files copied.
func (l *Layout) CopyUnusualAudio(sourceID string, audioFiles []string) (int, error) {
	targetDir := filepath.Join(l.ReportDir(sourceID), "audio")
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return 0, fmt.Errorf("create audio report dir: %w", err)
	}

	splitDir := l.SplitDir(sourceID)
	copied := 0
	for _, audioFile := range audioFiles {
		src := ResolveAudioPath(splitDir, audioFile)
		if src == "" || !fileutil.Exists(src) {
			continue
		}
		dst := filepath.Join(targetDir, filepath.Base(src))
		if err := fileutil.CopyFileVerified(src, dst); err != nil {
			return copied, fmt.Errorf("copy audio %s: %w", src, err)
		}
		copied++
	}
	return copied, nil
}
