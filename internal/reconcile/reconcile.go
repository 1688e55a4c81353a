package reconcile

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/cerdastangkas/transcription-checker/internal/fileutil"
	"github.com/cerdastangkas/transcription-checker/internal/logging"
	"github.com/cerdastangkas/transcription-checker/internal/segment"
	"github.com/cerdastangkas/transcription-checker/internal/sources"
	"github.com/cerdastangkas/transcription-checker/internal/transcripts"
)

// Outcome summarizes one reconciliation pass.
type Outcome struct {
	Deleted       int
	TextUpdated   int
	AudioRemoved  int
	AudioMissing  int
	UnmatchedRows int
}

// Apply folds reviewed decisions into the archived transcript table and
// removes the audio behind deleted segments from splitDir. Unreviewed
// segments are untouched. The caller persists the table afterwards.
func Apply(table *transcripts.Table, decisions []segment.Segment, splitDir string, logger *slog.Logger) (Outcome, error) {
	logger = logging.NewComponentLogger(logger, "reconcile")
	outcome := Outcome{}

	audioCol, ok := table.Column("audio_file")
	if !ok {
		return outcome, fmt.Errorf("archived transcript has no audio_file column")
	}
	textCol, hasText := table.Column("text")

	rowsByAudio := make(map[string]int, table.Len())
	for i := 0; i < table.Len(); i++ {
		key := audioKey(table.Cell(i, audioCol))
		if key == "" {
			continue
		}
		if _, dup := rowsByAudio[key]; !dup {
			rowsByAudio[key] = i
		}
	}

	var deleteRows []int
	for _, decision := range decisions {
		if !decision.Action.Reviewed() {
			continue
		}
		key := audioKey(decision.AudioFile)
		row, found := rowsByAudio[key]

		switch decision.Action {
		case segment.ActionDelete:
			if found {
				deleteRows = append(deleteRows, row)
				outcome.Deleted++
			} else {
				outcome.UnmatchedRows++
			}
			removed, err := removeAudio(splitDir, decision.AudioFile)
			if err != nil {
				return outcome, err
			}
			if removed {
				outcome.AudioRemoved++
			} else {
				outcome.AudioMissing++
				logger.Warn("audio file already absent",
					logging.String(logging.FieldAudioFile, decision.AudioFile),
				)
			}
		case segment.ActionKeep:
			if !found {
				outcome.UnmatchedRows++
				continue
			}
			if hasText && table.Cell(row, textCol) != decision.Text {
				table.SetCell(row, textCol, decision.Text)
				outcome.TextUpdated++
			}
		}
	}

	table.DeleteRows(deleteRows)
	return outcome, nil
}

func audioKey(audioFile string) string {
	name := filepath.Base(strings.TrimSpace(audioFile))
	if name == "." || name == "/" {
		return ""
	}
	return strings.ToLower(name)
}

func removeAudio(splitDir, audioFile string) (bool, error) {
	path := sources.ResolveAudioPath(splitDir, audioFile)
	if path == "" {
		return false, nil
	}
	removed, err := fileutil.RemoveIfExists(path)
	if err != nil {
		return false, fmt.Errorf("remove audio %s: %w", path, err)
	}
	return removed, nil
}
