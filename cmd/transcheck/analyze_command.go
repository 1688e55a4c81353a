package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cerdastangkas/transcription-checker/internal/analysis"
	"github.com/cerdastangkas/transcription-checker/internal/catalog"
	"github.com/cerdastangkas/transcription-checker/internal/logging"
	"github.com/cerdastangkas/transcription-checker/internal/review"
	"github.com/cerdastangkas/transcription-checker/internal/segment"
	"github.com/cerdastangkas/transcription-checker/internal/sources"
	"github.com/cerdastangkas/transcription-checker/internal/transcripts"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var keepSource bool

	cmd := &cobra.Command{
		Use:   "analyze [source...]",
		Short: "Score transcript segments and write analysis reports",
		Long: "Scores every segment of the named sources for unusual speech " +
			"patterns, writes the report artifacts, and archives the source " +
			"folder. With no arguments every source under the data directory " +
			"is analyzed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			layout, err := ctx.layout()
			if err != nil {
				return err
			}
			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			ids := args
			if len(ids) == 0 {
				ids, err = layout.Discover()
				if err != nil {
					return err
				}
				if len(ids) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No sources found")
					return nil
				}
			}

			runner := &analyzeRunner{
				layout:     layout,
				store:      store,
				logger:     logging.NewComponentLogger(logger, "analyze"),
				keepSource: keepSource,
			}

			var rows [][]string
			failures := 0
			for _, id := range ids {
				row, err := runner.run(cmd, id)
				if err != nil {
					failures++
					runner.logger.Error("source failed",
						logging.String(logging.FieldSourceID, id),
						logging.Error(err),
					)
					rows = append(rows, []string{id, "failed", "", "", err.Error()})
					continue
				}
				rows = append(rows, row)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"SOURCE", "STATUS", "SEGMENTS", "UNUSUAL", "NOTES"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			if failures > 0 {
				return fmt.Errorf("%d of %d sources failed", failures, len(ids))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepSource, "keep-source", false, "Leave the source folder in the data directory instead of archiving it")
	return cmd
}

type analyzeRunner struct {
	layout     *sources.Layout
	store      *catalog.Store
	logger     *slog.Logger
	keepSource bool
}

func (r *analyzeRunner) run(cmd *cobra.Command, sourceID string) ([]string, error) {
	cmdCtx := cmd.Context()

	lock, err := r.layout.AcquireLock(sourceID)
	if err != nil {
		return nil, err
	}
	defer lock.Release()

	if err := r.store.SetStatus(cmdCtx, sourceID, catalog.StatusAnalyzing, ""); err != nil {
		return nil, err
	}

	runID := uuid.NewString()[:8]

	segs, err := transcripts.ReadSegments(r.layout.TranscriptPath(sourceID), sourceID)
	if err != nil {
		_ = r.store.SetStatus(cmdCtx, sourceID, catalog.StatusFailed, err.Error())
		return nil, err
	}

	scored := analysis.Score(segs)
	scored = r.overlayPersisted(sourceID, scored)

	summary := analysis.Summarize(scored)

	if err := os.MkdirAll(r.layout.ReportDir(sourceID), 0o755); err != nil {
		_ = r.store.SetStatus(cmdCtx, sourceID, catalog.StatusFailed, err.Error())
		return nil, fmt.Errorf("create report directory: %w", err)
	}
	if err := transcripts.WriteSegments(r.layout.FullAnalysisPath(sourceID, runID), scored); err != nil {
		_ = r.store.SetStatus(cmdCtx, sourceID, catalog.StatusFailed, err.Error())
		return nil, err
	}
	if err := transcripts.WriteSegments(r.layout.UnusualCSVPath(sourceID, runID), summary.Unusual); err != nil {
		_ = r.store.SetStatus(cmdCtx, sourceID, catalog.StatusFailed, err.Error())
		return nil, err
	}
	if err := analysis.WriteSummaryJSON(r.layout.SummaryJSONPath(sourceID, runID), summary); err != nil {
		_ = r.store.SetStatus(cmdCtx, sourceID, catalog.StatusFailed, err.Error())
		return nil, err
	}
	if err := analysis.WriteHTMLReport(r.layout.HTMLReportPath(sourceID, runID), sourceID, summary); err != nil {
		_ = r.store.SetStatus(cmdCtx, sourceID, catalog.StatusFailed, err.Error())
		return nil, err
	}

	audioFiles := make([]string, 0, len(summary.Unusual))
	for _, seg := range summary.Unusual {
		audioFiles = append(audioFiles, seg.AudioFile)
	}
	copied, err := r.layout.CopyUnusualAudio(sourceID, audioFiles)
	if err != nil {
		r.logger.Warn("audio copy incomplete",
			logging.String(logging.FieldSourceID, sourceID),
			logging.Error(err),
		)
	}

	notes := fmt.Sprintf("run %s, %d audio copied", runID, copied)
	if !r.keepSource {
		if _, err := r.layout.Archive(sourceID); err != nil {
			_ = r.store.SetStatus(cmdCtx, sourceID, catalog.StatusFailed, err.Error())
			return nil, err
		}
		notes += ", archived"
	}

	record, err := r.store.Ensure(cmdCtx, sourceID)
	if err != nil {
		return nil, err
	}
	record.Status = catalog.StatusAnalyzed
	record.LastRunID = runID
	record.SegmentCount = summary.TotalSegments
	record.UnusualCount = summary.UnusualCount
	record.ErrorMessage = ""
	if err := r.store.Update(cmdCtx, record); err != nil {
		return nil, err
	}

	r.logger.Info("source analyzed",
		logging.String(logging.FieldSourceID, sourceID),
		logging.String(logging.FieldRunID, runID),
		logging.Int("segments", summary.TotalSegments),
		logging.Int("unusual", summary.UnusualCount),
	)

	return []string{
		sourceID,
		string(catalog.StatusAnalyzed),
		strconv.Itoa(summary.TotalSegments),
		strconv.Itoa(summary.UnusualCount),
		notes,
	}, nil
}

// overlayPersisted re-applies review decisions from the previous run's
// unusual-cases table so re-analysis never loses human work.
func (r *analyzeRunner) overlayPersisted(sourceID string, scored []segment.Segment) []segment.Segment {
	latest, err := r.layout.LatestUnusualCSV(sourceID)
	if err != nil || latest == "" {
		return scored
	}
	persisted, err := transcripts.ReadSegments(latest, sourceID)
	if err != nil {
		r.logger.Warn("previous review table unreadable",
			logging.String(logging.FieldSourceID, sourceID),
			logging.Error(err),
		)
		return scored
	}
	return review.Overlay(scored, persisted)
}
