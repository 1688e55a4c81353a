package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cerdastangkas/transcription-checker/internal/catalog"
	"github.com/cerdastangkas/transcription-checker/internal/fileutil"
	"github.com/cerdastangkas/transcription-checker/internal/logging"
	"github.com/cerdastangkas/transcription-checker/internal/reconcile"
	"github.com/cerdastangkas/transcription-checker/internal/sources"
	"github.com/cerdastangkas/transcription-checker/internal/transcripts"
)

func newReconcileCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile <source>...",
		Short: "Apply review decisions to the archived transcript",
		Long: "Folds the latest review table into the archived transcript: " +
			"deleted segments lose their row and audio file, kept segments " +
			"get their reviewed text. Undecided segments are untouched.",
		Args: cobra.MinimumNArgs(1),
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

			out := cmd.OutOrStdout()
			var failures int
			for _, sourceID := range args {
				if err := reconcileSource(cmd, layout, store, logger, sourceID); err != nil {
					failures++
					fmt.Fprintf(out, "%s: %v\n", sourceID, err)
				}
			}
			if failures > 0 {
				return fmt.Errorf("%d of %d sources failed", failures, len(args))
			}
			return nil
		},
	}
}

func reconcileSource(cmd *cobra.Command, layout *sources.Layout, store *catalog.Store, logger *slog.Logger, sourceID string) error {
	cmdCtx := cmd.Context()

	lock, err := layout.AcquireLock(sourceID)
	if err != nil {
		return err
	}
	defer lock.Release()

	_, decisions, err := latestReviewTable(layout, sourceID)
	if err != nil {
		return err
	}

	archivedPath := layout.ArchivedTranscriptPath(sourceID)
	if !fileutil.Exists(archivedPath) {
		return fmt.Errorf("archived transcript %s not found; run `transcheck analyze %s` without --keep-source first", archivedPath, sourceID)
	}

	if err := store.SetStatus(cmdCtx, sourceID, catalog.StatusReconciling, ""); err != nil {
		return err
	}

	table, err := transcripts.ReadTable(archivedPath)
	if err != nil {
		_ = store.SetStatus(cmdCtx, sourceID, catalog.StatusFailed, err.Error())
		return err
	}

	outcome, err := reconcile.Apply(table, decisions, layout.ArchivedSplitDir(sourceID), logger)
	if err != nil {
		_ = store.SetStatus(cmdCtx, sourceID, catalog.StatusFailed, err.Error())
		return err
	}
	if err := table.WriteTable(archivedPath); err != nil {
		_ = store.SetStatus(cmdCtx, sourceID, catalog.StatusFailed, err.Error())
		return err
	}

	if err := store.SetStatus(cmdCtx, sourceID, catalog.StatusCompleted, ""); err != nil {
		return err
	}

	logger.Info("source reconciled",
		logging.String(logging.FieldSourceID, sourceID),
		logging.Int("deleted", outcome.Deleted),
		logging.Int("text_updated", outcome.TextUpdated),
	)
	fmt.Fprintf(cmd.OutOrStdout(),
		"%s: %d rows deleted, %d texts updated, %d audio removed, %d audio already absent, %d unmatched\n",
		sourceID, outcome.Deleted, outcome.TextUpdated, outcome.AudioRemoved, outcome.AudioMissing, outcome.UnmatchedRows)
	return nil
}
