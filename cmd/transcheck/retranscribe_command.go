package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cerdastangkas/transcription-checker/internal/catalog"
	"github.com/cerdastangkas/transcription-checker/internal/fileutil"
	"github.com/cerdastangkas/transcription-checker/internal/retranscribe"
	"github.com/cerdastangkas/transcription-checker/internal/services/deepinfra"
	"github.com/cerdastangkas/transcription-checker/internal/sources"
	"github.com/cerdastangkas/transcription-checker/internal/transcripts"
)

func newRetranscribeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "retranscribe <source>...",
		Short: "Re-run speech-to-text over flagged segments",
		Long: "Sends every flagged segment not marked keep back to the " +
			"transcription service in batches, updating the review table " +
			"after each batch. Accepted text overwrites the segment and " +
			"marks it keep.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireTranscriber(); err != nil {
				return err
			}
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

			client := deepinfra.NewClient(deepinfra.Config{
				APIKey:         cfg.Transcriber.APIKey,
				BaseURL:        cfg.Transcriber.BaseURL,
				Model:          cfg.Transcriber.Model,
				Language:       cfg.Transcriber.Language,
				TimeoutSeconds: cfg.Transcriber.TimeoutSeconds,
				RetryAttempts:  cfg.Transcriber.RetryAttempts,
			})
			worker := retranscribe.NewWorker(client, cfg.Transcriber.BatchSize, logger)

			out := cmd.OutOrStdout()
			var failures int
			for _, sourceID := range args {
				if err := retranscribeSource(cmd, layout, store, worker, sourceID); err != nil {
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

func retranscribeSource(cmd *cobra.Command, layout *sources.Layout, store *catalog.Store, worker *retranscribe.Worker, sourceID string) error {
	cmdCtx := cmd.Context()

	lock, err := layout.AcquireLock(sourceID)
	if err != nil {
		return err
	}
	defer lock.Release()

	path, segments, err := latestReviewTable(layout, sourceID)
	if err != nil {
		return err
	}

	if err := store.SetStatus(cmdCtx, sourceID, catalog.StatusTranscribing, ""); err != nil {
		return err
	}

	splitDir := audioDir(layout, sourceID)
	requests := make([]retranscribe.Request, 0, len(segments))
	for i := range segments {
		requests = append(requests, retranscribe.Request{
			Segment:   &segments[i],
			AudioPath: sources.ResolveAudioPath(splitDir, segments[i].AudioFile),
		})
	}

	outcome, err := worker.Run(cmdCtx, requests, func() error {
		return transcripts.WriteSegments(path, segments)
	})
	if err != nil {
		_ = store.SetStatus(cmdCtx, sourceID, catalog.StatusFailed, err.Error())
		return err
	}

	if err := store.SetStatus(cmdCtx, sourceID, catalog.StatusTranscribed, ""); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"%s: %d attempted, %d updated, %d rejected, %d failed, %d kept\n",
		sourceID, outcome.Attempted, outcome.Updated, outcome.Rejected, outcome.Failed, outcome.Skipped)
	return nil
}

// audioDir prefers the live source folder and falls back to the archive,
// since retranscription usually runs after the source has been archived.
func audioDir(layout *sources.Layout, sourceID string) string {
	if fileutil.Exists(layout.SourceDir(sourceID)) {
		return layout.SplitDir(sourceID)
	}
	return layout.ArchivedSplitDir(sourceID)
}
