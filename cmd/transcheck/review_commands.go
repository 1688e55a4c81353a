package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cerdastangkas/transcription-checker/internal/review"
	"github.com/cerdastangkas/transcription-checker/internal/segment"
	"github.com/cerdastangkas/transcription-checker/internal/sources"
	"github.com/cerdastangkas/transcription-checker/internal/transcripts"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "Inspect and disposition flagged segments",
	}

	reviewCmd.AddCommand(newReviewListCommand(ctx))
	reviewCmd.AddCommand(newReviewMarkCommand(ctx))
	reviewCmd.AddCommand(newReviewFillCommand(ctx))

	return reviewCmd
}

// latestReviewTable loads the most recent unusual-cases table for a source.
func latestReviewTable(layout *sources.Layout, sourceID string) (string, []segment.Segment, error) {
	path, err := layout.LatestUnusualCSV(sourceID)
	if err != nil {
		return "", nil, err
	}
	if path == "" {
		return "", nil, fmt.Errorf("no analysis report for source %s; run `transcheck analyze %s` first", sourceID, sourceID)
	}
	segments, err := transcripts.ReadSegments(path, sourceID)
	if err != nil {
		return "", nil, err
	}
	return path, segments, nil
}

func newReviewListCommand(ctx *commandContext) *cobra.Command {
	var pendingOnly bool

	cmd := &cobra.Command{
		Use:   "list <source>",
		Short: "List flagged segments from the latest analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := ctx.layout()
			if err != nil {
				return err
			}
			_, segments, err := latestReviewTable(layout, args[0])
			if err != nil {
				return err
			}
			if pendingOnly {
				segments = review.Pending(segments)
			}

			out := cmd.OutOrStdout()
			if len(segments) == 0 {
				fmt.Fprintln(out, "Nothing to review")
				return nil
			}

			rows := make([][]string, 0, len(segments))
			for _, seg := range segments {
				action := seg.Action.String()
				if action == "" {
					action = "-"
				}
				rows = append(rows, []string{
					seg.AudioFile,
					strconv.FormatFloat(seg.Duration, 'f', 1, 64),
					action,
					truncate(seg.Text, 60),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"AUDIO FILE", "SECONDS", "ACTION", "TEXT"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&pendingOnly, "pending", false, "Only show segments without a decision")
	return cmd
}

func newReviewMarkCommand(ctx *commandContext) *cobra.Command {
	var actionFlag string

	cmd := &cobra.Command{
		Use:   "mark <source> <audio_file>...",
		Short: "Record a keep or delete decision for flagged segments",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, ok := segment.ParseCheckAction(actionFlag)
			if !ok || action == segment.ActionUnset {
				return fmt.Errorf("--action must be keep or delete, got %q", actionFlag)
			}

			layout, err := ctx.layout()
			if err != nil {
				return err
			}
			path, segments, err := latestReviewTable(layout, args[0])
			if err != nil {
				return err
			}

			changed, missing := review.Mark(segments, action, args[1:]...)
			if err := transcripts.WriteSegments(path, segments); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Marked %d segments %s\n", changed, action)
			for _, name := range missing {
				fmt.Fprintf(out, "No flagged segment named %s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&actionFlag, "action", "a", "", "Decision to record: keep or delete")
	_ = cmd.MarkFlagRequired("action")
	return cmd
}

func newReviewFillCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fill <source>",
		Short: "Promote every undecided segment to keep",
		Long: "Sets check_action to keep on every segment that has no decision " +
			"yet. The workflow never does this on its own; run it when the " +
			"remaining undecided segments have been verified as fine.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := ctx.layout()
			if err != nil {
				return err
			}
			path, segments, err := latestReviewTable(layout, args[0])
			if err != nil {
				return err
			}

			changed := review.FillUnset(segments)
			if err := transcripts.WriteSegments(path, segments); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Filled %d undecided segments with keep\n", changed)
			return nil
		},
	}
}
