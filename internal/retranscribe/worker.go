package retranscribe

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cerdastangkas/transcription-checker/internal/logging"
	"github.com/cerdastangkas/transcription-checker/internal/segment"
	"github.com/cerdastangkas/transcription-checker/internal/services/deepinfra"
)

const defaultBatchSize = 3

// Transcriber produces text for one audio file.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (deepinfra.Result, error)
}

// Request pairs a segment with the audio file backing it.
type Request struct {
	Segment   *segment.Segment
	AudioPath string
}

// Outcome summarizes one worker run.
type Outcome struct {
	Attempted int
	Updated   int
	Rejected  int
	Failed    int
	Skipped   int
}

// Worker batches re-transcription calls over flagged segments.
type Worker struct {
	transcriber Transcriber
	batchSize   int
	logger      *slog.Logger
}

// NewWorker builds a worker. A batchSize <= 0 falls back to the default.
func NewWorker(transcriber Transcriber, batchSize int, logger *slog.Logger) *Worker {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Worker{
		transcriber: transcriber,
		batchSize:   batchSize,
		logger:      logging.NewComponentLogger(logger, "retranscribe"),
	}
}

// Run processes requests in batches of the configured width. Segments whose
// action is keep are skipped. After each batch the flush hook is invoked so
// callers can persist partial progress; a flush error aborts the run.
//
// Accepted text overwrites the segment and marks it keep. A rejected or
// failed attempt leaves the segment's text and action untouched.
func (w *Worker) Run(ctx context.Context, requests []Request, flush func() error) (Outcome, error) {
	outcome := Outcome{}

	pending := make([]Request, 0, len(requests))
	for _, req := range requests {
		if req.Segment == nil {
			continue
		}
		if !req.Segment.Eligible() {
			outcome.Skipped++
			continue
		}
		pending = append(pending, req)
	}

	for start := 0; start < len(pending); start += w.batchSize {
		if err := ctx.Err(); err != nil {
			return outcome, err
		}
		end := start + w.batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		var (
			wg sync.WaitGroup
			mu sync.Mutex
		)
		for _, req := range batch {
			wg.Add(1)
			go func(req Request) {
				defer wg.Done()
				status := w.processOne(ctx, req)
				mu.Lock()
				defer mu.Unlock()
				outcome.Attempted++
				switch status {
				case resultUpdated:
					outcome.Updated++
				case resultRejected:
					outcome.Rejected++
				case resultFailed:
					outcome.Failed++
				}
			}(req)
		}
		wg.Wait()

		if flush != nil {
			if err := flush(); err != nil {
				return outcome, err
			}
		}
	}

	return outcome, nil
}

type processResult int

const (
	resultUpdated processResult = iota
	resultRejected
	resultFailed
)

func (w *Worker) processOne(ctx context.Context, req Request) processResult {
	seg := req.Segment
	result, err := w.transcriber.Transcribe(ctx, req.AudioPath)
	if err != nil {
		w.logger.Warn("transcription failed",
			logging.String(logging.FieldAudioFile, seg.AudioFile),
			logging.Error(err),
		)
		return resultFailed
	}

	duration := result.Duration
	if duration <= 0 {
		duration = seg.Duration
	}
	if !deepinfra.MeaningfulText(result.Text, duration) {
		w.logger.Info("transcription rejected as empty",
			logging.String(logging.FieldAudioFile, seg.AudioFile),
			logging.Float64("duration", duration),
		)
		return resultRejected
	}

	seg.Text = result.Text
	seg.Action = segment.ActionKeep
	w.logger.Debug("transcription accepted",
		logging.String(logging.FieldAudioFile, seg.AudioFile),
	)
	return resultUpdated
}
