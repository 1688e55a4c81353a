// Package services defines the shared error taxonomy used across the
// analysis, re-transcription, and reconciliation workflows.
//
// Errors carry a sentinel marker so callers can classify failures without
// string matching: data errors fail a whole source, service errors are
// retried per budget and then reported per segment, and reconciliation
// conflicts are warned and skipped. Per-source failures stay isolated; one
// source's error never stops the batch run.
package services
