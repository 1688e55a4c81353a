// Package reconcile applies review decisions to the archived transcript.
//
// Deleted segments are dropped from the archived CSV and their audio files
// removed; kept segments have their reviewed text written back. Both
// operations key on the audio file name, so applying the same decisions
// twice is a no-op.
package reconcile
