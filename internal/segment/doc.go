// Package segment defines the transcript segment model shared by the
// analyzer, review workflow, re-transcription worker, and reconciler.
//
// A Segment carries the raw columns ingested from a source transcript
// (text, duration, audio file reference), the derived metric columns the
// analyzer recomputes on every run, and the check action a reviewer or the
// re-transcription worker assigns. Derived metrics are never hand-edited;
// check actions and reviewed text are the only columns fed back into the
// table across runs.
package segment
