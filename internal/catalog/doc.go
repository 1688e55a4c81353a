// Package catalog persists per-source workflow state in SQLite.
//
// Each audio source gets one record that tracks where it sits in the
// analyze, review, re-transcribe, reconcile lifecycle along with summary
// counts from the latest analysis run. The catalog is advisory: transcript
// CSVs on disk remain the authoritative data, the catalog exists so status
// and stats survive across command invocations.
package catalog
