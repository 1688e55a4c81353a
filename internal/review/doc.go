// Package review merges persisted human review state back onto freshly
// scored segment tables and enforces the disposition transition rules.
//
// Scoring is a pure function that recomputes every derived column, so the
// review workflow treats persisted tables as an overlay: check actions and
// reviewed text survive re-scoring verbatim, keyed by the stable audio file
// reference.
package review
