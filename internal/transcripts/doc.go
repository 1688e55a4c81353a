// Package transcripts reads and writes the delimited transcript tables that
// back the review workflow.
//
// Three table shapes exist: the raw source transcript (text and duration,
// optionally audio_file), the scored analysis tables (full analysis and the
// unusual-cases subset, sharing one column set), and the archived transcript
// owned by the reconciler. Readers tolerate missing optional columns by
// defaulting them; a table missing its required columns fails the whole
// source. The archived transcript is handled as a generic table so columns
// this tool does not know about survive reconciliation untouched.
package transcripts
