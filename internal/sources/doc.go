// Package sources resolves the on-disk layout of audio sources.
//
// A source is a folder under the data directory named after its identifier,
// holding {id}_transcripts.csv plus the split audio files. The package also
// derives report and archive locations and provides a per-source file lock
// so only one command mutates a source at a time.
package sources
