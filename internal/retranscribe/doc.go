// Package retranscribe re-runs speech-to-text over flagged segments.
//
// Segments marked keep are left alone. The rest are sent to the transcriber
// in bounded concurrent batches; a flush hook runs after every batch so
// progress survives interruption. New text is only accepted when it carries
// real content for the segment's duration.
package retranscribe
