// Command transcheck runs the transcription quality-control workflow:
// scoring transcript segments for unusual speech patterns, managing the
// keep/delete review cycle, re-transcribing flagged audio, and reconciling
// decisions into the archived transcript.
package main
