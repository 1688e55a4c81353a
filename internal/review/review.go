package review

import (
	"github.com/cerdastangkas/transcription-checker/internal/segment"
)

// Overlay copies persisted review columns (check action and reviewed text)
// onto a freshly scored table, matching rows by audio file reference.
// Rows without a persisted counterpart keep their fresh values; persisted
// rows that no longer exist in the fresh table are dropped silently, since
// the fresh table is the authoritative view.
func Overlay(fresh, persisted []segment.Segment) []segment.Segment {
	if len(persisted) == 0 {
		return fresh
	}
	prior := make(map[string]segment.Segment, len(persisted))
	for _, seg := range persisted {
		if seg.AudioFile == "" {
			continue
		}
		prior[seg.AudioFile] = seg
	}
	for i := range fresh {
		old, ok := prior[fresh[i].AudioFile]
		if !ok {
			continue
		}
		fresh[i].Action = old.Action
		if old.Action.Reviewed() {
			// Reviewed rows carry authoritative text: either a human edit or
			// the worker's accepted re-transcription.
			fresh[i].Text = old.Text
		}
	}
	return fresh
}

// Mark records a disposition on every row whose audio file matches one of
// the given references. Applying the same action twice is a no-op; keep and
// delete may overwrite each other as corrections. It returns the number of
// rows changed and the references that matched no row.
func Mark(table []segment.Segment, action segment.CheckAction, audioFiles ...string) (int, []string) {
	wanted := make(map[string]bool, len(audioFiles))
	for _, name := range audioFiles {
		wanted[name] = false
	}
	changed := 0
	for i := range table {
		if _, ok := wanted[table[i].AudioFile]; !ok {
			continue
		}
		wanted[table[i].AudioFile] = true
		if table[i].Action == action {
			continue
		}
		table[i].Action = action
		changed++
	}
	var missing []string
	for _, name := range audioFiles {
		if !wanted[name] {
			missing = append(missing, name)
		}
	}
	return changed, missing
}

// FillUnset promotes every pending row to keep. Used only on explicit
// operator request ahead of reconciliation; the workflow itself never
// treats unset as keep.
func FillUnset(table []segment.Segment) int {
	changed := 0
	for i := range table {
		if table[i].Action == segment.ActionUnset {
			table[i].Action = segment.ActionKeep
			changed++
		}
	}
	return changed
}

// Pending returns the rows still awaiting a decision.
func Pending(table []segment.Segment) []segment.Segment {
	var out []segment.Segment
	for _, seg := range table {
		if !seg.Action.Reviewed() {
			out = append(out, seg)
		}
	}
	return out
}
