package deepinfra

import (
	"strings"
	"unicode"
)

// MeaningfulText reports whether a transcription response contains real
// content worth keeping. The text must survive punctuation stripping, hold
// at least one token, and carry more than two tokens when the audio runs
// longer than two seconds.
func MeaningfulText(text string, duration float64) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}

	stripped := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, trimmed)
	if stripped == "" {
		return false
	}

	words := 0
	for _, token := range strings.Fields(trimmed) {
		if strings.TrimFunc(token, unicode.IsPunct) != "" {
			words++
		}
	}
	if words == 0 {
		return false
	}
	if duration > 2.0 && words <= 2 {
		return false
	}
	return true
}
