package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrData marks malformed or incomplete source tables. Fails the whole
	// source's run; never retried.
	ErrData = errors.New("data error")
	// ErrService marks external transcription failures after the retry
	// budget is exhausted.
	ErrService = errors.New("service error")
	// ErrConflict marks reconciliation rows that could not be matched.
	ErrConflict = errors.New("reconciliation conflict")
	// ErrConfiguration marks missing or invalid configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound marks missing files or sources.
	ErrNotFound = errors.New("not found")
	// ErrTransient marks failures worth retrying on a later run.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes source context while tagging
// it with the provided marker for later classification. The marker should
// be one of the exported sentinel errors above.
func Wrap(marker error, source, operation, message string, err error) error {
	detail := buildDetail(source, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsSourceFatal reports whether an error should fail the whole source
// rather than a single segment.
func IsSourceFatal(err error) bool {
	return errors.Is(err, ErrData) || errors.Is(err, ErrConfiguration)
}

func buildDetail(source, operation, message string) string {
	parts := make([]string, 0, 3)
	if source = strings.TrimSpace(source); source != "" {
		parts = append(parts, source)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
