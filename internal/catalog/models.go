package catalog

import "time"

// Status represents the lifecycle of a source in the workflow.
type Status string

const (
	StatusPending      Status = "pending"
	StatusAnalyzing    Status = "analyzing"
	StatusAnalyzed     Status = "analyzed"
	StatusTranscribing Status = "transcribing"
	StatusTranscribed  Status = "transcribed"
	StatusReconciling  Status = "reconciling"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusAnalyzing,
	StatusAnalyzed,
	StatusTranscribing,
	StatusTranscribed,
	StatusReconciling,
	StatusCompleted,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// Valid reports whether the status is one of the known lifecycle states.
func (s Status) Valid() bool {
	_, ok := statusSet[s]
	return ok
}

var processingStatuses = map[Status]struct{}{
	StatusAnalyzing:    {},
	StatusTranscribing: {},
	StatusReconciling:  {},
}

// Processing reports whether the status marks an in-flight operation.
func (s Status) Processing() bool {
	_, ok := processingStatuses[s]
	return ok
}

// Record is one source's catalog entry.
type Record struct {
	ID           int64
	SourceID     string
	Status       Status
	LastRunID    string
	SegmentCount int
	UnusualCount int
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HealthSummary describes aggregated source counts per key lifecycle states.
type HealthSummary struct {
	Total      int
	Pending    int
	Processing int
	Failed     int
	Completed  int
}
