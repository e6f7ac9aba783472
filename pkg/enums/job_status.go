package enums

import "fmt"

// JobStatus tracks the posting lifecycle: open until a bid is accepted,
// ongoing until the owner marks it complete.
type JobStatus string

const (
	JobStatusOpen      JobStatus = "open"
	JobStatusOngoing   JobStatus = "ongoing"
	JobStatusCompleted JobStatus = "completed"
)

var validJobStatuses = []JobStatus{
	JobStatusOpen,
	JobStatusOngoing,
	JobStatusCompleted,
}

// String implements fmt.Stringer.
func (s JobStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known JobStatus.
func (s JobStatus) IsValid() bool {
	for _, candidate := range validJobStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseJobStatus converts raw input into a JobStatus.
func ParseJobStatus(value string) (JobStatus, error) {
	for _, candidate := range validJobStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid job status %q", value)
}
