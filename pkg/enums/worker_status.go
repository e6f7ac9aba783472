package enums

import "fmt"

// WorkerStatus is the worker's availability flag.
type WorkerStatus string

const (
	WorkerStatusWorking  WorkerStatus = "working"
	WorkerStatusOpen     WorkerStatus = "open"
	WorkerStatusInactive WorkerStatus = "inactive"
)

var validWorkerStatuses = []WorkerStatus{
	WorkerStatusWorking,
	WorkerStatusOpen,
	WorkerStatusInactive,
}

// String implements fmt.Stringer.
func (s WorkerStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known WorkerStatus.
func (s WorkerStatus) IsValid() bool {
	for _, candidate := range validWorkerStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseWorkerStatus converts raw input into a WorkerStatus.
func ParseWorkerStatus(value string) (WorkerStatus, error) {
	for _, candidate := range validWorkerStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid worker status %q", value)
}
