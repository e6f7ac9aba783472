package enums

import "fmt"

// BidStatus tracks a worker's counter-offer. Bids start active; accepting one
// rejects every other active bid on the same job.
type BidStatus string

const (
	BidStatusActive   BidStatus = "active"
	BidStatusRejected BidStatus = "rejected"
	BidStatusAccepted BidStatus = "accepted"
)

var validBidStatuses = []BidStatus{
	BidStatusActive,
	BidStatusRejected,
	BidStatusAccepted,
}

// String implements fmt.Stringer.
func (b BidStatus) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BidStatus.
func (b BidStatus) IsValid() bool {
	for _, candidate := range validBidStatuses {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBidStatus converts raw input into a BidStatus.
func ParseBidStatus(value string) (BidStatus, error) {
	for _, candidate := range validBidStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid bid status %q", value)
}
