package enums

import "fmt"

// DeliveryStatus is the outcome of the delivery attempt, tracked
// separately from the report's own processing status.
type DeliveryStatus string

const (
	DeliveryStatusQueued DeliveryStatus = "queued"
	DeliveryStatusSent   DeliveryStatus = "sent"
	DeliveryStatusFailed DeliveryStatus = "failed"
	DeliveryStatusNone   DeliveryStatus = "none"
)

var validDeliveryStatuses = []DeliveryStatus{
	DeliveryStatusQueued,
	DeliveryStatusSent,
	DeliveryStatusFailed,
	DeliveryStatusNone,
}

// IsValid checks whether the given status matches the canonical enum.
func (s DeliveryStatus) IsValid() bool {
	for _, candidate := range validDeliveryStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseDeliveryStatus converts raw strings into DeliveryStatus.
func ParseDeliveryStatus(value string) (DeliveryStatus, error) {
	for _, candidate := range validDeliveryStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery status %q", value)
}
