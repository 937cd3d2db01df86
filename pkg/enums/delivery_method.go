package enums

import "fmt"

// DeliveryMethod is how the finished digest is transmitted to the requester.
type DeliveryMethod string

const (
	DeliveryMethodEmail   DeliveryMethod = "email"
	DeliveryMethodWebhook DeliveryMethod = "webhook"
	DeliveryMethodNone    DeliveryMethod = "none"
)

var validDeliveryMethods = []DeliveryMethod{
	DeliveryMethodEmail,
	DeliveryMethodWebhook,
	DeliveryMethodNone,
}

// IsValid checks whether the given method matches the canonical enum.
func (m DeliveryMethod) IsValid() bool {
	for _, candidate := range validDeliveryMethods {
		if candidate == m {
			return true
		}
	}
	return false
}

// InitialDeliveryStatus returns the delivery status a freshly created
// report starts with for this method.
func (m DeliveryMethod) InitialDeliveryStatus() DeliveryStatus {
	if m == DeliveryMethodNone {
		return DeliveryStatusNone
	}
	return DeliveryStatusQueued
}

// ParseDeliveryMethod converts raw strings into DeliveryMethod.
func ParseDeliveryMethod(value string) (DeliveryMethod, error) {
	for _, candidate := range validDeliveryMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery method %q", value)
}
