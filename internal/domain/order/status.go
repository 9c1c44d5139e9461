package order

import (
	"fmt"
	"strings"

	"github.com/shopdesk/backend/internal/domain/shared"
)

// Status represents the lifecycle state of an order
type Status string

const (
	// StatusPending is the initial state; a pending order is the customer's cart
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// AllStatuses lists the statuses in lifecycle order
func AllStatuses() []Status {
	return []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
}

// IsValid checks if the status is one of the five known literals
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true for delivered and cancelled
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether target is the next step of the forward
// lifecycle, or a cancellation from a non-terminal state.
func (s Status) CanTransitionTo(target Status) bool {
	if !target.IsValid() || s.IsTerminal() {
		return false
	}
	if target == StatusCancelled {
		return true
	}
	switch s {
	case StatusPending:
		return target == StatusProcessing
	case StatusProcessing:
		return target == StatusShipped
	case StatusShipped:
		return target == StatusDelivered
	}
	return false
}

// ParseStatus accepts exactly one of the five literal values
func ParseStatus(value string) (Status, error) {
	s := Status(value)
	if !s.IsValid() {
		names := make([]string, 0, 5)
		for _, st := range AllStatuses() {
			names = append(names, st.String())
		}
		return "", shared.NewValidationError("INVALID_STATUS",
			fmt.Sprintf("invalid order status %q, must be one of: %s", value, strings.Join(names, ", "))).WithField("status")
	}
	return s, nil
}
