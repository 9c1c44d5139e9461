package identity

import (
	"github.com/shopdesk/backend/internal/domain/shared"
)

// AggregateTypeStaffUser names the staff account aggregate in events
const AggregateTypeStaffUser = "StaffUser"

// Staff account event types
const (
	EventTypeStaffUserCreated     = "StaffUserCreated"
	EventTypeStaffPasswordChanged = "StaffPasswordChanged"
	EventTypeStaffStatusChanged   = "StaffStatusChanged"
)

// StaffUserCreatedEvent is published when a staff account is created
type StaffUserCreatedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
}

// NewStaffUserCreatedEvent creates a new StaffUserCreatedEvent
func NewStaffUserCreatedEvent(u *StaffUser) *StaffUserCreatedEvent {
	return &StaffUserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStaffUserCreated, AggregateTypeStaffUser, u.ID),
		Username:        u.Username,
	}
}

// StaffPasswordChangedEvent is published when a staff password changes
type StaffPasswordChangedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
}

// NewStaffPasswordChangedEvent creates a new StaffPasswordChangedEvent
func NewStaffPasswordChangedEvent(u *StaffUser) *StaffPasswordChangedEvent {
	return &StaffPasswordChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStaffPasswordChanged, AggregateTypeStaffUser, u.ID),
		Username:        u.Username,
	}
}

// StaffStatusChangedEvent is published when an account is locked,
// deactivated or re-activated
type StaffStatusChangedEvent struct {
	shared.BaseDomainEvent
	OldStatus UserStatus `json:"old_status"`
	NewStatus UserStatus `json:"new_status"`
}

// NewStaffStatusChangedEvent creates a new StaffStatusChangedEvent
func NewStaffStatusChangedEvent(u *StaffUser, old UserStatus) *StaffStatusChangedEvent {
	return &StaffStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStaffStatusChanged, AggregateTypeStaffUser, u.ID),
		OldStatus:       old,
		NewStatus:       u.Status,
	}
}
