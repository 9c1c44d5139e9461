package identity

import (
	"strings"
	"time"

	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
)

// UserStatus represents the status of a staff account
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusLocked      UserStatus = "locked"      // Locked after repeated failed logins
	UserStatusDeactivated UserStatus = "deactivated" // Manually deactivated
)

// StaffUser is a back-office account permitted to mutate the catalog,
// order statuses and payments. Staff accounts never own orders.
type StaffUser struct {
	shared.BaseAggregateRoot
	Username       string
	Email          string
	PasswordHash   valueobject.PasswordHash
	DisplayName    string
	IsSuperuser    bool
	Status         UserStatus
	LastLoginAt    *time.Time
	FailedAttempts int
	LockedUntil    *time.Time
}

// NewStaffUser creates an active staff account
func NewStaffUser(username, email, password string) (*StaffUser, error) {
	username = strings.TrimSpace(username)
	if err := valueobject.ValidateUsername(username); err != nil {
		return nil, shared.NewFieldValidationError("username", err.Error())
	}
	if email != "" {
		normalized, err := valueobject.NormalizeEmail(email)
		if err != nil {
			return nil, shared.NewFieldValidationError("email", err.Error())
		}
		email = normalized
	}
	hash, err := valueobject.NewPasswordHash(password)
	if err != nil {
		return nil, shared.NewFieldValidationError("password", err.Error())
	}

	user := &StaffUser{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		Email:             email,
		PasswordHash:      hash,
		Status:            UserStatusActive,
	}
	user.AddDomainEvent(NewStaffUserCreatedEvent(user))
	return user, nil
}

// NewSuperuser creates an active staff account with superuser rights
func NewSuperuser(username, email, password string) (*StaffUser, error) {
	user, err := NewStaffUser(username, email, password)
	if err != nil {
		return nil, err
	}
	user.IsSuperuser = true
	return user, nil
}

// ChangePassword checks the current password before setting a new one
func (u *StaffUser) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return u.SetPassword(newPassword)
}

// SetPassword replaces the password without checking the old one
func (u *StaffUser) SetPassword(newPassword string) error {
	hash, err := valueobject.NewPasswordHash(newPassword)
	if err != nil {
		return shared.NewFieldValidationError("password", err.Error())
	}
	u.PasswordHash = hash
	u.Touch()
	u.AddDomainEvent(NewStaffPasswordChangedEvent(u))
	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *StaffUser) VerifyPassword(password string) bool {
	return u.PasswordHash.Matches(password)
}

// Deactivate deactivates the account
func (u *StaffUser) Deactivate() error {
	if u.Status == UserStatusDeactivated {
		return shared.NewInvalidStateError("ALREADY_DEACTIVATED", "User is already deactivated")
	}
	old := u.Status
	u.Status = UserStatusDeactivated
	u.Touch()
	u.AddDomainEvent(NewStaffStatusChangedEvent(u, old))
	return nil
}

// Activate re-enables the account and clears any lock
func (u *StaffUser) Activate() error {
	if u.Status == UserStatusActive {
		return shared.NewInvalidStateError("ALREADY_ACTIVE", "User is already active")
	}
	old := u.Status
	u.Status = UserStatusActive
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.Touch()
	u.AddDomainEvent(NewStaffStatusChangedEvent(u, old))
	return nil
}

// Lock locks the account for duration; zero means until unlocked
func (u *StaffUser) Lock(duration time.Duration) error {
	if u.Status == UserStatusDeactivated {
		return shared.NewInvalidStateError("USER_DEACTIVATED", "Cannot lock a deactivated user")
	}
	old := u.Status
	u.Status = UserStatusLocked
	if duration > 0 {
		until := time.Now().Add(duration)
		u.LockedUntil = &until
	}
	u.Touch()
	u.AddDomainEvent(NewStaffStatusChangedEvent(u, old))
	return nil
}

// RecordLoginSuccess records a successful login. An expired lock is
// released here.
func (u *StaffUser) RecordLoginSuccess() {
	now := time.Now()
	u.LastLoginAt = &now
	u.FailedAttempts = 0
	if u.Status == UserStatusLocked {
		u.Status = UserStatusActive
		u.LockedUntil = nil
	}
	u.Touch()
}

// RecordLoginFailure records a failed attempt and reports whether the
// account got locked
func (u *StaffUser) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	u.FailedAttempts++
	u.Touch()

	if maxAttempts > 0 && u.FailedAttempts >= maxAttempts {
		_ = u.Lock(lockDuration)
		return true
	}
	return false
}

// IsLocked returns true while an unexpired lock is in place
func (u *StaffUser) IsLocked() bool {
	if u.Status != UserStatusLocked {
		return false
	}
	if u.LockedUntil != nil && time.Now().After(*u.LockedUntil) {
		return false
	}
	return true
}

// CanLogin returns true if the account may authenticate
func (u *StaffUser) CanLogin() bool {
	return u.Status != UserStatusDeactivated && !u.IsLocked()
}

// GetDisplayNameOrUsername returns display name if set, otherwise username
func (u *StaffUser) GetDisplayNameOrUsername() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
