package models

import (
	"time"

	"github.com/shopdesk/backend/internal/domain/identity"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
)

// StaffUserModel is the persistence model for the StaffUser domain entity.
type StaffUserModel struct {
	VersionedColumns
	Username       string              `gorm:"type:varchar(150);not null;uniqueIndex:idx_staff_users_username"`
	Email          string              `gorm:"type:varchar(254)"`
	PasswordHash   string              `gorm:"type:varchar(255);not null"`
	DisplayName    string              `gorm:"type:varchar(200)"`
	IsSuperuser    bool                `gorm:"not null;default:false"`
	Status         identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt    *time.Time
	FailedAttempts int `gorm:"not null;default:0"`
	LockedUntil    *time.Time
}

// TableName returns the table name for GORM
func (StaffUserModel) TableName() string {
	return "staff_users"
}

// ToDomain converts the persistence model to a domain StaffUser entity.
func (m *StaffUserModel) ToDomain() *identity.StaffUser {
	return &identity.StaffUser{
		BaseAggregateRoot: m.Root(),
		Username:          m.Username,
		Email:             m.Email,
		PasswordHash:      valueobject.PasswordHash(m.PasswordHash),
		DisplayName:       m.DisplayName,
		IsSuperuser:       m.IsSuperuser,
		Status:            m.Status,
		LastLoginAt:       m.LastLoginAt,
		FailedAttempts:    m.FailedAttempts,
		LockedUntil:       m.LockedUntil,
	}
}

// StaffUserModelFromDomain creates a new persistence model from a domain StaffUser entity.
func StaffUserModelFromDomain(u *identity.StaffUser) *StaffUserModel {
	m := &StaffUserModel{
		Username:       u.Username,
		Email:          u.Email,
		PasswordHash:   string(u.PasswordHash),
		DisplayName:    u.DisplayName,
		IsSuperuser:    u.IsSuperuser,
		Status:         u.Status,
		LastLoginAt:    u.LastLoginAt,
		FailedAttempts: u.FailedAttempts,
		LockedUntil:    u.LockedUntil,
	}
	m.SetRoot(u.BaseAggregateRoot)
	return m
}
