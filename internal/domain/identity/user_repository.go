package identity

import (
	"context"

	"github.com/google/uuid"
)

// StaffUserRepository defines the interface for staff account persistence
type StaffUserRepository interface {
	// FindByID finds a staff user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*StaffUser, error)

	// FindByUsername finds a staff user by username
	FindByUsername(ctx context.Context, username string) (*StaffUser, error)

	// ExistsByUsername checks if a username already exists
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// Save creates or updates a staff user
	Save(ctx context.Context, user *StaffUser) error

	// Count returns the number of staff users
	Count(ctx context.Context) (int64, error)
}
