package identity

import (
	"time"

	"github.com/google/uuid"
)

// LoginInput contains the credentials of a login attempt
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenInput carries the refresh token to exchange
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordInput contains the input for a staff password change
type ChangePasswordInput struct {
	UserID      uuid.UUID `json:"-"`
	OldPassword string    `json:"old_password" binding:"required"`
	NewPassword string    `json:"new_password" binding:"required,min=8,max=128"`
}

// LogoutInput identifies the access token to revoke
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string
	TokenTTL time.Duration
}

// PrincipalInfo describes the authenticated staff user or customer
type PrincipalInfo struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Superuser   bool      `json:"superuser,omitempty"`
}

// LoginResult contains the tokens of a successful login
type LoginResult struct {
	AccessToken           string        `json:"access_token"`
	RefreshToken          string        `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time     `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time     `json:"refresh_token_expires_at"`
	TokenType             string        `json:"token_type"`
	User                  PrincipalInfo `json:"user"`
}
