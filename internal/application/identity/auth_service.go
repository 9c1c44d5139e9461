package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	customerapp "github.com/shopdesk/backend/internal/application/customer"
	"github.com/shopdesk/backend/internal/domain/customer"
	"github.com/shopdesk/backend/internal/domain/identity"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Failed staff logins before the account locks
	LockDuration     time.Duration // How long a locked staff account stays locked
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// CustomerRegistrar creates customer accounts on sign-up
type CustomerRegistrar interface {
	Register(ctx context.Context, req customerapp.CreateCustomerRequest) (*customerapp.CustomerResponse, error)
}

// AuthService authenticates staff users and customers
type AuthService struct {
	staffRepo    identity.StaffUserRepository
	customerRepo customer.Repository
	registrar    CustomerRegistrar
	jwtService   *auth.JWTService
	revocations  auth.RevocationList
	config       AuthServiceConfig
	logger       *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	staffRepo identity.StaffUserRepository,
	customerRepo customer.Repository,
	registrar CustomerRegistrar,
	jwtService *auth.JWTService,
	revocations auth.RevocationList,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	defaults := DefaultAuthServiceConfig()
	if config.MaxLoginAttempts <= 0 {
		config.MaxLoginAttempts = defaults.MaxLoginAttempts
	}
	if config.LockDuration <= 0 {
		config.LockDuration = defaults.LockDuration
	}
	return &AuthService{
		staffRepo:    staffRepo,
		customerRepo: customerRepo,
		registrar:    registrar,
		jwtService:   jwtService,
		revocations:  revocations,
		config:       config,
		logger:       logger,
	}
}

var errInvalidCredentials = shared.NewUnauthorizedError("INVALID_CREDENTIALS", "Invalid username or password")

// StaffLogin authenticates a staff user. Repeated failures lock the account.
func (s *AuthService) StaffLogin(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.staffRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if shared.IsNotFound(err) {
			s.logger.Warn("Staff login for unknown user", zap.String("username", input.Username))
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !user.CanLogin() {
		if user.IsLocked() {
			s.logger.Warn("Login attempt for locked account", zap.String("username", input.Username))
			return nil, shared.NewForbiddenError("ACCOUNT_LOCKED", "Account is locked. Please try again later")
		}
		s.logger.Warn("Login attempt for deactivated account", zap.String("username", input.Username))
		return nil, shared.NewForbiddenError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !user.VerifyPassword(input.Password) {
		locked := user.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.staffRepo.Save(ctx, user); err != nil {
			s.logger.Error("Failed to update user after login failure", zap.Error(err))
		}
		if locked {
			s.logger.Warn("Account locked after too many failed attempts",
				zap.String("username", input.Username),
				zap.Int("attempts", s.config.MaxLoginAttempts))
			return nil, shared.NewForbiddenError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}
		s.logger.Warn("Invalid password attempt",
			zap.String("username", input.Username),
			zap.Int("failed_attempts", user.FailedAttempts))
		return nil, errInvalidCredentials
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      auth.RoleStaff,
		Superuser: user.IsSuperuser,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, err
	}

	user.RecordLoginSuccess()
	if err := s.staffRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to update user after successful login", zap.Error(err))
	}

	s.logger.Info("Staff user logged in",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()))

	return loginResult(pair, PrincipalInfo{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.GetDisplayNameOrUsername(),
		Email:       user.Email,
		Role:        string(auth.RoleStaff),
		Superuser:   user.IsSuperuser,
	}), nil
}

// CustomerLogin authenticates a customer
func (s *AuthService) CustomerLogin(ctx context.Context, input LoginInput) (*LoginResult, error) {
	c, err := s.customerRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !c.CheckPassword(input.Password) {
		s.logger.Warn("Invalid customer password attempt", zap.String("username", input.Username))
		return nil, errInvalidCredentials
	}
	if !c.IsActive {
		return nil, shared.NewForbiddenError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	return s.issueCustomerTokens(c.ID, c.Username, c.FullName(), c.Email)
}

// CustomerSignup registers a customer and logs them in
func (s *AuthService) CustomerSignup(ctx context.Context, req customerapp.CreateCustomerRequest) (*LoginResult, error) {
	created, err := s.registrar.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.issueCustomerTokens(created.ID, created.Username, created.FullName, created.Email)
}

func (s *AuthService) issueCustomerTokens(id uuid.UUID, username, fullName, email string) (*LoginResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   id,
		Username: username,
		Role:     auth.RoleCustomer,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, err
	}

	displayName := fullName
	if displayName == "" {
		displayName = username
	}
	return loginResult(pair, PrincipalInfo{
		ID:          id,
		Username:    username,
		DisplayName: displayName,
		Email:       email,
		Role:        string(auth.RoleCustomer),
	}), nil
}

// RefreshToken exchanges a refresh token for a new pair after checking the
// principal can still sign in
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*LoginResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewUnauthorizedError("TOKEN_INVALID", "Invalid user ID in token")
	}

	info := PrincipalInfo{ID: userID, Username: claims.Username, Role: string(claims.Role), Superuser: claims.Superuser}
	switch claims.Role {
	case auth.RoleStaff:
		user, err := s.staffRepo.FindByID(ctx, userID)
		if err != nil || !user.CanLogin() {
			return nil, shared.NewUnauthorizedError("ACCOUNT_INACTIVE", "Account is no longer active")
		}
		info.DisplayName = user.GetDisplayNameOrUsername()
		info.Email = user.Email
	case auth.RoleCustomer:
		c, err := s.customerRepo.FindByID(ctx, userID)
		if err != nil || !c.IsActive {
			return nil, shared.NewUnauthorizedError("ACCOUNT_INACTIVE", "Account is no longer active")
		}
		info.DisplayName = c.FullName()
		info.Email = c.Email
	}

	pair, err := s.jwtService.RefreshTokenPair(input.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}
	return loginResult(pair, info), nil
}

// Logout revokes the presented access token until it would have expired
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if s.revocations == nil || input.TokenJTI == "" || input.TokenTTL <= 0 {
		return nil
	}
	if err := s.revocations.Revoke(ctx, input.TokenJTI, input.TokenTTL); err != nil {
		return err
	}
	s.logger.Info("Token revoked", zap.String("user_id", input.UserID.String()))
	return nil
}

// ChangePassword changes a staff user's password
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.staffRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}
	if err := s.staffRepo.Save(ctx, user); err != nil {
		return err
	}
	s.logger.Info("Staff password changed", zap.String("user_id", input.UserID.String()))
	return nil
}

// EnsureSuperuser creates the superuser account unless the username is
// already taken. It reports whether an account was created.
func (s *AuthService) EnsureSuperuser(ctx context.Context, username, email, password string) (bool, error) {
	exists, err := s.staffRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	user, err := identity.NewSuperuser(username, email, password)
	if err != nil {
		return false, err
	}
	if err := s.staffRepo.Save(ctx, user); err != nil {
		return false, err
	}
	s.logger.Info("Superuser created", zap.String("username", username))
	return true, nil
}

func loginResult(pair *auth.TokenPair, info PrincipalInfo) *LoginResult {
	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  info,
	}
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewUnauthorizedError("TOKEN_EXPIRED", "Refresh token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewUnauthorizedError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewUnauthorizedError("TOKEN_INVALID", "Invalid refresh token")
	}
}
