package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/infrastructure/auth"
	"github.com/shopdesk/backend/internal/infrastructure/logger"
	"github.com/shopdesk/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTUsernameKey = "jwt_username"
	JWTRoleKey     = "jwt_role"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
	// TokenQueryParam carries the access token on WebSocket upgrades,
	// where browsers cannot set headers
	TokenQueryParam = "access_token"
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// Revocations is optional; when set, revoked JTIs are rejected
	Revocations auth.RevocationList
	// AllowQueryToken accepts ?access_token= when the header is absent
	AllowQueryToken bool
	Logger          *zap.Logger
}

// JWTAuthMiddleware creates JWT authentication middleware
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{JWTService: jwtService})
}

// JWTAuthMiddlewareWithConfig creates JWT authentication middleware with custom config
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		tokenString, err := extractToken(c, cfg.AllowQueryToken)
		if err != nil {
			abortUnauthorized(c, cfg.Logger, err)
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			abortUnauthorized(c, cfg.Logger, err)
			return
		}

		if cfg.Revocations != nil && claims.ID != "" {
			revoked, err := cfg.Revocations.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// fail open
				cfg.Logger.Error("Failed to check token revocations",
					zap.String("jti", claims.ID),
					zap.Error(err))
			} else if revoked {
				abortUnauthorized(c, cfg.Logger, auth.ErrTokenRevoked)
				return
			}
		}

		setClaims(c, claims)

		ctx := c.Request.Context()
		ctx, log := logger.WithUserID(ctx, logger.FromContext(ctx), claims.UserID)
		ctx, _ = logger.WithRole(ctx, log, string(claims.Role))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// OptionalJWTAuthMiddleware extracts claims when a valid token is present
// and lets anonymous requests through
func OptionalJWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := extractToken(c, false)
		if err == nil {
			if claims, err := jwtService.ValidateAccessToken(tokenString); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// RequireRole rejects authenticated principals whose role is not one of
// roles with 403. It must run after JWTAuthMiddleware.
func RequireRole(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortUnauthorized(c, nil, auth.ErrInvalidToken)
			return
		}
		if !slices.Contains(roles, claims.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden,
				"This endpoint requires the "+joinRoles(roles)+" role",
				GetRequestID(c),
			))
			return
		}
		c.Next()
	}
}

// RequireStaff is shorthand for RequireRole(auth.RoleStaff)
func RequireStaff() gin.HandlerFunc {
	return RequireRole(auth.RoleStaff)
}

// RequireCustomer is shorthand for RequireRole(auth.RoleCustomer)
func RequireCustomer() gin.HandlerFunc {
	return RequireRole(auth.RoleCustomer)
}

var errMissingToken = errors.New("missing authorization header")

func extractToken(c *gin.Context, allowQuery bool) (string, error) {
	header := c.GetHeader(AuthHeaderKey)
	if header == "" {
		if allowQuery {
			if token := c.Query(TokenQueryParam); token != "" {
				return token, nil
			}
		}
		return "", errMissingToken
	}
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", auth.ErrInvalidToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	if token == "" {
		return "", errMissingToken
	}
	return token, nil
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.UserID)
	c.Set(JWTUsernameKey, claims.Username)
	c.Set(JWTRoleKey, string(claims.Role))
}

func abortUnauthorized(c *gin.Context, log *zap.Logger, err error) {
	code, message := dto.ErrCodeUnauthorized, "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, message = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenRevoked):
		code, message = dto.ErrCodeTokenInvalid, "Token has been revoked"
	case errors.Is(err, auth.ErrInvalidTokenType), errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidClaims),
		errors.Is(err, auth.ErrInvalidRole), errors.Is(err, auth.ErrMissingUserID):
		code, message = dto.ErrCodeTokenInvalid, "Invalid token"
	}

	if log != nil {
		log.Debug("JWT authentication failed",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path))
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

func joinRoles(roles []auth.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, " or ")
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetJWTUsername retrieves the username from JWT claims in context
func GetJWTUsername(c *gin.Context) string {
	return c.GetString(JWTUsernameKey)
}

// GetJWTRole retrieves the principal role from JWT claims in context
func GetJWTRole(c *gin.Context) auth.Role {
	return auth.Role(c.GetString(JWTRoleKey))
}

// GetPrincipalID returns the authenticated principal's ID
func GetPrincipalID(c *gin.Context) (uuid.UUID, error) {
	id := GetJWTUserID(c)
	if id == "" {
		return uuid.Nil, errMissingToken
	}
	return uuid.Parse(id)
}
