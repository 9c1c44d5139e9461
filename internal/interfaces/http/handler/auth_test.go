package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/application/identity"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/infrastructure/auth"
	"github.com/shopdesk/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAuthHandler_Login(t *testing.T) {
	svc := new(MockAuthUseCase)
	svc.On("StaffLogin", mock.Anything, identity.LoginInput{Username: "admin", Password: "admin123"}).
		Return(&identity.LoginResult{AccessToken: "a", TokenType: "Bearer"}, nil)
	svc.On("CustomerLogin", mock.Anything, identity.LoginInput{Username: "admin", Password: "admin123"}).
		Return(nil, shared.NewUnauthorizedError("INVALID_CREDENTIALS", "Invalid username or password"))

	h := NewAuthHandler(svc)
	r := gin.New()
	r.POST("/auth/staff/login", h.StaffLogin)
	r.POST("/auth/customer/login", h.CustomerLogin)
	body := map[string]any{"username": "admin", "password": "admin123"}

	w := performRequest(r, http.MethodPost, "/auth/staff/login", body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token_type":"Bearer"`)

	w = performRequest(r, http.MethodPost, "/auth/customer/login", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(r, http.MethodPost, "/auth/staff/login", map[string]any{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "password", decodeResponse(t, w).Error.Field)
}

func TestAuthHandler_Signup(t *testing.T) {
	svc := new(MockAuthUseCase)
	svc.On("CustomerSignup", mock.Anything, mock.Anything).Return(&identity.LoginResult{AccessToken: "a"}, nil)

	h := NewAuthHandler(svc)
	r := gin.New()
	r.POST("/auth/customer/signup", h.CustomerSignup)

	w := performRequest(r, http.MethodPost, "/auth/customer/signup", map[string]any{
		"username": "dana", "email": "dana@example.com", "password": "longenough",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(r, http.MethodPost, "/auth/customer/signup", map[string]any{
		"username": "dana", "email": "dana@example.com", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNumberOfCalls(t, "CustomerSignup", 1)
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := new(MockAuthUseCase)
	userID := uuid.New()
	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(10 * time.Minute)),
		},
		UserID: userID.String(),
		Role:   auth.RoleStaff,
	}
	svc.On("Logout", mock.Anything, mock.MatchedBy(func(in identity.LogoutInput) bool {
		return in.UserID == userID && in.TokenJTI == "jti-1" && in.TokenTTL > 9*time.Minute
	})).Return(nil)

	h := NewAuthHandler(svc)
	r := gin.New()
	r.POST("/auth/logout", func(c *gin.Context) {
		c.Set(middleware.JWTClaimsKey, claims)
		c.Next()
	}, h.Logout)
	r.POST("/anonymous/logout", h.Logout)

	w := performRequest(r, http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Logged out")
	svc.AssertExpectations(t)

	w = performRequest(r, http.MethodPost, "/anonymous/logout", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	svc := new(MockAuthUseCase)
	userID := uuid.New()
	svc.On("ChangePassword", mock.Anything, identity.ChangePasswordInput{
		UserID: userID, OldPassword: "oldpassword", NewPassword: "newpassword",
	}).Return(nil)

	h := NewAuthHandler(svc)
	r := gin.New()
	r.PUT("/auth/password", asPrincipal(userID, auth.RoleCustomer), h.ChangePassword)

	w := performRequest(r, http.MethodPut, "/auth/password", map[string]any{
		"old_password": "oldpassword", "new_password": "newpassword",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
