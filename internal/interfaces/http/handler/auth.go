package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	customerapp "github.com/shopdesk/backend/internal/application/customer"
	"github.com/shopdesk/backend/internal/application/identity"
	"github.com/shopdesk/backend/internal/interfaces/http/middleware"
)

// AuthUseCase is the identity service as seen by the auth endpoints
type AuthUseCase interface {
	StaffLogin(ctx context.Context, input identity.LoginInput) (*identity.LoginResult, error)
	CustomerLogin(ctx context.Context, input identity.LoginInput) (*identity.LoginResult, error)
	CustomerSignup(ctx context.Context, req customerapp.CreateCustomerRequest) (*identity.LoginResult, error)
	RefreshToken(ctx context.Context, input identity.RefreshTokenInput) (*identity.LoginResult, error)
	Logout(ctx context.Context, input identity.LogoutInput) error
	ChangePassword(ctx context.Context, input identity.ChangePasswordInput) error
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	BaseHandler
	authService AuthUseCase
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService AuthUseCase) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// StaffLogin godoc
// @ID           staffLogin
// @Summary      Staff login
// @Description  Authenticate a staff user and issue a token pair carrying the staff role
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.LoginInput true "Login credentials"
// @Success      200 {object} APIResponse[identity.LoginResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /auth/staff/login [post]
func (h *AuthHandler) StaffLogin(c *gin.Context) {
	h.login(c, h.authService.StaffLogin)
}

// CustomerLogin godoc
// @ID           customerLogin
// @Summary      Customer login
// @Description  Authenticate a customer and issue a token pair carrying the customer role
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.LoginInput true "Login credentials"
// @Success      200 {object} APIResponse[identity.LoginResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /auth/customer/login [post]
func (h *AuthHandler) CustomerLogin(c *gin.Context) {
	h.login(c, h.authService.CustomerLogin)
}

func (h *AuthHandler) login(c *gin.Context, fn func(context.Context, identity.LoginInput) (*identity.LoginResult, error)) {
	var req identity.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := fn(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CustomerSignup godoc
// @ID           customerSignup
// @Summary      Customer sign-up
// @Description  Register a customer account and log it in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body customerapp.CreateCustomerRequest true "Account details"
// @Success      201 {object} APIResponse[identity.LoginResult]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /auth/customer/signup [post]
func (h *AuthHandler) CustomerSignup(c *gin.Context) {
	var req customerapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.authService.CustomerSignup(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// RefreshToken godoc
// @ID           refreshToken
// @Summary      Refresh access token
// @Description  Exchange a refresh token for a new token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.RefreshTokenInput true "Refresh token"
// @Success      200 {object} APIResponse[identity.LoginResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req identity.RefreshTokenInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Logout godoc
// @ID           logout
// @Summary      Logout
// @Description  Revoke the access token used for this request
// @Tags         auth
// @Produce      json
// @Success      200 {object} APIResponse[MessageData]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	userID, _ := claims.GetUserUUID()

	err := h.authService.Logout(c.Request.Context(), identity.LogoutInput{
		UserID:   userID,
		TokenJTI: claims.ID,
		TokenTTL: claims.GetRemainingTTL(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, MessageData{Message: "Logged out"})
}

// ChangePassword godoc
// @ID           changePassword
// @Summary      Change password
// @Description  Change the password of the authenticated staff user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.ChangePasswordInput true "Password change"
// @Success      200 {object} APIResponse[MessageData]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.Principal(c)
	if !ok {
		return
	}

	var req identity.ChangePasswordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	req.UserID = userID

	if err := h.authService.ChangePassword(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, MessageData{Message: "Password changed"})
}
