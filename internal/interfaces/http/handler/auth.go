package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/restopos/backend/internal/application/identity"
	"github.com/restopos/backend/internal/interfaces/http/middleware"
)

// AuthService is the part of identityapp.AuthService the handler uses
type AuthService interface {
	Login(ctx context.Context, input identityapp.LoginInput) (*identityapp.TokenResult, error)
	Refresh(ctx context.Context, input identityapp.RefreshTokenInput) (*identityapp.TokenResult, error)
	Logout(ctx context.Context, input identityapp.LogoutInput) error
	Me(ctx context.Context, userID uuid.UUID) (*identityapp.UserResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input identityapp.ChangePasswordInput) error
}

// AuthHandler handles login, token refresh and the caller's own account
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LogoutRequest optionally names the refresh token to revoke with the access token
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Login authenticates a user and returns a token pair
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginInput
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMessage(c, "Login successful", result)
}

// Refresh rotates a refresh token
// POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identityapp.RefreshTokenInput
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Logout revokes the presented access token and the optional refresh token
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	// the body is optional
	if c.Request.ContentLength > 0 && !h.BindJSON(c, &req) {
		return
	}

	input := identityapp.LogoutInput{RefreshToken: req.RefreshToken}
	if claims := middleware.GetJWTClaims(c); claims != nil {
		input.AccessJTI = claims.ID
		input.AccessTTL = claims.RemainingTTL()
	}

	if err := h.authService.Logout(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMessage(c, "Logged out", nil)
}

// Me returns the authenticated user
// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// ChangePassword changes the caller's password
// PUT /auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req identityapp.ChangePasswordInput
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMessage(c, "Password changed", nil)
}
