package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/identity"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=1,max=72"`
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutInput identifies the tokens to revoke on logout
type LogoutInput struct {
	AccessJTI    string
	AccessTTL    time.Duration
	RefreshToken string
}

// ChangePasswordInput contains input for changing the caller's password
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6,max=72"`
}

// TokenResult is returned by login and refresh
type TokenResult struct {
	AccessToken           string       `json:"access_token"`
	RefreshToken          string       `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time    `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time    `json:"refresh_token_expires_at"`
	TokenType             string       `json:"token_type"`
	User                  UserResponse `json:"user"`
}

// CreateUserRequest is the admin request to create a user
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	FullName string `json:"full_name" binding:"required,min=1,max=150"`
	Role     string `json:"role" binding:"required,oneof=admin cashier waiter kitchen"`
}

// UpdateUserRequest changes the display name and role
type UpdateUserRequest struct {
	FullName string `json:"full_name" binding:"required,min=1,max=150"`
	Role     string `json:"role" binding:"required,oneof=admin cashier waiter kitchen"`
}

// SetPasswordRequest is the admin password reset
type SetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// UserListFilter contains query parameters for listing users
type UserListFilter struct {
	Search   string `form:"search"`
	Role     string `form:"role" binding:"omitempty,oneof=admin cashier waiter kitchen"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// UserResponse is a user in API responses. The password hash never leaves the service.
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	FullName    string     `json:"full_name"`
	Role        string     `json:"role"`
	Active      bool       `json:"active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	LockedUntil *time.Time `json:"locked_until,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		Role:        string(u.Role),
		Active:      u.Active,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if u.IsLocked() {
		resp.LockedUntil = u.LockedUntil
	}
	return resp
}

// ToUserResponses converts a slice of users
func ToUserResponses(users []*identity.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = ToUserResponse(u)
	}
	return out
}
