package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/restopos/backend/internal/application/identity"
)

// UserService is the part of identityapp.UserService the handler uses
type UserService interface {
	Create(ctx context.Context, req identityapp.CreateUserRequest) (*identityapp.UserResponse, error)
	List(ctx context.Context, filter identityapp.UserListFilter) ([]identityapp.UserResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*identityapp.UserResponse, error)
	Update(ctx context.Context, id uuid.UUID, req identityapp.UpdateUserRequest) (*identityapp.UserResponse, error)
	SetPassword(ctx context.Context, id uuid.UUID, req identityapp.SetPasswordRequest) error
	Activate(ctx context.Context, id uuid.UUID) (*identityapp.UserResponse, error)
	Deactivate(ctx context.Context, id, actorID uuid.UUID) (*identityapp.UserResponse, error)
}

// UserHandler handles user administration
type UserHandler struct {
	BaseHandler
	userService UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create creates a user
// POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req identityapp.CreateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// List lists users
// GET /users
func (h *UserHandler) List(c *gin.Context) {
	var filter identityapp.UserListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	users, total, err := h.userService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, users, total, filter.Page, filter.PageSize)
}

// GetByID returns a user
// GET /users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// Update changes a user's name and role
// PUT /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req identityapp.UpdateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// SetPassword resets a user's password
// PUT /users/:id/password
func (h *UserHandler) SetPassword(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req identityapp.SetPasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.userService.SetPassword(c.Request.Context(), id, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMessage(c, "Password updated", nil)
}

// Activate re-enables a user
// POST /users/:id/activate
func (h *UserHandler) Activate(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// Deactivate disables a user. Admins cannot deactivate themselves.
// POST /users/:id/deactivate
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	actorID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.Deactivate(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}
