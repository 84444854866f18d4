package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	settingsapp "github.com/restopos/backend/internal/application/settings"
)

// SettingsService is the part of settingsapp.Service the handler uses
type SettingsService interface {
	List(ctx context.Context) (*settingsapp.ConfigResponse, error)
	Get(ctx context.Context, key string) (*settingsapp.SettingResponse, error)
	Update(ctx context.Context, req settingsapp.UpdateSettingsRequest) (*settingsapp.ConfigResponse, error)
}

// SettingsHandler exposes the business configuration
type SettingsHandler struct {
	BaseHandler
	service SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(service SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// List returns stored entries and the effective configuration
// GET /config
func (h *SettingsHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns one entry
// GET /config/:key
func (h *SettingsHandler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update upserts entries
// PUT /config
func (h *SettingsHandler) Update(c *gin.Context) {
	var req settingsapp.UpdateSettingsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Configuration updated", resp)
}
