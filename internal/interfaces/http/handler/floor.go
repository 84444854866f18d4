package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	floorapp "github.com/restopos/backend/internal/application/floor"
)

// FloorService is the part of floorapp.FloorService the handler uses
type FloorService interface {
	CreateZone(ctx context.Context, req floorapp.CreateZoneRequest) (*floorapp.ZoneResponse, error)
	ListZones(ctx context.Context) ([]floorapp.ZoneResponse, error)
	GetZone(ctx context.Context, id uuid.UUID) (*floorapp.ZoneResponse, error)
	UpdateZone(ctx context.Context, id uuid.UUID, req floorapp.UpdateZoneRequest) (*floorapp.ZoneResponse, error)
	DeleteZone(ctx context.Context, id uuid.UUID) error
	CreateTable(ctx context.Context, req floorapp.CreateTableRequest) (*floorapp.TableResponse, error)
	ListTables(ctx context.Context, filter floorapp.TableListFilter) ([]floorapp.TableResponse, error)
	GetTable(ctx context.Context, id uuid.UUID) (*floorapp.TableResponse, error)
	UpdateTable(ctx context.Context, id uuid.UUID, req floorapp.UpdateTableRequest) (*floorapp.TableResponse, error)
	DeleteTable(ctx context.Context, id uuid.UUID) error
	SetTableStatus(ctx context.Context, id uuid.UUID, req floorapp.SetTableStatusRequest) (*floorapp.TableResponse, error)
}

// FloorHandler handles zone and table endpoints
type FloorHandler struct {
	BaseHandler
	floorService FloorService
}

// NewFloorHandler creates a new FloorHandler
func NewFloorHandler(floorService FloorService) *FloorHandler {
	return &FloorHandler{floorService: floorService}
}

// CreateZone creates a zone
// POST /zones
func (h *FloorHandler) CreateZone(c *gin.Context) {
	var req floorapp.CreateZoneRequest
	if !h.BindJSON(c, &req) {
		return
	}

	zone, err := h.floorService.CreateZone(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, zone)
}

// ListZones lists zones by sort order
// GET /zones
func (h *FloorHandler) ListZones(c *gin.Context) {
	zones, err := h.floorService.ListZones(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, zones)
}

// GetZone returns a zone
// GET /zones/:id
func (h *FloorHandler) GetZone(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	zone, err := h.floorService.GetZone(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, zone)
}

// UpdateZone updates a zone
// PUT /zones/:id
func (h *FloorHandler) UpdateZone(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req floorapp.UpdateZoneRequest
	if !h.BindJSON(c, &req) {
		return
	}

	zone, err := h.floorService.UpdateZone(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, zone)
}

// DeleteZone removes a zone without tables
// DELETE /zones/:id
func (h *FloorHandler) DeleteZone(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.floorService.DeleteZone(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateTable creates a table in a zone
// POST /tables
func (h *FloorHandler) CreateTable(c *gin.Context) {
	var req floorapp.CreateTableRequest
	if !h.BindJSON(c, &req) {
		return
	}

	table, err := h.floorService.CreateTable(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, table)
}

// ListTables lists tables, optionally of one zone
// GET /tables
func (h *FloorHandler) ListTables(c *gin.Context) {
	var filter floorapp.TableListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	tables, err := h.floorService.ListTables(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tables)
}

// GetTable returns a table
// GET /tables/:id
func (h *FloorHandler) GetTable(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	table, err := h.floorService.GetTable(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, table)
}

// UpdateTable updates a table
// PUT /tables/:id
func (h *FloorHandler) UpdateTable(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req floorapp.UpdateTableRequest
	if !h.BindJSON(c, &req) {
		return
	}

	table, err := h.floorService.UpdateTable(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, table)
}

// DeleteTable removes a table that is not occupied
// DELETE /tables/:id
func (h *FloorHandler) DeleteTable(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.floorService.DeleteTable(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SetTableStatus frees or reserves a table. Occupation is driven by sales.
// PUT /tables/:id/status
func (h *FloorHandler) SetTableStatus(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req floorapp.SetTableStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	table, err := h.floorService.SetTableStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, table)
}
