package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/restopos/backend/internal/application/catalog"
	inventoryapp "github.com/restopos/backend/internal/application/inventory"
)

// ProductService is the part of catalogapp.ProductService the handler uses
type ProductService interface {
	Create(ctx context.Context, req catalogapp.CreateProductRequest) (*catalogapp.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error)
	List(ctx context.Context, filter catalogapp.ProductListFilter) ([]catalogapp.ProductResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateProductRequest) (*catalogapp.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetModifiers(ctx context.Context, id uuid.UUID, req catalogapp.SetModifiersRequest) (*catalogapp.ProductResponse, error)
	AdjustStock(ctx context.Context, id, userID uuid.UUID, req catalogapp.AdjustStockRequest) (*catalogapp.ProductResponse, error)
	ImageUploadURL(ctx context.Context, id uuid.UUID, req catalogapp.ImageUploadRequest) (*catalogapp.ImageURLResponse, error)
	AttachImage(ctx context.Context, id uuid.UUID, req catalogapp.AttachImageRequest) (*catalogapp.ProductResponse, error)
	ImageURL(ctx context.Context, id uuid.UUID) (*catalogapp.ImageURLResponse, error)
}

// RecipeService reads and replaces product recipes
type RecipeService interface {
	GetRecipe(ctx context.Context, productID uuid.UUID) (*inventoryapp.RecipeResponse, error)
	SetRecipe(ctx context.Context, productID uuid.UUID, req inventoryapp.SetRecipeRequest) (*inventoryapp.RecipeResponse, error)
}

// ProductHandler handles product endpoints, including modifiers, images and recipes
type ProductHandler struct {
	BaseHandler
	productService ProductService
	recipeService  RecipeService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService ProductService, recipeService RecipeService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		recipeService:  recipeService,
	}
}

// Create creates a product
// POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// List lists products with filtering and pagination
// GET /products
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

// GetByID returns a product with its modifier groups
// GET /products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Update updates a product
// PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete soft-deletes a product
// DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SetModifiers replaces the product's modifier groups
// PUT /products/:id/modifiers
func (h *ProductHandler) SetModifiers(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req catalogapp.SetModifiersRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product, err := h.productService.SetModifiers(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// AdjustStock applies a manual stock correction
// POST /products/:id/stock
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req catalogapp.AdjustStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), id, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// ImageUploadURL returns a presigned URL the client uploads the image to
// POST /products/:id/image/upload-url
func (h *ProductHandler) ImageUploadURL(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req catalogapp.ImageUploadRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.productService.ImageUploadURL(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// AttachImage stores an uploaded image key on the product
// PUT /products/:id/image
func (h *ProductHandler) AttachImage(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req catalogapp.AttachImageRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product, err := h.productService.AttachImage(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// ImageURL returns a presigned download URL for the product image
// GET /products/:id/image/url
func (h *ProductHandler) ImageURL(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	resp, err := h.productService.ImageURL(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetRecipe returns the product's recipe
// GET /products/:id/recipe
func (h *ProductHandler) GetRecipe(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, recipe)
}

// SetRecipe replaces the product's recipe and recomputes its cost
// PUT /products/:id/recipe
func (h *ProductHandler) SetRecipe(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req inventoryapp.SetRecipeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	recipe, err := h.recipeService.SetRecipe(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, recipe)
}
