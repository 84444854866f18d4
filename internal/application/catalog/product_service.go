package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	settingsapp "github.com/restopos/backend/internal/application/settings"
	"github.com/restopos/backend/internal/domain/catalog"
	"github.com/restopos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ImageStorage issues presigned URLs for product images
type ImageStorage interface {
	PresignUpload(ctx context.Context, key, contentType string) (url string, expiresAt time.Time, err error)
	PresignDownload(ctx context.Context, key string) (url string, expiresAt time.Time, err error)
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ProductService handles product business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	settings     settingsapp.Provider
	images       ImageStorage
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	settings settingsapp.Provider,
	images ImageStorage,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		settings:     settings,
		images:       images,
		logger:       logger,
	}
}

// Create creates a new product. Without an explicit tax rate the configured one applies.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	input, err := s.productInput(ctx, req.CategoryID, req.Code, req.Name, req.Description, req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueCode(ctx, input.Code, nil); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(input)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product with its modifier groups
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	products, total, err := s.productRepo.FindAll(ctx, catalog.ProductFilter{
		CategoryID: filter.CategoryID,
		Search:     filter.Search,
		Active:     filter.Active,
		OrderBy:    filter.OrderBy,
		OrderDir:   filter.OrderDir,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// Update replaces the editable fields of a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	input, err := s.productInput(ctx, req.CategoryID, req.Code, req.Name, req.Description, CreateProductRequest{
		Price:         req.Price,
		Cost:          req.Cost,
		TaxRate:       req.TaxRate,
		TrackStock:    req.TrackStock,
		SendToKitchen: req.SendToKitchen,
	})
	if err != nil {
		return nil, err
	}
	if req.TaxRate == nil {
		input.TaxRate = product.TaxRate
	}
	if err := s.ensureUniqueCode(ctx, input.Code, &id); err != nil {
		return nil, err
	}
	if err := product.Update(input); err != nil {
		return nil, err
	}
	if req.Active != nil {
		product.SetActive(*req.Active)
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Delete soft-deletes a product; past sale lines keep their snapshot
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}

// SetModifiers replaces the product's modifier groups
func (s *ProductService) SetModifiers(ctx context.Context, id uuid.UUID, req SetModifiersRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.SetModifierGroups(toModifierGroups(req.Groups)); err != nil {
		return nil, err
	}
	if err := s.productRepo.ReplaceModifierGroups(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// AdjustStock applies a manual correction to a stock-tracked product
func (s *ProductService) AdjustStock(ctx context.Context, id, userID uuid.UUID, req AdjustStockRequest) (*ProductResponse, error) {
	if req.Delta.IsZero() {
		return nil, shared.NewValidationError("Adjustment cannot be zero")
	}
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := product.Stock
	if err := product.AdjustStock(req.Delta); err != nil {
		return nil, err
	}
	if err := s.productRepo.UpdateStock(ctx, product.ID, product.Stock); err != nil {
		return nil, err
	}

	s.logger.Info("Product stock adjusted",
		zap.String("product_id", product.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("before", before.String()),
		zap.String("after", product.Stock.String()),
		zap.String("reason", req.Reason))
	response := ToProductResponse(product)
	return &response, nil
}

// ImageUploadURL returns a presigned PUT URL under a fresh key for the product
func (s *ProductService) ImageUploadURL(ctx context.Context, id uuid.UUID, req ImageUploadRequest) (*ImageURLResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	ext, ok := imageExtensions[req.ContentType]
	if !ok {
		return nil, shared.NewValidationError("Unsupported image type")
	}
	key := imageKeyPrefix(id) + uuid.NewString() + ext
	url, expiresAt, err := s.images.PresignUpload(ctx, key, req.ContentType)
	if err != nil {
		return nil, err
	}
	return &ImageURLResponse{Key: key, URL: url, Method: "PUT", ExpiresAt: expiresAt}, nil
}

// AttachImage stores an uploaded image key on the product
func (s *ProductService) AttachImage(ctx context.Context, id uuid.UUID, req AttachImageRequest) (*ProductResponse, error) {
	if !strings.HasPrefix(req.Key, imageKeyPrefix(id)) {
		return nil, shared.NewValidationError("Image key does not belong to this product")
	}
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.SetImage(req.Key)
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// ImageURL returns a presigned GET URL for the product image
func (s *ProductService) ImageURL(ctx context.Context, id uuid.UUID) (*ImageURLResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.ImageKey == "" {
		return nil, shared.NewNotFoundError("Product image")
	}
	url, expiresAt, err := s.images.PresignDownload(ctx, product.ImageKey)
	if err != nil {
		return nil, err
	}
	return &ImageURLResponse{Key: product.ImageKey, URL: url, Method: "GET", ExpiresAt: expiresAt}, nil
}

func (s *ProductService) productInput(ctx context.Context, categoryID uuid.UUID, code, name, description string, req CreateProductRequest) (catalog.ProductInput, error) {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return catalog.ProductInput{}, shared.NewValidationError("Category does not exist")
		}
		return catalog.ProductInput{}, err
	}
	input := catalog.ProductInput{
		CategoryID:    categoryID,
		Code:          code,
		Name:          name,
		Description:   description,
		Price:         req.Price,
		Cost:          req.Cost,
		TrackStock:    req.TrackStock,
		SendToKitchen: req.SendToKitchen,
	}
	if req.TaxRate != nil {
		input.TaxRate = *req.TaxRate
	} else {
		snap, err := s.settings.Snapshot(ctx)
		if err != nil {
			return input, err
		}
		input.TaxRate = snap.TaxRate
	}
	return input, nil
}

func (s *ProductService) ensureUniqueCode(ctx context.Context, code string, excludeID *uuid.UUID) error {
	exists, err := s.productRepo.ExistsByCode(ctx, code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "A product with code "+strings.ToUpper(strings.TrimSpace(code))+" already exists")
	}
	return nil
}

func imageKeyPrefix(productID uuid.UUID) string {
	return "products/" + productID.String() + "/"
}
