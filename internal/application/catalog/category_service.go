package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/catalog"
	"github.com/restopos/backend/internal/domain/shared"
)

// CategoryService handles category business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	if err := s.ensureUniqueName(ctx, req.Name, nil); err != nil {
		return nil, err
	}
	category, err := catalog.NewCategory(req.Name, req.Description, req.SortOrder)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// List returns categories ordered for the menu
func (s *CategoryService) List(ctx context.Context, activeOnly bool) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = ToCategoryResponse(c)
	}
	return out, nil
}

// Update updates a category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, req.Name, &id); err != nil {
		return nil, err
	}
	if err := category.Update(req.Name, req.Description, req.SortOrder); err != nil {
		return nil, err
	}
	if req.Active != nil {
		category.SetActive(*req.Active)
	}
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// Delete removes a category that no product references
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}
	count, err := s.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewConflictError("Category has products and cannot be deleted")
	}
	return s.categoryRepo.Delete(ctx, id)
}

func (s *CategoryService) ensureUniqueName(ctx context.Context, name string, excludeID *uuid.UUID) error {
	exists, err := s.categoryRepo.ExistsByName(ctx, catalog.NameKey(name), excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "A category with this name already exists")
	}
	return nil
}
