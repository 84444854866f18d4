package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/shared"
)

// Category groups products on the menu
type Category struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
	SortOrder   int
	Active      bool
}

// NewCategory creates an active category
func NewCategory(name, description string, sortOrder int) (*Category, error) {
	c := &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Active:            true,
	}
	if err := c.Update(name, description, sortOrder); err != nil {
		return nil, err
	}
	return c, nil
}

// Update changes the editable fields
func (c *Category) Update(name, description string, sortOrder int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewValidationError("Category name cannot exceed 100 characters")
	}
	c.Name = name
	c.Description = strings.TrimSpace(description)
	c.SortOrder = sortOrder
	c.Touch()
	return nil
}

// SetActive toggles menu visibility
func (c *Category) SetActive(active bool) {
	c.Active = active
	c.Touch()
}

// CategoryRepository persists categories
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*Category, error)
	// ExistsByName checks the case-folded name, ignoring excludeID
	ExistsByName(ctx context.Context, nameKey string, excludeID *uuid.UUID) (bool, error)
	// CountProducts counts products referencing the category, deleted ones included
	CountProducts(ctx context.Context, id uuid.UUID) (int64, error)
}
