package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/catalog"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, activeOnly bool) ([]*catalog.Category, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByName(ctx context.Context, nameKey string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, nameKey, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) CountProducts(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func newTestCategory(t *testing.T, name string) *catalog.Category {
	t.Helper()
	c, err := catalog.NewCategory(name, "", 0)
	require.NoError(t, err)
	return c
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo)
		repo.On("ExistsByName", ctx, catalog.NameKey("Postres"), (*uuid.UUID)(nil)).Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*catalog.Category")).Return(nil)

		resp, err := svc.Create(ctx, CreateCategoryRequest{Name: " Postres ", SortOrder: 3})
		require.NoError(t, err)
		assert.Equal(t, "Postres", resp.Name)
		assert.Equal(t, 3, resp.SortOrder)
		assert.True(t, resp.Active)
	})

	t.Run("name already used", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo)
		repo.On("ExistsByName", ctx, catalog.NameKey("postres"), (*uuid.UUID)(nil)).Return(true, nil)

		_, err := svc.Create(ctx, CreateCategoryRequest{Name: "postres"})
		assert.Equal(t, shared.CodeAlreadyExists, domainCode(t, err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("with products", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo)
		category := newTestCategory(t, "Bebidas")
		repo.On("FindByID", ctx, category.ID).Return(category, nil)
		repo.On("CountProducts", ctx, category.ID).Return(int64(4), nil)

		err := svc.Delete(ctx, category.ID)
		assert.Equal(t, shared.CodeConflict, domainCode(t, err))
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("empty category", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo)
		category := newTestCategory(t, "Temporada")
		repo.On("FindByID", ctx, category.ID).Return(category, nil)
		repo.On("CountProducts", ctx, category.ID).Return(int64(0), nil)
		repo.On("Delete", ctx, category.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, category.ID))
		repo.AssertExpectations(t)
	})

	t.Run("missing", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo)
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, id), shared.ErrNotFound)
	})
}

func TestCategoryService_UpdateKeepsActiveWhenOmitted(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	svc := NewCategoryService(repo)
	category := newTestCategory(t, "Entradas")
	category.SetActive(false)
	repo.On("FindByID", ctx, category.ID).Return(category, nil)
	repo.On("ExistsByName", ctx, catalog.NameKey("Entradas frías"), &category.ID).Return(false, nil)
	repo.On("Update", ctx, category).Return(nil)

	resp, err := svc.Update(ctx, category.ID, UpdateCategoryRequest{Name: "Entradas frías"})
	require.NoError(t, err)
	assert.Equal(t, "Entradas frías", resp.Name)
	assert.False(t, resp.Active)
}
