// Package kitchen serves the kitchen display: active tickets and their
// preparation status.
package kitchen

import (
	"context"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/kitchen"
	"github.com/restopos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const defaultListLimit = 200

// KitchenService handles kitchen order operations
type KitchenService struct {
	repo           kitchen.Repository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewKitchenService creates a new KitchenService
func NewKitchenService(repo kitchen.Repository, logger *zap.Logger) *KitchenService {
	return &KitchenService{repo: repo, logger: logger}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *KitchenService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// List returns orders oldest first
func (s *KitchenService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, error) {
	f := kitchen.Filter{
		Statuses: kitchen.ActiveStatuses(),
		SaleID:   filter.SaleID,
		Limit:    filter.Limit,
	}
	if filter.Status != "" {
		f.Statuses = []kitchen.Status{kitchen.Status(filter.Status)}
	}
	if f.SaleID != nil && filter.Status == "" {
		f.Statuses = nil
	}
	if f.Limit == 0 {
		f.Limit = defaultListLimit
	}
	orders, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = ToOrderResponse(o)
	}
	return out, nil
}

// ListBySale returns every ticket produced by a sale
func (s *KitchenService) ListBySale(ctx context.Context, saleID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.repo.FindBySaleID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = ToOrderResponse(o)
	}
	return out, nil
}

// GetByID returns a kitchen order
func (s *KitchenService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// UpdateStatus moves an order along pending, preparing, ready, delivered
func (s *KitchenService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := order.Status
	if err := order.TransitionTo(kitchen.Status(req.Status)); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Kitchen order status changed",
		zap.String("order_id", order.ID.String()),
		zap.String("sale_number", order.SaleNumber),
		zap.String("from", string(from)),
		zap.String("to", string(order.Status)))

	events := order.PullEvents()
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Error("Failed to publish kitchen order events", zap.Error(err))
		}
	}

	response := ToOrderResponse(order)
	return &response, nil
}
