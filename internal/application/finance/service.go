package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/finance"
	"github.com/restopos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InvestmentService handles investment records
type InvestmentService struct {
	repo   finance.InvestmentRepository
	logger *zap.Logger
}

// NewInvestmentService creates a new InvestmentService
func NewInvestmentService(repo finance.InvestmentRepository, logger *zap.Logger) *InvestmentService {
	return &InvestmentService{repo: repo, logger: logger}
}

// Create records an investment made by the user
func (s *InvestmentService) Create(ctx context.Context, userID uuid.UUID, req InvestmentRequest) (*InvestmentResponse, error) {
	investment, err := finance.NewInvestment(req.input(), userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, investment); err != nil {
		return nil, err
	}
	s.logger.Info("Investment recorded",
		zap.String("investment_id", investment.ID.String()),
		zap.String("category", investment.Category.String()),
		zap.String("amount", investment.Amount.String()))
	response := ToInvestmentResponse(investment)
	return &response, nil
}

// GetByID returns an investment by ID
func (s *InvestmentService) GetByID(ctx context.Context, id uuid.UUID) (*InvestmentResponse, error) {
	investment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToInvestmentResponse(investment)
	return &response, nil
}

// List lists investments, newest first, with the total amount of the filter
func (s *InvestmentService) List(ctx context.Context, filter InvestmentListFilter) (*InvestmentListResult, error) {
	f := finance.InvestmentFilter{
		DateRange: shared.DayRange(filter.From, filter.To),
		Page:      filter.Page,
		PageSize:  filter.PageSize,
	}
	if filter.Category != "" {
		category := finance.InvestmentCategory(filter.Category)
		f.Category = &category
	}

	investments, total, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	amount, err := s.repo.SumAmount(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]InvestmentResponse, len(investments))
	for i, inv := range investments {
		items[i] = ToInvestmentResponse(inv)
	}
	return &InvestmentListResult{Items: items, Total: total, TotalAmount: amount}, nil
}

// Update replaces an investment's fields
func (s *InvestmentService) Update(ctx context.Context, id uuid.UUID, req InvestmentRequest) (*InvestmentResponse, error) {
	investment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := investment.Update(req.input()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, investment); err != nil {
		return nil, err
	}
	response := ToInvestmentResponse(investment)
	return &response, nil
}

// Delete removes an investment
func (s *InvestmentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Investment deleted", zap.String("investment_id", id.String()))
	return nil
}
