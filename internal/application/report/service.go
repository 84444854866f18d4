// Package report serves the back office reports. Aggregation runs in SQL;
// this layer validates ranges and fills the derived figures.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/cashier"
	"github.com/restopos/backend/internal/domain/report"
	"go.uber.org/zap"
)

// ReportService handles report queries
type ReportService struct {
	repo           report.Repository
	periodRepo     cashier.PeriodRepository
	withdrawalRepo cashier.WithdrawalRepository
	logger         *zap.Logger
	now            func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(
	repo report.Repository,
	periodRepo cashier.PeriodRepository,
	withdrawalRepo cashier.WithdrawalRepository,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		repo:           repo,
		periodRepo:     periodRepo,
		withdrawalRepo: withdrawalRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// Summary returns the sales summary of the range
func (s *ReportService) Summary(ctx context.Context, req RangeRequest) (*report.SalesSummary, error) {
	f, err := req.filter()
	if err != nil {
		return nil, err
	}
	return s.repo.SalesSummary(ctx, f)
}

// Daily returns the sales trend, one row per day with sales
func (s *ReportService) Daily(ctx context.Context, req RangeRequest) ([]report.DailySales, error) {
	f, err := req.filter()
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.DailySales(ctx, f)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []report.DailySales{}
	}
	return rows, nil
}

// Hourly returns the 24-hour distribution of sales
func (s *ReportService) Hourly(ctx context.Context, req RangeRequest) ([]report.HourlySales, error) {
	f, err := req.filter()
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.HourlySales(ctx, f)
	if err != nil {
		return nil, err
	}
	return report.FillHours(rows), nil
}

// Products returns the top-N products
func (s *ReportService) Products(ctx context.Context, req RangeRequest) ([]report.ProductRanking, error) {
	f, err := req.filter()
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ProductRanking(ctx, f)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		return []report.ProductRanking{}, nil
	}
	return report.RankProducts(rows), nil
}

// Categories returns sales grouped by category with each one's share
func (s *ReportService) Categories(ctx context.Context, req RangeRequest) ([]report.CategorySales, error) {
	f, err := req.filter()
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.CategorySales(ctx, f)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		return []report.CategorySales{}, nil
	}
	return report.ShareCategories(rows), nil
}

// Taxes returns sales grouped by tax rate
func (s *ReportService) Taxes(ctx context.Context, req RangeRequest) ([]report.TaxLine, error) {
	f, err := req.filter()
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.TaxBreakdown(ctx, f)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []report.TaxLine{}
	}
	return rows, nil
}

// ProfitAndLoss returns the income statement of the range
func (s *ReportService) ProfitAndLoss(ctx context.Context, req RangeRequest) (*report.ProfitAndLoss, error) {
	f, err := req.filter()
	if err != nil {
		return nil, err
	}
	return s.repo.ProfitAndLoss(ctx, f)
}

// Inventory values the active inventory at average cost
func (s *ReportService) Inventory(ctx context.Context) (*report.InventoryValuation, error) {
	return s.repo.InventoryValuation(ctx)
}

// Period reconciles one sales period. The sales figures cover the sales paid
// into it between opening and closing (or now, while it is open).
func (s *ReportService) Period(ctx context.Context, id uuid.UUID) (*PeriodReport, error) {
	period, err := s.periodRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if period.IsOpen() {
		totals, err := s.periodRepo.Totals(ctx, period.ID)
		if err != nil {
			return nil, err
		}
		period.Apply(totals)
	}
	withdrawals, err := s.withdrawalRepo.FindByPeriodID(ctx, period.ID)
	if err != nil {
		return nil, err
	}

	f := report.Filter{From: period.OpenedAt, To: s.now(), PeriodID: &period.ID, TopN: 100}.Normalize()
	if period.ClosedAt != nil {
		f.To = *period.ClosedAt
	}

	out := newPeriodReport(period, withdrawals)
	if out.Summary, err = s.repo.SalesSummary(ctx, f); err != nil {
		return nil, err
	}
	if out.Taxes, err = s.repo.TaxBreakdown(ctx, f); err != nil {
		return nil, err
	}
	if out.Taxes == nil {
		out.Taxes = []report.TaxLine{}
	}
	products, err := s.repo.ProductRanking(ctx, f)
	if err != nil {
		return nil, err
	}
	out.Products = report.RankProducts(products)
	if out.Products == nil {
		out.Products = []report.ProductRanking{}
	}

	s.logger.Debug("Period report built",
		zap.String("period_id", period.ID.String()),
		zap.Int64("sales_count", out.Summary.SalesCount))
	return out, nil
}
