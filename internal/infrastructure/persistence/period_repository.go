package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/cashier"
	"github.com/restopos/backend/internal/domain/sales"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/restopos/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPeriodRepository implements PeriodRepository using GORM
type GormPeriodRepository struct {
	db *gorm.DB
}

// NewGormPeriodRepository creates a new GormPeriodRepository
func NewGormPeriodRepository(db *gorm.DB) *GormPeriodRepository {
	return &GormPeriodRepository{db: db}
}

// Create creates a new period
func (r *GormPeriodRepository) Create(ctx context.Context, period *cashier.SalesPeriod) error {
	return r.db.WithContext(ctx).Create(models.SalesPeriodModelFromDomain(period)).Error
}

// Update updates an existing period
func (r *GormPeriodRepository) Update(ctx context.Context, period *cashier.SalesPeriod) error {
	return r.db.WithContext(ctx).Save(models.SalesPeriodModelFromDomain(period)).Error
}

// FindByID finds a period by ID
func (r *GormPeriodRepository) FindByID(ctx context.Context, id uuid.UUID) (*cashier.SalesPeriod, error) {
	var model models.SalesPeriodModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOpen returns the open period or ErrNoOpenPeriod
func (r *GormPeriodRepository) FindOpen(ctx context.Context) (*cashier.SalesPeriod, error) {
	return r.findOpen(r.db.WithContext(ctx))
}

// FindOpenForUpdate returns the open period with its row locked
func (r *GormPeriodRepository) FindOpenForUpdate(ctx context.Context) (*cashier.SalesPeriod, error) {
	return r.findOpen(forUpdate(r.db.WithContext(ctx)))
}

func (r *GormPeriodRepository) findOpen(query *gorm.DB) (*cashier.SalesPeriod, error) {
	var model models.SalesPeriodModel
	if err := query.Where("status = ?", cashier.PeriodOpen).
		Order("opened_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNoOpenPeriod
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns periods matching the filter, newest first
func (r *GormPeriodRepository) FindAll(ctx context.Context, filter cashier.PeriodFilter) ([]*cashier.SalesPeriod, int64, error) {
	var rows []*models.SalesPeriodModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.SalesPeriodModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	query = withinRange(query, "opened_at", filter.DateRange)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(query.Order("opened_at DESC"), filter.Page, filter.PageSize).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	periods := make([]*cashier.SalesPeriod, len(rows))
	for i, m := range rows {
		periods[i] = m.ToDomain()
	}
	return periods, total, nil
}

type periodSalesRow struct {
	CashSales     decimal.Decimal
	TransferSales decimal.Decimal
	CardSales     decimal.Decimal
	SalesCount    int64
}

// Totals sums the period's paid sales by payment method plus its withdrawals.
// Voided and cancelled sales are excluded.
func (r *GormPeriodRepository) Totals(ctx context.Context, periodID uuid.UUID) (cashier.Totals, error) {
	var row periodSalesRow
	if err := r.db.WithContext(ctx).Model(&models.SaleModel{}).
		Select(`COALESCE(SUM(CASE WHEN payment_method = ? THEN total ELSE 0 END), 0) AS cash_sales,
			COALESCE(SUM(CASE WHEN payment_method = ? THEN total ELSE 0 END), 0) AS transfer_sales,
			COALESCE(SUM(CASE WHEN payment_method = ? THEN total ELSE 0 END), 0) AS card_sales,
			COUNT(*) AS sales_count`,
			sales.PaymentCash, sales.PaymentTransfer, sales.PaymentCard).
		Where("period_id = ? AND status = ?", periodID, sales.StatusClosed).
		Scan(&row).Error; err != nil {
		return cashier.Totals{}, err
	}

	var withdrawals struct{ Amount decimal.Decimal }
	if err := r.db.WithContext(ctx).Model(&models.CashWithdrawalModel{}).
		Select("COALESCE(SUM(amount), 0) AS amount").
		Where("period_id = ?", periodID).
		Scan(&withdrawals).Error; err != nil {
		return cashier.Totals{}, err
	}

	return cashier.Totals{
		CashSales:     shared.RoundMoney(row.CashSales),
		TransferSales: shared.RoundMoney(row.TransferSales),
		CardSales:     shared.RoundMoney(row.CardSales),
		Withdrawals:   shared.RoundMoney(withdrawals.Amount),
		SalesCount:    row.SalesCount,
	}, nil
}

// GormWithdrawalRepository implements WithdrawalRepository using GORM
type GormWithdrawalRepository struct {
	db *gorm.DB
}

// NewGormWithdrawalRepository creates a new GormWithdrawalRepository
func NewGormWithdrawalRepository(db *gorm.DB) *GormWithdrawalRepository {
	return &GormWithdrawalRepository{db: db}
}

// Create records a withdrawal
func (r *GormWithdrawalRepository) Create(ctx context.Context, w *cashier.Withdrawal) error {
	return r.db.WithContext(ctx).Create(models.CashWithdrawalModelFromDomain(w)).Error
}

// FindByPeriodID lists a period's withdrawals in the order they were made
func (r *GormWithdrawalRepository) FindByPeriodID(ctx context.Context, periodID uuid.UUID) ([]*cashier.Withdrawal, error) {
	var rows []*models.CashWithdrawalModel
	if err := r.db.WithContext(ctx).
		Where("period_id = ?", periodID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*cashier.Withdrawal, len(rows))
	for i, m := range rows {
		out[i] = m.ToDomain()
	}
	return out, nil
}

var (
	_ cashier.PeriodRepository     = (*GormPeriodRepository)(nil)
	_ cashier.WithdrawalRepository = (*GormWithdrawalRepository)(nil)
)
