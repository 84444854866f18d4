package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/sales"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/restopos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

func preloadSaleItems(query *gorm.DB) *gorm.DB {
	return query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	})
}

// Create inserts the sale header and all its lines
func (r *GormSaleRepository) Create(ctx context.Context, sale *sales.Sale) error {
	return r.db.WithContext(ctx).Create(models.SaleModelFromDomain(sale)).Error
}

// Update writes the header fields; lines are immutable once stored
func (r *GormSaleRepository) Update(ctx context.Context, sale *sales.Sale) error {
	model := models.SaleModelFromDomain(sale)
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error
}

// AddItems inserts additional lines for an existing sale
func (r *GormSaleRepository) AddItems(ctx context.Context, saleID uuid.UUID, items []sales.SaleItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := models.SaleItemModelsFromDomain(items)
	for i := range rows {
		rows[i].SaleID = saleID
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// FindByID finds a sale with its lines
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var model models.SaleModel
	if err := preloadSaleItems(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate locks the sale header and loads its lines
func (r *GormSaleRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var model models.SaleModel
	if err := preloadSaleItems(forUpdate(r.db.WithContext(ctx))).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns sales matching the filter, newest first
func (r *GormSaleRepository) FindAll(ctx context.Context, filter sales.SaleFilter) ([]*sales.Sale, int64, error) {
	var rows []*models.SaleModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.SaleModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.OrderType != nil {
		query = query.Where("order_type = ?", *filter.OrderType)
	}
	if filter.PeriodID != nil {
		query = query.Where("period_id = ?", *filter.PeriodID)
	}
	if filter.TableID != nil {
		query = query.Where("table_id = ?", *filter.TableID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(number) LIKE ? OR LOWER(customer_name) LIKE ? OR customer_id_number LIKE ?",
			pattern, pattern, pattern)
	}
	query = withinRange(query, "created_at", filter.DateRange)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = preloadSaleItems(query.Order("created_at DESC"))
	if err := paginate(query, filter.Page, filter.PageSize).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	result := make([]*sales.Sale, len(rows))
	for i, m := range rows {
		result[i] = m.ToDomain()
	}
	return result, total, nil
}

// NextNumber generates the next sale number for today
// Format: V-YYYYMMDD-NNNN (e.g., V-20260314-0007). On PostgreSQL a transaction
// level advisory lock on the day prefix serializes allocation until commit.
func (r *GormSaleRepository) NextNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("V-%s-", time.Now().Format("20060102"))
	db := r.db.WithContext(ctx)

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", prefix).Error; err != nil {
			return "", err
		}
	}

	// the suffix is compared as a number so day counts past 9999 keep growing
	var last int64
	if err := db.Raw(
		"SELECT COALESCE(MAX(CAST(SUBSTR(number, ?) AS BIGINT)), 0) FROM sales WHERE number LIKE ?",
		len(prefix)+1, prefix+"%",
	).Scan(&last).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, last+1), nil
}

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Create creates a new invoice
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *sales.Invoice) error {
	return r.db.WithContext(ctx).Create(models.InvoiceModelFromDomain(invoice)).Error
}

// Update updates an existing invoice
func (r *GormInvoiceRepository) Update(ctx context.Context, invoice *sales.Invoice) error {
	return r.db.WithContext(ctx).Save(models.InvoiceModelFromDomain(invoice)).Error
}

// FindByID finds an invoice by ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindBySaleID finds the invoice issued for a sale
func (r *GormInvoiceRepository) FindBySaleID(ctx context.Context, saleID uuid.UUID) (*sales.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "sale_id = ?", saleID).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns invoices matching the filter, newest first
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter sales.InvoiceFilter) ([]*sales.Invoice, int64, error) {
	var rows []*models.InvoiceModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{})
	if filter.SRIStatus != nil {
		query = query.Where("sri_status = ?", *filter.SRIStatus)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("number LIKE ? OR LOWER(customer_name) LIKE ? OR customer_id_number LIKE ?",
			pattern, pattern, pattern)
	}
	query = withinRange(query, "issued_at", filter.DateRange)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(query.Order("issued_at DESC"), filter.Page, filter.PageSize).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	invoices := make([]*sales.Invoice, len(rows))
	for i, m := range rows {
		invoices[i] = m.ToDomain()
	}
	return invoices, total, nil
}

// NextSequential returns MAX(sequential)+1 for the establishment/emission point pair.
// The unique series index rejects a concurrent duplicate at insert time.
func (r *GormInvoiceRepository) NextSequential(ctx context.Context, establishment, point string) (int64, error) {
	var last int64
	err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Select("COALESCE(MAX(sequential), 0)").
		Where("establishment_code = ? AND emission_point = ?", establishment, point).
		Scan(&last).Error
	if err != nil {
		return 0, err
	}
	return last + 1, nil
}

var (
	_ sales.SaleRepository    = (*GormSaleRepository)(nil)
	_ sales.InvoiceRepository = (*GormInvoiceRepository)(nil)
)
