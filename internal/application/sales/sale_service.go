// Package sales runs the order flow: opening sales, adding lines, taking
// payment, reversing sales and issuing invoices. Every write touches stock,
// tables, kitchen tickets and the cash drawer in a single transaction.
package sales

import (
	"context"
	"errors"

	"github.com/google/uuid"
	settingsapp "github.com/restopos/backend/internal/application/settings"
	"github.com/restopos/backend/internal/domain/catalog"
	"github.com/restopos/backend/internal/domain/floor"
	"github.com/restopos/backend/internal/domain/kitchen"
	"github.com/restopos/backend/internal/domain/sales"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/restopos/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// InvoiceAuthorizer submits an issued invoice to the tax authority
type InvoiceAuthorizer interface {
	Authorize(ctx context.Context, invoice *sales.Invoice) (sales.SRIStatus, error)
}

// SaleService handles sale and invoice operations
type SaleService struct {
	saleRepo       sales.SaleRepository
	invoiceRepo    sales.InvoiceRepository
	tableRepo      floor.TableRepository
	settings       settingsapp.Provider
	txScope        TransactionScope
	authorizer     InvoiceAuthorizer
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSaleService creates a new SaleService
func NewSaleService(
	saleRepo sales.SaleRepository,
	invoiceRepo sales.InvoiceRepository,
	tableRepo floor.TableRepository,
	settings settingsapp.Provider,
	txScope TransactionScope,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		saleRepo:    saleRepo,
		invoiceRepo: invoiceRepo,
		tableRepo:   tableRepo,
		settings:    settings,
		txScope:     txScope,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *SaleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetInvoiceAuthorizer sets the authorizer invoked after an invoice is committed
func (s *SaleService) SetInvoiceAuthorizer(authorizer InvoiceAuthorizer) {
	s.authorizer = authorizer
}

// Create opens a sale, optionally paying and invoicing it at once
func (s *SaleService) Create(ctx context.Context, userID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "create",
		attribute.String("order_type", req.OrderType),
		attribute.Int("lines", len(req.Items)))
	defer span.End()

	if req.Invoice != nil && req.Payment == nil {
		return nil, shared.NewValidationError("An invoice can only be issued for a paid sale")
	}
	emission, err := s.emission(ctx, req.Invoice != nil)
	if err != nil {
		return nil, err
	}

	var sale *sales.Sale
	var invoice *sales.Invoice
	var order *kitchen.Order
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		products, err := lockProducts(ctx, repos, req.Items)
		if err != nil {
			return err
		}
		number, err := repos.SaleRepo().NextNumber(ctx)
		if err != nil {
			return err
		}
		sale, err = sales.NewSale(sales.Header{
			Number:           number,
			OrderType:        sales.OrderType(req.OrderType),
			TableID:          req.TableID,
			UserID:           userID,
			CustomerName:     req.CustomerName,
			CustomerIDNumber: req.CustomerIDNumber,
			Notes:            req.Notes,
		})
		if err != nil {
			return err
		}

		var table *floor.Table
		if sale.TableID != nil {
			table, err = lockTable(ctx, repos, *sale.TableID)
			if err != nil {
				return err
			}
			if err := table.Occupy(sale.ID); err != nil {
				return err
			}
		}

		if _, err := addLines(sale, products, req.Items); err != nil {
			return err
		}
		sale.MarkCreated()
		if req.Payment != nil {
			if err := pay(ctx, repos, sale, *req.Payment); err != nil {
				return err
			}
		}
		if err := repos.SaleRepo().Create(ctx, sale); err != nil {
			return err
		}
		if err := s.deductStock(ctx, repos, products, sale.ProductQuantities()); err != nil {
			return err
		}

		tableName := ""
		if table != nil {
			tableName = table.Name
			if sale.Status == sales.StatusClosed {
				table.Release()
			}
			if err := repos.TableRepo().Update(ctx, table); err != nil {
				return err
			}
		}
		if req.Invoice != nil {
			invoice, err = issueInvoice(ctx, repos, sale, *req.Invoice, emission)
			if err != nil {
				return err
			}
		}
		order, err = sendToKitchen(ctx, repos, sale, tableName, sale.Items)
		return err
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.String("sale_number", sale.Number))

	s.logger.Info("Sale created",
		zap.String("sale_id", sale.ID.String()),
		zap.String("number", sale.Number),
		zap.String("status", string(sale.Status)),
		zap.String("total", sale.Total.StringFixed(2)))
	s.publish(ctx, sale, order)
	if invoice != nil {
		s.authorize(ctx, invoice)
	}
	return s.respond(sale, invoice), nil
}

// AddItems appends lines to an open sale and sends the new kitchen lines
func (s *SaleService) AddItems(ctx context.Context, saleID uuid.UUID, req AddItemsRequest) (*SaleResponse, error) {
	var sale *sales.Sale
	var order *kitchen.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		sale, err = repos.SaleRepo().FindByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if sale.Status != sales.StatusOpen {
			return shared.NewInvalidStateError("Items can only be added to an open sale")
		}
		products, err := lockProducts(ctx, repos, req.Items)
		if err != nil {
			return err
		}
		added, err := addLines(sale, products, req.Items)
		if err != nil {
			return err
		}
		if err := repos.SaleRepo().AddItems(ctx, sale.ID, added); err != nil {
			return err
		}
		if err := repos.SaleRepo().Update(ctx, sale); err != nil {
			return err
		}
		if err := s.deductStock(ctx, repos, products, sales.QuantitiesOf(added)); err != nil {
			return err
		}
		tableName, err := tableNameOf(ctx, repos, sale)
		if err != nil {
			return err
		}
		order, err = sendToKitchen(ctx, repos, sale, tableName, added)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Sale items added",
		zap.String("sale_id", sale.ID.String()),
		zap.Int("items", len(req.Items)),
		zap.String("total", sale.Total.StringFixed(2)))
	s.publish(ctx, sale, order)
	return s.respond(sale, nil), nil
}

// Close pays an open sale inside the open sales period and frees its table
func (s *SaleService) Close(ctx context.Context, saleID uuid.UUID, req CloseSaleRequest) (*SaleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "close",
		attribute.String("sale_id", saleID.String()),
		attribute.String("payment_method", req.Method))
	defer span.End()

	emission, err := s.emission(ctx, req.Invoice != nil)
	if err != nil {
		return nil, err
	}

	var sale *sales.Sale
	var invoice *sales.Invoice
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		sale, err = repos.SaleRepo().FindByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if err := pay(ctx, repos, sale, req.PaymentRequest); err != nil {
			return err
		}
		if err := repos.SaleRepo().Update(ctx, sale); err != nil {
			return err
		}
		if err := releaseTable(ctx, repos, sale); err != nil {
			return err
		}
		if req.Invoice != nil {
			invoice, err = issueInvoice(ctx, repos, sale, *req.Invoice, emission)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Sale closed",
		zap.String("sale_id", sale.ID.String()),
		zap.String("number", sale.Number),
		zap.String("payment_method", string(sale.PaymentMethod)),
		zap.String("total", sale.Total.StringFixed(2)))
	s.publish(ctx, sale)
	if invoice != nil {
		s.authorize(ctx, invoice)
	}
	return s.respond(sale, invoice), nil
}

// Cancel abandons an open sale, returning stock and freeing the table
func (s *SaleService) Cancel(ctx context.Context, saleID, userID uuid.UUID, req ReverseSaleRequest) (*SaleResponse, error) {
	var sale *sales.Sale
	var orders []*kitchen.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		sale, err = repos.SaleRepo().FindByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if err := sale.Cancel(req.Reason, userID); err != nil {
			return err
		}
		if err := repos.SaleRepo().Update(ctx, sale); err != nil {
			return err
		}
		if err := s.restoreStock(ctx, repos, sale.ProductQuantities()); err != nil {
			return err
		}
		if err := releaseTable(ctx, repos, sale); err != nil {
			return err
		}
		orders, err = cancelKitchenOrders(ctx, repos, sale.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Sale cancelled",
		zap.String("sale_id", sale.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("reason", sale.CancelReason))
	s.publish(ctx, sale, orders...)
	return s.respond(sale, nil), nil
}

// Void reverses a paid sale and annuls its invoice
func (s *SaleService) Void(ctx context.Context, saleID, userID uuid.UUID, req ReverseSaleRequest) (*SaleResponse, error) {
	var sale *sales.Sale
	var invoice *sales.Invoice
	var orders []*kitchen.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		sale, err = repos.SaleRepo().FindByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if err := sale.Void(req.Reason, userID); err != nil {
			return err
		}
		if err := lockSalePeriod(ctx, repos, sale); err != nil {
			return err
		}
		if err := repos.SaleRepo().Update(ctx, sale); err != nil {
			return err
		}
		if err := s.restoreStock(ctx, repos, sale.ProductQuantities()); err != nil {
			return err
		}

		invoice, err = repos.InvoiceRepo().FindBySaleID(ctx, sale.ID)
		switch {
		case err == nil:
			invoice.Cancel()
			if err := repos.InvoiceRepo().Update(ctx, invoice); err != nil {
				return err
			}
		case errors.Is(err, shared.ErrNotFound):
			invoice = nil
		default:
			return err
		}

		orders, err = cancelKitchenOrders(ctx, repos, sale.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Warn("Sale voided",
		zap.String("sale_id", sale.ID.String()),
		zap.String("number", sale.Number),
		zap.String("user_id", userID.String()),
		zap.String("total", sale.Total.StringFixed(2)),
		zap.String("reason", sale.CancelReason))
	s.publish(ctx, sale, orders...)
	return s.respond(sale, invoice), nil
}

// GetByID returns a sale with its lines and invoice
func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	invoice, err := s.invoiceOf(ctx, sale)
	if err != nil {
		return nil, err
	}
	return s.respond(sale, invoice), nil
}

// List lists sales, newest first
func (s *SaleService) List(ctx context.Context, filter SaleListFilter) ([]SaleResponse, int64, error) {
	f := sales.SaleFilter{
		PeriodID:  filter.PeriodID,
		TableID:   filter.TableID,
		Search:    filter.Search,
		DateRange: shared.DayRange(filter.From, filter.To),
		Page:      filter.Page,
		PageSize:  filter.PageSize,
	}
	if filter.Status != "" {
		status := sales.Status(filter.Status)
		f.Status = &status
	}
	if filter.OrderType != "" {
		orderType := sales.OrderType(filter.OrderType)
		f.OrderType = &orderType
	}
	found, total, err := s.saleRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]SaleResponse, len(found))
	for i, sale := range found {
		out[i] = ToSaleResponse(sale)
	}
	return out, total, nil
}

// Receipt returns the printable view of a sale
func (s *SaleService) Receipt(ctx context.Context, id uuid.UUID) (*ReceiptResponse, error) {
	snap, err := s.settings.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	invoice, err := s.invoiceOf(ctx, sale)
	if err != nil {
		return nil, err
	}

	receipt := &ReceiptResponse{
		BusinessName:    snap.BusinessName,
		BusinessRUC:     snap.BusinessRUC,
		BusinessAddress: snap.BusinessAddress,
		Currency:        snap.Currency,
		Sale:            *s.respond(sale, invoice),
		Taxes:           taxLines(sale.Items),
	}
	if sale.TableID != nil {
		table, err := s.tableRepo.FindByID(ctx, *sale.TableID)
		switch {
		case err == nil:
			receipt.TableName = table.Name
		case !errors.Is(err, shared.ErrNotFound):
			return nil, err
		}
	}
	return receipt, nil
}

func (s *SaleService) respond(sale *sales.Sale, invoice *sales.Invoice) *SaleResponse {
	response := ToSaleResponse(sale)
	if invoice != nil {
		inv := ToInvoiceResponse(invoice)
		response.Invoice = &inv
	}
	return &response
}

func (s *SaleService) invoiceOf(ctx context.Context, sale *sales.Sale) (*sales.Invoice, error) {
	if sale.Status == sales.StatusOpen || sale.Status == sales.StatusCancelled {
		return nil, nil
	}
	invoice, err := s.invoiceRepo.FindBySaleID(ctx, sale.ID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return invoice, err
}

func (s *SaleService) publish(ctx context.Context, sale *sales.Sale, orders ...*kitchen.Order) {
	events := sale.PullEvents()
	for _, o := range orders {
		if o != nil {
			events = append(events, o.PullEvents()...)
		}
	}
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish sale events",
			zap.String("sale_id", sale.ID.String()),
			zap.Error(err))
	}
}

// addLines prices each requested line against its locked product
func addLines(sale *sales.Sale, products map[uuid.UUID]*catalog.Product, lines []SaleLineRequest) ([]sales.SaleItem, error) {
	added := make([]sales.SaleItem, 0, len(lines))
	for _, l := range lines {
		p := products[l.ProductID]
		selection, err := p.ResolveModifiers(l.ModifierOptionIDs)
		if err != nil {
			return nil, err
		}
		modifiers := make([]sales.ItemModifier, len(selection.Modifiers))
		for i, m := range selection.Modifiers {
			modifiers[i] = sales.ItemModifier{Group: m.Group, Name: m.Name, PriceDelta: m.PriceDelta}
		}
		item, err := sale.AddItem(sales.LineInput{
			ProductID:     p.ID,
			ProductName:   p.Name,
			Quantity:      l.Quantity,
			UnitPrice:     p.Price.Add(selection.PriceDelta),
			Discount:      l.Discount,
			TaxRate:       p.TaxRate,
			UnitCost:      p.Cost,
			Modifiers:     modifiers,
			Notes:         l.Notes,
			SendToKitchen: p.SendToKitchen,
		})
		if err != nil {
			return nil, err
		}
		added = append(added, *item)
	}
	return added, nil
}

// pay closes the sale in the open period. The period row stays locked until
// commit so a concurrent period close waits for the payment.
func pay(ctx context.Context, repos TransactionalRepositories, sale *sales.Sale, req PaymentRequest) error {
	if sale.Status != sales.StatusOpen {
		return shared.NewInvalidStateError("Only open sales can be paid")
	}
	period, err := repos.PeriodRepo().FindOpenForUpdate(ctx)
	if err != nil {
		return err
	}
	return sale.Close(sales.Payment{
		Method:         sales.PaymentMethod(req.Method),
		AmountReceived: req.AmountReceived,
	}, period.ID)
}

// lockSalePeriod locks the open period and requires the sale to have been
// paid in it. A closed period keeps its reconciliation as counted.
func lockSalePeriod(ctx context.Context, repos TransactionalRepositories, sale *sales.Sale) error {
	if sale.PeriodID == nil {
		return nil
	}
	period, err := repos.PeriodRepo().FindOpenForUpdate(ctx)
	if err != nil && !errors.Is(err, shared.ErrNoOpenPeriod) {
		return err
	}
	if period == nil || period.ID != *sale.PeriodID {
		return shared.NewInvalidStateError("Sale " + sale.Number + " belongs to a closed sales period and cannot be voided")
	}
	return nil
}

func lockTable(ctx context.Context, repos TransactionalRepositories, id uuid.UUID) (*floor.Table, error) {
	table, err := repos.TableRepo().FindByIDForUpdate(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NewValidationError("Table not found")
	}
	return table, err
}

// releaseTable frees the sale's table if the sale is still seated there
func releaseTable(ctx context.Context, repos TransactionalRepositories, sale *sales.Sale) error {
	if sale.TableID == nil {
		return nil
	}
	table, err := repos.TableRepo().FindByIDForUpdate(ctx, *sale.TableID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if table.CurrentSaleID == nil || *table.CurrentSaleID != sale.ID {
		return nil
	}
	table.Release()
	return repos.TableRepo().Update(ctx, table)
}

func tableNameOf(ctx context.Context, repos TransactionalRepositories, sale *sales.Sale) (string, error) {
	if sale.TableID == nil {
		return "", nil
	}
	table, err := repos.TableRepo().FindByID(ctx, *sale.TableID)
	if errors.Is(err, shared.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return table.Name, nil
}

// sendToKitchen creates a ticket for the lines flagged for the kitchen.
// Returns nil when none are.
func sendToKitchen(ctx context.Context, repos TransactionalRepositories, sale *sales.Sale, tableName string, items []sales.SaleItem) (*kitchen.Order, error) {
	lines := sales.KitchenLines(items)
	if len(lines) == 0 {
		return nil, nil
	}
	inputs := make([]kitchen.ItemInput, len(lines))
	for i := range lines {
		inputs[i] = kitchen.ItemInput{
			SaleItemID:  lines[i].ID,
			ProductName: lines[i].ProductName,
			Quantity:    lines[i].Quantity,
			Modifiers:   lines[i].ModifierLabels(),
			Notes:       lines[i].Notes,
		}
	}
	order, err := kitchen.NewOrder(sale.ID, sale.Number, tableName, string(sale.OrderType), sale.Notes, inputs)
	if err != nil {
		return nil, err
	}
	if err := repos.KitchenRepo().Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func cancelKitchenOrders(ctx context.Context, repos TransactionalRepositories, saleID uuid.UUID) ([]*kitchen.Order, error) {
	orders, err := repos.KitchenRepo().FindBySaleID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	changed := make([]*kitchen.Order, 0, len(orders))
	for _, o := range orders {
		if !o.Cancel() {
			continue
		}
		if err := repos.KitchenRepo().Update(ctx, o); err != nil {
			return nil, err
		}
		changed = append(changed, o)
	}
	return changed, nil
}
