package sales

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/sales"
	"github.com/restopos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CreateInvoice issues the invoice of a paid sale. A sale has at most one.
func (s *SaleService) CreateInvoice(ctx context.Context, saleID uuid.UUID, req InvoiceRequest) (*InvoiceResponse, error) {
	emission, err := s.emission(ctx, true)
	if err != nil {
		return nil, err
	}

	var invoice *sales.Invoice
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err := repos.SaleRepo().FindByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		invoice, err = issueInvoice(ctx, repos, sale, req, emission)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.authorize(ctx, invoice)
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetInvoice returns an invoice by ID
func (s *SaleService) GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// ListInvoices lists invoices, newest first
func (s *SaleService) ListInvoices(ctx context.Context, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	f := sales.InvoiceFilter{
		Search:    filter.Search,
		DateRange: shared.DayRange(filter.From, filter.To),
		Page:      filter.Page,
		PageSize:  filter.PageSize,
	}
	if filter.SRIStatus != "" {
		status := sales.SRIStatus(filter.SRIStatus)
		f.SRIStatus = &status
	}
	invoices, total, err := s.invoiceRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		out[i] = ToInvoiceResponse(inv)
	}
	return out, total, nil
}

// emission reads the issuer data from settings when an invoice will be issued
func (s *SaleService) emission(ctx context.Context, needed bool) (sales.Emission, error) {
	if !needed {
		return sales.Emission{}, nil
	}
	snap, err := s.settings.Snapshot(ctx)
	if err != nil {
		return sales.Emission{}, err
	}
	return sales.Emission{
		RUC:               snap.BusinessRUC,
		Environment:       snap.SRIEnvironment,
		EstablishmentCode: snap.EstablishmentCode,
		EmissionPoint:     snap.EmissionPoint,
	}, nil
}

// authorize submits a committed invoice. Failures leave it offline for a later retry.
func (s *SaleService) authorize(ctx context.Context, invoice *sales.Invoice) {
	if s.authorizer == nil {
		return
	}
	status, err := s.authorizer.Authorize(ctx, invoice)
	if err != nil {
		s.logger.Warn("Invoice authorization failed",
			zap.String("invoice_id", invoice.ID.String()),
			zap.String("number", invoice.Number),
			zap.Error(err))
		return
	}
	if status == invoice.SRIStatus {
		return
	}
	if err := invoice.SetSRIStatus(status); err != nil {
		s.logger.Warn("Invoice authorizer returned an unknown status",
			zap.String("invoice_id", invoice.ID.String()),
			zap.String("status", string(status)))
		return
	}
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		s.logger.Error("Failed to store invoice authorization",
			zap.String("invoice_id", invoice.ID.String()),
			zap.Error(err))
	}
}

func issueInvoice(ctx context.Context, repos TransactionalRepositories, sale *sales.Sale, req InvoiceRequest, emission sales.Emission) (*sales.Invoice, error) {
	_, err := repos.InvoiceRepo().FindBySaleID(ctx, sale.ID)
	if err == nil {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Sale "+sale.Number+" already has an invoice")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if sale.Status != sales.StatusClosed {
		return nil, shared.NewInvalidStateError("Only paid sales can be invoiced")
	}
	seq, err := repos.InvoiceRepo().NextSequential(ctx, emission.EstablishmentCode, emission.EmissionPoint)
	if err != nil {
		return nil, err
	}
	invoice, err := sales.NewInvoice(sale, req.customer(), emission, seq)
	if err != nil {
		return nil, err
	}
	if err := repos.InvoiceRepo().Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}
