package sales

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerIDType is the kind of identification printed on an invoice
type CustomerIDType string

const (
	CustomerIDCedula        CustomerIDType = "cedula"
	CustomerIDRUC           CustomerIDType = "ruc"
	CustomerIDPassport      CustomerIDType = "passport"
	CustomerIDFinalConsumer CustomerIDType = "final_consumer"
)

// Final consumer placeholders required on anonymous invoices
const (
	FinalConsumerID   = "9999999999999"
	FinalConsumerName = "CONSUMIDOR FINAL"
)

// SRIStatus tracks the electronic authorization of an invoice. Without a
// real SRI integration invoices stay offline.
type SRIStatus string

const (
	SRIStatusOffline    SRIStatus = "offline"
	SRIStatusAuthorized SRIStatus = "authorized"
	SRIStatusRejected   SRIStatus = "rejected"
	SRIStatusCancelled  SRIStatus = "cancelled"
)

// IsValid checks if the status is a known value
func (s SRIStatus) IsValid() bool {
	switch s {
	case SRIStatusOffline, SRIStatusAuthorized, SRIStatusRejected, SRIStatusCancelled:
		return true
	}
	return false
}

var (
	cedulaRegex   = regexp.MustCompile(`^[0-9]{10}$`)
	rucRegex      = regexp.MustCompile(`^[0-9]{13}$`)
	passportRegex = regexp.MustCompile(`^[A-Za-z0-9]{3,20}$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// InvoiceCustomer identifies who the invoice is issued to
type InvoiceCustomer struct {
	IDType   CustomerIDType
	IDNumber string
	Name     string
	Email    string
	Address  string
}

// Normalize validates the customer and fills final consumer placeholders
func (c InvoiceCustomer) Normalize() (InvoiceCustomer, error) {
	c.IDNumber = strings.TrimSpace(c.IDNumber)
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Address = strings.TrimSpace(c.Address)

	switch c.IDType {
	case CustomerIDFinalConsumer:
		c.IDNumber = FinalConsumerID
		c.Name = FinalConsumerName
	case CustomerIDCedula:
		if !cedulaRegex.MatchString(c.IDNumber) {
			return c, shared.NewValidationError("Cedula must have 10 digits")
		}
	case CustomerIDRUC:
		if !rucRegex.MatchString(c.IDNumber) {
			return c, shared.NewValidationError("RUC must have 13 digits")
		}
	case CustomerIDPassport:
		if !passportRegex.MatchString(c.IDNumber) {
			return c, shared.NewValidationError("Passport must have between 3 and 20 letters or digits")
		}
	default:
		return c, shared.NewValidationError("Customer id type must be one of cedula, ruc, passport, final_consumer")
	}
	if c.Name == "" {
		return c, shared.NewValidationError("Customer name is required")
	}
	if c.Email != "" && !emailRegex.MatchString(c.Email) {
		return c, shared.NewValidationError("Invalid customer email")
	}
	return c, nil
}

// Emission holds the issuer data taken from settings at invoicing time
type Emission struct {
	RUC               string
	Environment       string
	EstablishmentCode string
	EmissionPoint     string
}

// Invoice is the tax document issued for a paid sale
type Invoice struct {
	ID               uuid.UUID
	SaleID           uuid.UUID
	Number           string
	Sequential       int64
	AccessKey        string
	CustomerIDType   CustomerIDType
	CustomerIDNumber string
	CustomerName     string
	Email            string
	Address          string
	Subtotal         decimal.Decimal
	TaxAmount        decimal.Decimal
	Total            decimal.Decimal
	SRIStatus        SRIStatus
	IssuedAt         time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewInvoice issues an offline invoice for a closed sale
func NewInvoice(sale *Sale, customer InvoiceCustomer, emission Emission, sequential int64) (*Invoice, error) {
	if sale.Status != StatusClosed {
		return nil, shared.NewInvalidStateError("Only paid sales can be invoiced")
	}
	if sequential < 1 {
		return nil, shared.NewValidationError("Invoice sequential must be positive")
	}
	c, err := customer.Normalize()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Invoice{
		ID:         uuid.New(),
		SaleID:     sale.ID,
		Number:     FormatInvoiceNumber(emission.EstablishmentCode, emission.EmissionPoint, sequential),
		Sequential: sequential,
		AccessKey: GenerateAccessKey(AccessKeyInput{
			IssuedAt:          now,
			RUC:               emission.RUC,
			Environment:       emission.Environment,
			EstablishmentCode: emission.EstablishmentCode,
			EmissionPoint:     emission.EmissionPoint,
			Sequential:        sequential,
			Seed:              sale.ID,
		}),
		CustomerIDType:   c.IDType,
		CustomerIDNumber: c.IDNumber,
		CustomerName:     c.Name,
		Email:            c.Email,
		Address:          c.Address,
		Subtotal:         sale.Subtotal,
		TaxAmount:        sale.TaxAmount,
		Total:            sale.Total,
		SRIStatus:        SRIStatusOffline,
		IssuedAt:         now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// Cancel marks the invoice as annulled after its sale is voided
func (i *Invoice) Cancel() {
	i.SRIStatus = SRIStatusCancelled
	i.UpdatedAt = time.Now()
}

// SetSRIStatus records the result of an authorization attempt
func (i *Invoice) SetSRIStatus(status SRIStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("Unknown SRI status")
	}
	i.SRIStatus = status
	i.UpdatedAt = time.Now()
	return nil
}

// InvoiceFilter narrows invoice listings
type InvoiceFilter struct {
	Search    string
	SRIStatus *SRIStatus
	DateRange *shared.DateRange
	Page      int
	PageSize  int
}

// InvoiceRepository persists invoices
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *Invoice) error
	Update(ctx context.Context, invoice *Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindBySaleID(ctx context.Context, saleID uuid.UUID) (*Invoice, error)
	FindAll(ctx context.Context, filter InvoiceFilter) ([]*Invoice, int64, error)
	// NextSequential returns the next number for an establishment/emission point pair
	NextSequential(ctx context.Context, establishment, point string) (int64, error)
}
