package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for the Sale aggregate root.
type SaleModel struct {
	BaseModel
	Number           string              `gorm:"type:varchar(30);not null;uniqueIndex"`
	OrderType        sales.OrderType     `gorm:"type:varchar(20);not null"`
	Status           sales.Status        `gorm:"type:varchar(20);not null;index"`
	TableID          *uuid.UUID          `gorm:"type:uuid;index"`
	PeriodID         *uuid.UUID          `gorm:"type:uuid;index"`
	UserID           uuid.UUID           `gorm:"type:uuid;not null;index"`
	CustomerName     string              `gorm:"type:varchar(200)"`
	CustomerIDNumber string              `gorm:"type:varchar(20)"`
	PaymentMethod    sales.PaymentMethod `gorm:"type:varchar(20)"`
	AmountReceived   decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	ChangeAmount     decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	Subtotal         decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	TaxAmount        decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountAmount   decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	Total            decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	CostTotal        decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	Notes            string              `gorm:"type:text"`
	ClosedAt         *time.Time          `gorm:"index"`
	CancelledAt      *time.Time
	CancelledBy      *uuid.UUID      `gorm:"type:uuid"`
	CancelReason     string          `gorm:"type:varchar(500)"`
	Items            []SaleItemModel `gorm:"foreignKey:SaleID;references:ID"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale aggregate.
func (m *SaleModel) ToDomain() *sales.Sale {
	s := &sales.Sale{
		BaseAggregateRoot: m.BaseModel.ToAggregateRoot(),
		Number:            m.Number,
		OrderType:         m.OrderType,
		Status:            m.Status,
		TableID:           m.TableID,
		PeriodID:          m.PeriodID,
		UserID:            m.UserID,
		CustomerName:      m.CustomerName,
		CustomerIDNumber:  m.CustomerIDNumber,
		PaymentMethod:     m.PaymentMethod,
		AmountReceived:    m.AmountReceived,
		ChangeAmount:      m.ChangeAmount,
		Subtotal:          m.Subtotal,
		TaxAmount:         m.TaxAmount,
		DiscountAmount:    m.DiscountAmount,
		Total:             m.Total,
		CostTotal:         m.CostTotal,
		Notes:             m.Notes,
		ClosedAt:          m.ClosedAt,
		CancelledAt:       m.CancelledAt,
		CancelledBy:       m.CancelledBy,
		CancelReason:      m.CancelReason,
		Items:             make([]sales.SaleItem, len(m.Items)),
	}
	for i := range m.Items {
		s.Items[i] = m.Items[i].ToDomain()
	}
	return s
}

// FromDomain populates the persistence model from a domain Sale, lines included.
func (m *SaleModel) FromDomain(s *sales.Sale) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Number = s.Number
	m.OrderType = s.OrderType
	m.Status = s.Status
	m.TableID = s.TableID
	m.PeriodID = s.PeriodID
	m.UserID = s.UserID
	m.CustomerName = s.CustomerName
	m.CustomerIDNumber = s.CustomerIDNumber
	m.PaymentMethod = s.PaymentMethod
	m.AmountReceived = s.AmountReceived
	m.ChangeAmount = s.ChangeAmount
	m.Subtotal = s.Subtotal
	m.TaxAmount = s.TaxAmount
	m.DiscountAmount = s.DiscountAmount
	m.Total = s.Total
	m.CostTotal = s.CostTotal
	m.Notes = s.Notes
	m.ClosedAt = s.ClosedAt
	m.CancelledAt = s.CancelledAt
	m.CancelledBy = s.CancelledBy
	m.CancelReason = s.CancelReason
	m.Items = SaleItemModelsFromDomain(s.Items)
}

// SaleModelFromDomain creates a new persistence model from a domain Sale.
func SaleModelFromDomain(s *sales.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}

// SaleItemModel is the persistence model for a sale line.
// Modifiers are stored as a JSON array of {group, name, price_delta}.
type SaleItemModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	SaleID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName   string          `gorm:"type:varchar(200);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UnitCost      decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0"`
	ModifiersJSON string          `gorm:"column:modifiers;type:jsonb;not null;default:'[]'"`
	Notes         string          `gorm:"type:varchar(500)"`
	SendToKitchen bool            `gorm:"not null"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleItemModel) TableName() string {
	return "sale_items"
}

// ToDomain converts the persistence model to a domain SaleItem.
// Unreadable modifier JSON yields an empty list rather than failing the whole sale.
func (m *SaleItemModel) ToDomain() sales.SaleItem {
	mods := make([]sales.ItemModifier, 0)
	if m.ModifiersJSON != "" {
		_ = json.Unmarshal([]byte(m.ModifiersJSON), &mods)
	}
	return sales.SaleItem{
		ID:            m.ID,
		SaleID:        m.SaleID,
		ProductID:     m.ProductID,
		ProductName:   m.ProductName,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		Discount:      m.Discount,
		TaxRate:       m.TaxRate,
		Subtotal:      m.Subtotal,
		TaxAmount:     m.TaxAmount,
		Total:         m.Total,
		UnitCost:      m.UnitCost,
		Modifiers:     mods,
		Notes:         m.Notes,
		SendToKitchen: m.SendToKitchen,
		CreatedAt:     m.CreatedAt,
	}
}

// SaleItemModelsFromDomain maps sale lines
func SaleItemModelsFromDomain(items []sales.SaleItem) []SaleItemModel {
	out := make([]SaleItemModel, len(items))
	for i, it := range items {
		out[i] = SaleItemModel{
			ID:            it.ID,
			SaleID:        it.SaleID,
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			Discount:      it.Discount,
			TaxRate:       it.TaxRate,
			Subtotal:      it.Subtotal,
			TaxAmount:     it.TaxAmount,
			Total:         it.Total,
			UnitCost:      it.UnitCost,
			ModifiersJSON: marshalJSONList(it.Modifiers),
			Notes:         it.Notes,
			SendToKitchen: it.SendToKitchen,
			CreatedAt:     it.CreatedAt,
		}
	}
	return out
}

// InvoiceModel is the persistence model for an invoice. The establishment and
// emission point are kept in their own columns for sequential numbering.
type InvoiceModel struct {
	BaseModel
	SaleID            uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex"`
	Number            string               `gorm:"type:varchar(17);not null;uniqueIndex"`
	EstablishmentCode string               `gorm:"type:char(3);not null;uniqueIndex:idx_invoices_series_seq,priority:1"`
	EmissionPoint     string               `gorm:"type:char(3);not null;uniqueIndex:idx_invoices_series_seq,priority:2"`
	Sequential        int64                `gorm:"not null;uniqueIndex:idx_invoices_series_seq,priority:3"`
	AccessKey         string               `gorm:"type:varchar(49);not null;uniqueIndex"`
	CustomerIDType    sales.CustomerIDType `gorm:"type:varchar(20);not null"`
	CustomerIDNumber  string               `gorm:"type:varchar(20);not null"`
	CustomerName      string               `gorm:"type:varchar(200);not null"`
	Email             string               `gorm:"type:varchar(200)"`
	Address           string               `gorm:"type:varchar(300)"`
	Subtotal          decimal.Decimal      `gorm:"type:decimal(12,2);not null"`
	TaxAmount         decimal.Decimal      `gorm:"type:decimal(12,2);not null"`
	Total             decimal.Decimal      `gorm:"type:decimal(12,2);not null"`
	SRIStatus         sales.SRIStatus      `gorm:"column:sri_status;type:varchar(20);not null"`
	IssuedAt          time.Time            `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice.
func (m *InvoiceModel) ToDomain() *sales.Invoice {
	return &sales.Invoice{
		ID:               m.ID,
		SaleID:           m.SaleID,
		Number:           m.Number,
		Sequential:       m.Sequential,
		AccessKey:        m.AccessKey,
		CustomerIDType:   m.CustomerIDType,
		CustomerIDNumber: m.CustomerIDNumber,
		CustomerName:     m.CustomerName,
		Email:            m.Email,
		Address:          m.Address,
		Subtotal:         m.Subtotal,
		TaxAmount:        m.TaxAmount,
		Total:            m.Total,
		SRIStatus:        m.SRIStatus,
		IssuedAt:         m.IssuedAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice.
func InvoiceModelFromDomain(i *sales.Invoice) *InvoiceModel {
	establishment, point := splitSeries(i.Number)
	return &InvoiceModel{
		BaseModel:         BaseModel{ID: i.ID, CreatedAt: i.CreatedAt, UpdatedAt: i.UpdatedAt},
		SaleID:            i.SaleID,
		Number:            i.Number,
		EstablishmentCode: establishment,
		EmissionPoint:     point,
		Sequential:        i.Sequential,
		AccessKey:         i.AccessKey,
		CustomerIDType:    i.CustomerIDType,
		CustomerIDNumber:  i.CustomerIDNumber,
		CustomerName:      i.CustomerName,
		Email:             i.Email,
		Address:           i.Address,
		Subtotal:          i.Subtotal,
		TaxAmount:         i.TaxAmount,
		Total:             i.Total,
		SRIStatus:         i.SRIStatus,
		IssuedAt:          i.IssuedAt,
	}
}

// splitSeries extracts EEE and PPP from an EEE-PPP-NNNNNNNNN number
func splitSeries(number string) (string, string) {
	if len(number) < 7 {
		return "000", "000"
	}
	return number[0:3], number[4:7]
}

func marshalJSONList[T any](items []T) string {
	if len(items) == 0 {
		return "[]"
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}
