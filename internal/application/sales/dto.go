package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// SaleLineRequest is one product ordered. Modifier options are chosen by ID.
type SaleLineRequest struct {
	ProductID         uuid.UUID       `json:"product_id" binding:"required"`
	Quantity          decimal.Decimal `json:"quantity" binding:"decimal_gt0"`
	Discount          decimal.Decimal `json:"discount" binding:"decimal_gte0"`
	ModifierOptionIDs []uuid.UUID     `json:"modifier_option_ids"`
	Notes             string          `json:"notes" binding:"max=255"`
}

// PaymentRequest settles a sale
type PaymentRequest struct {
	Method         string          `json:"method" binding:"required,oneof=cash transfer card"`
	AmountReceived decimal.Decimal `json:"amount_received" binding:"decimal_gte0"`
}

// InvoiceRequest identifies the customer an invoice is issued to
type InvoiceRequest struct {
	CustomerIDType   string `json:"customer_id_type" binding:"required,oneof=cedula ruc passport final_consumer"`
	CustomerIDNumber string `json:"customer_id_number" binding:"max=20"`
	CustomerName     string `json:"customer_name" binding:"max=200"`
	Email            string `json:"email" binding:"omitempty,email,max=150"`
	Address          string `json:"address" binding:"max=300"`
}

// CreateSaleRequest opens a sale. With Payment it is paid at once; Invoice
// then issues the invoice in the same transaction.
type CreateSaleRequest struct {
	OrderType        string            `json:"order_type" binding:"required,oneof=dine_in takeaway delivery"`
	TableID          *uuid.UUID        `json:"table_id"`
	CustomerName     string            `json:"customer_name" binding:"max=200"`
	CustomerIDNumber string            `json:"customer_id_number" binding:"max=20"`
	Notes            string            `json:"notes" binding:"max=500"`
	Items            []SaleLineRequest `json:"items" binding:"required,min=1,dive"`
	Payment          *PaymentRequest   `json:"payment"`
	Invoice          *InvoiceRequest   `json:"invoice"`
}

// AddItemsRequest appends lines to an open sale
type AddItemsRequest struct {
	Items []SaleLineRequest `json:"items" binding:"required,min=1,dive"`
}

// CloseSaleRequest pays an open sale
type CloseSaleRequest struct {
	PaymentRequest
	Invoice *InvoiceRequest `json:"invoice"`
}

// ReverseSaleRequest carries the reason for a cancellation or void
type ReverseSaleRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=255"`
}

// SaleListFilter contains query parameters for listing sales
type SaleListFilter struct {
	Status    string     `form:"status" binding:"omitempty,oneof=open closed cancelled voided"`
	OrderType string     `form:"order_type" binding:"omitempty,oneof=dine_in takeaway delivery"`
	PeriodID  *uuid.UUID `form:"period_id"`
	TableID   *uuid.UUID `form:"table_id"`
	Search    string     `form:"search"`
	From      time.Time  `form:"from" time_format:"2006-01-02"`
	To        time.Time  `form:"to" time_format:"2006-01-02"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=200"`
}

// InvoiceListFilter contains query parameters for listing invoices
type InvoiceListFilter struct {
	Search    string    `form:"search"`
	SRIStatus string    `form:"sri_status" binding:"omitempty,oneof=offline authorized rejected cancelled"`
	From      time.Time `form:"from" time_format:"2006-01-02"`
	To        time.Time `form:"to" time_format:"2006-01-02"`
	Page      int       `form:"page" binding:"omitempty,min=1"`
	PageSize  int       `form:"page_size" binding:"omitempty,min=1,max=200"`
}

// SaleItemResponse represents a sale line in API responses
type SaleItemResponse struct {
	ID            uuid.UUID            `json:"id"`
	ProductID     uuid.UUID            `json:"product_id"`
	ProductName   string               `json:"product_name"`
	Quantity      decimal.Decimal      `json:"quantity"`
	UnitPrice     decimal.Decimal      `json:"unit_price"`
	Discount      decimal.Decimal      `json:"discount"`
	TaxRate       decimal.Decimal      `json:"tax_rate"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	TaxAmount     decimal.Decimal      `json:"tax_amount"`
	Total         decimal.Decimal      `json:"total"`
	Modifiers     []sales.ItemModifier `json:"modifiers"`
	Notes         string               `json:"notes,omitempty"`
	SendToKitchen bool                 `json:"send_to_kitchen"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID               uuid.UUID          `json:"id"`
	Number           string             `json:"number"`
	OrderType        string             `json:"order_type"`
	Status           string             `json:"status"`
	TableID          *uuid.UUID         `json:"table_id,omitempty"`
	PeriodID         *uuid.UUID         `json:"period_id,omitempty"`
	UserID           uuid.UUID          `json:"user_id"`
	CustomerName     string             `json:"customer_name,omitempty"`
	CustomerIDNumber string             `json:"customer_id_number,omitempty"`
	PaymentMethod    string             `json:"payment_method,omitempty"`
	AmountReceived   decimal.Decimal    `json:"amount_received"`
	ChangeAmount     decimal.Decimal    `json:"change_amount"`
	Subtotal         decimal.Decimal    `json:"subtotal"`
	TaxAmount        decimal.Decimal    `json:"tax_amount"`
	DiscountAmount   decimal.Decimal    `json:"discount_amount"`
	Total            decimal.Decimal    `json:"total"`
	Notes            string             `json:"notes,omitempty"`
	ClosedAt         *time.Time         `json:"closed_at,omitempty"`
	CancelledAt      *time.Time         `json:"cancelled_at,omitempty"`
	CancelReason     string             `json:"cancel_reason,omitempty"`
	Items            []SaleItemResponse `json:"items"`
	Invoice          *InvoiceResponse   `json:"invoice,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID               uuid.UUID       `json:"id"`
	SaleID           uuid.UUID       `json:"sale_id"`
	Number           string          `json:"number"`
	AccessKey        string          `json:"access_key"`
	CustomerIDType   string          `json:"customer_id_type"`
	CustomerIDNumber string          `json:"customer_id_number"`
	CustomerName     string          `json:"customer_name"`
	Email            string          `json:"email,omitempty"`
	Address          string          `json:"address,omitempty"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	TaxAmount        decimal.Decimal `json:"tax_amount"`
	Total            decimal.Decimal `json:"total"`
	SRIStatus        string          `json:"sri_status"`
	IssuedAt         time.Time       `json:"issued_at"`
}

// TaxLine is the receipt breakdown for one tax rate
type TaxLine struct {
	Rate      decimal.Decimal `json:"rate"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
}

// ReceiptResponse is everything a front end needs to print a ticket
type ReceiptResponse struct {
	BusinessName    string       `json:"business_name"`
	BusinessRUC     string       `json:"business_ruc"`
	BusinessAddress string       `json:"business_address"`
	Currency        string       `json:"currency"`
	TableName       string       `json:"table_name,omitempty"`
	Sale            SaleResponse `json:"sale"`
	Taxes           []TaxLine    `json:"taxes"`
}

// ToSaleResponse converts a domain Sale to SaleResponse
func ToSaleResponse(s *sales.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i := range s.Items {
		it := &s.Items[i]
		mods := it.Modifiers
		if mods == nil {
			mods = []sales.ItemModifier{}
		}
		items[i] = SaleItemResponse{
			ID:            it.ID,
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			Discount:      it.Discount,
			TaxRate:       it.TaxRate,
			Subtotal:      it.Subtotal,
			TaxAmount:     it.TaxAmount,
			Total:         it.Total,
			Modifiers:     mods,
			Notes:         it.Notes,
			SendToKitchen: it.SendToKitchen,
		}
	}
	return SaleResponse{
		ID:               s.ID,
		Number:           s.Number,
		OrderType:        string(s.OrderType),
		Status:           string(s.Status),
		TableID:          s.TableID,
		PeriodID:         s.PeriodID,
		UserID:           s.UserID,
		CustomerName:     s.CustomerName,
		CustomerIDNumber: s.CustomerIDNumber,
		PaymentMethod:    string(s.PaymentMethod),
		AmountReceived:   s.AmountReceived,
		ChangeAmount:     s.ChangeAmount,
		Subtotal:         s.Subtotal,
		TaxAmount:        s.TaxAmount,
		DiscountAmount:   s.DiscountAmount,
		Total:            s.Total,
		Notes:            s.Notes,
		ClosedAt:         s.ClosedAt,
		CancelledAt:      s.CancelledAt,
		CancelReason:     s.CancelReason,
		Items:            items,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// ToInvoiceResponse converts a domain Invoice to InvoiceResponse
func ToInvoiceResponse(i *sales.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:               i.ID,
		SaleID:           i.SaleID,
		Number:           i.Number,
		AccessKey:        i.AccessKey,
		CustomerIDType:   string(i.CustomerIDType),
		CustomerIDNumber: i.CustomerIDNumber,
		CustomerName:     i.CustomerName,
		Email:            i.Email,
		Address:          i.Address,
		Subtotal:         i.Subtotal,
		TaxAmount:        i.TaxAmount,
		Total:            i.Total,
		SRIStatus:        string(i.SRIStatus),
		IssuedAt:         i.IssuedAt,
	}
}

func taxLines(items []sales.SaleItem) []TaxLine {
	out := make([]TaxLine, 0, 2)
	index := make(map[string]int)
	for i := range items {
		it := &items[i]
		key := it.TaxRate.String()
		pos, ok := index[key]
		if !ok {
			pos = len(out)
			index[key] = pos
			out = append(out, TaxLine{Rate: it.TaxRate, Subtotal: decimal.Zero, TaxAmount: decimal.Zero})
		}
		out[pos].Subtotal = out[pos].Subtotal.Add(it.Subtotal)
		out[pos].TaxAmount = out[pos].TaxAmount.Add(it.TaxAmount)
	}
	return out
}

func (r InvoiceRequest) customer() sales.InvoiceCustomer {
	return sales.InvoiceCustomer{
		IDType:   sales.CustomerIDType(r.CustomerIDType),
		IDNumber: r.CustomerIDNumber,
		Name:     r.CustomerName,
		Email:    r.Email,
		Address:  r.Address,
	}
}
