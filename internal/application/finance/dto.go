package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// InvestmentRequest represents a request to record or edit an investment
type InvestmentRequest struct {
	Description string          `json:"description" binding:"required,min=1,max=255"`
	Category    string          `json:"category" binding:"omitempty,oneof=equipment furniture renovation supplies other"`
	Amount      decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	InvestedAt  time.Time       `json:"invested_at"`
	Notes       string          `json:"notes" binding:"max=500"`
}

func (r InvestmentRequest) input() finance.InvestmentInput {
	return finance.InvestmentInput{
		Description: r.Description,
		Category:    finance.InvestmentCategory(r.Category),
		Amount:      r.Amount,
		InvestedAt:  r.InvestedAt,
		Notes:       r.Notes,
	}
}

// InvestmentListFilter contains query parameters for listing investments
type InvestmentListFilter struct {
	Category string    `form:"category" binding:"omitempty,oneof=equipment furniture renovation supplies other"`
	From     time.Time `form:"from" time_format:"2006-01-02"`
	To       time.Time `form:"to" time_format:"2006-01-02"`
	Page     int       `form:"page" binding:"omitempty,min=1"`
	PageSize int       `form:"page_size" binding:"omitempty,min=1,max=200"`
}

// InvestmentResponse represents an investment in API responses
type InvestmentResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	InvestedAt  time.Time       `json:"invested_at"`
	Notes       string          `json:"notes,omitempty"`
	UserID      uuid.UUID       `json:"user_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// InvestmentListResult is one page of investments plus the amount of every
// investment matching the filter
type InvestmentListResult struct {
	Items       []InvestmentResponse
	Total       int64
	TotalAmount decimal.Decimal
}

// ToInvestmentResponse converts a domain Investment to InvestmentResponse
func ToInvestmentResponse(i *finance.Investment) InvestmentResponse {
	return InvestmentResponse{
		ID:          i.ID,
		Description: i.Description,
		Category:    string(i.Category),
		Amount:      i.Amount,
		InvestedAt:  i.InvestedAt,
		Notes:       i.Notes,
		UserID:      i.UserID,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
