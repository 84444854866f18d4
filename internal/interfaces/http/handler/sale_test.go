package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	salesapp "github.com/restopos/backend/internal/application/sales"
	"github.com/restopos/backend/internal/domain/identity"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSaleService implements SaleService for testing
type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) Create(ctx context.Context, userID uuid.UUID, req salesapp.CreateSaleRequest) (*salesapp.SaleResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesapp.SaleResponse), args.Error(1)
}

func (m *MockSaleService) AddItems(ctx context.Context, saleID uuid.UUID, req salesapp.AddItemsRequest) (*salesapp.SaleResponse, error) {
	args := m.Called(ctx, saleID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesapp.SaleResponse), args.Error(1)
}

func (m *MockSaleService) Close(ctx context.Context, saleID uuid.UUID, req salesapp.CloseSaleRequest) (*salesapp.SaleResponse, error) {
	args := m.Called(ctx, saleID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesapp.SaleResponse), args.Error(1)
}

func (m *MockSaleService) Cancel(ctx context.Context, saleID, userID uuid.UUID, req salesapp.ReverseSaleRequest) (*salesapp.SaleResponse, error) {
	args := m.Called(ctx, saleID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesapp.SaleResponse), args.Error(1)
}

func (m *MockSaleService) Void(ctx context.Context, saleID, userID uuid.UUID, req salesapp.ReverseSaleRequest) (*salesapp.SaleResponse, error) {
	args := m.Called(ctx, saleID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesapp.SaleResponse), args.Error(1)
}

func (m *MockSaleService) GetByID(ctx context.Context, id uuid.UUID) (*salesapp.SaleResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesapp.SaleResponse), args.Error(1)
}

func (m *MockSaleService) List(ctx context.Context, filter salesapp.SaleListFilter) ([]salesapp.SaleResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]salesapp.SaleResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockSaleService) Receipt(ctx context.Context, id uuid.UUID) (*salesapp.ReceiptResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesapp.ReceiptResponse), args.Error(1)
}

func (m *MockSaleService) CreateInvoice(ctx context.Context, saleID uuid.UUID, req salesapp.InvoiceRequest) (*salesapp.InvoiceResponse, error) {
	args := m.Called(ctx, saleID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesapp.InvoiceResponse), args.Error(1)
}

func (m *MockSaleService) GetInvoice(ctx context.Context, id uuid.UUID) (*salesapp.InvoiceResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesapp.InvoiceResponse), args.Error(1)
}

func (m *MockSaleService) ListInvoices(ctx context.Context, filter salesapp.InvoiceListFilter) ([]salesapp.InvoiceResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]salesapp.InvoiceResponse), args.Get(1).(int64), args.Error(2)
}

func setupSaleRouter(svc SaleService, userID uuid.UUID) *gin.Engine {
	h := NewSaleHandler(svc)
	r := gin.New()
	r.Use(withUser(userID, identity.RoleCashier))
	r.POST("/sales", h.Create)
	r.GET("/sales", h.List)
	r.GET("/sales/:id", h.GetByID)
	r.POST("/sales/:id/items", h.AddItems)
	r.POST("/sales/:id/close", h.Close)
	r.POST("/sales/:id/cancel", h.Cancel)
	r.POST("/sales/:id/void", h.Void)
	r.GET("/sales/:id/receipt", h.Receipt)
	r.POST("/sales/:id/invoice", h.CreateInvoice)
	r.GET("/invoices", h.ListInvoices)
	r.GET("/invoices/:id", h.GetInvoice)
	return r
}

func TestSaleHandler_Create(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	svc := new(MockSaleService)
	router := setupSaleRouter(svc, userID)

	created := &salesapp.SaleResponse{
		ID:     uuid.New(),
		Number: "000000001",
		Status: "open",
		Total:  decimal.RequireFromString("11.50"),
	}
	svc.On("Create", mock.Anything, userID, mock.MatchedBy(func(req salesapp.CreateSaleRequest) bool {
		return req.OrderType == "takeaway" &&
			len(req.Items) == 1 &&
			req.Items[0].ProductID == productID &&
			req.Items[0].Quantity.Equal(decimal.NewFromInt(2))
	})).Return(created, nil)

	w := performRequest(router, http.MethodPost, "/sales", map[string]any{
		"order_type": "takeaway",
		"items": []map[string]any{
			{"product_id": productID.String(), "quantity": "2"},
		},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "000000001", data["number"])
	assert.Equal(t, "11.5", data["total"])
	svc.AssertExpectations(t)
}

func TestSaleHandler_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{
			name: "missing items",
			body: map[string]any{"order_type": "takeaway"},
		},
		{
			name: "unknown order type",
			body: map[string]any{
				"order_type": "drive_thru",
				"items":      []map[string]any{{"product_id": uuid.NewString(), "quantity": "1"}},
			},
		},
		{
			name: "zero quantity",
			body: map[string]any{
				"order_type": "takeaway",
				"items":      []map[string]any{{"product_id": uuid.NewString(), "quantity": "0"}},
			},
		},
		{
			name: "negative discount",
			body: map[string]any{
				"order_type": "takeaway",
				"items":      []map[string]any{{"product_id": uuid.NewString(), "quantity": "1", "discount": "-1"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockSaleService)
			router := setupSaleRouter(svc, uuid.New())

			w := performRequest(router, http.MethodPost, "/sales", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, shared.CodeValidation, resp.Error.Code)
			svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSaleHandler_Create_InsufficientStock(t *testing.T) {
	svc := new(MockSaleService)
	router := setupSaleRouter(svc, uuid.New())

	svc.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, shared.NewDomainError(shared.CodeInsufficientStock, "Insufficient stock for Coca-Cola"))

	w := performRequest(router, http.MethodPost, "/sales", map[string]any{
		"order_type": "takeaway",
		"items":      []map[string]any{{"product_id": uuid.NewString(), "quantity": "3"}},
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, shared.CodeInsufficientStock, resp.Error.Code)
	assert.Equal(t, "Insufficient stock for Coca-Cola", resp.Error.Message)
}

func TestSaleHandler_Close(t *testing.T) {
	saleID := uuid.New()
	svc := new(MockSaleService)
	router := setupSaleRouter(svc, uuid.New())

	closed := &salesapp.SaleResponse{ID: saleID, Status: "closed", ChangeAmount: decimal.RequireFromString("8.50")}
	svc.On("Close", mock.Anything, saleID, mock.MatchedBy(func(req salesapp.CloseSaleRequest) bool {
		return req.Method == "cash" && req.AmountReceived.Equal(decimal.NewFromInt(20)) && req.Invoice == nil
	})).Return(closed, nil)

	w := performRequest(router, http.MethodPost, "/sales/"+saleID.String()+"/close", map[string]any{
		"method":          "cash",
		"amount_received": "20",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "Sale closed", resp.Message)
	assert.Equal(t, "8.5", resp.Data.(map[string]any)["change_amount"])
	svc.AssertExpectations(t)
}

func TestSaleHandler_Close_AlreadyClosed(t *testing.T) {
	saleID := uuid.New()
	svc := new(MockSaleService)
	router := setupSaleRouter(svc, uuid.New())

	svc.On("Close", mock.Anything, saleID, mock.Anything).
		Return(nil, shared.NewInvalidStateError("Sale is not open"))

	w := performRequest(router, http.MethodPost, "/sales/"+saleID.String()+"/close", map[string]any{
		"method": "card",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, shared.CodeInvalidState, decodeResponse(t, w).Error.Code)
}

func TestSaleHandler_CancelAndVoid(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		method  string
		message string
	}{
		{name: "cancel", path: "/cancel", method: "Cancel", message: "Sale cancelled"},
		{name: "void", path: "/void", method: "Void", message: "Sale voided"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saleID := uuid.New()
			userID := uuid.New()
			svc := new(MockSaleService)
			router := setupSaleRouter(svc, userID)

			svc.On(tt.method, mock.Anything, saleID, userID, salesapp.ReverseSaleRequest{Reason: "customer left"}).
				Return(&salesapp.SaleResponse{ID: saleID}, nil)

			w := performRequest(router, http.MethodPost, "/sales/"+saleID.String()+tt.path, map[string]any{
				"reason": "customer left",
			})

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.message, decodeResponse(t, w).Message)
			svc.AssertExpectations(t)
		})
	}
}

func TestSaleHandler_Cancel_RequiresReason(t *testing.T) {
	svc := new(MockSaleService)
	router := setupSaleRouter(svc, uuid.New())

	w := performRequest(router, http.MethodPost, "/sales/"+uuid.NewString()+"/cancel", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSaleHandler_GetByID(t *testing.T) {
	svc := new(MockSaleService)
	router := setupSaleRouter(svc, uuid.New())

	t.Run("invalid id", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/sales/42", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New()
		svc.On("GetByID", mock.Anything, id).Return(nil, shared.NewNotFoundError("Sale"))

		w := performRequest(router, http.MethodGet, "/sales/"+id.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Sale not found", decodeResponse(t, w).Error.Message)
	})
}

func TestSaleHandler_List(t *testing.T) {
	svc := new(MockSaleService)
	router := setupSaleRouter(svc, uuid.New())

	svc.On("List", mock.Anything, mock.MatchedBy(func(f salesapp.SaleListFilter) bool {
		return f.Status == "closed" && f.Page == 2 && f.PageSize == 5 &&
			f.From.Format("2006-01-02") == "2026-03-01"
	})).Return([]salesapp.SaleResponse{{ID: uuid.New()}}, int64(11), nil)

	w := performRequest(router, http.MethodGet, "/sales?status=closed&page=2&page_size=5&from=2026-03-01", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(11), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	svc.AssertExpectations(t)
}

func TestSaleHandler_List_InvalidStatus(t *testing.T) {
	svc := new(MockSaleService)
	router := setupSaleRouter(svc, uuid.New())

	w := performRequest(router, http.MethodGet, "/sales?status=paid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaleHandler_CreateInvoice(t *testing.T) {
	saleID := uuid.New()
	svc := new(MockSaleService)
	router := setupSaleRouter(svc, uuid.New())

	svc.On("CreateInvoice", mock.Anything, saleID, salesapp.InvoiceRequest{
		CustomerIDType:   "cedula",
		CustomerIDNumber: "1710034065",
		CustomerName:     "Ana Torres",
	}).Return(&salesapp.InvoiceResponse{
		SaleID:    saleID,
		Number:    "001-001-000000001",
		SRIStatus: "offline",
	}, nil)

	w := performRequest(router, http.MethodPost, "/sales/"+saleID.String()+"/invoice", map[string]any{
		"customer_id_type":   "cedula",
		"customer_id_number": "1710034065",
		"customer_name":      "Ana Torres",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "001-001-000000001", decodeResponse(t, w).Data.(map[string]any)["number"])
	svc.AssertExpectations(t)
}

func TestSaleHandler_Receipt(t *testing.T) {
	saleID := uuid.New()
	svc := new(MockSaleService)
	router := setupSaleRouter(svc, uuid.New())

	svc.On("Receipt", mock.Anything, saleID).Return(&salesapp.ReceiptResponse{
		BusinessName: "La Esquina",
		Currency:     "USD",
		Sale:         salesapp.SaleResponse{ID: saleID},
	}, nil)

	w := performRequest(router, http.MethodGet, "/sales/"+saleID.String()+"/receipt", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "La Esquina", decodeResponse(t, w).Data.(map[string]any)["business_name"])
}

func TestSaleHandler_ListInvoices(t *testing.T) {
	svc := new(MockSaleService)
	router := setupSaleRouter(svc, uuid.New())

	svc.On("ListInvoices", mock.Anything, mock.MatchedBy(func(f salesapp.InvoiceListFilter) bool {
		return f.SRIStatus == "offline"
	})).Return([]salesapp.InvoiceResponse{}, int64(0), nil)

	w := performRequest(router, http.MethodGet, "/invoices?sri_status=offline", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
