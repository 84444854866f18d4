package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cashierapp "github.com/restopos/backend/internal/application/cashier"
	"github.com/restopos/backend/internal/domain/identity"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPeriodService implements PeriodService for testing
type MockPeriodService struct {
	mock.Mock
}

func (m *MockPeriodService) Open(ctx context.Context, userID uuid.UUID, req cashierapp.OpenPeriodRequest) (*cashierapp.PeriodDetailResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cashierapp.PeriodDetailResponse), args.Error(1)
}

func (m *MockPeriodService) Current(ctx context.Context) (*cashierapp.PeriodDetailResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cashierapp.PeriodDetailResponse), args.Error(1)
}

func (m *MockPeriodService) GetByID(ctx context.Context, id uuid.UUID) (*cashierapp.PeriodDetailResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cashierapp.PeriodDetailResponse), args.Error(1)
}

func (m *MockPeriodService) List(ctx context.Context, filter cashierapp.PeriodListFilter) ([]cashierapp.PeriodResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]cashierapp.PeriodResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockPeriodService) Withdraw(ctx context.Context, userID uuid.UUID, req cashierapp.WithdrawRequest) (*cashierapp.WithdrawalResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cashierapp.WithdrawalResponse), args.Error(1)
}

func (m *MockPeriodService) Close(ctx context.Context, userID uuid.UUID, req cashierapp.ClosePeriodRequest) (*cashierapp.PeriodDetailResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cashierapp.PeriodDetailResponse), args.Error(1)
}

func setupPeriodRouter(svc PeriodService, userID uuid.UUID) *gin.Engine {
	h := NewPeriodHandler(svc)
	r := gin.New()
	r.Use(withUser(userID, identity.RoleCashier))
	r.GET("/periods", h.List)
	r.GET("/periods/current", h.Current)
	r.GET("/periods/:id", h.GetByID)
	r.POST("/periods/open", h.Open)
	r.POST("/periods/current/withdrawals", h.Withdraw)
	r.POST("/periods/current/close", h.Close)
	return r
}

func TestPeriodHandler_Open(t *testing.T) {
	userID := uuid.New()
	svc := new(MockPeriodService)
	router := setupPeriodRouter(svc, userID)

	svc.On("Open", mock.Anything, userID, mock.MatchedBy(func(req cashierapp.OpenPeriodRequest) bool {
		return req.OpeningAmount.Equal(decimal.NewFromInt(50))
	})).Return(&cashierapp.PeriodDetailResponse{
		PeriodResponse: cashierapp.PeriodResponse{ID: uuid.New(), Status: "open"},
	}, nil)

	w := performRequest(router, http.MethodPost, "/periods/open", map[string]any{"opening_amount": "50.00"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "open", decodeResponse(t, w).Data.(map[string]any)["status"])
	svc.AssertExpectations(t)
}

func TestPeriodHandler_Open_AlreadyOpen(t *testing.T) {
	svc := new(MockPeriodService)
	router := setupPeriodRouter(svc, uuid.New())

	svc.On("Open", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, shared.NewConflictError("A sales period is already open"))

	w := performRequest(router, http.MethodPost, "/periods/open", map[string]any{"opening_amount": "0"})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, shared.CodeConflict, decodeResponse(t, w).Error.Code)
}

func TestPeriodHandler_Open_NegativeAmount(t *testing.T) {
	svc := new(MockPeriodService)
	router := setupPeriodRouter(svc, uuid.New())

	w := performRequest(router, http.MethodPost, "/periods/open", map[string]any{"opening_amount": "-5"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Open", mock.Anything, mock.Anything, mock.Anything)
}

func TestPeriodHandler_Current_NoneOpen(t *testing.T) {
	svc := new(MockPeriodService)
	router := setupPeriodRouter(svc, uuid.New())

	svc.On("Current", mock.Anything).Return(nil, shared.ErrNoOpenPeriod)

	w := performRequest(router, http.MethodGet, "/periods/current", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, shared.CodeNoOpenPeriod, decodeResponse(t, w).Error.Code)
}

func TestPeriodHandler_Withdraw(t *testing.T) {
	userID := uuid.New()
	svc := new(MockPeriodService)
	router := setupPeriodRouter(svc, userID)

	svc.On("Withdraw", mock.Anything, userID, mock.MatchedBy(func(req cashierapp.WithdrawRequest) bool {
		return req.Amount.Equal(decimal.NewFromInt(20)) && req.Reason == "ice"
	})).Return(&cashierapp.WithdrawalResponse{ID: uuid.New(), Amount: decimal.NewFromInt(20)}, nil)

	w := performRequest(router, http.MethodPost, "/periods/current/withdrawals", map[string]any{
		"amount": "20",
		"reason": "ice",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestPeriodHandler_Withdraw_ZeroAmount(t *testing.T) {
	svc := new(MockPeriodService)
	router := setupPeriodRouter(svc, uuid.New())

	w := performRequest(router, http.MethodPost, "/periods/current/withdrawals", map[string]any{
		"amount": "0",
		"reason": "ice",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPeriodHandler_Close(t *testing.T) {
	userID := uuid.New()
	svc := new(MockPeriodService)
	router := setupPeriodRouter(svc, userID)

	svc.On("Close", mock.Anything, userID, mock.MatchedBy(func(req cashierapp.ClosePeriodRequest) bool {
		return req.CountedCash.Equal(decimal.RequireFromString("148.25"))
	})).Return(&cashierapp.PeriodDetailResponse{
		PeriodResponse: cashierapp.PeriodResponse{
			Status:     "closed",
			Difference: decimal.RequireFromString("-1.75"),
		},
	}, nil)

	w := performRequest(router, http.MethodPost, "/periods/current/close", map[string]any{"counted_cash": "148.25"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "Period closed", resp.Message)
	assert.Equal(t, "-1.75", resp.Data.(map[string]any)["difference"])
}

func TestPeriodHandler_List(t *testing.T) {
	svc := new(MockPeriodService)
	router := setupPeriodRouter(svc, uuid.New())

	svc.On("List", mock.Anything, mock.MatchedBy(func(f cashierapp.PeriodListFilter) bool {
		return f.Status == "closed"
	})).Return([]cashierapp.PeriodResponse{{ID: uuid.New()}}, int64(1), nil)

	w := performRequest(router, http.MethodGet, "/periods?status=closed", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), decodeResponse(t, w).Meta.Total)
}
