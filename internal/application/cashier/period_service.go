// Package cashier runs the cash drawer: opening a sales period, taking
// withdrawals and reconciling the counted cash at close.
package cashier

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/cashier"
	"github.com/restopos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PeriodService handles sales period operations
type PeriodService struct {
	periodRepo     cashier.PeriodRepository
	withdrawalRepo cashier.WithdrawalRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPeriodService creates a new PeriodService
func NewPeriodService(
	periodRepo cashier.PeriodRepository,
	withdrawalRepo cashier.WithdrawalRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *PeriodService {
	return &PeriodService{
		periodRepo:     periodRepo,
		withdrawalRepo: withdrawalRepo,
		txScope:        txScope,
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PeriodService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Open starts a new period; only one may be open at a time
func (s *PeriodService) Open(ctx context.Context, userID uuid.UUID, req OpenPeriodRequest) (*PeriodDetailResponse, error) {
	var period *cashier.SalesPeriod
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		_, err := repos.PeriodRepo().FindOpenForUpdate(ctx)
		if err == nil {
			return shared.NewConflictError("A sales period is already open")
		}
		if !errors.Is(err, shared.ErrNoOpenPeriod) {
			return err
		}
		p, err := cashier.OpenPeriod(userID, req.OpeningAmount, req.Notes)
		if err != nil {
			return err
		}
		if err := repos.PeriodRepo().Create(ctx, p); err != nil {
			return err
		}
		period = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Sales period opened",
		zap.String("period_id", period.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("opening_amount", period.OpeningAmount.StringFixed(2)))
	s.publish(ctx, period)
	return detail(period, cashier.Totals{}, nil), nil
}

// Current returns the open period with its live totals
func (s *PeriodService) Current(ctx context.Context) (*PeriodDetailResponse, error) {
	period, err := s.periodRepo.FindOpen(ctx)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, period)
}

// GetByID returns a period; an open one carries live totals
func (s *PeriodService) GetByID(ctx context.Context, id uuid.UUID) (*PeriodDetailResponse, error) {
	period, err := s.periodRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, period)
}

// List lists periods, newest first
func (s *PeriodService) List(ctx context.Context, filter PeriodListFilter) ([]PeriodResponse, int64, error) {
	f := cashier.PeriodFilter{
		DateRange: shared.DayRange(filter.From, filter.To),
		Page:      filter.Page,
		PageSize:  filter.PageSize,
	}
	if filter.Status != "" {
		status := cashier.PeriodStatus(filter.Status)
		f.Status = &status
	}
	periods, total, err := s.periodRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]PeriodResponse, len(periods))
	for i, p := range periods {
		out[i] = ToPeriodResponse(p)
	}
	return out, total, nil
}

// Withdraw takes cash out of the open drawer
func (s *PeriodService) Withdraw(ctx context.Context, userID uuid.UUID, req WithdrawRequest) (*WithdrawalResponse, error) {
	var withdrawal *cashier.Withdrawal
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		period, err := repos.PeriodRepo().FindOpenForUpdate(ctx)
		if err != nil {
			return err
		}
		totals, err := repos.PeriodRepo().Totals(ctx, period.ID)
		if err != nil {
			return err
		}
		w, err := period.Withdraw(req.Amount, req.Reason, userID, totals)
		if err != nil {
			return err
		}
		if err := repos.WithdrawalRepo().Create(ctx, w); err != nil {
			return err
		}
		if err := repos.PeriodRepo().Update(ctx, period); err != nil {
			return err
		}
		withdrawal = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cash withdrawn",
		zap.String("period_id", withdrawal.PeriodID.String()),
		zap.String("user_id", userID.String()),
		zap.String("amount", withdrawal.Amount.StringFixed(2)),
		zap.String("reason", withdrawal.Reason))
	response := ToWithdrawalResponse(withdrawal)
	return &response, nil
}

// Close reconciles and closes the open period
func (s *PeriodService) Close(ctx context.Context, userID uuid.UUID, req ClosePeriodRequest) (*PeriodDetailResponse, error) {
	var period *cashier.SalesPeriod
	var totals cashier.Totals
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		p, err := repos.PeriodRepo().FindOpenForUpdate(ctx)
		if err != nil {
			return err
		}
		totals, err = repos.PeriodRepo().Totals(ctx, p.ID)
		if err != nil {
			return err
		}
		if err := p.Close(userID, req.CountedCash, totals, req.Notes); err != nil {
			return err
		}
		if err := repos.PeriodRepo().Update(ctx, p); err != nil {
			return err
		}
		period = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.String("period_id", period.ID.String()),
		zap.String("expected_cash", period.ExpectedCash.StringFixed(2)),
		zap.String("counted_cash", period.CountedCash.StringFixed(2)),
		zap.String("difference", period.Difference.StringFixed(2)),
	}
	if period.Difference.IsZero() {
		s.logger.Info("Sales period closed", fields...)
	} else {
		s.logger.Warn("Sales period closed with cash difference", fields...)
	}
	s.publish(ctx, period)

	withdrawals, err := s.withdrawalRepo.FindByPeriodID(ctx, period.ID)
	if err != nil {
		return nil, err
	}
	return detail(period, totals, withdrawals), nil
}

func (s *PeriodService) load(ctx context.Context, period *cashier.SalesPeriod) (*PeriodDetailResponse, error) {
	totals, err := s.periodRepo.Totals(ctx, period.ID)
	if err != nil {
		return nil, err
	}
	period.Apply(totals)
	withdrawals, err := s.withdrawalRepo.FindByPeriodID(ctx, period.ID)
	if err != nil {
		return nil, err
	}
	return detail(period, totals, withdrawals), nil
}

func (s *PeriodService) publish(ctx context.Context, period *cashier.SalesPeriod) {
	events := period.PullEvents()
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish period events", zap.Error(err))
	}
}

func detail(period *cashier.SalesPeriod, totals cashier.Totals, withdrawals []*cashier.Withdrawal) *PeriodDetailResponse {
	items := make([]WithdrawalResponse, len(withdrawals))
	for i, w := range withdrawals {
		items[i] = ToWithdrawalResponse(w)
	}
	resp := &PeriodDetailResponse{
		PeriodResponse:  ToPeriodResponse(period),
		SalesCount:      totals.SalesCount,
		WithdrawalItems: items,
	}
	resp.TotalSales = period.CashSales.Add(period.TransferSales).Add(period.CardSales)
	return resp
}
