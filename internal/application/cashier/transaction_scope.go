package cashier

import (
	"context"

	"github.com/restopos/backend/internal/domain/cashier"
)

// TransactionScope runs drawer operations atomically
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories bound to one transaction
type TransactionalRepositories interface {
	PeriodRepo() cashier.PeriodRepository
	WithdrawalRepo() cashier.WithdrawalRepository
}

// NoOpTransactionScope runs the function against plain repositories.
// This is useful for testing.
type NoOpTransactionScope struct {
	periodRepo     cashier.PeriodRepository
	withdrawalRepo cashier.WithdrawalRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(periodRepo cashier.PeriodRepository, withdrawalRepo cashier.WithdrawalRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{periodRepo: periodRepo, withdrawalRepo: withdrawalRepo}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// PeriodRepo returns the period repository
func (s *NoOpTransactionScope) PeriodRepo() cashier.PeriodRepository {
	return s.periodRepo
}

// WithdrawalRepo returns the withdrawal repository
func (s *NoOpTransactionScope) WithdrawalRepo() cashier.WithdrawalRepository {
	return s.withdrawalRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
