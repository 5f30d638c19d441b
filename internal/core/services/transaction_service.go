package services

import (
	"context"

	"studyon-billing/internal/adapters/persistence/repositories"
	"studyon-billing/internal/core/domain"
)

// TransactionService serves a user's ledger history
type TransactionService struct {
	txRepo repositories.TransactionRepository
	now    Clock
}

// NewTransactionService creates a new transaction service
func NewTransactionService(txRepo repositories.TransactionRepository, now Clock) *TransactionService {
	if now == nil {
		now = SystemClock
	}
	return &TransactionService{txRepo: txRepo, now: now}
}

// History lists the user's transactions, oldest first
func (s *TransactionService) History(ctx context.Context, userID uint, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	return s.txRepo.FindForUser(ctx, userID, filter, s.now())
}
