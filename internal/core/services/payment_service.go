package services

import (
	"context"

	"studyon-billing/internal/adapters/persistence/repositories"
	"studyon-billing/internal/core/domain"

	"github.com/shopspring/decimal"
)

// PaymentService moves money between user balances and the ledger.
// Deposit and Purchase each run in their own unit of work; DepositTx and
// PurchaseTx do the same work inside a scope the caller already opened.
type PaymentService struct {
	uow repositories.UnitOfWork
	now Clock
}

// NewPaymentService creates a new payment service
func NewPaymentService(uow repositories.UnitOfWork, now Clock) *PaymentService {
	if now == nil {
		now = SystemClock
	}
	return &PaymentService{uow: uow, now: now}
}

// PurchaseResult is the outcome of a course purchase
type PurchaseResult struct {
	Course      *domain.Course
	Transaction *domain.Transaction
}

// Deposit credits amount to the user's balance
func (s *PaymentService) Deposit(ctx context.Context, userID uint, amount decimal.Decimal) (*domain.Transaction, error) {
	var out *domain.Transaction
	err := s.uow.Within(ctx, func(tx *LedgerTx) error {
		var err error
		out, err = s.DepositTx(ctx, tx, userID, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Purchase charges the user for a course and records the payment
func (s *PaymentService) Purchase(ctx context.Context, userID uint, courseCode string) (*PurchaseResult, error) {
	var out *PurchaseResult
	err := s.uow.Within(ctx, func(tx *LedgerTx) error {
		var err error
		out, err = s.PurchaseTx(ctx, tx, userID, courseCode)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DepositTx credits amount inside tx. Amounts are kept to cents.
func (s *PaymentService) DepositTx(ctx context.Context, tx *LedgerTx, userID uint, amount decimal.Decimal) (*domain.Transaction, error) {
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	user, err := tx.Users.GetByIDForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := tx.Users.UpdateBalance(ctx, user.ID, user.Balance.Add(amount)); err != nil {
		return nil, err
	}

	deposit := &domain.Transaction{
		CustomerID:   user.ID,
		Type:         domain.TxDeposit,
		Value:        amount,
		CreationDate: s.now(),
	}
	if err := tx.Transactions.Create(ctx, deposit); err != nil {
		return nil, err
	}
	return deposit, nil
}

// PurchaseTx buys or rents courseCode for the user inside tx.
// The user row stays locked until tx ends, so two purchases by the same
// user cannot both pass the balance check.
func (s *PaymentService) PurchaseTx(ctx context.Context, tx *LedgerTx, userID uint, courseCode string) (*PurchaseResult, error) {
	course, err := tx.Courses.GetByCode(ctx, courseCode)
	if err != nil {
		return nil, err
	}

	user, err := tx.Users.GetByIDForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	shape := domain.ResolveTransactionShape(course, now)

	// 1. Funds
	if user.Balance.LessThan(shape.Value) {
		return nil, domain.ErrInsufficientFunds
	}

	// 2. Existing access
	owned, err := tx.Transactions.HasValidPurchase(ctx, user.ID, course, now)
	if err != nil {
		return nil, err
	}
	if owned {
		return nil, domain.ErrAlreadyPurchased
	}

	if err := tx.Users.UpdateBalance(ctx, user.ID, user.Balance.Sub(shape.Value)); err != nil {
		return nil, err
	}

	courseID := course.ID
	payment := &domain.Transaction{
		CustomerID:     user.ID,
		CourseID:       &courseID,
		CourseCode:     course.Code,
		Type:           domain.TxPayment,
		Value:          shape.Value,
		CreationDate:   now,
		ExpirationDate: shape.ExpiresAt,
	}
	if err := tx.Transactions.Create(ctx, payment); err != nil {
		return nil, err
	}

	return &PurchaseResult{Course: course, Transaction: payment}, nil
}
