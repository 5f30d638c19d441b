package repositories

import (
	"context"
	"time"

	"studyon-billing/internal/core/domain"

	"github.com/shopspring/decimal"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	// GetByIDForUpdate row-locks the user until the surrounding transaction ends
	GetByIDForUpdate(ctx context.Context, id uint) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateBalance(ctx context.Context, id uint, balance decimal.Decimal) error
	List(ctx context.Context, offset, limit int) ([]*domain.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// CourseRepository defines course catalog repository interface
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	GetByCode(ctx context.Context, code string) (*domain.Course, error)
	Update(ctx context.Context, course *domain.Course) error
	List(ctx context.Context) ([]*domain.Course, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// TransactionRepository defines the ledger repository interface.
// Rows are only ever inserted; there is no update or delete.
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	FindForUser(ctx context.Context, userID uint, filter domain.TransactionFilter, now time.Time) ([]*domain.Transaction, error)
	HasValidPurchase(ctx context.Context, userID uint, course *domain.Course, now time.Time) (bool, error)
	MonthlyReport(ctx context.Context, start, end time.Time) ([]domain.ReportRow, error)
	FindExpiredRentals(ctx context.Context, asOf time.Time, window time.Duration) ([]domain.ExpiredRental, error)
}

// UnitOfWork runs fn inside one database transaction. fn receives a Store
// bound to that transaction; returning an error rolls everything back.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(tx *Store) error) error
}
