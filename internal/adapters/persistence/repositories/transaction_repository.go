package repositories

import (
	"context"
	"time"

	"studyon-billing/internal/adapters/persistence/models"
	"studyon-billing/internal/core/domain"

	"gorm.io/gorm"
)

// transactionRepository implements TransactionRepository interface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// Create appends a ledger row
func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	row := models.TransactionFromDomain(tx)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	tx.ID = row.ID
	return nil
}

// FindForUser lists a user's transactions oldest first, narrowed by filter
func (r *transactionRepository) FindForUser(ctx context.Context, userID uint, filter domain.TransactionFilter, now time.Time) ([]*domain.Transaction, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Preload("Course").
		Where("transactions.customer_id = ?", userID)

	if filter.Type != nil {
		q = q.Where("transactions.type = ?", *filter.Type)
	}
	if filter.CourseCode != "" {
		q = q.Joins("INNER JOIN courses ON courses.id = transactions.course_id").
			Where("courses.code = ?", filter.CourseCode)
	}
	if filter.SkipExpired {
		q = q.Where("(transactions.expiration_date IS NULL OR transactions.expiration_date > ?)", now)
	}

	var rows []*models.Transaction
	if err := q.Order("transactions.creation_date ASC, transactions.id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	txs := make([]*domain.Transaction, len(rows))
	for i, row := range rows {
		txs[i] = row.ToDomain()
	}
	return txs, nil
}

// HasValidPurchase reports whether the user already holds access to course.
// Any payment for a BUY or FREE course counts; a RENT payment counts only
// while its expiration date is in the future.
func (r *transactionRepository) HasValidPurchase(ctx context.Context, userID uint, course *domain.Course, now time.Time) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("customer_id = ? AND course_id = ? AND type = ?", userID, course.ID, domain.TxPayment)
	if course.Type == domain.CourseRent {
		q = q.Where("expiration_date > ?", now)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// MonthlyReport aggregates payments created in [start, end] per (user, course)
func (r *transactionRepository) MonthlyReport(ctx context.Context, start, end time.Time) ([]domain.ReportRow, error) {
	var rows []domain.ReportRow
	err := r.db.WithContext(ctx).
		Table("transactions AS t").
		Select("u.email AS email, c.name AS course_name, c.type AS course_type, " +
			"COUNT(t.id) AS transactions_count, SUM(t.value) AS total_value").
		Joins("INNER JOIN courses c ON c.id = t.course_id").
		Joins("INNER JOIN users u ON u.id = t.customer_id").
		Where("t.type = ?", domain.TxPayment).
		Where("t.creation_date >= ? AND t.creation_date <= ?", start, end).
		Group("u.email, c.id, c.name, c.type").
		Order("u.email ASC, c.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindExpiredRentals lists rentals whose expiration fell in (asOf-window, asOf]
// and that the user has not renewed since.
func (r *transactionRepository) FindExpiredRentals(ctx context.Context, asOf time.Time, window time.Duration) ([]domain.ExpiredRental, error) {
	var rows []domain.ExpiredRental
	err := r.db.WithContext(ctx).
		Table("transactions AS t").
		Select("u.email AS email, c.code AS course_code, c.name AS course_name, t.expiration_date AS expired_at").
		Joins("INNER JOIN courses c ON c.id = t.course_id").
		Joins("INNER JOIN users u ON u.id = t.customer_id").
		Where("t.type = ? AND c.type = ?", domain.TxPayment, domain.CourseRent).
		Where("t.expiration_date > ? AND t.expiration_date <= ?", asOf.Add(-window), asOf).
		Where("NOT EXISTS (SELECT 1 FROM transactions r WHERE r.customer_id = t.customer_id "+
			"AND r.course_id = t.course_id AND r.expiration_date > ?)", asOf).
		Order("u.email ASC, t.expiration_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
