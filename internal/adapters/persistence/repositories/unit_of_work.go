package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories bound to one database handle
type Store struct {
	Users         UserRepository
	Courses       CourseRepository
	Transactions  TransactionRepository
	RefreshTokens RefreshTokenRepository
}

// NewStore creates repositories sharing db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		Users:         NewUserRepository(db),
		Courses:       NewCourseRepository(db),
		Transactions:  NewTransactionRepository(db),
		RefreshTokens: NewRefreshTokenRepository(db),
	}
}

// gormUnitOfWork implements UnitOfWork on gorm transactions
type gormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a new unit of work
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

// Within commits when fn returns nil and rolls back otherwise
func (u *gormUnitOfWork) Within(ctx context.Context, fn func(tx *Store) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
